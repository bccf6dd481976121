// Package main provides the CLI entrypoint for sensearff.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/sensearff/internal/arff"
	"github.com/verte-zerg/sensearff/internal/browse"
	"github.com/verte-zerg/sensearff/internal/config"
	"github.com/verte-zerg/sensearff/internal/corpus"
	"github.com/verte-zerg/sensearff/internal/extract"
	"github.com/verte-zerg/sensearff/internal/model"
	"github.com/verte-zerg/sensearff/internal/stats"
	"github.com/verte-zerg/sensearff/internal/store"
	"github.com/verte-zerg/sensearff/internal/wordlist"
)

var (
	flagCorpus       string
	flagStopList     string
	flagTargets      []string
	flagTargetsFile  string
	flagWindow       int
	flagSenses       []int
	flagDeriveSenses bool
	flagRelation     string
	flagNotFound     string
	flagVerbose      bool

	convertOut    string
	convertRecord bool

	runsLast int
	runsID   int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sensearff",
		Short:         "Convert a sense-tagged corpus into an ARFF dataset",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runConvertCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagCorpus, "corpus", model.DefaultCorpusPath, "tagged corpus file")
	pf.StringVar(&flagStopList, "stoplist", model.DefaultStopListPath, "stop word list, one word per line")
	pf.StringSliceVar(&flagTargets, "target", model.DefaultTargetForms(), "target word forms (repeatable)")
	pf.StringVar(&flagTargetsFile, "targets-file", "", "file with one target word form per line")
	pf.IntVar(&flagWindow, "window", model.DefaultWindow, "context words per entry (half before, half after)")
	pf.IntSliceVar(&flagSenses, "senses", model.DefaultSenses(), "declared sense domain")
	pf.BoolVar(&flagDeriveSenses, "derive-senses", false, "declare the observed senses instead of --senses")
	pf.StringVar(&flagRelation, "relation", model.DefaultRelation, "ARFF relation name")
	pf.StringVar(&flagNotFound, "not-found", string(model.PolicySkip), "samples without a target: skip, missing or fail")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output file (default: stdout)")
	rootCmd.Flags().BoolVar(&convertRecord, "record", true, "record the run in the history database")

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newBrowseCmd())
	rootCmd.AddCommand(newRunsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runConvertCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "record", &convertRecord, fileCfg.Extract.Record)
	cfg, err := resolveConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	started := time.Now()
	res, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		return arff.Write(w, cfg, res.Entries)
	}
	if convertOut == "" {
		err = write(cmd.OutOrStdout())
	} else {
		err = writeAtomic(convertOut, write)
	}
	if err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if res.Skipped > 0 {
		logErrf("skipped %d of %d samples without a target word\n", res.Skipped, res.Samples)
	}
	report := stats.BuildReport(res, arff.BuildDomains(res.Entries, cfg.Window))
	if !cfg.DeriveSenses {
		warnUndeclaredSenses(cfg.Senses, report.SenseCounts)
	}

	if convertRecord {
		if err := recordRun(cfg, report, started); err != nil {
			logErrf("failed to record run: %v\n", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset summary, sense distribution and attribute domains",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, report, _, err := buildReport(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSenseBars(out, report, stats.TerminalWidth(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderDomainTable(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !cfg.DeriveSenses {
		warnUndeclaredSenses(cfg.Senses, report.SenseCounts)
	}
	return nil
}

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse extracted entries interactively",
		Args:  cobra.NoArgs,
		RunE:  runBrowseCmd,
	}
}

func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	cfg, report, res, err := buildReport(cmd)
	if err != nil {
		return err
	}
	m := browse.NewModel(cfg.CorpusPath, res.Entries, report)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded conversion runs",
		Args:  cobra.NoArgs,
		RunE:  runRunsCmd,
	}
	cmd.Flags().IntVar(&runsLast, "last", 0, "limit to last N runs")
	cmd.Flags().Int64Var(&runsID, "id", 0, "show sense distribution and domains of one run")
	return cmd
}

func runRunsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if cmd.Flags().Changed("id") {
		return renderRun(cmd.OutOrStdout(), st, runsID)
	}
	runs, err := st.ListRuns(context.Background(), runsLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if err := stats.RenderRuns(cmd.OutOrStdout(), runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func renderRun(out io.Writer, st *store.Store, id int64) error {
	ctx := context.Background()
	run, err := st.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", id, err)
	}
	sizes, err := st.ListDomainSizes(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load domains of run %d: %w", id, err)
	}
	senses, err := st.ListSenseCounts(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load senses of run %d: %w", id, err)
	}
	report := stats.RunReport(run, sizes, senses)
	if err := stats.RenderRuns(out, []model.RunAggregate{run}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSenseBars(out, report, stats.TerminalWidth(out)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderDomainTable(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

// resolveConfig overlays the config file onto unset flags and loads the
// stop list and target forms.
func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	ext := fileCfg.Extract
	applyStringConfig(cmd, "corpus", &flagCorpus, ext.Corpus)
	applyStringConfig(cmd, "stoplist", &flagStopList, ext.StopList)
	applyStringSliceConfig(cmd, "target", &flagTargets, ext.Targets)
	applyStringConfig(cmd, "targets-file", &flagTargetsFile, ext.TargetsFile)
	applyIntConfig(cmd, "window", &flagWindow, ext.Window)
	applyIntSliceConfig(cmd, "senses", &flagSenses, ext.Senses)
	applyBoolConfig(cmd, "derive-senses", &flagDeriveSenses, ext.DeriveSenses)
	applyStringConfig(cmd, "relation", &flagRelation, ext.Relation)
	applyStringConfig(cmd, "not-found", &flagNotFound, ext.NotFound)

	policy, err := extract.ParsePolicy(flagNotFound)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --not-found value: %w", err)
	}
	cfg := model.Config{
		CorpusPath:   flagCorpus,
		StopListPath: flagStopList,
		Window:       flagWindow,
		TargetForms:  normalizeTargets(flagTargets),
		Senses:       flagSenses,
		DeriveSenses: flagDeriveSenses,
		Relation:     strings.TrimSpace(flagRelation),
		NotFound:     policy,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}

	if flagTargetsFile != "" {
		forms, err := wordlist.LoadWords(flagTargetsFile)
		if err != nil {
			return model.Config{}, fmt.Errorf("failed to load target forms: %w", err)
		}
		cfg.TargetForms = normalizeTargets(forms)
	}
	stop, err := wordlist.LoadStopWords(cfg.StopListPath)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load stop list: %w", err)
	}
	cfg.StopWords = stop
	return cfg, nil
}

func loadDataset(cfg model.Config) (extract.Result, error) {
	text, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return extract.Result{}, fmt.Errorf("failed to load corpus: %w", err)
	}
	ex, err := extract.New(cfg, extract.WithLogger(newLogger()))
	if err != nil {
		return extract.Result{}, err
	}
	res, err := ex.ExtractText(text)
	if err != nil {
		return extract.Result{}, fmt.Errorf("failed to extract entries: %w", err)
	}
	return res, nil
}

func buildReport(cmd *cobra.Command) (model.Config, stats.Report, extract.Result, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return model.Config{}, stats.Report{}, extract.Result{}, err
	}
	cfg, err := resolveConfig(cmd, fileCfg)
	if err != nil {
		return model.Config{}, stats.Report{}, extract.Result{}, err
	}
	res, err := loadDataset(cfg)
	if err != nil {
		return model.Config{}, stats.Report{}, extract.Result{}, err
	}
	report := stats.BuildReport(res, arff.BuildDomains(res.Entries, cfg.Window))
	return cfg, report, res, nil
}

func recordRun(cfg model.Config, report stats.Report, started time.Time) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	ended := time.Now()
	run := model.RunStats{
		StartedAt:    started,
		EndedAt:      ended,
		CorpusPath:   cfg.CorpusPath,
		StopListPath: cfg.StopListPath,
		Window:       cfg.Window,
		Relation:     cfg.Relation,
		NotFound:     string(cfg.NotFound),
		Samples:      report.Samples,
		Entries:      report.Entries,
		Skipped:      report.Skipped,
		DurationMs:   ended.Sub(started).Milliseconds(),
	}
	_, err = st.InsertRun(context.Background(), run, report.DomainSizes, report.SenseCounts)
	return err
}

func newLogger() *slog.Logger {
	if !flagVerbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func writeAtomic(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "sensearff-*.arff")
	if err != nil {
		return fmt.Errorf("failed to create temp output: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	if err := write(writer); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func normalizeTargets(forms []string) []string {
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func warnUndeclaredSenses(declared []int, observed []model.SenseCount) {
	known := make(map[int]struct{}, len(declared))
	for _, s := range declared {
		known[s] = struct{}{}
	}
	for _, sc := range observed {
		if _, ok := known[sc.Sense]; !ok {
			logErrf("sense %d occurs %d times but is not in the declared domain (see --senses, --derive-senses)\n", sc.Sense, sc.Count)
		}
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntSliceConfig(cmd *cobra.Command, name string, target *[]int, value []int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sensearff configuration
# Uncomment a value to enable it. CLI flags override config values.

[extract]
# corpus = %q             # Tagged corpus file
# stoplist = %q           # Stop word list, one word per line
# targets = [%s]          # Target word forms
# targets-file = ""       # File with one target form per line (overrides targets)
# window = %d             # Context words per entry
# senses = [%s]           # Declared sense domain
# derive-senses = false   # Declare observed senses instead
# relation = %q           # ARFF relation name
# not-found = %q          # Samples without target: skip, missing, fail
# record = true           # Record runs in the history database
`,
		model.DefaultCorpusPath,
		model.DefaultStopListPath,
		quoteList(model.DefaultTargetForms()),
		model.DefaultWindow,
		intList(model.DefaultSenses()),
		model.DefaultRelation,
		model.PolicySkip,
	)
}

func quoteList(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(parts, ", ")
}

func intList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}

func validateConfig(cfg model.Config) error {
	if cfg.Window <= 0 || cfg.Window%2 != 0 {
		return fmt.Errorf("--window must be a positive even number")
	}
	if len(cfg.TargetForms) == 0 && flagTargetsFile == "" {
		return fmt.Errorf("--target must not be empty")
	}
	if !cfg.DeriveSenses && len(cfg.Senses) == 0 {
		return fmt.Errorf("--senses must not be empty (or use --derive-senses)")
	}
	if cfg.Relation == "" {
		return fmt.Errorf("--relation must not be empty")
	}
	if strings.ContainsAny(cfg.Relation, " \t\n") {
		return fmt.Errorf("--relation must not contain whitespace")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

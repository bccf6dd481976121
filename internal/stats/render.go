package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/sensearff/internal/model"
)

const barChar = "#"

// SlotLabel names a context slot by side and distance from the target.
func SlotLabel(slot, window int) string {
	half := window / 2
	if slot < half {
		return fmt.Sprintf("before-%d", slot+1)
	}
	return fmt.Sprintf("after-%d", slot-half+1)
}

// RenderSummary prints the sample and entry counts.
func RenderSummary(w io.Writer, r Report) error {
	lines := []string{
		"Summary",
		fmt.Sprintf("Samples: %d", r.Samples),
		fmt.Sprintf("Entries: %d", r.Entries),
		fmt.Sprintf("Skipped (no target): %d", r.Skipped),
		fmt.Sprintf("Window: %d", r.Window),
	}
	if r.MissingMeaning > 0 {
		lines = append(lines, fmt.Sprintf("Entries without meaning: %d", r.MissingMeaning))
	}
	return writeLines(w, append(lines, ""))
}

// RenderSenseBars prints a horizontal bar per sense, scaled to width.
func RenderSenseBars(w io.Writer, r Report, width int) error {
	if len(r.SenseCounts) == 0 {
		_, err := fmt.Fprintln(w, "No senses found.")
		return err
	}
	maxCount := 0
	total := 0
	for _, sc := range r.SenseCounts {
		total += sc.Count
		if sc.Count > maxCount {
			maxCount = sc.Count
		}
	}
	labels := make([]string, len(r.SenseCounts))
	tails := make([]string, len(r.SenseCounts))
	labelWidth, tailWidth := 0, 0
	for i, sc := range r.SenseCounts {
		labels[i] = fmt.Sprintf("%d", sc.Sense)
		tails[i] = fmt.Sprintf("%d (%.1f%%)", sc.Count, float64(sc.Count)/float64(total)*100)
		labelWidth = max(labelWidth, displayWidth(labels[i]))
		tailWidth = max(tailWidth, displayWidth(tails[i]))
	}
	barWidth := width - labelWidth - tailWidth - 4
	if barWidth < 1 {
		barWidth = 1
	}

	lines := []string{"Senses"}
	for i, sc := range r.SenseCounts {
		n := sc.Count * barWidth / maxCount
		if n == 0 && sc.Count > 0 {
			n = 1
		}
		bar := strings.Repeat(barChar, n) + strings.Repeat(" ", barWidth-n)
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			padCell(labels[i], labelWidth, true), bar, tails[i]))
	}
	return writeLines(w, append(lines, ""))
}

// RenderDomainTable prints the per-slot domain sizes and most frequent words.
func RenderDomainTable(w io.Writer, r Report) error {
	if r.Window == 0 {
		_, err := fmt.Fprintln(w, "No context slots.")
		return err
	}
	sizes := map[string]int{}
	for _, d := range r.DomainSizes {
		sizes[fmt.Sprintf("%d/%s", d.Slot, d.Kind)] = d.Size
	}
	headers := []string{"Slot", "Attribute", "Words", "Cats", "Missing", "Top words"}
	rows := make([][]string, 0, r.Window)
	for i := 0; i < r.Window; i++ {
		missing := 0
		if i < len(r.MissingSlots) {
			missing = r.MissingSlots[i]
		}
		var top []string
		if i < len(r.TopWords) {
			top = r.TopWords[i]
		}
		rows = append(rows, []string{
			SlotLabel(i, r.Window),
			fmt.Sprintf("word%d/cat%d", i, i),
			fmt.Sprintf("%d", sizes[fmt.Sprintf("%d/%s", i, model.KindWord)]),
			fmt.Sprintf("%d", sizes[fmt.Sprintf("%d/%s", i, model.KindCat)]),
			fmt.Sprintf("%d", missing),
			strings.Join(top, ", "),
		})
	}
	lines := append([]string{"Attribute Domains"}, formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true})...)
	return writeLines(w, append(lines, ""))
}

// RenderRuns prints recorded conversion runs.
func RenderRuns(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	headers := []string{"ID", "Ended", "Corpus", "Window", "Samples", "Entries", "Skipped", "Duration"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", run.RunID),
			run.EndedAt.Local().Format("2006-01-02 15:04:05"),
			run.CorpusPath,
			fmt.Sprintf("%d", run.Window),
			fmt.Sprintf("%d", run.Samples),
			fmt.Sprintf("%d", run.Entries),
			fmt.Sprintf("%d", run.Skipped),
			(time.Duration(run.DurationMs) * time.Millisecond).String(),
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

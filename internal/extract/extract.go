package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/verte-zerg/sensearff/internal/corpus"
	"github.com/verte-zerg/sensearff/internal/model"
	"github.com/verte-zerg/sensearff/internal/wordlist"
)

// Result holds the entries built from a corpus.
type Result struct {
	Entries []model.Entry
	Samples int
	Skipped int
}

// Extractor turns samples into entries. It holds no mutable state.
type Extractor struct {
	window int
	forms  []string
	policy model.NotFoundPolicy
	keep   wordlist.FilterFunc
	logger *slog.Logger
}

// New validates cfg and builds an Extractor.
func New(cfg model.Config, opts ...Option) (*Extractor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Window <= 0 || cfg.Window%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, cfg.Window)
	}
	if len(cfg.TargetForms) == 0 {
		return nil, ErrNoTargets
	}
	policy, err := ParsePolicy(string(cfg.NotFound))
	if err != nil {
		return nil, err
	}
	return &Extractor{
		window: cfg.Window,
		forms:  append([]string(nil), cfg.TargetForms...),
		policy: policy,
		keep:   wordlist.StopFilter(cfg.StopWords),
		logger: o.logger,
	}, nil
}

// ParsePolicy validates a not-found policy name. Empty means skip.
func ParsePolicy(name string) (model.NotFoundPolicy, error) {
	switch p := model.NotFoundPolicy(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return model.PolicySkip, nil
	case model.PolicySkip, model.PolicyMissing, model.PolicyFail:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (want skip, missing or fail)", ErrUnknownPolicy, name)
	}
}

// ExtractText parses corpus text and extracts its entries.
func (e *Extractor) ExtractText(text string) (Result, error) {
	return e.Extract(corpus.Parse(text))
}

// Extract builds one entry per sample. Empty samples are ignored.
func (e *Extractor) Extract(samples []model.Sample) (Result, error) {
	res := Result{Entries: make([]model.Entry, 0, len(samples))}
	for i, sample := range samples {
		if len(sample) == 0 {
			continue
		}
		res.Samples++
		entry, ok, err := e.entryFor(i, sample)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, entry)
	}
	e.logger.Debug("extracted entries",
		slog.Int("samples", res.Samples),
		slog.Int("entries", len(res.Entries)),
		slog.Int("skipped", res.Skipped))
	return res, nil
}

func (e *Extractor) entryFor(index int, sample model.Sample) (model.Entry, bool, error) {
	target := FindTarget(sample, e.forms)
	if target.Found {
		return model.Entry{
			Meaning:    target.Meaning,
			HasMeaning: true,
			Slots:      Window(sample, target.Pos, e.window, e.keep),
		}, true, nil
	}
	switch e.policy {
	case model.PolicyFail:
		return model.Entry{}, false, fmt.Errorf("%w: sample %d", ErrTargetNotFound, index+1)
	case model.PolicyMissing:
		e.logger.Debug("target not found, emitting missing entry", slog.Int("sample", index+1))
		return model.Entry{Slots: MissingWindow(e.window)}, true, nil
	default:
		e.logger.Debug("target not found, skipping sample", slog.Int("sample", index+1))
		return model.Entry{}, false, nil
	}
}

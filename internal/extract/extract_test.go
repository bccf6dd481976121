package extract

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/verte-zerg/sensearff/internal/corpus"
	"github.com/verte-zerg/sensearff/internal/model"
	"github.com/verte-zerg/sensearff/internal/wordlist"
)

func slotStrings(slots []model.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func assertSlots(t *testing.T, got []model.Slot, want ...string) {
	t.Helper()
	gotStr := slotStrings(got)
	if len(gotStr) != len(want) {
		t.Fatalf("expected %d slots %v, got %d %v", len(want), want, len(gotStr), gotStr)
	}
	for i := range want {
		if gotStr[i] != want[i] {
			t.Fatalf("slot[%d] = %s, want %s (all: %v)", i, gotStr[i], want[i], gotStr)
		}
	}
}

func TestFindTarget(t *testing.T) {
	forms := model.DefaultTargetForms()
	tests := []struct {
		name  string
		input string
		want  Target
	}{
		{
			name:  "singular",
			input: "a/DT b/NN interest_1/NN c/NN",
			want:  Target{Pos: 2, Meaning: 1, Found: true},
		},
		{
			name:  "plural",
			input: "their/PRP interests_5/NNS",
			want:  Target{Pos: 1, Meaning: 5, Found: true},
		},
		{
			name:  "first match wins",
			input: "interest_3/NN and/CC interest_4/NN",
			want:  Target{Pos: 0, Meaning: 3, Found: true},
		},
		{
			name:  "non numeric suffix is not a match",
			input: "interest_rate/NN interest_2/NN",
			want:  Target{Pos: 1, Meaning: 2, Found: true},
		},
		{
			name:  "bare lemma is not a match",
			input: "interest/NN interested/JJ",
			want:  Target{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindTarget(corpus.ParseSample(tt.input), forms)
			if got != tt.want {
				t.Fatalf("FindTarget() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWindowWithoutStopWords(t *testing.T) {
	sample := corpus.ParseSample("a/DT b/NN interest_1/NN c/NN d/NN")
	target := FindTarget(sample, model.DefaultTargetForms())
	if !target.Found || target.Pos != 2 || target.Meaning != 1 {
		t.Fatalf("unexpected target: %+v", target)
	}
	slots := Window(sample, target.Pos, 4, wordlist.StopFilter(nil))
	assertSlots(t, slots, "b/NN", "a/DT", "c/NN", "d/NN")
}

func TestContextSkipsStopWords(t *testing.T) {
	sample := corpus.ParseSample("the/DT cat/NN interest_2/NN sat/VB on/IN mat/NN")
	keep := wordlist.StopFilter(wordlist.NewSet([]string{"the", "on"}))

	assertSlots(t, Context(sample, 2, Before, 2, keep), "cat/NN", "None")
	assertSlots(t, Context(sample, 2, After, 2, keep), "sat/VB", "mat/NN")
}

func TestContextBoundaryConsumesSlots(t *testing.T) {
	sample := corpus.ParseSample("interest_1/NN x/NN")
	tests := []struct {
		name string
		dir  Direction
		k    int
		want []string
	}{
		{name: "left edge", dir: Before, k: 3, want: []string{"None", "None", "None"}},
		{name: "right edge", dir: After, k: 3, want: []string{"x/NN", "None", "None"}},
		{name: "zero", dir: After, k: 0, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSlots(t, Context(sample, 0, tt.dir, tt.k, nil), tt.want...)
		})
	}
}

func TestContextAllStopWords(t *testing.T) {
	sample := corpus.ParseSample("of/IN the/DT interest_4/NN to/TO a/DT")
	keep := wordlist.StopFilter(wordlist.NewSet([]string{"of", "the", "to", "a"}))
	slots := Window(sample, 2, 4, keep)
	assertSlots(t, slots, "None", "None", "None", "None")
}

func TestExtractPropertiesHold(t *testing.T) {
	text := strings.Join([]string{
		"the/DT cat/NN interest_2/NN sat/VB on/IN mat/NN",
		"interest_1/NN",
		"a/DT b/NN c/NN d/NN e/NN interests_6/NNS f/NN the/DT",
		"no tokens",
	}, "\n$$\n")
	stop := wordlist.NewSet([]string{"the", "on"})
	cfg := model.DefaultConfig()
	cfg.StopWords = stop

	ex, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	res, err := ex.ExtractText(text)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if res.Samples != 3 || len(res.Entries) != 3 || res.Skipped != 0 {
		t.Fatalf("unexpected result counts: samples=%d entries=%d skipped=%d", res.Samples, len(res.Entries), res.Skipped)
	}
	for i, entry := range res.Entries {
		if len(entry.Slots) != cfg.Window {
			t.Fatalf("entry %d has %d slots, want %d", i, len(entry.Slots), cfg.Window)
		}
		for _, slot := range entry.Slots {
			if _, isStop := stop[slot.Word.Text]; slot.Present && isStop {
				t.Fatalf("entry %d contains stop word %s", i, slot)
			}
		}
	}
	if res.Entries[2].Meaning != 6 {
		t.Fatalf("expected meaning 6, got %d", res.Entries[2].Meaning)
	}
	assertSlots(t, res.Entries[2].Slots, "e/NN", "d/NN", "f/NN", "None")
}

func TestExtractNotFoundPolicies(t *testing.T) {
	text := "a/DT interest_1/NN b/NN $$ c/DT d/NN $$ interest_2/NN"

	t.Run("skip", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ex, err := New(model.DefaultConfig(), WithLogger(logger))
		if err != nil {
			t.Fatal(err)
		}
		res, err := ex.ExtractText(text)
		if err != nil {
			t.Fatalf("ExtractText failed: %v", err)
		}
		if len(res.Entries) != 2 || res.Skipped != 1 || res.Samples != 3 {
			t.Fatalf("unexpected counts: entries=%d skipped=%d samples=%d", len(res.Entries), res.Skipped, res.Samples)
		}
		if !strings.Contains(buf.String(), "skipping sample") {
			t.Fatalf("expected skip to be logged, got %q", buf.String())
		}
	})

	t.Run("missing", func(t *testing.T) {
		cfg := model.DefaultConfig()
		cfg.NotFound = model.PolicyMissing
		ex, err := New(cfg)
		if err != nil {
			t.Fatal(err)
		}
		res, err := ex.ExtractText(text)
		if err != nil {
			t.Fatalf("ExtractText failed: %v", err)
		}
		if len(res.Entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(res.Entries))
		}
		missing := res.Entries[1]
		if missing.HasMeaning {
			t.Fatalf("expected entry without meaning")
		}
		assertSlots(t, missing.Slots, "None", "None", "None", "None")
	})

	t.Run("fail", func(t *testing.T) {
		cfg := model.DefaultConfig()
		cfg.NotFound = model.PolicyFail
		ex, err := New(cfg)
		if err != nil {
			t.Fatal(err)
		}
		_, err = ex.ExtractText(text)
		if !errors.Is(err, ErrTargetNotFound) {
			t.Fatalf("expected ErrTargetNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), "sample 2") {
			t.Fatalf("expected sample index in error, got %v", err)
		}
	})
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Config)
		wantErr error
	}{
		{name: "odd window", mutate: func(c *model.Config) { c.Window = 3 }, wantErr: ErrInvalidWindow},
		{name: "zero window", mutate: func(c *model.Config) { c.Window = 0 }, wantErr: ErrInvalidWindow},
		{name: "no targets", mutate: func(c *model.Config) { c.TargetForms = nil }, wantErr: ErrNoTargets},
		{name: "bad policy", mutate: func(c *model.Config) { c.NotFound = "retry" }, wantErr: ErrUnknownPolicy},
		{name: "wider window", mutate: func(c *model.Config) { c.Window = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]model.NotFoundPolicy{
		"":          model.PolicySkip,
		"skip":      model.PolicySkip,
		" Missing ": model.PolicyMissing,
		"FAIL":      model.PolicyFail,
	} {
		got, err := ParsePolicy(in)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) failed: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePolicy(%q) = %q, want %q", in, got, want)
		}
	}
}

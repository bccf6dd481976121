package arff

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/sensearff/internal/model"
)

func word(text, cat string) model.Slot {
	return model.PresentSlot(model.Word{Text: text, Cat: cat})
}

func TestCellString(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{cell: Missing(), want: "?"},
		{cell: Number(3), want: "3"},
		{cell: Text("rate"), want: "'rate'"},
		{cell: Text("'s"), want: `'\'s'`},
		{cell: Text(`a\`), want: `'a\\'`},
		{cell: Text(`\'`), want: `'\\\''`},
		{cell: Text(""), want: "''"},
	}
	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.want {
			t.Fatalf("Cell.String() = %s, want %s", got, tt.want)
		}
	}
}

func TestBuildDomainsIgnoresMissing(t *testing.T) {
	entries := []model.Entry{
		{Meaning: 1, HasMeaning: true, Slots: []model.Slot{word("b", "NN"), word("a", "DT"), model.Missing(), model.Missing()}},
		{Meaning: 2, HasMeaning: true, Slots: []model.Slot{word("a", "DT"), model.Missing(), word("c", "NN"), model.Missing()}},
	}
	d := BuildDomains(entries, 4)
	if got := strings.Join(d.Words[0], ","); got != "a,b" {
		t.Fatalf("unexpected word0 domain: %s", got)
	}
	if got := strings.Join(d.Cats[0], ","); got != "DT,NN" {
		t.Fatalf("unexpected cat0 domain: %s", got)
	}
	if len(d.Words[3]) != 0 || len(d.Cats[3]) != 0 {
		t.Fatalf("expected empty slot 3 domains, got %v %v", d.Words[3], d.Cats[3])
	}
	sizes := d.Sizes()
	if len(sizes) != 8 {
		t.Fatalf("expected 8 domain sizes, got %d", len(sizes))
	}
	if sizes[4] != (model.DomainSize{Slot: 2, Kind: model.KindWord, Size: 1}) {
		t.Fatalf("unexpected size entry: %+v", sizes[4])
	}
}

func TestSenseDomain(t *testing.T) {
	entries := []model.Entry{
		{Meaning: 5, HasMeaning: true},
		{Meaning: 2, HasMeaning: true},
		{Meaning: 5, HasMeaning: true},
		{},
	}
	cfg := model.DefaultConfig()
	if got := SenseDomain(cfg, entries); len(got) != 6 || got[0] != 1 || got[5] != 6 {
		t.Fatalf("expected fixed 1..6 domain, got %v", got)
	}
	cfg.DeriveSenses = true
	got := SenseDomain(cfg, entries)
	if len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Fatalf("expected derived [2 5], got %v", got)
	}
}

func TestWrite(t *testing.T) {
	entries := []model.Entry{
		{Meaning: 1, HasMeaning: true, Slots: []model.Slot{word("b", "NN"), word("a", "DT"), word("c", "NN"), word("d", "NN")}},
		{Meaning: 2, HasMeaning: true, Slots: []model.Slot{word("cat", "NN"), model.Missing(), word("sat", "VB"), word("'s", "POS")}},
		{Slots: []model.Slot{model.Missing(), model.Missing(), model.Missing(), model.Missing()}},
	}
	var buf bytes.Buffer
	if err := Write(&buf, model.DefaultConfig(), entries); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := strings.Join([]string{
		"@relation interest",
		"",
		"@attribute meaning {1,2,3,4,5,6}",
		"@attribute word0 {'b','cat'}",
		"@attribute cat0 {'NN'}",
		"@attribute word1 {'a'}",
		"@attribute cat1 {'DT'}",
		"@attribute word2 {'c','sat'}",
		"@attribute cat2 {'NN','VB'}",
		`@attribute word3 {'\'s','d'}`,
		"@attribute cat3 {'NN','POS'}",
		"",
		"@data",
		"1,'b','NN','a','DT','c','NN','d','NN'",
		`2,'cat','NN',?,?,'sat','VB','\'s','POS'`,
		"?,?,?,?,?,?,?,?,?",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteMeaningDomainIsFixed(t *testing.T) {
	entries := []model.Entry{
		{Meaning: 9, HasMeaning: true, Slots: []model.Slot{model.Missing(), model.Missing(), model.Missing(), model.Missing()}},
	}
	var buf bytes.Buffer
	if err := Write(&buf, model.DefaultConfig(), entries); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "@attribute meaning {1,2,3,4,5,6}\n") {
		t.Fatalf("expected fixed meaning domain, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "@attribute word0 {}\n") {
		t.Fatalf("expected empty word0 domain, got:\n%s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWritePropagatesErrors(t *testing.T) {
	err := Write(failingWriter{}, model.DefaultConfig(), nil)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write error, got %v", err)
	}
}

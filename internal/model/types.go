// Package model defines shared data structures.
package model

import "time"

// Word is a token of the tagged corpus.
type Word struct {
	Text string
	Cat  string
}

func (w Word) String() string {
	return w.Text + "/" + w.Cat
}

// Sample is one corpus segment between separator markers.
type Sample []Word

// Slot holds a context word or the absence marker.
type Slot struct {
	Word    Word
	Present bool
}

// PresentSlot wraps a word as a filled context slot.
func PresentSlot(w Word) Slot {
	return Slot{Word: w, Present: true}
}

// Missing returns the absence marker.
func Missing() Slot {
	return Slot{}
}

func (s Slot) String() string {
	if !s.Present {
		return "None"
	}
	return s.Word.String()
}

// Entry is one output row: the sense label and its context slots.
type Entry struct {
	Meaning    int
	HasMeaning bool
	Slots      []Slot
}

// NotFoundPolicy decides what happens to samples without a target word.
type NotFoundPolicy string

const (
	PolicySkip    NotFoundPolicy = "skip"
	PolicyMissing NotFoundPolicy = "missing"
	PolicyFail    NotFoundPolicy = "fail"
)

// Config defines extraction and output settings.
type Config struct {
	CorpusPath   string
	StopListPath string
	Window       int
	StopWords    map[string]struct{}
	TargetForms  []string
	Senses       []int
	DeriveSenses bool
	Relation     string
	NotFound     NotFoundPolicy
}

// Defaults used when neither flags nor the config file set a value.
const (
	DefaultCorpusPath   = "interest.acl94.txt"
	DefaultStopListPath = "stoplist-english.txt"
	DefaultWindow       = 4
	DefaultRelation     = "interest"
)

// DefaultTargetForms are the surface forms of the target lemma.
func DefaultTargetForms() []string {
	return []string{"interest", "interests"}
}

// DefaultSenses is the declared sense domain.
func DefaultSenses() []int {
	return []int{1, 2, 3, 4, 5, 6}
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() Config {
	return Config{
		CorpusPath:   DefaultCorpusPath,
		StopListPath: DefaultStopListPath,
		Window:       DefaultWindow,
		StopWords:    map[string]struct{}{},
		TargetForms:  DefaultTargetForms(),
		Senses:       DefaultSenses(),
		Relation:     DefaultRelation,
		NotFound:     PolicySkip,
	}
}

// RunStats captures a completed conversion run.
type RunStats struct {
	StartedAt    time.Time
	EndedAt      time.Time
	CorpusPath   string
	StopListPath string
	Window       int
	Relation     string
	NotFound     string
	Samples      int
	Entries      int
	Skipped      int
	DurationMs   int64
}

// RunAggregate summarizes a recorded run for listing.
type RunAggregate struct {
	RunID      int64
	EndedAt    time.Time
	CorpusPath string
	Window     int
	Samples    int
	Entries    int
	Skipped    int
	DurationMs int64
}

// DomainSize is the number of distinct values observed for one attribute.
type DomainSize struct {
	Slot int
	Kind string
	Size int
}

// Domain kinds.
const (
	KindWord = "word"
	KindCat  = "cat"
)

// SenseCount is the number of entries labelled with a sense.
type SenseCount struct {
	Sense int
	Count int
}

// Package stats contains dataset summaries and plain-text reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/sensearff/internal/arff"
	"github.com/verte-zerg/sensearff/internal/extract"
	"github.com/verte-zerg/sensearff/internal/model"
)

const defaultTopWords = 3

// Report contains precomputed data for stats rendering.
type Report struct {
	Samples        int
	Entries        int
	Skipped        int
	Window         int
	MissingMeaning int
	SenseCounts    []model.SenseCount
	DomainSizes    []model.DomainSize
	MissingSlots   []int
	TopWords       [][]string
}

// BuildReport summarizes an extraction result and its domains.
func BuildReport(res extract.Result, domains arff.Domains) Report {
	window := len(domains.Words)
	r := Report{
		Samples:      res.Samples,
		Entries:      len(res.Entries),
		Skipped:      res.Skipped,
		Window:       window,
		DomainSizes:  domains.Sizes(),
		MissingSlots: make([]int, window),
		TopWords:     make([][]string, window),
	}
	senses := map[int]int{}
	wordCounts := make([]map[string]int, window)
	for i := range wordCounts {
		wordCounts[i] = map[string]int{}
	}
	for _, entry := range res.Entries {
		if entry.HasMeaning {
			senses[entry.Meaning]++
		} else {
			r.MissingMeaning++
		}
		for i, slot := range entry.Slots {
			if i >= window {
				break
			}
			if !slot.Present {
				r.MissingSlots[i]++
				continue
			}
			wordCounts[i][slot.Word.Text]++
		}
	}
	r.SenseCounts = senseCounts(senses)
	for i, counts := range wordCounts {
		r.TopWords[i] = TopValues(counts, defaultTopWords)
	}
	return r
}

// RunReport rebuilds a report from a recorded run. Per-slot missing counts
// and top words are not stored and stay empty.
func RunReport(run model.RunAggregate, sizes []model.DomainSize, senses []model.SenseCount) Report {
	return Report{
		Samples:     run.Samples,
		Entries:     run.Entries,
		Skipped:     run.Skipped,
		Window:      run.Window,
		SenseCounts: senses,
		DomainSizes: sizes,
	}
}

func senseCounts(senses map[int]int) []model.SenseCount {
	out := make([]model.SenseCount, 0, len(senses))
	for sense, count := range senses {
		out = append(out, model.SenseCount{Sense: sense, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Sense < out[j].Sense
	})
	return out
}

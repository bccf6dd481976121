package arff

import (
	"sort"

	"github.com/verte-zerg/sensearff/internal/model"
)

// Domains holds the sorted distinct values observed per context slot.
type Domains struct {
	Words [][]string
	Cats  [][]string
}

// BuildDomains collects per-slot word and category domains. Absent slots
// contribute nothing.
func BuildDomains(entries []model.Entry, window int) Domains {
	words := make([]map[string]struct{}, window)
	cats := make([]map[string]struct{}, window)
	for i := 0; i < window; i++ {
		words[i] = map[string]struct{}{}
		cats[i] = map[string]struct{}{}
	}
	for _, entry := range entries {
		for i, slot := range entry.Slots {
			if i >= window || !slot.Present {
				continue
			}
			words[i][slot.Word.Text] = struct{}{}
			cats[i][slot.Word.Cat] = struct{}{}
		}
	}
	d := Domains{
		Words: make([][]string, window),
		Cats:  make([][]string, window),
	}
	for i := 0; i < window; i++ {
		d.Words[i] = sortedKeys(words[i])
		d.Cats[i] = sortedKeys(cats[i])
	}
	return d
}

// Sizes lists the domain size of every word and category attribute.
func (d Domains) Sizes() []model.DomainSize {
	sizes := make([]model.DomainSize, 0, len(d.Words)+len(d.Cats))
	for i := range d.Words {
		sizes = append(sizes,
			model.DomainSize{Slot: i, Kind: model.KindWord, Size: len(d.Words[i])},
			model.DomainSize{Slot: i, Kind: model.KindCat, Size: len(d.Cats[i])},
		)
	}
	return sizes
}

// SenseDomain returns the declared meaning domain: the configured senses, or
// the sorted observed senses when cfg.DeriveSenses is set.
func SenseDomain(cfg model.Config, entries []model.Entry) []int {
	if !cfg.DeriveSenses {
		if len(cfg.Senses) == 0 {
			return model.DefaultSenses()
		}
		return append([]int(nil), cfg.Senses...)
	}
	seen := map[int]struct{}{}
	for _, e := range entries {
		if e.HasMeaning {
			seen[e.Meaning] = struct{}{}
		}
	}
	senses := make([]int, 0, len(seen))
	for s := range seen {
		senses = append(senses, s)
	}
	sort.Ints(senses)
	return senses
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

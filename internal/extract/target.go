// Package extract locates target words and collects their context windows.
package extract

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/sensearff/internal/model"
)

// Target is the result of a target lookup. Pos and Meaning are only
// meaningful when Found is true.
type Target struct {
	Pos     int
	Meaning int
	Found   bool
}

// FindTarget returns the first word whose text is one of forms followed by
// an underscore and a numeric sense id.
func FindTarget(sample model.Sample, forms []string) Target {
	for i, w := range sample {
		for _, form := range forms {
			if meaning, ok := senseOf(w.Text, form); ok {
				return Target{Pos: i, Meaning: meaning, Found: true}
			}
		}
	}
	return Target{}
}

func senseOf(text, form string) (int, bool) {
	rest, ok := strings.CutPrefix(text, form+"_")
	if !ok {
		return 0, false
	}
	label, _, _ := strings.Cut(rest, "_")
	meaning, err := strconv.Atoi(label)
	if err != nil {
		return 0, false
	}
	return meaning, true
}

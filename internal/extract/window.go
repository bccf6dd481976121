package extract

import (
	"github.com/verte-zerg/sensearff/internal/model"
	"github.com/verte-zerg/sensearff/internal/wordlist"
)

// Direction is the side of the target a context walk moves toward.
type Direction int

const (
	Before Direction = -1
	After  Direction = 1
)

// Context collects the k nearest kept words on one side of pos, closest
// first. Every step past the sample boundary yields an absence marker and
// uses up one slot, so the result always has exactly k slots.
func Context(sample model.Sample, pos int, dir Direction, k int, keep wordlist.FilterFunc) []model.Slot {
	if k <= 0 {
		return []model.Slot{}
	}
	if keep == nil {
		keep = wordlist.StopFilter(nil)
	}
	slots := make([]model.Slot, 0, k)
	for len(slots) < k {
		pos += int(dir)
		if pos < 0 || pos >= len(sample) {
			slots = append(slots, model.Missing())
			continue
		}
		if w := sample[pos]; keep(w.Text) {
			slots = append(slots, model.PresentSlot(w))
		}
	}
	return slots
}

// Window returns window/2 slots before pos followed by window/2 slots after.
func Window(sample model.Sample, pos, window int, keep wordlist.FilterFunc) []model.Slot {
	half := window / 2
	slots := Context(sample, pos, Before, half, keep)
	return append(slots, Context(sample, pos, After, half, keep)...)
}

// MissingWindow returns a window made only of absence markers.
func MissingWindow(window int) []model.Slot {
	slots := make([]model.Slot, window)
	for i := range slots {
		slots[i] = model.Missing()
	}
	return slots
}

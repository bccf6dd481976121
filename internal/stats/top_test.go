package stats

import "testing"

func TestTopValues(t *testing.T) {
	counts := map[string]int{"rate": 4, "of": 4, "the": 1, "bank": 2}
	top := TopValues(counts, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 values, got %d", len(top))
	}
	if top[0] != "of" || top[1] != "rate" || top[2] != "bank" {
		t.Fatalf("unexpected order: %v", top)
	}
	if got := TopValues(counts, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
}

package wordlist

import "testing"

func TestStopFilter(t *testing.T) {
	filter := StopFilter(NewSet([]string{"the", "on"}))
	if !filter("cat") {
		t.Fatalf("expected cat to pass stop filter")
	}
	for _, word := range []string{"the", "on"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
	if !filter("The") {
		t.Fatalf("expected stop matching to be case sensitive")
	}
}

func TestStopFilterEmptySet(t *testing.T) {
	filter := StopFilter(nil)
	if !filter("the") {
		t.Fatalf("expected empty stop set to keep every word")
	}
}

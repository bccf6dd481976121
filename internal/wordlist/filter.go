// Package wordlist provides word list filtering helpers.
package wordlist

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// StopFilter keeps every word that is not in the stop set.
func StopFilter(stop map[string]struct{}) FilterFunc {
	if len(stop) == 0 {
		return func(string) bool { return true }
	}
	return func(word string) bool {
		_, isStop := stop[word]
		return !isStop
	}
}

package stats

import "sort"

// TopValues returns the n most frequent values, ties broken alphabetically.
func TopValues(counts map[string]int, n int) []string {
	if n <= 0 || len(counts) == 0 {
		return nil
	}
	type item struct {
		value string
		total int
	}
	items := make([]item, 0, len(counts))
	for value, total := range counts {
		items = append(items, item{value: value, total: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].value < items[j].value
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].value)
	}
	return out
}

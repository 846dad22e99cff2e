package stats

import (
	"sort"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display limits for the derived views.
const (
	BubbleLimit        = 200
	BarLimit           = 20
	SunburstChildLimit = 10
)

// WindowByVersion keeps the records whose key is at most limit, in source
// order. Raising limit only ever adds records.
func WindowByVersion[T any, K constraints.Ordered](records []T, limit K, key func(T) K) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if key(r) <= limit {
			out = append(out, r)
		}
	}
	return out
}

// TopN returns the first n records after a stable descending sort by value.
// Equal values keep their source order. The input is not modified.
func TopN[T any, V constraints.Integer | constraints.Float](records []T, n int, value func(T) V) []T {
	sorted := make([]T, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return value(sorted[i]) > value(sorted[j])
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Filter returns the records accepted by keep, in source order.
func Filter[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FormatCount formats n with the thousands separator of the given locale.
func FormatCount(n int, tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

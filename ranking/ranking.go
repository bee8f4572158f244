// Package ranking orders players and teams for the leaderboard and dashboard
// and builds tournament standings.
package ranking

import (
	"cmp"
	"slices"
	"strings"
)

// Number is any numeric counter a derived average can be taken over.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// DerivedAverage is total/count, or 0 when count is not positive. Batting and
// bowling averages and win ratios all go through it.
func DerivedAverage[N Number](total, count N) float64 {
	if count > 0 {
		return float64(total) / float64(count)
	}
	return 0
}

// Metric projects an item to the value it is ranked by.
type Metric[T any] func(T) float64

// Field projects an item to one of its searchable text fields.
type Field[T any] func(T) string

// TopByMetric returns a copy of items sorted by metric, highest first. Equal
// values keep their input order. limit <= 0 returns everything.
func TopByMetric[T any](items []T, metric Metric[T], limit int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(metric(b), metric(a))
	})
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// FilterByText keeps the items where any of fields contains query, ignoring
// case. An empty query returns items as is.
func FilterByText[T any](items []T, query string, fields ...Field[T]) []T {
	if query == "" {
		return items
	}
	needle := strings.ToLower(query)
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(item)), needle) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

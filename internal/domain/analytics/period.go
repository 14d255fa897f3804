// Package analytics contains the dashboard aggregation engine: pure,
// deterministic transforms over already-fetched row sets. Nothing here
// touches the gateway; given identical input rows the output is
// reproducible byte for byte.
package analytics

import (
	"math"
	"time"
)

// StartOfMonth truncates t to midnight on the first day of its month,
// preserving the location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthsBack returns the start of the month count months before t.
// MonthsBack(t, 0) equals StartOfMonth(t).
func MonthsBack(t time.Time, count int) time.Time {
	return StartOfMonth(t).AddDate(0, -count, 0)
}

// roundPercent converts a ratio to a whole percentage, rounding half away
// from zero. The denominator guard lives with the callers.
func roundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

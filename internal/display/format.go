// Package display turns roll results into the text a viewer reads: the
// truncated totals listing, the statistics block, the chart title and the
// per-bin tooltip.
package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
)

// MaxListedTotals caps how many totals the listing shows
const MaxListedTotals = 250

// NotApplicable is shown for values that cannot be computed
const NotApplicable = "N/A"

// FormatTotals joins totals with ", ". Past limit only the first limit
// values are listed, followed by a count of the hidden ones.
func FormatTotals(totals rolls.Result, limit int) string {
	if limit < 1 {
		limit = MaxListedTotals
	}

	shown := totals
	if len(totals) > limit {
		shown = totals[:limit]
	}

	parts := make([]string, len(shown))
	for i, t := range shown {
		parts[i] = strconv.Itoa(t)
	}
	listing := strings.Join(parts, ", ")

	if len(totals) > limit {
		return fmt.Sprintf("%s, ...\n(%d more not shown)", listing, len(totals)-limit)
	}
	return listing
}

// FormatStats renders the six-line statistics block
func FormatStats(stats *rolls.SummaryStats) string {
	stdDev := NotApplicable
	if stats.StandardDeviation != nil {
		stdDev = fmt.Sprintf("%.2f", *stats.StandardDeviation)
	}

	lines := []string{
		fmt.Sprintf("Count: %d", stats.Count),
		fmt.Sprintf("Minimum: %d", stats.Minimum),
		fmt.Sprintf("Maximum: %d", stats.Maximum),
		fmt.Sprintf("Mean: %.2f", stats.Mean),
		fmt.Sprintf("Median: %.2f", stats.Median),
		fmt.Sprintf("Standard Deviation: %s", stdDev),
	}
	return strings.Join(lines, "\n")
}

// Chance describes how often a total came up as "1 in X"
func Chance(count, numRolls int) string {
	if count <= 0 {
		return NotApplicable
	}

	x := numRolls / count
	if x > 0 {
		return fmt.Sprintf("1 in %d", x)
	}
	return fmt.Sprintf("%d in %d", count, numRolls)
}

// Tooltip is the hover text for one histogram bar
func Tooltip(bin rolls.Bin, numRolls int) string {
	return fmt.Sprintf("Total: %d\nCount: %d\nChance: %s", bin.Total, bin.Count, Chance(bin.Count, numRolls))
}

// Title is the histogram heading
func Title(req rolls.Request) string {
	return fmt.Sprintf("Tally of %d Roll Totals (%dx%d d%d)", req.NumRolls, req.NumRolls, req.NumDice, req.Sides)
}

// Package rolls holds the dice simulation data types shared by the engine,
// the orchestrator, the repositories and every front end.
package rolls

import (
	"time"
)

// DefaultViewerID is used when a caller does not name its viewer
const DefaultViewerID = "default"

// Request asks for NumRolls trials of NumDice dice with Sides sides.
// All three fields are at least 1 once validated.
type Request struct {
	Sides    int `json:"sides" yaml:"sides"`
	NumDice  int `json:"num_dice" yaml:"num_dice"`
	NumRolls int `json:"num_rolls" yaml:"num_rolls"`
}

// MinTotal is the smallest possible roll total
func (r Request) MinTotal() int {
	return r.NumDice
}

// MaxTotal is the largest possible roll total
func (r Request) MaxTotal() int {
	return r.NumDice * r.Sides
}

// BinCount is the number of distinct totals in [MinTotal, MaxTotal]
func (r Request) BinCount() int {
	return r.MaxTotal() - r.MinTotal() + 1
}

// Result is the sequence of roll totals in generation order
type Result []int

// Bin is one bar of the histogram
type Bin struct {
	Total int `json:"total" yaml:"total"`
	Count int `json:"count" yaml:"count"`
}

// FrequencyTable counts every possible total, including those never rolled.
// Bins are ordered by Total ascending.
type FrequencyTable struct {
	NumRolls int   `json:"num_rolls" yaml:"num_rolls"`
	Bins     []Bin `json:"bins" yaml:"bins"`
}

// Bin returns the bin for total, or false when total is outside the table
func (f *FrequencyTable) Bin(total int) (Bin, bool) {
	if len(f.Bins) == 0 {
		return Bin{}, false
	}

	idx := total - f.Bins[0].Total
	if idx < 0 || idx >= len(f.Bins) {
		return Bin{}, false
	}
	return f.Bins[idx], true
}

// Range returns the lowest and highest totals covered by the table
func (f *FrequencyTable) Range() (lo, hi int) {
	if len(f.Bins) == 0 {
		return 0, 0
	}
	return f.Bins[0].Total, f.Bins[len(f.Bins)-1].Total
}

// MaxCount is the tallest bar, used to scale charts
func (f *FrequencyTable) MaxCount() int {
	maxCount := 0
	for _, b := range f.Bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	return maxCount
}

// SummaryStats describes a Result. Mean, Median and StandardDeviation are
// rounded to two decimals. StandardDeviation is nil when Count is 1.
type SummaryStats struct {
	Count             int      `json:"count" yaml:"count"`
	Minimum           int      `json:"minimum" yaml:"minimum"`
	Maximum           int      `json:"maximum" yaml:"maximum"`
	Mean              float64  `json:"mean" yaml:"mean"`
	Median            float64  `json:"median" yaml:"median"`
	StandardDeviation *float64 `json:"standard_deviation" yaml:"standard_deviation"`
}

// Display is everything a viewer currently sees. A new Display replaces the
// previous one for the same viewer.
type Display struct {
	ID        string          `json:"id" yaml:"id"`
	ViewerID  string          `json:"viewer_id" yaml:"viewer_id"`
	Request   Request         `json:"request" yaml:"request"`
	Totals    Result          `json:"totals" yaml:"-"`
	Listing   string          `json:"listing" yaml:"listing"`
	Stats     SummaryStats    `json:"stats" yaml:"stats"`
	StatsText string          `json:"stats_text" yaml:"-"`
	Histogram *FrequencyTable `json:"histogram" yaml:"histogram"`
	Title     string          `json:"title" yaml:"title"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	ExpiresAt time.Time       `json:"expires_at" yaml:"expires_at"`
}

package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
)

const (
	// DefaultWidth is used when the output is not a terminal
	DefaultWidth = 80

	minBarWidth = 10
	barGlyph    = "█"
	barColor    = "#a78bfa"
	peakColor   = "#f472b6"
	titleColor  = "#818cf8"
)

// HistogramConfig controls how a frequency table is drawn
type HistogramConfig struct {
	// Width is the total line width; values below 1 fall back to DefaultWidth
	Width int
	// Profile selects the colour depth; termenv.Ascii disables colour
	Profile termenv.Profile
}

// Histogram draws a horizontal bar chart, one row per total
type Histogram struct {
	width   int
	profile termenv.Profile
}

// NewHistogram creates a renderer
func NewHistogram(cfg HistogramConfig) *Histogram {
	width := cfg.Width
	if width < 1 {
		width = DefaultWidth
	}
	return &Histogram{
		width:   width,
		profile: cfg.Profile,
	}
}

// TerminalWidth reports the width of the terminal on fd, or DefaultWidth
func TerminalWidth(fd uintptr) int {
	if !term.IsTerminal(int(fd)) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(fd))
	if err != nil || w < 1 {
		return DefaultWidth
	}
	return w
}

// Render writes the title followed by one row per bin:
// total | bar count chance
func (h *Histogram) Render(w io.Writer, title string, table *rolls.FrequencyTable) error {
	if table == nil || len(table.Bins) == 0 {
		_, err := fmt.Fprintln(w, h.profile.String(title).Foreground(h.profile.Color(titleColor)).Bold())
		return err
	}

	lo, hi := table.Range()
	labelWidth := max(len(strconv.Itoa(lo)), len(strconv.Itoa(hi)))
	maxCount := table.MaxCount()
	countWidth := len(strconv.Itoa(maxCount))

	chances := make([]string, len(table.Bins))
	chanceWidth := 0
	for i, b := range table.Bins {
		chances[i] = Chance(b.Count, table.NumRolls)
		chanceWidth = max(chanceWidth, len(chances[i]))
	}

	// label + " | " + bar + " " + count + "  " + chance
	barWidth := h.width - labelWidth - 3 - 1 - countWidth - 2 - chanceWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	var sb strings.Builder
	sb.WriteString(h.profile.String(title).Foreground(h.profile.Color(titleColor)).Bold().String())
	sb.WriteString("\n")

	for i, b := range table.Bins {
		filled := barLength(b.Count, maxCount, barWidth)
		color := barColor
		if b.Count == maxCount && maxCount > 0 {
			color = peakColor
		}
		bar := h.profile.String(strings.Repeat(barGlyph, filled)).Foreground(h.profile.Color(color)).String()

		fmt.Fprintf(&sb, "%*d | %s%s %*d  %s\n",
			labelWidth, b.Total,
			bar, strings.Repeat(" ", barWidth-filled),
			countWidth, b.Count,
			chances[i])
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// barLength scales count against maxCount. A non-zero count always gets at
// least one cell.
func barLength(count, maxCount, width int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	n := count * width / maxCount
	if n == 0 {
		return 1
	}
	return n
}

package display_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dice-roller/internal/display"
	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
)

func TestHistogramRender(t *testing.T) {
	h := display.NewHistogram(display.HistogramConfig{Width: 40, Profile: termenv.Ascii})
	table := &rolls.FrequencyTable{
		NumRolls: 4,
		Bins: []rolls.Bin{
			{Total: 1, Count: 1},
			{Total: 2, Count: 3},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, "Tally of 4 Roll Totals (4x1 d2)", table))

	// 40 - label(1) - " | "(3) - " "(1) - count(1) - "  "(2) - chance(6) = 26
	expected := strings.Join([]string{
		"Tally of 4 Roll Totals (4x1 d2)",
		"1 | " + strings.Repeat("█", 8) + strings.Repeat(" ", 18) + " 1  1 in 4",
		"2 | " + strings.Repeat("█", 26) + " 3  1 in 1",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestHistogramRenderZeroBin(t *testing.T) {
	h := display.NewHistogram(display.HistogramConfig{Width: 60, Profile: termenv.Ascii})
	table := &rolls.FrequencyTable{
		NumRolls: 2,
		Bins: []rolls.Bin{
			{Total: 2, Count: 0},
			{Total: 3, Count: 2},
			{Total: 4, Count: 0},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, "title", table))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.NotContains(t, lines[1], "█")
	assert.True(t, strings.HasSuffix(lines[1], "0  N/A"))
	assert.Contains(t, lines[2], "█")
}

func TestHistogramRenderEmptyTable(t *testing.T) {
	h := display.NewHistogram(display.HistogramConfig{Profile: termenv.Ascii})

	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, "nothing rolled", &rolls.FrequencyTable{}))
	assert.Equal(t, "nothing rolled\n", buf.String())
}

func TestHistogramNarrowWidthKeepsMinimumBar(t *testing.T) {
	h := display.NewHistogram(display.HistogramConfig{Width: 5, Profile: termenv.Ascii})
	table := &rolls.FrequencyTable{NumRolls: 1, Bins: []rolls.Bin{{Total: 1, Count: 1}}}

	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, "t", table))
	assert.Contains(t, buf.String(), strings.Repeat("█", 10))
}

func TestTerminalWidthNotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, display.DefaultWidth, display.TerminalWidth(f.Fd()))
}

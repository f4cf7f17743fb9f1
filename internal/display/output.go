package display

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
)

// Output formats understood by Writer
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// OutputFormats lists every supported format, in flag help order
var OutputFormats = []string{OutputText, OutputJSON, OutputYAML}

// WriterConfig configures a Writer
type WriterConfig struct {
	// Format is one of OutputFormats
	Format string
	// Width is passed to the histogram renderer
	Width int
	// Profile is the colour profile for text output
	Profile termenv.Profile
}

// Writer prints displays for a terminal or for other programs
type Writer struct {
	format    string
	histogram *Histogram
}

// BinOutput is the encoded form of one inspected histogram bar
type BinOutput struct {
	Total    int    `json:"total" yaml:"total"`
	Count    int    `json:"count" yaml:"count"`
	NumRolls int    `json:"num_rolls" yaml:"num_rolls"`
	Tooltip  string `json:"tooltip" yaml:"tooltip"`
}

// NewWriter validates the format and builds a Writer
func NewWriter(cfg WriterConfig) (*Writer, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("output", cfg.Format, OutputFormats, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return &Writer{
		format:    cfg.Format,
		histogram: NewHistogram(HistogramConfig{Width: cfg.Width, Profile: cfg.Profile}),
	}, nil
}

// Write prints d in the configured format
func (o *Writer) Write(w io.Writer, d *rolls.Display) error {
	if d == nil {
		return errors.InvalidArgument("display is required")
	}

	if o.format == OutputText {
		return o.writeText(w, d)
	}
	return o.encode(w, d)
}

// WriteBin prints the tooltip for one histogram bar
func (o *Writer) WriteBin(w io.Writer, bin BinOutput) error {
	if o.format == OutputText {
		if _, err := fmt.Fprintln(w, bin.Tooltip); err != nil {
			return errors.Wrap(err, "failed to write bin")
		}
		return nil
	}
	return o.encode(w, bin)
}

func (o *Writer) writeText(w io.Writer, d *rolls.Display) error {
	if _, err := fmt.Fprintf(w, "Roll Totals:\n%s\n\n%s\n\n", d.Listing, d.StatsText); err != nil {
		return errors.Wrap(err, "failed to write display")
	}
	return o.histogram.Render(w, d.Title, d.Histogram)
}

func (o *Writer) encode(w io.Writer, v interface{}) error {
	switch o.format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to encode json")
		}
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
	}
	return nil
}

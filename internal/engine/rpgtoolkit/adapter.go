// Package rpgtoolkit provides the concrete implementation of the engine interface using rpg-toolkit modules.
package rpgtoolkit

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dice-roller/internal/engine"
	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
)

// cancelCheckInterval is how many trials run between context checks
const cancelCheckInterval = 4096

// Adapter implements the engine.Engine interface using rpg-toolkit
type Adapter struct {
	eventBus   events.EventBus
	diceRoller dice.Roller
}

// AdapterConfig contains configuration for creating a new Adapter
type AdapterConfig struct {
	EventBus   events.EventBus
	DiceRoller dice.Roller
}

// Validate checks that all required dependencies are provided
func (c *AdapterConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}

	return vb.Build()
}

// NewAdapter creates a new rpg-toolkit engine adapter
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Adapter{
		eventBus:   cfg.EventBus,
		diceRoller: cfg.DiceRoller,
	}, nil
}

// Verify that Adapter implements engine.Engine interface
var _ engine.Engine = (*Adapter)(nil)

// ValidateRequest rejects any field below 1 with InvalidInput. Requests
// whose maximum total does not fit in an int are InvalidInput as well.
// Requests above the engine ceilings are InvalidArgument.
func ValidateRequest(req rolls.Request) error {
	var fields []string
	if req.Sides < 1 {
		fields = append(fields, "sides")
	}
	if req.NumDice < 1 {
		fields = append(fields, "num_dice")
	}
	if req.NumRolls < 1 {
		fields = append(fields, "num_rolls")
	}
	if len(fields) > 0 {
		return errors.InvalidInput(fields...)
	}

	if !totalsFit(req) {
		return errors.InvalidInput("num_dice", "sides")
	}

	switch {
	case req.NumDice > engine.MaxDice:
		return errors.InvalidArgumentf("num_dice must be at most %d", engine.MaxDice).
			WithMeta("fields", []string{"num_dice"})
	case req.NumRolls > engine.MaxRolls:
		return errors.InvalidArgumentf("num_rolls must be at most %d", engine.MaxRolls).
			WithMeta("fields", []string{"num_rolls"})
	case req.BinCount() > engine.MaxBins:
		return errors.InvalidArgumentf("at most %d distinct totals are supported, %dd%d has %d",
			engine.MaxBins, req.NumDice, req.Sides, req.BinCount()).
			WithMeta("fields", []string{"num_dice", "sides"})
	}

	return nil
}

// totalsFit reports whether NumDice*Sides is representable
func totalsFit(req rolls.Request) bool {
	return req.Sides >= 1 && req.NumDice >= 1 && req.NumDice <= math.MaxInt/req.Sides
}

// Simulate rolls NumDice dice NumRolls times and returns each trial's total
func (a *Adapter) Simulate(ctx context.Context, input *engine.SimulateInput) (*engine.SimulateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	req := input.Request
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	result := make(rolls.Result, req.NumRolls)
	for i := range result {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Canceled("simulation canceled").WithMeta("completed_rolls", i)
			}
		}

		faces, err := a.diceRoller.RollN(req.NumDice, req.Sides)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll %dd%d", req.NumDice, req.Sides)
		}

		total := 0
		for _, face := range faces {
			total += face
		}
		result[i] = total
	}

	a.publishCompleted(ctx, input)

	return &engine.SimulateOutput{
		Result: result,
	}, nil
}

// publishCompleted announces a finished simulation. Subscriber failures are
// logged and never fail the roll.
func (a *Adapter) publishCompleted(ctx context.Context, input *engine.SimulateInput) {
	evt := events.NewGameEvent(engine.EventSimulationCompleted, rolls.NewViewer(input.ViewerID), nil)
	evt.Context().Set(engine.EventKeySides, input.Request.Sides)
	evt.Context().Set(engine.EventKeyNumDice, input.Request.NumDice)
	evt.Context().Set(engine.EventKeyNumRolls, input.Request.NumRolls)

	if err := a.eventBus.Publish(ctx, evt); err != nil {
		slog.Warn("Failed to publish simulation event",
			"viewer_id", input.ViewerID,
			"error", err,
		)
	}
}

// Tally counts occurrences of every total in [numDice, numDice*sides].
// A range larger than engine.MaxBins yields a table without bins.
func (a *Adapter) Tally(result rolls.Result, numDice, sides int) *rolls.FrequencyTable {
	table := &rolls.FrequencyTable{
		NumRolls: len(result),
	}

	req := rolls.Request{Sides: sides, NumDice: numDice}
	if !totalsFit(req) || req.BinCount() > engine.MaxBins {
		return table
	}

	lo, hi := req.MinTotal(), req.MaxTotal()
	table.Bins = make([]rolls.Bin, req.BinCount())
	for i := range table.Bins {
		table.Bins[i].Total = lo + i
	}

	for _, total := range result {
		if total < lo || total > hi {
			continue
		}
		table.Bins[total-lo].Count++
	}

	return table
}

// Summarize derives the summary statistics of a result
func (a *Adapter) Summarize(result rolls.Result) (*rolls.SummaryStats, error) {
	if len(result) == 0 {
		return nil, errors.InvalidArgument("cannot summarize an empty result")
	}

	sorted := slices.Clone(result)
	slices.Sort(sorted)

	n := len(sorted)
	sum := 0
	for _, v := range sorted {
		sum += v
	}
	mean := float64(sum) / float64(n)

	var median float64
	if n%2 == 1 {
		median = float64(sorted[n/2])
	} else {
		median = float64(sorted[n/2-1]+sorted[n/2]) / 2
	}

	stats := &rolls.SummaryStats{
		Count:   n,
		Minimum: sorted[0],
		Maximum: sorted[n-1],
		Mean:    round2(mean),
		Median:  round2(median),
	}

	if n > 1 {
		var squares float64
		for _, v := range sorted {
			d := float64(v) - mean
			squares += d * d
		}
		stdDev := round2(math.Sqrt(squares / float64(n-1)))
		stats.StandardDeviation = &stdDev
	}

	return stats, nil
}

// round2 rounds to two decimals the same way "%.2f" prints, so the stored
// value and its displayed text always agree.
func round2(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

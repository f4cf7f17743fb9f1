// Package engine defines the dice simulation engine
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/dice-roller/internal/engine Engine

import (
	"context"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
)

// Engine rolls dice and derives the histogram and statistics from the totals
type Engine interface {
	// Simulate runs NumRolls trials of NumDice dice and returns the totals in order
	Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error)

	// Tally counts every total in [numDice, numDice*sides], zero counts included
	Tally(result rolls.Result, numDice, sides int) *rolls.FrequencyTable

	// Summarize computes count, extremes, mean, median and sample standard deviation
	Summarize(result rolls.Result) (*rolls.SummaryStats, error)
}

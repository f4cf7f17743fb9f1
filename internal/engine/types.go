package engine

import (
	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
)

// EventSimulationCompleted is published on the event bus after every successful Simulate
const EventSimulationCompleted = "dice.simulation.completed"

// Keys set on the event context of EventSimulationCompleted
const (
	EventKeySides    = "sides"
	EventKeyNumDice  = "num_dice"
	EventKeyNumRolls = "num_rolls"
)

// SimulateInput contains the validated request and the viewer it is for
type SimulateInput struct {
	ViewerID string
	Request  rolls.Request
}

// SimulateOutput contains the roll totals in generation order
type SimulateOutput struct {
	Result rolls.Result
}

// Ceilings enforced by every engine whatever the configured limits are.
// A request above one is rejected with InvalidArgument before any memory
// is allocated for it.
const (
	MaxDice  = 1 << 20
	MaxRolls = 1 << 24
	MaxBins  = 1 << 20
)

package dice

import (
	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
)

// RollInput holds the raw form values. Each field must parse to an integer
// of at least 1 after surrounding whitespace is trimmed.
type RollInput struct {
	ViewerID string
	Sides    string
	NumDice  string
	NumRolls string
}

// RollOutput contains the display that replaced the viewer's previous one
type RollOutput struct {
	Display *rolls.Display
}

// GetDisplayInput defines the request for a viewer's current display
type GetDisplayInput struct {
	ViewerID string
}

// GetDisplayOutput contains the viewer's current display
type GetDisplayOutput struct {
	Display *rolls.Display
}

// ClearDisplayInput defines the request for clearing a viewer's display
type ClearDisplayInput struct {
	ViewerID string
}

// ClearDisplayOutput reports whether a display was removed
type ClearDisplayOutput struct {
	Cleared bool
}

// InspectBinInput asks for the tooltip of one histogram bar
type InspectBinInput struct {
	ViewerID string
	Total    int
}

// InspectBinOutput contains the bar and its tooltip text
type InspectBinOutput struct {
	Bin      rolls.Bin
	NumRolls int
	Tooltip  string
}

// Limits caps each request field. Zero means no cap.
type Limits struct {
	MaxSides int
	MaxDice  int
	MaxRolls int
}

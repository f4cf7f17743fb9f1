// Package display stores the current Display of each viewer. A viewer has at
// most one Display; saving a new one replaces the old.
package display

import (
	"context"
	"time"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=displaymock github.com/KirkDiggler/dice-roller/internal/repositories/display Repository

// DefaultTTL applies when SaveInput.TTL is zero
const DefaultTTL = 15 * time.Minute

const (
	errDisplayNil     = "display cannot be nil"
	errViewerIDEmpty  = "viewer ID cannot be empty"
	errDisplayMissing = "no display for viewer %s"
	errDisplayExpired = "display for viewer %s has expired"
)

// SaveInput contains parameters for saving a display
type SaveInput struct {
	Display *rolls.Display
	TTL     time.Duration
}

// SaveOutput contains the stored display with its timestamps filled in
type SaveOutput struct {
	Display *rolls.Display
}

// GetInput contains parameters for retrieving a display
type GetInput struct {
	ViewerID string
}

// GetOutput contains the result of retrieving a display
type GetOutput struct {
	Display *rolls.Display
}

// DeleteInput contains parameters for clearing a display
type DeleteInput struct {
	ViewerID string
}

// DeleteOutput reports whether there was anything to clear
type DeleteOutput struct {
	Deleted bool
}

// Repository defines the interface for display storage operations
type Repository interface {
	// Save stores the display for its viewer, replacing any previous one
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves the current display of a viewer
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete clears the display of a viewer
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

package rolls

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Viewer identifies the consumer of a display on rpg-toolkit events
type Viewer struct {
	ID string
}

// NewViewer wraps a viewer ID, defaulting an empty ID to DefaultViewerID
func NewViewer(id string) *Viewer {
	if id == "" {
		id = DefaultViewerID
	}
	return &Viewer{ID: id}
}

// GetID returns the viewer ID
func (v *Viewer) GetID() string {
	return v.ID
}

// GetType returns the entity type for rpg-toolkit
func (v *Viewer) GetType() string {
	return "viewer"
}

var _ core.Entity = (*Viewer)(nil)

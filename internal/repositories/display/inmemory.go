package display

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
)

// InMemoryConfig holds the configuration for the in-memory repository
type InMemoryConfig struct {
	Clock clock.Clock
}

type inMemoryRepository struct {
	mu       sync.RWMutex
	clock    clock.Clock
	displays map[string]*rolls.Display
}

// NewInMemoryRepository creates a repository that keeps displays in process.
// A nil config or clock uses the system clock.
func NewInMemoryRepository(cfg *InMemoryConfig) Repository {
	var c clock.Clock
	if cfg != nil {
		c = cfg.Clock
	}
	if c == nil {
		c = clock.New()
	}

	return &inMemoryRepository{
		clock:    c,
		displays: make(map[string]*rolls.Display),
	}
}

var _ Repository = (*inMemoryRepository)(nil)

func (r *inMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Display == nil {
		return nil, errors.InvalidArgument(errDisplayNil)
	}
	if input.Display.ViewerID == "" {
		return nil, errors.InvalidArgument(errViewerIDEmpty)
	}

	stored := stamp(input.Display, r.clock.Now(), input.TTL)

	r.mu.Lock()
	r.displays[stored.ViewerID] = stored
	r.mu.Unlock()

	out := *stored
	return &SaveOutput{Display: &out}, nil
}

func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ViewerID == "" {
		return nil, errors.InvalidArgument(errViewerIDEmpty)
	}

	r.mu.RLock()
	d, ok := r.displays[input.ViewerID]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.NotFoundf(errDisplayMissing, input.ViewerID)
	}

	if r.clock.Now().After(d.ExpiresAt) {
		r.mu.Lock()
		// a newer display may have been saved since the read
		if cur, ok := r.displays[input.ViewerID]; ok && cur == d {
			delete(r.displays, input.ViewerID)
		}
		r.mu.Unlock()
		return nil, errors.NotFoundf(errDisplayExpired, input.ViewerID)
	}

	out := *d
	return &GetOutput{Display: &out}, nil
}

func (r *inMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ViewerID == "" {
		return nil, errors.InvalidArgument(errViewerIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.displays[input.ViewerID]
	delete(r.displays, input.ViewerID)

	return &DeleteOutput{Deleted: ok}, nil
}

// stamp copies d and sets its creation and expiry times
func stamp(d *rolls.Display, now time.Time, ttl time.Duration) *rolls.Display {
	out := *d
	out.CreatedAt = now
	out.ExpiresAt = now.Add(ttlOrDefault(ttl))
	return &out
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

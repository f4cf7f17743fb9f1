package display

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/dice-roller/internal/redis"
)

// Key pattern: display:{viewer_id}
const displayKeyPrefix = "display:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for displays
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores the display with the given TTL
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Display == nil {
		return nil, errors.InvalidArgument(errDisplayNil)
	}
	if input.Display.ViewerID == "" {
		return nil, errors.InvalidArgument(errViewerIDEmpty)
	}

	stored := stamp(input.Display, r.clock.Now(), input.TTL)

	displayJSON, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal display")
	}

	key := buildKey(stored.ViewerID)
	if err := r.client.Set(ctx, key, displayJSON, ttlOrDefault(input.TTL)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store display in Redis")
	}

	return &SaveOutput{Display: stored}, nil
}

// Get retrieves the display of a viewer
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ViewerID == "" {
		return nil, errors.InvalidArgument(errViewerIDEmpty)
	}

	key := buildKey(input.ViewerID)

	displayJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf(errDisplayMissing, input.ViewerID)
		}
		return nil, errors.Wrapf(err, "failed to get display from Redis")
	}

	var d rolls.Display
	if err := json.Unmarshal([]byte(displayJSON), &d); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal display")
	}

	if r.clock.Now().After(d.ExpiresAt) {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			slog.Warn("Failed to remove expired display", "viewer_id", input.ViewerID, "error", err)
		}
		return nil, errors.NotFoundf(errDisplayExpired, input.ViewerID)
	}

	return &GetOutput{Display: &d}, nil
}

// Delete clears the display of a viewer
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ViewerID == "" {
		return nil, errors.InvalidArgument(errViewerIDEmpty)
	}

	removed, err := r.client.Del(ctx, buildKey(input.ViewerID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete display from Redis")
	}

	return &DeleteOutput{Deleted: removed > 0}, nil
}

func buildKey(viewerID string) string {
	return displayKeyPrefix + viewerID
}

package main

import (
	"context"
	"log/slog"
	"time"

	rpgdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dice-roller/internal/config"
	"github.com/KirkDiggler/dice-roller/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/metrics"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/dice"
	"github.com/KirkDiggler/dice-roller/internal/pkg/clock"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
	"github.com/KirkDiggler/dice-roller/internal/pkg/random"
	redisclient "github.com/KirkDiggler/dice-roller/internal/redis"
	displayrepo "github.com/KirkDiggler/dice-roller/internal/repositories/display"
)

const redisPingTimeout = 5 * time.Second

// appConfig selects how the roll service is assembled
type appConfig struct {
	Config config.Config
	// Seed fixes the dice sequence when set
	Seed *int64
	// Metrics subscribes a prometheus collector to the event bus
	Metrics bool
}

// app holds the wired roll service and everything that must be released
type app struct {
	rollService dice.Service
	metrics     *metrics.Collector
	closers     []func() error
}

func newApp(ctx context.Context, cfg appConfig) (*app, error) {
	a := &app{}
	bus := events.NewBus()

	var roller rpgdice.Roller = rpgdice.DefaultRoller
	if cfg.Seed != nil {
		roller = random.NewSeededRoller(*cfg.Seed)
		slog.Debug("Using seeded roller", "seed", *cfg.Seed)
	}

	adapter, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		EventBus:   bus,
		DiceRoller: roller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create engine")
	}

	repo, err := a.newDisplayRepository(ctx, cfg.Config.Storage)
	if err != nil {
		a.close()
		return nil, err
	}

	if cfg.Metrics {
		collector, err := metrics.New(&metrics.Config{EventBus: bus})
		if err != nil {
			a.close()
			return nil, errors.Wrap(err, "failed to create metrics collector")
		}
		a.metrics = collector
		a.closers = append(a.closers, collector.Close)
	}

	a.rollService, err = dice.NewOrchestrator(&dice.Config{
		Engine:      adapter,
		DisplayRepo: repo,
		IDGenerator: idgen.NewUUID("display"),
		EventBus:    bus,
		Limits: dice.Limits{
			MaxSides: cfg.Config.Limits.MaxSides,
			MaxDice:  cfg.Config.Limits.MaxDice,
			MaxRolls: cfg.Config.Limits.MaxRolls,
		},
		DisplayTTL: cfg.Config.Storage.DisplayTTL,
	})
	if err != nil {
		a.close()
		return nil, errors.Wrap(err, "failed to create roll orchestrator")
	}

	return a, nil
}

func (a *app) newDisplayRepository(ctx context.Context, cfg config.StorageConfig) (displayrepo.Repository, error) {
	if cfg.Backend != config.BackendRedis {
		return displayrepo.NewInMemoryRepository(&displayrepo.InMemoryConfig{Clock: clock.New()}), nil
	}

	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}
	a.closers = append(a.closers, client.Close)

	if err := redisclient.Ping(ctx, client, redisPingTimeout); err != nil {
		return nil, errors.Wrapf(err, "failed to reach redis at %s", cfg.RedisAddr)
	}

	repo, err := displayrepo.NewRedisRepository(&displayrepo.Config{
		Client: client,
		Clock:  clock.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create display repository")
	}

	slog.Info("Using redis display repository", "addr", cfg.RedisAddr)
	return repo, nil
}

// close releases resources in reverse order of acquisition
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Failed to release resource", "error", err)
		}
	}
	a.closers = nil
}

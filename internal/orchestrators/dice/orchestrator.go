// Package dice implements the roll orchestrator: it parses the viewer's
// input, runs the simulation and keeps the viewer's display up to date.
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/dice-roller/internal/orchestrators/dice Service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/dice-roller/internal/display"
	"github.com/KirkDiggler/dice-roller/internal/engine"
	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/pkg/idgen"
	displayrepo "github.com/KirkDiggler/dice-roller/internal/repositories/display"
)

const (
	// EventInputRejected is published whenever a roll request is rejected
	EventInputRejected = "dice.input.rejected"

	// EventKeyFields lists the rejected fields on EventInputRejected
	EventKeyFields = "fields"

	fieldSides    = "sides"
	fieldNumDice  = "num_dice"
	fieldNumRolls = "num_rolls"
)

// Service defines the interface for roll operations
type Service interface {
	// Roll simulates the request and replaces the viewer's display.
	// Invalid input clears the display instead.
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	GetDisplay(ctx context.Context, input *GetDisplayInput) (*GetDisplayOutput, error)
	ClearDisplay(ctx context.Context, input *ClearDisplayInput) (*ClearDisplayOutput, error)

	// InspectBin returns the tooltip for one bar of the viewer's histogram
	InspectBin(ctx context.Context, input *InspectBinInput) (*InspectBinOutput, error)
}

// Config holds the dependencies for the roll orchestrator
type Config struct {
	Engine      engine.Engine
	DisplayRepo displayrepo.Repository
	IDGenerator idgen.Generator
	EventBus    events.EventBus
	Limits      Limits
	DisplayTTL  time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.DisplayRepo == nil {
		vb.RequiredField("DisplayRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	errors.ValidateMin("Limits.MaxSides", c.Limits.MaxSides, 0, vb)
	errors.ValidateMin("Limits.MaxDice", c.Limits.MaxDice, 0, vb)
	errors.ValidateMin("Limits.MaxRolls", c.Limits.MaxRolls, 0, vb)
	if c.DisplayTTL < 0 {
		vb.Field("DisplayTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	engine      engine.Engine
	displayRepo displayrepo.Repository
	idGen       idgen.Generator
	eventBus    events.EventBus
	limits      Limits
	displayTTL  time.Duration
}

// NewOrchestrator creates a new roll orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:      cfg.Engine,
		displayRepo: cfg.DisplayRepo,
		idGen:       cfg.IDGenerator,
		eventBus:    cfg.EventBus,
		limits:      cfg.Limits,
		displayTTL:  cfg.DisplayTTL,
	}, nil
}

// Roll parses the input, simulates it and saves the resulting display
func (o *orchestrator) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	viewerID := viewerOrDefault(input.ViewerID)

	req, err := parseRequest(input)
	if err == nil {
		err = o.checkLimits(req)
	}
	if err != nil {
		o.reject(ctx, viewerID, err)
		return nil, err
	}

	simOutput, err := o.engine.Simulate(ctx, &engine.SimulateInput{
		ViewerID: viewerID,
		Request:  req,
	})
	if err != nil {
		// bad input and engine ceilings both reject the request
		if errors.IsInvalidArgument(err) {
			o.reject(ctx, viewerID, err)
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to simulate %dx%dd%d", req.NumRolls, req.NumDice, req.Sides)
	}

	table := o.engine.Tally(simOutput.Result, req.NumDice, req.Sides)

	stats, err := o.engine.Summarize(simOutput.Result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize rolls")
	}

	saved, err := o.displayRepo.Save(ctx, displayrepo.SaveInput{
		Display: &rolls.Display{
			ID:        o.idGen.Generate(),
			ViewerID:  viewerID,
			Request:   req,
			Totals:    simOutput.Result,
			Listing:   display.FormatTotals(simOutput.Result, display.MaxListedTotals),
			Stats:     *stats,
			StatsText: display.FormatStats(stats),
			Histogram: table,
			Title:     display.Title(req),
		},
		TTL: o.displayTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save display")
	}

	slog.Info("Dice rolled",
		"viewer_id", viewerID,
		"display_id", saved.Display.ID,
		"sides", req.Sides,
		"num_dice", req.NumDice,
		"num_rolls", req.NumRolls,
		"mean", stats.Mean)

	return &RollOutput{Display: saved.Display}, nil
}

// GetDisplay returns the viewer's current display
func (o *orchestrator) GetDisplay(ctx context.Context, input *GetDisplayInput) (*GetDisplayOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.displayRepo.Get(ctx, displayrepo.GetInput{ViewerID: viewerOrDefault(input.ViewerID)})
	if err != nil {
		return nil, err
	}

	return &GetDisplayOutput{Display: out.Display}, nil
}

// ClearDisplay removes the viewer's display
func (o *orchestrator) ClearDisplay(ctx context.Context, input *ClearDisplayInput) (*ClearDisplayOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	viewerID := viewerOrDefault(input.ViewerID)

	out, err := o.displayRepo.Delete(ctx, displayrepo.DeleteInput{ViewerID: viewerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear display")
	}

	slog.Debug("Display cleared", "viewer_id", viewerID, "cleared", out.Deleted)

	return &ClearDisplayOutput{Cleared: out.Deleted}, nil
}

// InspectBin looks up one bar of the viewer's histogram
func (o *orchestrator) InspectBin(ctx context.Context, input *InspectBinInput) (*InspectBinOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.displayRepo.Get(ctx, displayrepo.GetInput{ViewerID: viewerOrDefault(input.ViewerID)})
	if err != nil {
		return nil, err
	}

	table := out.Display.Histogram
	if table == nil {
		return nil, errors.NotFoundf("display %s has no histogram", out.Display.ID)
	}

	bin, ok := table.Bin(input.Total)
	if !ok {
		lo, hi := table.Range()
		return nil, errors.OutOfRangef("total %d is outside %d..%d", input.Total, lo, hi)
	}

	return &InspectBinOutput{
		Bin:      bin,
		NumRolls: table.NumRolls,
		Tooltip:  display.Tooltip(bin, table.NumRolls),
	}, nil
}

// reject clears the viewer's display and announces the rejection.
// Neither step can change the error returned to the caller.
func (o *orchestrator) reject(ctx context.Context, viewerID string, cause error) {
	if _, err := o.displayRepo.Delete(ctx, displayrepo.DeleteInput{ViewerID: viewerID}); err != nil {
		slog.Warn("Failed to clear display after invalid input", "viewer_id", viewerID, "error", err)
	}

	fields, _ := errors.GetMeta(cause)[EventKeyFields].([]string)

	evt := events.NewGameEvent(EventInputRejected, rolls.NewViewer(viewerID), nil)
	evt.Context().Set(EventKeyFields, fields)
	if err := o.eventBus.Publish(ctx, evt); err != nil {
		slog.Warn("Failed to publish rejection event", "viewer_id", viewerID, "error", err)
	}

	slog.Info("Roll input rejected", "viewer_id", viewerID, "fields", fields)
}

func (o *orchestrator) checkLimits(req rolls.Request) error {
	type limit struct {
		field string
		value int
		max   int
	}
	for _, l := range []limit{
		{fieldSides, req.Sides, o.limits.MaxSides},
		{fieldNumDice, req.NumDice, o.limits.MaxDice},
		{fieldNumRolls, req.NumRolls, o.limits.MaxRolls},
	} {
		if l.max > 0 && l.value > l.max {
			return errors.InvalidArgumentf("%s must be at most %d", l.field, l.max).
				WithMeta(EventKeyFields, []string{l.field})
		}
	}
	return nil
}

// parseRequest converts the three raw fields, reporting every bad one
func parseRequest(input *RollInput) (rolls.Request, error) {
	var (
		req    rolls.Request
		fields []string
		ok     bool
	)

	if req.Sides, ok = parsePositive(input.Sides); !ok {
		fields = append(fields, fieldSides)
	}
	if req.NumDice, ok = parsePositive(input.NumDice); !ok {
		fields = append(fields, fieldNumDice)
	}
	if req.NumRolls, ok = parsePositive(input.NumRolls); !ok {
		fields = append(fields, fieldNumRolls)
	}

	if len(fields) > 0 {
		return rolls.Request{}, errors.InvalidInput(fields...)
	}
	return req, nil
}

func parsePositive(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func viewerOrDefault(viewerID string) string {
	if viewerID == "" {
		return rolls.DefaultViewerID
	}
	return viewerID
}

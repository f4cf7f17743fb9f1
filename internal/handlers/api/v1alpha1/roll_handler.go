// Package v1alpha1 implements the RollService gRPC API
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/dice"
)

// RollHandlerConfig holds dependencies for the roll handler
type RollHandlerConfig struct {
	RollService dice.Service
}

// Validate ensures all required dependencies are present
func (c *RollHandlerConfig) Validate() error {
	if c.RollService == nil {
		return errors.InvalidArgument("roll service is required")
	}
	return nil
}

// RollHandler implements RollServiceServer on top of the roll orchestrator
type RollHandler struct {
	rollService dice.Service
}

// NewRollHandler creates a new roll handler with the given configuration
func NewRollHandler(cfg *RollHandlerConfig) (*RollHandler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &RollHandler{
		rollService: cfg.RollService,
	}, nil
}

var _ RollServiceServer = (*RollHandler)(nil)

// Roll simulates the request and returns the viewer's new display
func (h *RollHandler) Roll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.rollService.Roll(ctx, &dice.RollInput{
		ViewerID: stringField(req, FieldViewerID),
		Sides:    stringField(req, FieldSides),
		NumDice:  stringField(req, FieldNumDice),
		NumRolls: stringField(req, FieldNumRolls),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := EncodeDisplay(out.Display)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// GetDisplay returns the viewer's current display
func (h *RollHandler) GetDisplay(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.rollService.GetDisplay(ctx, &dice.GetDisplayInput{
		ViewerID: stringField(req, FieldViewerID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := EncodeDisplay(out.Display)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// ClearDisplay removes the viewer's display
func (h *RollHandler) ClearDisplay(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.rollService.ClearDisplay(ctx, &dice.ClearDisplayInput{
		ViewerID: stringField(req, FieldViewerID),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return EncodeCleared(out.Cleared), nil
}

// InspectBin returns the tooltip for one histogram bar
func (h *RollHandler) InspectBin(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	total, ok := intField(req, FieldTotal)
	if !ok {
		return nil, errors.ToGRPCError(errors.InvalidArgument("total must be an integer"))
	}

	out, err := h.rollService.InspectBin(ctx, &dice.InspectBinInput{
		ViewerID: stringField(req, FieldViewerID),
		Total:    total,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return EncodeInspectBin(out), nil
}

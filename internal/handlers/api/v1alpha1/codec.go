package v1alpha1

import (
	"encoding/json"
	"math"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dice-roller/internal/entities/rolls"
	"github.com/KirkDiggler/dice-roller/internal/errors"
	"github.com/KirkDiggler/dice-roller/internal/orchestrators/dice"
)

// Field names used in RollService requests and responses
const (
	FieldViewerID = "viewer_id"
	FieldSides    = "sides"
	FieldNumDice  = "num_dice"
	FieldNumRolls = "num_rolls"
	FieldTotal    = "total"
	FieldCount    = "count"
	FieldTooltip  = "tooltip"
	FieldDisplay  = "display"
	FieldCleared  = "cleared"
)

// NewRollRequest builds a Roll request. The dice fields stay strings so the
// server applies the same parsing to every front end.
func NewRollRequest(viewerID, sides, numDice, numRolls string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldViewerID: structpb.NewStringValue(viewerID),
		FieldSides:    structpb.NewStringValue(sides),
		FieldNumDice:  structpb.NewStringValue(numDice),
		FieldNumRolls: structpb.NewStringValue(numRolls),
	}}
}

// NewViewerRequest builds a GetDisplay or ClearDisplay request
func NewViewerRequest(viewerID string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldViewerID: structpb.NewStringValue(viewerID),
	}}
}

// NewInspectBinRequest builds an InspectBin request
func NewInspectBinRequest(viewerID string, total int) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldViewerID: structpb.NewStringValue(viewerID),
		FieldTotal:    structpb.NewNumberValue(float64(total)),
	}}
}

// EncodeDisplay wraps a display as {"display": {...}} using its JSON form
func EncodeDisplay(d *rolls.Display) (*structpb.Struct, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal display")
	}

	body := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, body); err != nil {
		return nil, errors.Wrap(err, "failed to convert display")
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldDisplay: structpb.NewStructValue(body),
	}}, nil
}

// DecodeDisplay reads the display out of a Roll or GetDisplay response
func DecodeDisplay(resp *structpb.Struct) (*rolls.Display, error) {
	body := resp.GetFields()[FieldDisplay].GetStructValue()
	if body == nil {
		return nil, errors.Internal("response has no display")
	}

	raw, err := protojson.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert display")
	}

	var d rolls.Display
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal display")
	}
	return &d, nil
}

// EncodeCleared builds a ClearDisplay response
func EncodeCleared(cleared bool) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldCleared: structpb.NewBoolValue(cleared),
	}}
}

// DecodeCleared reads a ClearDisplay response
func DecodeCleared(resp *structpb.Struct) bool {
	return resp.GetFields()[FieldCleared].GetBoolValue()
}

// EncodeInspectBin builds an InspectBin response
func EncodeInspectBin(out *dice.InspectBinOutput) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldTotal:    structpb.NewNumberValue(float64(out.Bin.Total)),
		FieldCount:    structpb.NewNumberValue(float64(out.Bin.Count)),
		FieldNumRolls: structpb.NewNumberValue(float64(out.NumRolls)),
		FieldTooltip:  structpb.NewStringValue(out.Tooltip),
	}}
}

// DecodeInspectBin reads an InspectBin response
func DecodeInspectBin(resp *structpb.Struct) (*dice.InspectBinOutput, error) {
	total, okTotal := intField(resp, FieldTotal)
	count, okCount := intField(resp, FieldCount)
	numRolls, okRolls := intField(resp, FieldNumRolls)
	if !okTotal || !okCount || !okRolls {
		return nil, errors.Internal("malformed inspect response")
	}

	return &dice.InspectBinOutput{
		Bin:      rolls.Bin{Total: total, Count: count},
		NumRolls: numRolls,
		Tooltip:  stringField(resp, FieldTooltip),
	}, nil
}

// stringField reads a field as text. Numbers are formatted so that a client
// sending {"sides": 6} is parsed like one sending {"sides": "6"}.
func stringField(s *structpb.Struct, key string) string {
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64)
	default:
		return ""
	}
}

// intField reads an integral number field
func intField(s *structpb.Struct, key string) (int, bool) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, false
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := kind.NumberValue
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case *structpb.Value_StringValue:
		n, err := strconv.Atoi(kind.StringValue)
		return n, err == nil
	default:
		return 0, false
	}
}

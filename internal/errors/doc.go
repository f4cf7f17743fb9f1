// Package errors provides the structured error type shared by every layer of
// the dice roller.
//
// An *Error carries a Code, a user-facing Message, an optional Cause and a
// Meta map. Codes survive wrapping, so a repository NotFound is still a
// NotFound when the gRPC or HTTP handler sees it.
//
// # Basic Usage
//
//	err := errors.NotFound("no display for viewer")
//	err := errors.OutOfRangef("total %d is outside [%d, %d]", t, lo, hi)
//
// The roll input boundary has exactly one failure kind:
//
//	err := errors.InvalidInput("sides", "num_rolls")
//	errors.GetMessage(err) // "Please enter positive integers for all fields."
//
// Wrapping keeps the code:
//
//	if err := repo.Save(ctx, in); err != nil {
//	    return errors.Wrap(err, "failed to save display")
//	}
//
// # Transport mapping
//
// gRPC handlers return errors.ToGRPCError(err); HTTP handlers write
// errors.GetCode(err).HTTPStatus().
//
// # Validation
//
// Config structs validate their dependencies with the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Engine == nil {
//	    vb.RequiredField("Engine")
//	}
//	return vb.Build()
package errors

// Package errors provides structured error types for the haptics library.
//
// Every error carries a Phase (where in processing it occurred) and a Kind
// (what went wrong). Kinds map onto the stable int32 status code space of
// the haptics boundary via CodeOf:
//
//	err := errors.DecodeFailed("parse pattern", cause)
//	errors.CodeOf(err) // errors.CodeDecode (8)
//
// # Construction
//
// Use the convenience constructors for common cases:
//
//	errors.InvalidArgument(errors.PhasePlayer, "loop end before loop start")
//	errors.IO("open pattern file", err)
//
// or the builder for errors with paths into the decoded document:
//
//	errors.New(errors.PhaseValidate, errors.KindOutOfRange).
//	    Path("Pattern", "Event", "EventParameters").
//	    Detail("intensity %g above 1", v).
//	    Build()
//
// # Matching
//
// Errors match with errors.Is on (Phase, Kind) pairs:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidData}) {
//	    ...
//	}
package errors

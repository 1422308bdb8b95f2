// Package bridge flattens the haptics runtime into opaque numeric
// handles and status codes. It exists for callers that cannot keep Go
// references alive across a boundary, such as embedding hosts and
// wire protocols; pure Go callers should use the engine and feedback
// packages directly.
//
// Handles are minted per kind (engine, pattern, player) and a handle
// outlives nothing: once released, every operation on it reports
// CodeInvalidHandle rather than panicking, no matter how stale the
// handle is.
package bridge

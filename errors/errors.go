package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode   Phase = "decode"   // AHAP parsing
	PhaseValidate Phase = "validate" // pattern validation
	PhaseEngine   Phase = "engine"   // engine lifecycle
	PhasePlayer   Phase = "player"   // playback control
	PhaseDevice   Phase = "device"   // output backend
	PhaseBridge   Phase = "bridge"   // handle table surface
	PhaseLoad     Phase = "load"     // file loading
)

// Kind categorizes the error
type Kind string

const (
	KindNotSupported    Kind = "not_supported"
	KindEngineFailure   Kind = "engine_failure"
	KindInvalidHandle   Kind = "invalid_handle"
	KindInvalidArgument Kind = "invalid_argument"
	KindPatternFailure  Kind = "pattern_failure"
	KindPlayerFailure   Kind = "player_failure"
	KindIO              Kind = "io"
	KindInvalidData     Kind = "invalid_data"
	KindRuntime         Kind = "runtime"
	KindFieldMissing    Kind = "field_missing"
	KindOutOfRange      Kind = "out_of_range"
	KindUnknownEnum     Kind = "unknown_enum"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotSupported creates a not-supported error
func NotSupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotSupported,
		Detail: what,
	}
}

// InvalidHandle creates an invalid handle error
func InvalidHandle(what string, handle uint32) *Error {
	return &Error{
		Phase:  PhaseBridge,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("%s handle %d is not live", what, handle),
		Value:  handle,
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// OutOfRange creates a value range error
func OutOfRange(phase Phase, path []string, value any, lo, hi float64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Path:   path,
		Detail: fmt.Sprintf("value %v outside [%g, %g]", value, lo, hi),
		Value:  value,
	}
}

// UnknownEnum creates an unknown enumerator error
func UnknownEnum(phase Phase, path []string, value any, enumType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownEnum,
		Path:   path,
		Detail: fmt.Sprintf("unknown %s %v", enumType, value),
		Value:  value,
	}
}

// DecodeFailed creates an AHAP decoding error
func DecodeFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// IO creates an I/O error
func IO(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// EngineFailure creates an engine lifecycle error
func EngineFailure(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseEngine,
		Kind:   KindEngineFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// PlayerFailure creates a playback error
func PlayerFailure(detail string, cause error) *Error {
	return &Error{
		Phase:  PhasePlayer,
		Kind:   KindPlayerFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// PatternFailure creates a pattern construction error
func PatternFailure(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindPatternFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// DeviceFailure creates an output backend error
func DeviceFailure(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseDevice,
		Kind:   KindRuntime,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

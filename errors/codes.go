package errors

import goerrors "errors"

// Code is the int32 status space of the haptics boundary. The values are
// stable and wire-visible; embedders that marshal the boundary onward (cgo
// exports, RPC) depend on them bit-exactly.
type Code int32

const (
	CodeOK              Code = 0
	CodeNotSupported    Code = 1
	CodeEngine          Code = 2
	CodeInvalidHandle   Code = 3
	CodeInvalidArgument Code = 4
	CodePattern         Code = 5
	CodePlayer          Code = 6
	CodeIO              Code = 7
	CodeDecode          Code = 8
	CodeRuntime         Code = 9
	CodeUnknown         Code = 255
)

// String returns the conventional name for a code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNotSupported:
		return "not_supported"
	case CodeEngine:
		return "engine"
	case CodeInvalidHandle:
		return "invalid_handle"
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodePattern:
		return "pattern"
	case CodePlayer:
		return "player"
	case CodeIO:
		return "io"
	case CodeDecode:
		return "decode"
	case CodeRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

var kindCodes = map[Kind]Code{
	KindNotSupported:    CodeNotSupported,
	KindEngineFailure:   CodeEngine,
	KindInvalidHandle:   CodeInvalidHandle,
	KindInvalidArgument: CodeInvalidArgument,
	KindPatternFailure:  CodePattern,
	KindPlayerFailure:   CodePlayer,
	KindIO:              CodeIO,
	KindInvalidData:     CodeDecode,
	KindFieldMissing:    CodeDecode,
	KindOutOfRange:      CodeDecode,
	KindUnknownEnum:     CodeDecode,
	KindRuntime:         CodeRuntime,
}

// CodeOf maps an error to its boundary status code. A nil error is CodeOK,
// a structured *Error maps through its Kind, and anything else is
// CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if goerrors.As(err, &e) {
		if c, ok := kindCodes[e.Kind]; ok {
			return c
		}
	}
	return CodeUnknown
}

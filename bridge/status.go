package bridge

import (
	"github.com/wippyai/haptics-runtime/errors"
	"github.com/wippyai/haptics-runtime/handle"
)

// Status is the result of a bridge call: a stable numeric code plus a
// human-readable message. Code 0 means success.
type Status struct {
	Code    errors.Code
	Message string
}

// OK reports whether the call succeeded.
func (s Status) OK() bool {
	return s.Code == errors.CodeOK
}

func (s Status) String() string {
	if s.Message == "" {
		return s.Code.String()
	}
	return s.Code.String() + ": " + s.Message
}

var ok = Status{Code: errors.CodeOK}

func statusOf(err error) Status {
	if err == nil {
		return ok
	}
	return Status{Code: errors.CodeOf(err), Message: err.Error()}
}

func invalid(what string, h handle.Handle) Status {
	return statusOf(errors.InvalidHandle(what, uint32(h)))
}

// Callback receives asynchronous engine state notifications. The event
// argument is an engine.EventCode value widened to int32.
type Callback func(event int32, message string)

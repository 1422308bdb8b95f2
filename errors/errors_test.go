package errors

import (
	goerrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := New(PhaseValidate, KindOutOfRange).
		Path("Pattern", "Event").
		Detail("intensity %g above 1", 1.5).
		Build()

	msg := err.Error()
	if !strings.Contains(msg, "[validate]") {
		t.Errorf("missing phase in %q", msg)
	}
	if !strings.Contains(msg, "out_of_range") {
		t.Errorf("missing kind in %q", msg)
	}
	if !strings.Contains(msg, "Pattern.Event") {
		t.Errorf("missing path in %q", msg)
	}
	if !strings.Contains(msg, "intensity 1.5 above 1") {
		t.Errorf("missing detail in %q", msg)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := DecodeFailed("parse pattern", cause)

	if !goerrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "underlying") {
		t.Errorf("cause not rendered in %q", err.Error())
	}
}

func TestError_Is(t *testing.T) {
	err := EngineFailure("start", nil)

	if !goerrors.Is(err, &Error{Phase: PhaseEngine, Kind: KindEngineFailure}) {
		t.Error("expected match on phase+kind")
	}
	if goerrors.Is(err, &Error{Phase: PhasePlayer, Kind: KindEngineFailure}) {
		t.Error("unexpected match with wrong phase")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, CodeOK},
		{"not supported", NotSupported(PhaseEngine, "no actuator"), CodeNotSupported},
		{"engine", EngineFailure("start", nil), CodeEngine},
		{"invalid handle", InvalidHandle("engine", 7), CodeInvalidHandle},
		{"invalid argument", InvalidArgument(PhasePlayer, "bad loop"), CodeInvalidArgument},
		{"pattern", PatternFailure("empty", nil), CodePattern},
		{"player", PlayerFailure("stopped engine", nil), CodePlayer},
		{"io", IO("open", nil), CodeIO},
		{"decode", DecodeFailed("bad json", nil), CodeDecode},
		{"field missing", FieldMissing(PhaseDecode, nil, "Version"), CodeDecode},
		{"out of range", OutOfRange(PhaseValidate, nil, 2.0, 0, 1), CodeDecode},
		{"unknown enum", UnknownEnum(PhaseDecode, nil, "Wobble", "EventType"), CodeDecode},
		{"device", DeviceFailure("write", nil), CodeRuntime},
		{"plain error", fmt.Errorf("boom"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCodeOf_WrappedStructured(t *testing.T) {
	inner := IO("read file", fmt.Errorf("enoent"))
	wrapped := fmt.Errorf("loading: %w", inner)

	if got := CodeOf(wrapped); got != CodeIO {
		t.Errorf("CodeOf(wrapped) = %d, want %d", got, CodeIO)
	}
}

func TestCode_String(t *testing.T) {
	if CodeInvalidHandle.String() != "invalid_handle" {
		t.Errorf("got %q", CodeInvalidHandle.String())
	}
	if Code(200).String() != "unknown" {
		t.Errorf("got %q", Code(200).String())
	}
}

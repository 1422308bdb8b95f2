package ahap

import (
	"testing"

	"github.com/wippyai/haptics-runtime/errors"
)

func TestRange(t *testing.T) {
	lo, hi, ok := Range(CtrlHapticIntensity)
	if !ok || lo != 0 || hi != 1 {
		t.Errorf("intensity control range = [%g, %g] %v", lo, hi, ok)
	}
	lo, hi, ok = Range(CtrlHapticSharpness)
	if !ok || lo != -1 || hi != 1 {
		t.Errorf("sharpness control range = [%g, %g] %v", lo, hi, ok)
	}
	if _, _, ok := Range("Bogus"); ok {
		t.Error("unknown id reported a range")
	}
}

func TestValidate_CurvePointOrder(t *testing.T) {
	_, err := Build(nil, nil, []ParameterCurve{{
		ID:   CtrlHapticIntensity,
		Time: 0,
		Points: []ControlPoint{
			{Time: 0.2, Value: 0.5},
			{Time: 0.1, Value: 0.7},
		},
	}})
	if err == nil {
		t.Fatal("expected error for non-increasing control points")
	}
	if errors.CodeOf(err) != errors.CodeDecode {
		t.Errorf("CodeOf = %d", errors.CodeOf(err))
	}
}

func TestValidate_NegativeParameterTime(t *testing.T) {
	_, err := Build(nil, []Parameter{
		{ID: CtrlHapticIntensity, Time: -1, Value: 0.5},
	}, nil)
	if err == nil {
		t.Fatal("expected error for negative parameter time")
	}
}

func TestValidate_CurveValueRange(t *testing.T) {
	_, err := Build(nil, nil, []ParameterCurve{{
		ID:     CtrlHapticIntensity,
		Points: []ControlPoint{{Time: 0, Value: 1.5}},
	}})
	if err == nil {
		t.Fatal("expected error for out-of-range curve value")
	}
}

package ahap

import (
	"strconv"

	"github.com/wippyai/haptics-runtime/errors"
)

type valueRange struct {
	lo, hi float64
}

var eventParamRanges = map[EventParameterID]valueRange{
	ParamHapticIntensity: {0, 1},
	ParamHapticSharpness: {0, 1},
	ParamAttackTime:      {0, 1},
	ParamDecayTime:       {0, 1},
	ParamReleaseTime:     {0, 1},
	ParamSustained:       {0, 1},
	ParamAudioVolume:     {0, 1},
	ParamAudioPan:        {-1, 1},
	ParamAudioPitch:      {-1, 1},
	ParamAudioBrightness: {-1, 1},
}

var dynamicParamRanges = map[DynamicParameterID]valueRange{
	CtrlHapticIntensity: {0, 1},
	CtrlHapticSharpness: {-1, 1},
	CtrlAudioVolume:     {0, 1},
	CtrlAudioPan:        {-1, 1},
	CtrlAudioPitch:      {-1, 1},
	CtrlAudioBrightness: {-1, 1},
	CtrlAttackTime:      {-1, 1},
	CtrlDecayTime:       {-1, 1},
	CtrlReleaseTime:     {-1, 1},
}

// Range returns the documented value range for a dynamic parameter.
func Range(id DynamicParameterID) (lo, hi float64, ok bool) {
	r, ok := dynamicParamRanges[id]
	return r.lo, r.hi, ok
}

func validate(p *Pattern) error {
	if p.version <= 0 {
		return errors.New(errors.PhaseValidate, errors.KindInvalidData).
			Detail("version %g must be positive", p.version).
			Build()
	}

	for i, e := range p.events {
		path := []string{"Pattern", strconv.Itoa(i), "Event"}
		if e.Time < 0 {
			return errors.New(errors.PhaseValidate, errors.KindOutOfRange).
				Path(path...).
				Detail("event time %g is negative", e.Time).
				Build()
		}
		if e.Duration < 0 {
			return errors.New(errors.PhaseValidate, errors.KindOutOfRange).
				Path(path...).
				Detail("event duration %g is negative", e.Duration).
				Build()
		}
		if e.Type == AudioCustom && e.WaveformPath == "" {
			return errors.FieldMissing(errors.PhaseValidate, path, "EventWaveformPath")
		}
		for _, ep := range e.Parameters {
			r, ok := eventParamRanges[ep.ID]
			if !ok {
				return errors.UnknownEnum(errors.PhaseValidate, path, string(ep.ID), "ParameterID")
			}
			if ep.Value < r.lo || ep.Value > r.hi {
				return errors.OutOfRange(errors.PhaseValidate,
					append(path, string(ep.ID)), ep.Value, r.lo, r.hi)
			}
		}
	}

	for i, pr := range p.parameters {
		path := []string{"Pattern", strconv.Itoa(i), "Parameter"}
		if pr.Time < 0 {
			return errors.New(errors.PhaseValidate, errors.KindOutOfRange).
				Path(path...).
				Detail("parameter time %g is negative", pr.Time).
				Build()
		}
		r := dynamicParamRanges[pr.ID]
		if pr.Value < r.lo || pr.Value > r.hi {
			return errors.OutOfRange(errors.PhaseValidate,
				append(path, string(pr.ID)), pr.Value, r.lo, r.hi)
		}
	}

	for i, c := range p.curves {
		path := []string{"Pattern", strconv.Itoa(i), "ParameterCurve"}
		if c.Time < 0 {
			return errors.New(errors.PhaseValidate, errors.KindOutOfRange).
				Path(path...).
				Detail("curve time %g is negative", c.Time).
				Build()
		}
		if len(c.Points) == 0 {
			return errors.FieldMissing(errors.PhaseValidate, path, "ParameterCurveControlPoints")
		}
		r := dynamicParamRanges[c.ID]
		last := -1.0
		for j, pt := range c.Points {
			if pt.Time < 0 {
				return errors.New(errors.PhaseValidate, errors.KindOutOfRange).
					Path(append(path, strconv.Itoa(j))...).
					Detail("control point time %g is negative", pt.Time).
					Build()
			}
			if pt.Time <= last && j > 0 {
				return errors.New(errors.PhaseValidate, errors.KindInvalidData).
					Path(append(path, strconv.Itoa(j))...).
					Detail("control point times must be strictly increasing").
					Build()
			}
			last = pt.Time
			if pt.Value < r.lo || pt.Value > r.hi {
				return errors.OutOfRange(errors.PhaseValidate,
					append(path, strconv.Itoa(j)), pt.Value, r.lo, r.hi)
			}
		}
	}

	return nil
}

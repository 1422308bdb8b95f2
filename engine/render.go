package engine

import (
	"github.com/wippyai/haptics-runtime/ahap"
	"github.com/wippyai/haptics-runtime/device"
)

// transientWidth is the envelope width of a zero-duration transient
// event. Short enough to read as a tap, long enough to span a few
// frames at the default interval.
const transientWidth = 0.02

// defaultSharpness is used by events that carry no HapticSharpness
// parameter, centering them in the frequency band.
const defaultSharpness = 0.5

// program is a player's compiled snapshot of a pattern. Compiling copies
// everything out of the pattern once, so render loops never touch shared
// state.
type program struct {
	events   []ahap.Event
	params   []ahap.Parameter
	curves   []ahap.ParameterCurve
	duration float64
}

func compile(p *ahap.Pattern) *program {
	pr := &program{
		events: p.Events(),
		params: p.Parameters(),
		curves: p.Curves(),
	}
	pr.duration = p.Duration()
	for _, e := range pr.events {
		if e.Type == ahap.HapticTransient && e.Duration == 0 {
			if end := e.Time + transientWidth; end > pr.duration {
				pr.duration = end
			}
		}
	}
	return pr
}

// sample renders the haptic amplitude at pattern time t. Audio events
// are skipped: frames drive haptic actuators only. Event contributions
// accumulate; sharpness is the contribution-weighted mix of the active
// events, shifted by the dynamic and player sharpness controls.
//
// This is a coarse amplitude envelope, not vendor-grade waveform
// synthesis; it is what generic rumble hardware can reproduce.
func (pr *program) sample(t float64, ctrl controls) device.Frame {
	var intensity, weighted float64

	for _, e := range pr.events {
		var level float64
		switch e.Type {
		case ahap.HapticTransient:
			level = transientLevel(e, t)
		case ahap.HapticContinuous:
			level = continuousLevel(e, t)
		default:
			continue
		}
		if level <= 0 {
			continue
		}
		contribution := level * e.ParamOr(ahap.ParamHapticIntensity, 1)
		intensity += contribution
		weighted += contribution * e.ParamOr(ahap.ParamHapticSharpness, defaultSharpness)
	}

	if intensity <= 0 {
		return device.Frame{}
	}

	sharpness := weighted / intensity
	intensity = clamp(intensity, 0, 1)

	// Dynamic parameters from the pattern, then player controls.
	intensity *= pr.dynamicValue(ahap.CtrlHapticIntensity, t, 1)
	sharpness += pr.dynamicValue(ahap.CtrlHapticSharpness, t, 0)

	intensity *= ctrl.intensity
	sharpness += ctrl.sharpness

	return device.Frame{
		Intensity: clamp(intensity, 0, 1),
		Sharpness: clamp(sharpness, 0, 1),
	}
}

// transientLevel is a linear decay over the transient window.
func transientLevel(e ahap.Event, t float64) float64 {
	width := e.Duration
	if width <= 0 {
		width = transientWidth
	}
	u := t - e.Time
	if u < 0 || u >= width {
		return 0
	}
	return 1 - u/width
}

// continuousLevel shapes a sustained event with its attack, decay and
// release envelope parameters. Envelope times are fractions of the
// event duration.
func continuousLevel(e ahap.Event, t float64) float64 {
	u := t - e.Time
	if u < 0 || u >= e.Duration || e.Duration <= 0 {
		return 0
	}

	attack := e.ParamOr(ahap.ParamAttackTime, 0) * e.Duration
	release := e.ParamOr(ahap.ParamReleaseTime, 0) * e.Duration
	decay := e.ParamOr(ahap.ParamDecayTime, 0) * e.Duration
	sustained := e.ParamOr(ahap.ParamSustained, 1) >= 0.5

	level := 1.0
	if attack > 0 && u < attack {
		level = u / attack
	}

	if sustained {
		if release > 0 && u > e.Duration-release {
			level *= (e.Duration - u) / release
		}
	} else if decay > 0 && u > attack {
		level *= 1 - (u-attack)/decay
	}

	return clamp(level, 0, 1)
}

// dynamicValue resolves a dynamic parameter at time t: the latest curve
// covering t wins over the latest discrete point, which wins over the
// default.
func (pr *program) dynamicValue(id ahap.DynamicParameterID, t, def float64) float64 {
	value := def
	have := false

	var lastTime float64
	for _, p := range pr.params {
		if p.ID != id || p.Time > t {
			continue
		}
		if !have || p.Time >= lastTime {
			value = p.Value
			lastTime = p.Time
			have = true
		}
	}

	for _, c := range pr.curves {
		if c.ID != id {
			continue
		}
		if v, ok := curveValue(c, t); ok {
			value = v
		}
	}

	return value
}

// curveValue interpolates a parameter curve at time t. Before the first
// control point the curve has no effect; past the last point the final
// value holds.
func curveValue(c ahap.ParameterCurve, t float64) (float64, bool) {
	u := t - c.Time
	if len(c.Points) == 0 || u < c.Points[0].Time {
		return 0, false
	}

	last := c.Points[len(c.Points)-1]
	if u >= last.Time {
		return last.Value, true
	}

	for i := 1; i < len(c.Points); i++ {
		a, b := c.Points[i-1], c.Points[i]
		if u < b.Time {
			span := b.Time - a.Time
			frac := (u - a.Time) / span
			return a.Value + (b.Value-a.Value)*frac, true
		}
	}
	return last.Value, true
}

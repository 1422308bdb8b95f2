package ahap

// EventType identifies the kind of a pattern event.
type EventType string

const (
	HapticTransient  EventType = "HapticTransient"
	HapticContinuous EventType = "HapticContinuous"
	AudioContinuous  EventType = "AudioContinuous"
	AudioCustom      EventType = "AudioCustom"
)

// EventParameterID identifies a static parameter attached to an event.
type EventParameterID string

const (
	ParamHapticIntensity EventParameterID = "HapticIntensity"
	ParamHapticSharpness EventParameterID = "HapticSharpness"
	ParamAttackTime      EventParameterID = "AttackTime"
	ParamDecayTime       EventParameterID = "DecayTime"
	ParamReleaseTime     EventParameterID = "ReleaseTime"
	ParamSustained       EventParameterID = "Sustained"
	ParamAudioVolume     EventParameterID = "AudioVolume"
	ParamAudioPan        EventParameterID = "AudioPan"
	ParamAudioPitch      EventParameterID = "AudioPitch"
	ParamAudioBrightness EventParameterID = "AudioBrightness"
)

// DynamicParameterID identifies a parameter that changes over the pattern
// timeline, either as discrete points or as an interpolated curve.
type DynamicParameterID string

const (
	CtrlHapticIntensity DynamicParameterID = "HapticIntensityControl"
	CtrlHapticSharpness DynamicParameterID = "HapticSharpnessControl"
	CtrlAudioVolume     DynamicParameterID = "AudioVolumeControl"
	CtrlAudioPan        DynamicParameterID = "AudioPanControl"
	CtrlAudioPitch      DynamicParameterID = "AudioPitchControl"
	CtrlAudioBrightness DynamicParameterID = "AudioBrightnessControl"
	CtrlAttackTime      DynamicParameterID = "HapticAttackTimeControl"
	CtrlDecayTime       DynamicParameterID = "HapticDecayTimeControl"
	CtrlReleaseTime     DynamicParameterID = "HapticReleaseTimeControl"
)

// EventParameter is a static parameter value attached to one event.
type EventParameter struct {
	ID    EventParameterID
	Value float64
}

// Event is one haptic or audio event on the pattern timeline. Times and
// durations are seconds relative to pattern start.
type Event struct {
	Time         float64
	Type         EventType
	Duration     float64
	WaveformPath string
	Parameters   []EventParameter
}

// Param returns the value of a static parameter on the event.
func (e Event) Param(id EventParameterID) (float64, bool) {
	for _, p := range e.Parameters {
		if p.ID == id {
			return p.Value, true
		}
	}
	return 0, false
}

// ParamOr returns the value of a static parameter, or def when absent.
func (e Event) ParamOr(id EventParameterID, def float64) float64 {
	if v, ok := e.Param(id); ok {
		return v
	}
	return def
}

// Parameter is a discrete dynamic parameter change at one point in time.
type Parameter struct {
	ID    DynamicParameterID
	Time  float64
	Value float64
}

// ControlPoint is one point of a parameter curve.
type ControlPoint struct {
	Time  float64
	Value float64
}

// ParameterCurve is a dynamic parameter interpolated linearly between
// control points. Control point times are relative to the curve's Time.
type ParameterCurve struct {
	ID     DynamicParameterID
	Time   float64
	Points []ControlPoint
}

// Pattern is an immutable decoded haptic/audio event sequence. Construct
// one with Decode, DecodeFile or Build; accessors return copies so a
// decoded pattern can be shared between players without coordination.
type Pattern struct {
	version    float64
	events     []Event
	parameters []Parameter
	curves     []ParameterCurve
}

// Version returns the format version the pattern was decoded from.
func (p *Pattern) Version() float64 { return p.version }

// Events returns a copy of the pattern's events, ordered as decoded.
func (p *Pattern) Events() []Event {
	out := make([]Event, len(p.events))
	for i, e := range p.events {
		out[i] = e
		out[i].Parameters = append([]EventParameter(nil), e.Parameters...)
	}
	return out
}

// Parameters returns a copy of the discrete dynamic parameter changes.
func (p *Pattern) Parameters() []Parameter {
	return append([]Parameter(nil), p.parameters...)
}

// Curves returns a copy of the dynamic parameter curves.
func (p *Pattern) Curves() []ParameterCurve {
	out := make([]ParameterCurve, len(p.curves))
	for i, c := range p.curves {
		out[i] = c
		out[i].Points = append([]ControlPoint(nil), c.Points...)
	}
	return out
}

// Duration returns the end of the pattern timeline in seconds: the latest
// point any event, parameter change or curve still has effect.
func (p *Pattern) Duration() float64 {
	var end float64
	for _, e := range p.events {
		if t := e.Time + e.Duration; t > end {
			end = t
		}
	}
	for _, pr := range p.parameters {
		if pr.Time > end {
			end = pr.Time
		}
	}
	for _, c := range p.curves {
		for _, pt := range c.Points {
			if t := c.Time + pt.Time; t > end {
				end = t
			}
		}
	}
	return end
}

package ahap

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/wippyai/haptics-runtime/errors"
)

// Wire structs mirror Apple's AHAP JSON layout. The file is a dictionary
// with a Version and a "Pattern" array whose entries hold exactly one of
// Event, Parameter or ParameterCurve.

type wireDocument struct {
	Version  *float64       `json:"Version"`
	Metadata map[string]any `json:"Metadata,omitempty"`
	Pattern  []wireElement  `json:"Pattern"`
}

type wireElement struct {
	Event          *wireEvent     `json:"Event,omitempty"`
	Parameter      *wireParameter `json:"Parameter,omitempty"`
	ParameterCurve *wireCurve     `json:"ParameterCurve,omitempty"`
}

type wireEvent struct {
	Time            float64         `json:"Time"`
	EventType       string          `json:"EventType"`
	EventDuration   float64         `json:"EventDuration,omitempty"`
	EventWaveform   string          `json:"EventWaveformPath,omitempty"`
	EventParameters []wireEventParm `json:"EventParameters,omitempty"`
}

type wireEventParm struct {
	ParameterID    string  `json:"ParameterID"`
	ParameterValue float64 `json:"ParameterValue"`
}

type wireParameter struct {
	ParameterID    string  `json:"ParameterID"`
	Time           float64 `json:"Time"`
	ParameterValue float64 `json:"ParameterValue"`
}

type wireCurve struct {
	ParameterID string      `json:"ParameterID"`
	Time        float64     `json:"Time"`
	Points      []wirePoint `json:"ParameterCurveControlPoints"`
}

type wirePoint struct {
	Time           float64 `json:"Time"`
	ParameterValue float64 `json:"ParameterValue"`
}

// Decode parses and validates an AHAP document from raw bytes.
func Decode(data []byte) (*Pattern, error) {
	if len(data) == 0 {
		return nil, errors.DecodeFailed("empty pattern data", nil)
	}

	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.DecodeFailed("parse AHAP document", err)
	}

	if doc.Version == nil {
		return nil, errors.FieldMissing(errors.PhaseDecode, nil, "Version")
	}

	p := &Pattern{version: *doc.Version}
	for i, el := range doc.Pattern {
		set := 0
		if el.Event != nil {
			set++
		}
		if el.Parameter != nil {
			set++
		}
		if el.ParameterCurve != nil {
			set++
		}
		if set != 1 {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path("Pattern", strconv.Itoa(i)).
				Detail("entry must hold exactly one of Event, Parameter, ParameterCurve").
				Build()
		}

		switch {
		case el.Event != nil:
			ev, err := decodeEvent(el.Event, i)
			if err != nil {
				return nil, err
			}
			p.events = append(p.events, ev)
		case el.Parameter != nil:
			pr, err := decodeParameter(el.Parameter, i)
			if err != nil {
				return nil, err
			}
			p.parameters = append(p.parameters, pr)
		default:
			c, err := decodeCurve(el.ParameterCurve, i)
			if err != nil {
				return nil, err
			}
			p.curves = append(p.curves, c)
		}
	}

	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeFile reads and decodes an AHAP file from disk.
func DecodeFile(path string) (*Pattern, error) {
	if path == "" {
		return nil, errors.InvalidArgument(errors.PhaseLoad, "empty pattern path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO("read pattern file "+path, err)
	}
	return Decode(data)
}

// Build constructs a validated pattern programmatically. The input slices
// are copied; the caller keeps ownership.
func Build(events []Event, parameters []Parameter, curves []ParameterCurve) (*Pattern, error) {
	p := &Pattern{version: 1.0}
	for _, e := range events {
		e.Parameters = append([]EventParameter(nil), e.Parameters...)
		p.events = append(p.events, e)
	}
	p.parameters = append(p.parameters, parameters...)
	for _, c := range curves {
		c.Points = append([]ControlPoint(nil), c.Points...)
		p.curves = append(p.curves, c)
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Transient returns a zero-duration haptic event at t.
func Transient(t, intensity, sharpness float64) Event {
	return Event{
		Time: t,
		Type: HapticTransient,
		Parameters: []EventParameter{
			{ID: ParamHapticIntensity, Value: intensity},
			{ID: ParamHapticSharpness, Value: sharpness},
		},
	}
}

// Continuous returns a sustained haptic event of the given duration.
func Continuous(t, duration, intensity, sharpness float64) Event {
	return Event{
		Time:     t,
		Type:     HapticContinuous,
		Duration: duration,
		Parameters: []EventParameter{
			{ID: ParamHapticIntensity, Value: intensity},
			{ID: ParamHapticSharpness, Value: sharpness},
		},
	}
}

func decodeEvent(w *wireEvent, idx int) (Event, error) {
	et := EventType(w.EventType)
	switch et {
	case HapticTransient, HapticContinuous, AudioContinuous, AudioCustom:
	case "":
		return Event{}, errors.FieldMissing(errors.PhaseDecode, []string{"Pattern", strconv.Itoa(idx), "Event"}, "EventType")
	default:
		return Event{}, errors.UnknownEnum(errors.PhaseDecode, []string{"Pattern", strconv.Itoa(idx), "Event"}, w.EventType, "EventType")
	}

	ev := Event{
		Time:         w.Time,
		Type:         et,
		Duration:     w.EventDuration,
		WaveformPath: w.EventWaveform,
	}
	for _, wp := range w.EventParameters {
		id := EventParameterID(wp.ParameterID)
		if _, ok := eventParamRanges[id]; !ok {
			return Event{}, errors.UnknownEnum(errors.PhaseDecode,
				[]string{"Pattern", strconv.Itoa(idx), "Event", "EventParameters"},
				wp.ParameterID, "ParameterID")
		}
		ev.Parameters = append(ev.Parameters, EventParameter{ID: id, Value: wp.ParameterValue})
	}
	return ev, nil
}

func decodeParameter(w *wireParameter, idx int) (Parameter, error) {
	id := DynamicParameterID(w.ParameterID)
	if _, ok := dynamicParamRanges[id]; !ok {
		return Parameter{}, errors.UnknownEnum(errors.PhaseDecode,
			[]string{"Pattern", strconv.Itoa(idx), "Parameter"}, w.ParameterID, "ParameterID")
	}
	return Parameter{ID: id, Time: w.Time, Value: w.ParameterValue}, nil
}

func decodeCurve(w *wireCurve, idx int) (ParameterCurve, error) {
	id := DynamicParameterID(w.ParameterID)
	if _, ok := dynamicParamRanges[id]; !ok {
		return ParameterCurve{}, errors.UnknownEnum(errors.PhaseDecode,
			[]string{"Pattern", strconv.Itoa(idx), "ParameterCurve"}, w.ParameterID, "ParameterID")
	}
	c := ParameterCurve{ID: id, Time: w.Time}
	for _, pt := range w.Points {
		c.Points = append(c.Points, ControlPoint{Time: pt.Time, Value: pt.ParameterValue})
	}
	return c, nil
}

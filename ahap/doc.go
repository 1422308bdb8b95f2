// Package ahap decodes AHAP haptic pattern documents.
//
// AHAP is a JSON encoding of a timed sequence of haptic and audio events,
// optionally modulated by dynamic parameters and parameter curves:
//
//	{
//	  "Version": 1.0,
//	  "Pattern": [
//	    {"Event": {"Time": 0.0, "EventType": "HapticTransient",
//	               "EventParameters": [
//	                 {"ParameterID": "HapticIntensity", "ParameterValue": 0.8},
//	                 {"ParameterID": "HapticSharpness", "ParameterValue": 0.5}]}},
//	    {"ParameterCurve": {"ParameterID": "HapticIntensityControl", "Time": 0.0,
//	                        "ParameterCurveControlPoints": [
//	                          {"Time": 0.0, "ParameterValue": 1.0},
//	                          {"Time": 0.5, "ParameterValue": 0.2}]}}
//	  ]
//	}
//
// Decode and DecodeFile parse and validate a document in one step; a
// document that references unknown event types or parameter IDs, or that
// carries values outside their documented ranges, is rejected. Build
// constructs a pattern programmatically under the same validation.
//
// A decoded Pattern is immutable: accessors return copies, so patterns can
// be shared freely between engines and players.
package ahap

package bridge

import (
	"github.com/wippyai/haptics-runtime/feedback"
	"github.com/wippyai/haptics-runtime/handle"
)

// std backs the package-level functions, mirroring the flat surface
// embedders link against.
var std = New()

// Default returns the bridge used by the package-level functions.
func Default() *Bridge { return std }

func EngineCreate(cb Callback) (handle.Handle, Status) { return std.EngineCreate(cb) }
func EngineStart(h handle.Handle) Status               { return std.EngineStart(h) }
func EngineStop(h handle.Handle) Status                { return std.EngineStop(h) }
func EngineRelease(h handle.Handle) Status             { return std.EngineRelease(h) }

func PatternFromData(data []byte) (handle.Handle, Status) { return std.PatternFromData(data) }
func PatternFromFile(path string) (handle.Handle, Status) { return std.PatternFromFile(path) }
func PatternRelease(h handle.Handle) Status               { return std.PatternRelease(h) }

func PlayerCreate(engineH, patternH handle.Handle) (handle.Handle, Status) {
	return std.PlayerCreate(engineH, patternH)
}
func PlayerPlay(h handle.Handle, atTime float64) Status { return std.PlayerPlay(h, atTime) }
func PlayerStop(h handle.Handle, atTime float64) Status { return std.PlayerStop(h, atTime) }
func PlayerSetLoop(h handle.Handle, enabled bool, start, end float64) Status {
	return std.PlayerSetLoop(h, enabled, start, end)
}
func PlayerSendParameter(h handle.Handle, id int32, value, atTime float64) Status {
	return std.PlayerSendParameter(h, id, value, atTime)
}
func PlayerRelease(h handle.Handle) Status { return std.PlayerRelease(h) }

// SupportsHaptics reports whether physical haptic output is available.
func SupportsHaptics() bool { return std.SupportsHaptics() }

// One-shot triggers. These bypass handle bookkeeping entirely and play
// on a shared fire-and-forget engine.

func ImpactLight()  { feedback.Impact(feedback.ImpactLight) }
func ImpactMedium() { feedback.Impact(feedback.ImpactMedium) }
func ImpactHeavy()  { feedback.Impact(feedback.ImpactHeavy) }
func ImpactSoft()   { feedback.Impact(feedback.ImpactSoft) }
func ImpactRigid()  { feedback.Impact(feedback.ImpactRigid) }

func NotificationSuccess() { feedback.Notification(feedback.NotificationSuccess) }
func NotificationWarning() { feedback.Notification(feedback.NotificationWarning) }
func NotificationError()   { feedback.Notification(feedback.NotificationError) }

func Selection() { feedback.Selection() }

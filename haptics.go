package haptics

import (
	"github.com/wippyai/haptics-runtime/device"
	"github.com/wippyai/haptics-runtime/feedback"
)

// Supported reports whether physical haptic hardware is attached.
// Playback still works without hardware; DefaultDevice falls back to an
// in-process simulator.
func Supported() bool {
	return feedback.Supported()
}

// DefaultDevice returns the preferred haptic output for this host.
func DefaultDevice() device.Device {
	return feedback.DefaultDevice()
}

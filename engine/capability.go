package engine

import "github.com/wippyai/haptics-runtime/device/procon"

// Supported reports whether physical haptic hardware is attached. It has
// no side effects and needs no engine; playback on a simulated device
// works regardless.
func Supported() bool {
	return procon.Available()
}

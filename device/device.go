package device

// Frame is one rendered haptic sample. The engine produces frames at a
// fixed interval; Intensity is the normalized actuator amplitude and
// Sharpness the normalized frequency bias, both as the renderer computed
// them (0..1).
type Frame struct {
	Intensity float64
	Sharpness float64
}

// Capabilities describes what an output backend can reproduce.
type Capabilities struct {
	SupportsHaptics bool
	SupportsAudio   bool
}

// Device is an output backend for rendered haptic frames.
//
// Open must be called before the first WriteFrame and Close exactly once
// when the device is no longer needed. WriteFrame is called from the
// engine's render goroutines and must tolerate concurrent callers.
// Reset returns the actuator to rest without closing the device.
type Device interface {
	// Open initializes the backend.
	Open() error

	// Close releases backend resources.
	Close() error

	// WriteFrame pushes one rendered frame to the actuator.
	WriteFrame(Frame) error

	// Reset silences the actuator and clears pending output.
	Reset() error

	// Capabilities reports what the backend can reproduce.
	Capabilities() Capabilities
}

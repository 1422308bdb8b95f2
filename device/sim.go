package device

import (
	"sync"
	"time"

	"github.com/wippyai/haptics-runtime/errors"
)

// TimedFrame is a frame recorded by the simulated device together with
// the wall-clock instant it was written.
type TimedFrame struct {
	Frame Frame
	At    time.Time
}

// Sim is an in-memory Device that records every frame written to it.
// It stands in for real hardware in tests and on machines without an
// actuator; a write failure can be injected to drive engine interruption
// paths.
type Sim struct {
	mu      sync.Mutex
	opened  bool
	closed  bool
	frames  []TimedFrame
	resets  int
	failErr error
}

// NewSim creates a simulated device.
func NewSim() *Sim {
	return &Sim{}
}

func (s *Sim) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.DeviceFailure("sim device closed", nil)
	}
	s.opened = true
	return nil
}

func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.opened = false
	return nil
}

func (s *Sim) WriteFrame(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return errors.DeviceFailure("sim device not open", nil)
	}
	if s.failErr != nil {
		return s.failErr
	}
	s.frames = append(s.frames, TimedFrame{Frame: f, At: time.Now()})
	return nil
}

func (s *Sim) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return errors.DeviceFailure("sim device not open", nil)
	}
	s.resets++
	s.frames = nil
	return nil
}

func (s *Sim) Capabilities() Capabilities {
	return Capabilities{SupportsHaptics: true}
}

// FailWrites makes every subsequent WriteFrame return err. Pass nil to
// clear the injected failure.
func (s *Sim) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Frames returns a copy of everything written since the last Reset.
func (s *Sim) Frames() []TimedFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]TimedFrame(nil), s.frames...)
}

// Resets returns how many times Reset was called.
func (s *Sim) Resets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}

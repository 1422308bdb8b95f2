package device

import (
	"fmt"
	"testing"
)

func TestSim_Lifecycle(t *testing.T) {
	s := NewSim()

	if err := s.WriteFrame(Frame{Intensity: 0.5}); err == nil {
		t.Error("write before open should fail")
	}

	if err := s.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.WriteFrame(Frame{Intensity: 0.5, Sharpness: 0.2}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	frames := s.Frames()
	if len(frames) != 1 {
		t.Fatalf("got %d frames", len(frames))
	}
	if frames[0].Frame.Intensity != 0.5 {
		t.Errorf("intensity = %g", frames[0].Frame.Intensity)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(s.Frames()) != 0 {
		t.Error("frames survived Reset")
	}
	if s.Resets() != 1 {
		t.Errorf("Resets = %d", s.Resets())
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.WriteFrame(Frame{}); err == nil {
		t.Error("write after close should fail")
	}
	if err := s.Open(); err == nil {
		t.Error("reopen after close should fail")
	}
}

func TestSim_FailWrites(t *testing.T) {
	s := NewSim()
	if err := s.Open(); err != nil {
		t.Fatal(err)
	}

	boom := fmt.Errorf("actuator gone")
	s.FailWrites(boom)
	if err := s.WriteFrame(Frame{Intensity: 1}); err != boom {
		t.Errorf("got %v, want injected error", err)
	}

	s.FailWrites(nil)
	if err := s.WriteFrame(Frame{Intensity: 1}); err != nil {
		t.Errorf("got %v after clearing failure", err)
	}
}

func TestSim_Capabilities(t *testing.T) {
	caps := NewSim().Capabilities()
	if !caps.SupportsHaptics {
		t.Error("sim should report haptics support")
	}
	if caps.SupportsAudio {
		t.Error("sim should not report audio support")
	}
}

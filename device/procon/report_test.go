package procon

import (
	"testing"

	"github.com/wippyai/haptics-runtime/device"
)

func TestRumbleReport_Layout(t *testing.T) {
	f := device.Frame{Intensity: 0.8, Sharpness: 0.5}
	report := rumbleReport(f, 7)

	if len(report) != reportLen {
		t.Fatalf("report length = %d", len(report))
	}
	if report[0] != 0x02 {
		t.Errorf("report ID = %#x", report[0])
	}
	if report[1] != 0x57 {
		t.Errorf("counter byte = %#x, want 0x57", report[1])
	}
	if report[17] != report[1] {
		t.Error("counter byte not mirrored at offset 17")
	}

	for i := 0; i < 5; i++ {
		if report[2+i] != report[18+i] {
			t.Fatalf("sample byte %d not mirrored: %#x vs %#x", i, report[2+i], report[18+i])
		}
	}
}

func TestRumbleReport_CounterWraps(t *testing.T) {
	report := rumbleReport(device.Frame{}, 0x1f)
	if report[1] != 0x5f {
		t.Errorf("counter byte = %#x, want low nibble only", report[1])
	}
}

func TestStopReport(t *testing.T) {
	report := stopReport()
	if report[0] != 0x02 || report[1] != 0x50 || report[17] != 0x50 {
		t.Errorf("header = %#x %#x %#x", report[0], report[1], report[17])
	}
	for i, b := range report[2:17] {
		if b != 0 {
			t.Fatalf("sample byte %d = %#x, want 0", i, b)
		}
	}
}

func TestAmpCode(t *testing.T) {
	if ampCode(0) != 0 {
		t.Error("zero amplitude should encode as silence")
	}
	if ampCode(0.005) != 0 {
		t.Error("sub-dead-zone amplitude should encode as silence")
	}
	if ampCode(1.0) != 100 {
		t.Errorf("full amplitude = %d, want top of scale", ampCode(1.0))
	}

	// Monotonic over the audible range.
	prev := byte(0)
	for a := 0.05; a <= 1.0; a += 0.05 {
		c := ampCode(a)
		if c < prev {
			t.Fatalf("ampCode not monotonic at %g: %d < %d", a, c, prev)
		}
		prev = c
	}
}

func TestFreqCode(t *testing.T) {
	if freqCode(5) != freqCode(10) {
		t.Error("frequencies below 10 Hz should clamp")
	}
	if freqCode(20) != 32 {
		t.Errorf("one octave above base = %d, want 32", freqCode(20))
	}
	if freqCode(1e6) != 0x7f {
		t.Errorf("out-of-band frequency = %#x, want clamp to 0x7f", freqCode(1e6))
	}
}

func TestEncodeSample_SharpnessSelectsBand(t *testing.T) {
	low := encodeSample(device.Frame{Intensity: 0.5, Sharpness: 0})
	high := encodeSample(device.Frame{Intensity: 0.5, Sharpness: 1})

	if low[0] >= high[0] {
		t.Errorf("low band code %d should be below high band code %d", low[0], high[0])
	}
	if low[1] != high[1] {
		t.Error("amplitude should not depend on sharpness")
	}
}

package procon

import (
	"math"

	"github.com/wippyai/haptics-runtime/device"
)

// HD rumble frequency band. Sharpness 0 maps to the low end, 1 to the
// high end, on a log scale so equal sharpness steps feel like equal
// pitch steps.
const (
	freqLow  = 40.0
	freqHigh = 320.0
)

const reportLen = 64

// rumbleReport builds one 64-byte hidraw output report carrying the same
// 5-byte rumble sample for the left and right actuators. Layout follows
// the controller's output report 0x02: a 4-bit rolling counter in the
// low nibble of byte 1, mirrored at byte 17, samples at bytes 2-6 and
// 18-22.
func rumbleReport(f device.Frame, counter byte) []byte {
	report := make([]byte, reportLen)
	report[0] = 0x02
	report[1] = 0x50 | (counter & 0x0f)
	report[17] = report[1]

	sample := encodeSample(f)
	copy(report[2:], sample[:])
	copy(report[18:], sample[:])
	return report
}

// stopReport returns the report that silences both actuators.
func stopReport() []byte {
	report := make([]byte, reportLen)
	report[0] = 0x02
	report[1] = 0x50
	report[17] = report[1]
	return report
}

// encodeSample converts a rendered frame into a 5-byte rumble sample:
// low-band frequency and amplitude codes, high-band frequency and
// amplitude codes, and a reserved trailing byte.
func encodeSample(f device.Frame) [5]byte {
	base := freqLow * math.Pow(freqHigh/freqLow, clamp01(f.Sharpness))
	amp := clamp01(f.Intensity)

	return [5]byte{
		freqCode(base),
		ampCode(amp),
		freqCode(base * 2),
		ampCode(amp),
		0x00,
	}
}

// freqCode maps a frequency in Hz onto the controller's log-encoded
// 7-bit frequency scale (32 steps per octave above 10 Hz).
func freqCode(hz float64) byte {
	if hz < 10 {
		hz = 10
	}
	code := math.Round(32 * math.Log2(hz/10))
	if code > 0x7f {
		code = 0x7f
	}
	return byte(code)
}

// ampCode maps a normalized amplitude onto the controller's log-encoded
// amplitude scale. Values under the actuator's dead zone encode as
// silence.
func ampCode(a float64) byte {
	if a < 0.01 {
		return 0
	}
	code := math.Round(32 * math.Log2(a*8.7))
	if code < 1 {
		code = 1
	}
	if code > 100 {
		code = 100
	}
	return byte(code)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

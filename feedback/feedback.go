package feedback

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/haptics-runtime/ahap"
	"github.com/wippyai/haptics-runtime/device"
	"github.com/wippyai/haptics-runtime/device/procon"
	"github.com/wippyai/haptics-runtime/engine"
)

// closeMargin pads one-shot playback before the player is reclaimed.
const closeMargin = 50 * time.Millisecond

var (
	mu     sync.Mutex
	shared *engine.Engine
	dev    device.Device
	log    = zap.NewNop()
)

// DefaultDevice returns the preferred output for this host: an attached
// controller when one is present, otherwise an in-process simulator.
func DefaultDevice() device.Device {
	if procon.Available() {
		return procon.New()
	}
	return device.NewSim()
}

// Supported reports whether a physical haptic output is attached.
// Triggers still work without one; they fall back to a simulated device.
func Supported() bool {
	return engine.Supported()
}

// SetDevice replaces the output used by triggers. The shared engine is
// torn down and rebuilt on the next trigger. A nil device restores the
// default selection.
func SetDevice(d device.Device) {
	mu.Lock()
	defer mu.Unlock()
	if shared != nil {
		shared.Close()
		shared = nil
	}
	dev = d
}

// SetLogger replaces the logger used by triggers. Nil restores the nop
// logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}

func logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log
}

func sharedEngine() (*engine.Engine, error) {
	mu.Lock()
	defer mu.Unlock()
	if shared != nil {
		return shared, nil
	}
	d := dev
	if d == nil {
		d = DefaultDevice()
	}
	eng, err := engine.New(d, engine.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := eng.Start(context.Background()); err != nil {
		eng.Close()
		return nil, err
	}
	shared = eng
	return shared, nil
}

// Impact plays a single tap of the given weight. Failures are logged
// and otherwise ignored.
func Impact(style ImpactStyle) {
	pat, ok := impactPatterns[style]
	if !ok {
		pat = impactPatterns[ImpactMedium]
	}
	playOnce(pat)
}

// Notification plays a short multi-tap sequence for the given outcome.
func Notification(kind NotificationKind) {
	pat, ok := notificationPatterns[kind]
	if !ok {
		pat = notificationPatterns[NotificationSuccess]
	}
	playOnce(pat)
}

// Selection plays a faint tick, suited to discrete value changes.
func Selection() {
	playOnce(selectionPattern)
}

func playOnce(pat *ahap.Pattern) {
	eng, err := sharedEngine()
	if err != nil {
		logger().Warn("haptic trigger dropped", zap.Error(err))
		return
	}
	p, err := eng.NewPlayer(pat)
	if err != nil {
		logger().Warn("haptic trigger dropped", zap.Error(err))
		return
	}
	if err := p.Play(0); err != nil {
		p.Close()
		logger().Warn("haptic trigger dropped", zap.Error(err))
		return
	}
	ttl := time.Duration(pat.Duration()*float64(time.Second)) + closeMargin
	time.AfterFunc(ttl, func() { p.Close() })
}

package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/haptics-runtime/ahap"
	"github.com/wippyai/haptics-runtime/device"
	"github.com/wippyai/haptics-runtime/errors"
)

// ParameterID identifies a dynamic parameter a player accepts at
// runtime. The values are stable and wire-visible.
type ParameterID int32

const (
	ParameterIntensityControl ParameterID = 0
	ParameterSharpnessControl ParameterID = 1
	ParameterVolumeControl    ParameterID = 2
)

// controls are the player-level dynamic parameter values, multiplied or
// added into every rendered frame.
type controls struct {
	intensity float64 // multiplier, 0..1, default 1
	sharpness float64 // additive bias, -1..1, default 0
	volume    float64 // multiplier for audio events, 0..1, default 1
}

func defaultControls() controls {
	return controls{intensity: 1, sharpness: 0, volume: 1}
}

// Player drives timed playback of one compiled pattern on one engine.
// All methods are safe for concurrent use. Scheduling times are seconds
// on the engine timeline; zero or past times mean "now".
type Player struct {
	eng  *Engine
	prog *program

	mu       sync.Mutex
	orphaned bool
	playing  bool
	stop     chan struct{}
	loop     bool
	loopFrom float64
	loopTo   float64
	ctrl     controls
}

func newPlayer(e *Engine, prog *program) *Player {
	return &Player{
		eng:  e,
		prog: prog,
		ctrl: defaultControls(),
	}
}

// Play schedules playback starting at the given engine time. The engine
// must be running; a player orphaned by an engine reset or already
// playing cannot start.
func (p *Player) Play(at float64) error {
	if !p.eng.Running() {
		return errors.PlayerFailure("engine not running", nil)
	}
	delay := delayUntil(at, p.eng.now())

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.orphaned {
		return errors.PlayerFailure("player orphaned by engine reset", nil)
	}
	if p.playing {
		return errors.PlayerFailure("player already started", nil)
	}
	p.playing = true
	p.stop = make(chan struct{})

	go p.run(p.stop, delay)
	return nil
}

// Stop schedules the end of playback at the given engine time. Stopping
// an idle player is a no-op.
func (p *Player) Stop(at float64) error {
	delay := delayUntil(at, p.eng.now())

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.orphaned {
		return errors.PlayerFailure("player orphaned by engine reset", nil)
	}
	if !p.playing {
		return nil
	}
	stop := p.stop
	if delay <= 0 {
		p.haltLocked()
		return nil
	}

	go func() {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-stop:
		case <-t.C:
			p.mu.Lock()
			if p.playing && p.stop == stop {
				p.haltLocked()
			}
			p.mu.Unlock()
		}
	}()
	return nil
}

// SetLoop configures looping over a window of the pattern timeline.
// With end == 0 the window extends to the end of the pattern. The new
// setting applies from the next wrap of the render loop.
func (p *Player) SetLoop(enabled bool, start, end float64) error {
	if start < 0 || end < 0 {
		return errors.InvalidArgument(errors.PhasePlayer, "negative loop bound")
	}
	if enabled && end > 0 && end <= start {
		return errors.InvalidArgument(errors.PhasePlayer, "loop end not after loop start")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.orphaned {
		return errors.PlayerFailure("player orphaned by engine reset", nil)
	}
	p.loop = enabled
	p.loopFrom = start
	p.loopTo = end
	return nil
}

// SendParameter schedules a dynamic parameter change at the given engine
// time. Values are clamped to the parameter's documented range.
func (p *Player) SendParameter(id ParameterID, value float64, at float64) error {
	var apply func(*controls)
	switch id {
	case ParameterIntensityControl:
		lo, hi, _ := ahap.Range(ahap.CtrlHapticIntensity)
		v := clamp(value, lo, hi)
		apply = func(c *controls) { c.intensity = v }
	case ParameterSharpnessControl:
		lo, hi, _ := ahap.Range(ahap.CtrlHapticSharpness)
		v := clamp(value, lo, hi)
		apply = func(c *controls) { c.sharpness = v }
	case ParameterVolumeControl:
		lo, hi, _ := ahap.Range(ahap.CtrlAudioVolume)
		v := clamp(value, lo, hi)
		apply = func(c *controls) { c.volume = v }
	default:
		return errors.InvalidArgument(errors.PhasePlayer, "unknown parameter id")
	}

	delay := delayUntil(at, p.eng.now())

	p.mu.Lock()
	if p.orphaned {
		p.mu.Unlock()
		return errors.PlayerFailure("player orphaned by engine reset", nil)
	}
	if delay <= 0 {
		apply(&p.ctrl)
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	go func() {
		t := time.NewTimer(delay)
		defer t.Stop()
		<-t.C
		p.mu.Lock()
		if !p.orphaned {
			apply(&p.ctrl)
		}
		p.mu.Unlock()
	}()
	return nil
}

// Playing reports whether the player currently has a render loop live.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Close stops playback and detaches the player from its engine. A closed
// player fails all further operations.
func (p *Player) Close() error {
	p.mu.Lock()
	p.haltLocked()
	p.orphaned = true
	p.mu.Unlock()

	p.eng.detachPlayer(p)
	return nil
}

// delayUntil converts an engine-time target into a wait duration given
// the current engine clock reading.
func delayUntil(at, now float64) time.Duration {
	if at <= 0 {
		return 0
	}
	d := at - now
	if d <= 0 {
		return 0
	}
	return time.Duration(d * float64(time.Second))
}

// halt signals the render loop to end. Safe without the caller holding
// p.mu.
func (p *Player) halt() {
	p.mu.Lock()
	p.haltLocked()
	p.mu.Unlock()
}

func (p *Player) haltLocked() {
	if p.playing {
		close(p.stop)
		p.playing = false
		p.stop = nil
	}
}

// orphan marks the player as detached after an engine reset or close.
func (p *Player) orphan() {
	p.mu.Lock()
	p.haltLocked()
	p.orphaned = true
	p.mu.Unlock()
}

// run is the render loop. It waits out the scheduled delay, then samples
// the compiled program at the engine's frame interval and writes frames
// to the backend until the pattern ends, the loop wraps, or stop closes.
func (p *Player) run(stop chan struct{}, delay time.Duration) {
	if delay > 0 {
		t := time.NewTimer(delay)
		select {
		case <-stop:
			t.Stop()
			return
		case <-t.C:
		}
	}

	interval := p.eng.interval
	dt := interval.Seconds()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-stop:
			p.silence()
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		ctrl := p.ctrl
		loop, from, to := p.loop, p.loopFrom, p.loopTo
		p.mu.Unlock()

		frame := p.prog.sample(t, ctrl)
		if err := p.eng.dev.WriteFrame(frame); err != nil {
			p.finish()
			p.eng.reportInterruption(err)
			return
		}

		t += dt

		end := p.prog.duration
		if loop {
			wrap := to
			if wrap <= 0 || wrap > end {
				wrap = end
			}
			if t >= wrap {
				t = from
			}
			continue
		}
		if t > end {
			p.silence()
			p.finish()
			return
		}
	}
}

// silence parks the actuator after playback. Failures here are logged,
// not surfaced; playback already ended.
func (p *Player) silence() {
	if err := p.eng.dev.WriteFrame(device.Frame{}); err != nil {
		p.eng.log.Debug("silence frame failed", zap.Error(err))
	}
}

// finish clears playing state when the render loop ends on its own.
func (p *Player) finish() {
	p.mu.Lock()
	if p.playing {
		p.playing = false
		p.stop = nil
	}
	p.mu.Unlock()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

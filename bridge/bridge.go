package bridge

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/haptics-runtime/ahap"
	"github.com/wippyai/haptics-runtime/device"
	"github.com/wippyai/haptics-runtime/engine"
	"github.com/wippyai/haptics-runtime/errors"
	"github.com/wippyai/haptics-runtime/feedback"
	"github.com/wippyai/haptics-runtime/handle"
)

const (
	kindEngine handle.Kind = iota + 1
	kindPattern
	kindPlayer
)

type engineEntry struct {
	eng *engine.Engine
}

func (e *engineEntry) Release() { e.eng.Close() }

type playerEntry struct {
	player *engine.Player
}

func (p *playerEntry) Release() { p.player.Close() }

// Bridge exposes engines, patterns and players through opaque numeric
// handles and status codes instead of Go values and errors, for callers
// that cannot hold references across a boundary. Every method is safe
// on a dead or never-issued handle and reports CodeInvalidHandle.
type Bridge struct {
	table     *handle.Table
	newDevice func() device.Device
	probe     func() bool
	log       *zap.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithDeviceFactory makes every engine created through the bridge use
// devices from f. Hardware probing follows the factory's capabilities.
func WithDeviceFactory(f func() device.Device) Option {
	return func(b *Bridge) {
		b.newDevice = f
		b.probe = func() bool { return f().Capabilities().SupportsHaptics }
	}
}

// WithLogger sets the logger passed to engines created by the bridge.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates a Bridge. Without options it drives an attached
// controller when one is present and a simulated device otherwise.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		table:     handle.NewTable(),
		newDevice: feedback.DefaultDevice,
		probe:     feedback.Supported,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Close releases every live handle. Further calls report invalid
// handles.
func (b *Bridge) Close() {
	b.table.Close()
}

// SupportsHaptics reports whether the bridge's device source can
// produce haptic output. It issues no handles and opens no devices.
func (b *Bridge) SupportsHaptics() bool {
	return b.probe()
}

// EngineCreate builds an engine on a fresh device. The callback, when
// non-nil, receives state notifications in order on a single goroutine;
// it must not block.
func (b *Bridge) EngineCreate(cb Callback) (handle.Handle, Status) {
	opts := []engine.Option{engine.WithLogger(b.log)}
	if cb != nil {
		opts = append(opts, engine.WithStateHandler(func(ev engine.Event) {
			cb(int32(ev.Code), ev.Message)
		}))
	}
	eng, err := engine.New(b.newDevice(), opts...)
	if err != nil {
		return 0, statusOf(err)
	}
	h := b.table.Put(kindEngine, &engineEntry{eng: eng})
	if h == 0 {
		eng.Close()
		return 0, statusOf(errors.EngineFailure("bridge closed", nil))
	}
	return h, ok
}

func (b *Bridge) engine(h handle.Handle) (*engine.Engine, Status) {
	v, found := b.table.Get(h, kindEngine)
	if !found {
		return nil, invalid("engine", h)
	}
	return v.(*engineEntry).eng, ok
}

// EngineStart opens the device on first use and begins playback
// dispatch.
func (b *Bridge) EngineStart(h handle.Handle) Status {
	eng, st := b.engine(h)
	if !st.OK() {
		return st
	}
	return statusOf(eng.Start(context.Background()))
}

// EngineStop halts all players on the engine.
func (b *Bridge) EngineStop(h handle.Handle) Status {
	eng, st := b.engine(h)
	if !st.OK() {
		return st
	}
	return statusOf(eng.Stop(context.Background()))
}

// EngineRelease closes the engine and retires its handle. Player
// handles created from it stay allocated but fail until released.
func (b *Bridge) EngineRelease(h handle.Handle) Status {
	if !b.table.Free(h, kindEngine) {
		return invalid("engine", h)
	}
	return ok
}

// PatternFromData decodes an AHAP document from bytes.
func (b *Bridge) PatternFromData(data []byte) (handle.Handle, Status) {
	pat, err := ahap.Decode(data)
	if err != nil {
		return 0, statusOf(err)
	}
	return b.putPattern(pat)
}

// PatternFromFile decodes an AHAP document from a file on disk.
func (b *Bridge) PatternFromFile(path string) (handle.Handle, Status) {
	pat, err := ahap.DecodeFile(path)
	if err != nil {
		return 0, statusOf(err)
	}
	return b.putPattern(pat)
}

func (b *Bridge) putPattern(pat *ahap.Pattern) (handle.Handle, Status) {
	h := b.table.Put(kindPattern, pat)
	if h == 0 {
		return 0, statusOf(errors.PatternFailure("bridge closed", nil))
	}
	return h, ok
}

// PatternRelease retires a pattern handle. Players already created from
// the pattern keep playing; they hold their own compiled copy.
func (b *Bridge) PatternRelease(h handle.Handle) Status {
	if !b.table.Free(h, kindPattern) {
		return invalid("pattern", h)
	}
	return ok
}

// PlayerCreate compiles the pattern into a player bound to the engine.
func (b *Bridge) PlayerCreate(engineH, patternH handle.Handle) (handle.Handle, Status) {
	eng, st := b.engine(engineH)
	if !st.OK() {
		return 0, st
	}
	v, found := b.table.Get(patternH, kindPattern)
	if !found {
		return 0, invalid("pattern", patternH)
	}
	player, err := eng.NewPlayer(v.(*ahap.Pattern))
	if err != nil {
		return 0, statusOf(err)
	}
	h := b.table.Put(kindPlayer, &playerEntry{player: player})
	if h == 0 {
		player.Close()
		return 0, statusOf(errors.PlayerFailure("bridge closed", nil))
	}
	return h, ok
}

func (b *Bridge) player(h handle.Handle) (*engine.Player, Status) {
	v, found := b.table.Get(h, kindPlayer)
	if !found {
		return nil, invalid("player", h)
	}
	return v.(*playerEntry).player, ok
}

// PlayerPlay starts playback at the given engine time. Zero means now.
func (b *Bridge) PlayerPlay(h handle.Handle, atTime float64) Status {
	p, st := b.player(h)
	if !st.OK() {
		return st
	}
	return statusOf(p.Play(atTime))
}

// PlayerStop stops playback at the given engine time. Zero means now.
func (b *Bridge) PlayerStop(h handle.Handle, atTime float64) Status {
	p, st := b.player(h)
	if !st.OK() {
		return st
	}
	return statusOf(p.Stop(atTime))
}

// PlayerSetLoop configures looped playback over [start, end) in pattern
// time. An end of zero loops to the end of the pattern.
func (b *Bridge) PlayerSetLoop(h handle.Handle, enabled bool, start, end float64) Status {
	p, st := b.player(h)
	if !st.OK() {
		return st
	}
	return statusOf(p.SetLoop(enabled, start, end))
}

// PlayerSendParameter adjusts a dynamic control at the given engine
// time. Values are clamped to the control's range.
func (b *Bridge) PlayerSendParameter(h handle.Handle, id int32, value, atTime float64) Status {
	p, st := b.player(h)
	if !st.OK() {
		return st
	}
	return statusOf(p.SendParameter(engine.ParameterID(id), value, atTime))
}

// PlayerRelease stops the player and retires its handle.
func (b *Bridge) PlayerRelease(h handle.Handle) Status {
	if !b.table.Free(h, kindPlayer) {
		return invalid("player", h)
	}
	return ok
}

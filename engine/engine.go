package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/haptics-runtime/ahap"
	"github.com/wippyai/haptics-runtime/device"
	"github.com/wippyai/haptics-runtime/errors"
)

// DefaultFrameInterval is the render tick used when no override is
// given. 4ms tracks the report rate HID rumble devices expect.
const DefaultFrameInterval = 4 * time.Millisecond

// Option configures an Engine at creation.
type Option func(*Engine)

// WithStateHandler installs the asynchronous state notification handler.
func WithStateHandler(h StateHandler) Option {
	return func(e *Engine) { e.handler = h }
}

// WithLogger overrides the package logger for this engine.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithFrameInterval overrides the render tick.
func WithFrameInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// Engine owns a connection to one output backend and renders player
// playback onto it. Engines deliver lifecycle notifications (stopped,
// reset, interrupted, restarted) asynchronously through the configured
// StateHandler.
type Engine struct {
	dev      device.Device
	log      *zap.Logger
	interval time.Duration
	handler  StateHandler

	mu          sync.Mutex
	opened      bool
	running     bool
	closed      bool
	interrupted bool
	epoch       time.Time
	players     map[*Player]struct{}

	events chan Event
	done   chan struct{}
}

// New creates an engine bound to an output backend. The backend is opened
// on the first Start, not at creation.
func New(dev device.Device, opts ...Option) (*Engine, error) {
	if dev == nil {
		return nil, errors.InvalidArgument(errors.PhaseEngine, "nil device")
	}

	e := &Engine{
		dev:      dev,
		log:      Logger(),
		interval: DefaultFrameInterval,
		players:  make(map[*Player]struct{}),
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	go e.dispatch()
	return e, nil
}

// dispatch delivers state notifications in order on the engine's own
// goroutine.
func (e *Engine) dispatch() {
	defer close(e.done)
	for ev := range e.events {
		e.log.Debug("engine event",
			zap.String("event", ev.Code.String()),
			zap.String("message", ev.Message))
		if e.handler != nil {
			e.handler(ev)
		}
	}
}

// emit queues a notification. Callers hold e.mu, so closed here is
// stable. A full queue drops the event rather than blocking playback.
func (e *Engine) emit(ev Event) {
	if e.closed {
		return
	}
	select {
	case e.events <- ev:
	default:
		e.log.Warn("event queue full, dropping notification",
			zap.String("event", ev.Code.String()))
	}
}

// Start opens the backend (first call) and begins accepting playback.
// Starting a running engine is a no-op. A successful Start after an
// interruption emits a restarted notification.
func (e *Engine) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.EngineFailure("start canceled", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errors.EngineFailure("engine closed", nil)
	}
	if e.running {
		return nil
	}

	if !e.opened {
		if err := e.dev.Open(); err != nil {
			if errors.CodeOf(err) == errors.CodeNotSupported {
				return err
			}
			return errors.EngineFailure("open device", err)
		}
		e.opened = true
	}

	e.running = true
	e.epoch = time.Now()

	if e.interrupted {
		e.interrupted = false
		e.emit(Event{Code: EventRestarted, Message: "engine restarted after interruption"})
	}

	e.log.Info("engine started")
	return nil
}

// Stop halts playback on all players and stops the engine. The backend
// stays open; Start resumes it. Stopping a stopped engine is a no-op.
func (e *Engine) Stop(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.EngineFailure("stop canceled", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errors.EngineFailure("engine closed", nil)
	}
	if !e.running {
		return nil
	}

	e.haltPlayersLocked()
	e.running = false
	e.emit(Event{Code: EventStopped, Message: "engine stopped"})

	e.log.Info("engine stopped")
	return nil
}

// Reset tears down all players, returns the backend to rest and leaves
// the engine stopped. Players created before the reset are orphaned and
// fail all further operations; callers recreate them after restarting.
func (e *Engine) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.EngineFailure("reset canceled", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return errors.EngineFailure("engine closed", nil)
	}

	e.haltPlayersLocked()
	for p := range e.players {
		p.orphan()
		delete(e.players, p)
	}

	if e.opened {
		if err := e.dev.Reset(); err != nil {
			e.log.Warn("device reset failed", zap.Error(err))
		}
	}

	e.running = false
	e.emit(Event{Code: EventReset, Message: "engine reset"})

	e.log.Info("engine reset")
	return nil
}

// Close stops playback, closes the backend and releases the engine.
// Close is idempotent; every other operation on a closed engine fails.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}

	e.haltPlayersLocked()
	for p := range e.players {
		p.orphan()
		delete(e.players, p)
	}

	var err error
	if e.opened {
		err = e.dev.Close()
		e.opened = false
	}

	e.closed = true
	e.running = false
	close(e.events)
	e.mu.Unlock()

	<-e.done

	if err != nil {
		return errors.EngineFailure("close device", err)
	}
	return nil
}

// Running reports whether the engine is accepting playback.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Capabilities reports what the underlying backend can reproduce.
func (e *Engine) Capabilities() device.Capabilities {
	return e.dev.Capabilities()
}

// NewPlayer creates a player bound to this engine and the given pattern.
// The pattern is compiled once; later mutations of slices previously
// obtained from it cannot affect playback.
func (e *Engine) NewPlayer(pattern *ahap.Pattern) (*Player, error) {
	if pattern == nil {
		return nil, errors.InvalidArgument(errors.PhaseEngine, "nil pattern")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, errors.EngineFailure("engine closed", nil)
	}

	p := newPlayer(e, compile(pattern))
	e.players[p] = struct{}{}
	return p, nil
}

// now returns seconds on the engine timeline. Zero when stopped.
func (e *Engine) now() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nowLocked()
}

func (e *Engine) nowLocked() float64 {
	if !e.running {
		return 0
	}
	return time.Since(e.epoch).Seconds()
}

// haltPlayersLocked signals every playing player to stop. Render
// goroutines drain on their own; they re-check engine state before
// touching the device.
func (e *Engine) haltPlayersLocked() {
	for p := range e.players {
		p.halt()
	}
}

// reportInterruption is called from a render goroutine when the backend
// fails mid-playback. The engine stops, remembers the interruption and
// notifies; the next successful Start emits restarted.
func (e *Engine) reportInterruption(cause error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || !e.running {
		return
	}

	e.haltPlayersLocked()
	e.running = false
	e.interrupted = true
	e.emit(Event{Code: EventInterrupted, Message: cause.Error()})

	e.log.Warn("engine interrupted", zap.Error(cause))
}

// detachPlayer removes a released player from the engine's set.
func (e *Engine) detachPlayer(p *Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.players, p)
}

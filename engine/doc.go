// Package engine renders haptic patterns onto an output backend.
//
// An Engine owns one device.Device. Players are bound to an engine and
// one decoded pattern at creation, and drive playback with time-stamped
// calls:
//
//	eng, err := engine.New(device.NewSim(),
//	    engine.WithStateHandler(func(ev engine.Event) {
//	        log.Printf("engine: %s", ev.Code)
//	    }))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	player, err := eng.NewPlayer(pattern)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	player.Play(0)
//
// # State notifications
//
// Engines report lifecycle transitions (stopped, reset, interrupted,
// restarted) through the StateHandler, delivered in order on a dispatch
// goroutine the engine owns. Handlers run off the caller's goroutine and
// must do their own synchronization.
//
// A device write failure during playback interrupts the engine: players
// halt, an interrupted notification fires, and the next successful Start
// emits restarted. Reset orphans all existing players; they must be
// recreated.
//
// # Rendering
//
// Playback samples the pattern at a fixed frame interval into amplitude
// frames (intensity and sharpness) that any rumble-class device can
// reproduce. Faithful vendor-style waveform synthesis is out of scope;
// the envelope model covers transient spikes, sustained events with
// attack/decay/release shaping, parameter curves and dynamic parameter
// controls.
package engine

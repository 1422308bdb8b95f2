package engine

import (
	"context"
	"testing"
	"time"

	"github.com/wippyai/haptics-runtime/ahap"
	"github.com/wippyai/haptics-runtime/errors"
)

func TestPlayer_PlayRendersFrames(t *testing.T) {
	ctx := context.Background()
	eng, sim := newTestEngine(t, nil)
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}

	player, err := eng.NewPlayer(shortPattern(t))
	if err != nil {
		t.Fatal(err)
	}
	if player.Playing() {
		t.Error("player playing before Play")
	}

	if err := player.Play(0); err != nil {
		t.Fatalf("Play: %v", err)
	}

	waitFor(t, 2*time.Second, "playback to finish", func() bool {
		return !player.Playing()
	})

	frames := sim.Frames()
	if len(frames) < 5 {
		t.Fatalf("got %d frames, want at least 5", len(frames))
	}

	var active int
	for _, f := range frames {
		if f.Frame.Intensity > 0 {
			active++
			if f.Frame.Intensity > 0.6+1e-9 {
				t.Fatalf("frame intensity %g above event intensity", f.Frame.Intensity)
			}
		}
	}
	if active == 0 {
		t.Fatal("no active frames rendered")
	}

	// Playback parks the actuator with a silence frame.
	if last := frames[len(frames)-1]; last.Frame.Intensity != 0 {
		t.Errorf("final frame intensity = %g, want 0", last.Frame.Intensity)
	}
}

func TestPlayer_PlayRequiresRunningEngine(t *testing.T) {
	eng, _ := newTestEngine(t, nil)

	player, err := eng.NewPlayer(shortPattern(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := player.Play(0); errors.CodeOf(err) != errors.CodePlayer {
		t.Errorf("Play on stopped engine: %v", err)
	}
}

func TestPlayer_DoubleStart(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, nil)
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}

	long, err := ahap.Build([]ahap.Event{ahap.Continuous(0, 5, 0.5, 0.5)}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	player, err := eng.NewPlayer(long)
	if err != nil {
		t.Fatal(err)
	}

	if err := player.Play(0); err != nil {
		t.Fatal(err)
	}
	if err := player.Play(0); errors.CodeOf(err) != errors.CodePlayer {
		t.Errorf("second Play: %v", err)
	}

	if err := player.Stop(0); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	waitFor(t, time.Second, "player to stop", func() bool {
		return !player.Playing()
	})

	// A stopped player can start again.
	if err := player.Play(0); err != nil {
		t.Fatalf("Play after Stop: %v", err)
	}
}

func TestPlayer_Loop(t *testing.T) {
	ctx := context.Background()
	eng, sim := newTestEngine(t, nil)
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}

	player, err := eng.NewPlayer(shortPattern(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := player.SetLoop(true, 0, 0); err != nil {
		t.Fatalf("SetLoop: %v", err)
	}

	if err := player.Play(0); err != nil {
		t.Fatal(err)
	}

	// The pattern is 50ms; without looping it would be long gone.
	time.Sleep(200 * time.Millisecond)
	if !player.Playing() {
		t.Fatal("looping player stopped on its own")
	}
	if len(sim.Frames()) < 20 {
		t.Errorf("got %d frames across loop iterations", len(sim.Frames()))
	}

	if err := player.Stop(0); err != nil {
		t.Fatal(err)
	}
	waitFor(t, time.Second, "looping player to stop", func() bool {
		return !player.Playing()
	})
}

func TestPlayer_SetLoopValidation(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	player, err := eng.NewPlayer(shortPattern(t))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		enabled        bool
		start, end     float64
		wantInvalidArg bool
	}{
		{"negative start", true, -1, 0, true},
		{"negative end", true, 0, -1, true},
		{"end before start", true, 0.5, 0.2, true},
		{"end equals start", true, 0.5, 0.5, true},
		{"open end", true, 0.1, 0, false},
		{"disable", false, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := player.SetLoop(tt.enabled, tt.start, tt.end)
			got := errors.CodeOf(err) == errors.CodeInvalidArgument
			if got != tt.wantInvalidArg {
				t.Errorf("SetLoop(%v, %g, %g) = %v", tt.enabled, tt.start, tt.end, err)
			}
		})
	}
}

func TestPlayer_SendParameter(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	player, err := eng.NewPlayer(shortPattern(t))
	if err != nil {
		t.Fatal(err)
	}

	if err := player.SendParameter(ParameterIntensityControl, 0.5, 0); err != nil {
		t.Fatalf("intensity control: %v", err)
	}
	if err := player.SendParameter(ParameterSharpnessControl, -0.5, 0); err != nil {
		t.Fatalf("sharpness control: %v", err)
	}
	if err := player.SendParameter(ParameterVolumeControl, 0.7, 0); err != nil {
		t.Fatalf("volume control: %v", err)
	}
	if err := player.SendParameter(ParameterID(99), 1, 0); errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Errorf("unknown parameter id: %v", err)
	}

	player.mu.Lock()
	ctrl := player.ctrl
	player.mu.Unlock()
	if ctrl.intensity != 0.5 || ctrl.sharpness != -0.5 || ctrl.volume != 0.7 {
		t.Errorf("controls = %+v", ctrl)
	}
}

func TestPlayer_SendParameterClamps(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	player, err := eng.NewPlayer(shortPattern(t))
	if err != nil {
		t.Fatal(err)
	}

	if err := player.SendParameter(ParameterIntensityControl, 7, 0); err != nil {
		t.Fatal(err)
	}
	if err := player.SendParameter(ParameterSharpnessControl, -7, 0); err != nil {
		t.Fatal(err)
	}

	player.mu.Lock()
	ctrl := player.ctrl
	player.mu.Unlock()
	if ctrl.intensity != 1 {
		t.Errorf("intensity = %g, want clamp to 1", ctrl.intensity)
	}
	if ctrl.sharpness != -1 {
		t.Errorf("sharpness = %g, want clamp to -1", ctrl.sharpness)
	}
}

func TestPlayer_DeferredParameter(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, nil)
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}

	player, err := eng.NewPlayer(shortPattern(t))
	if err != nil {
		t.Fatal(err)
	}

	// Scheduled 30ms out on the engine timeline.
	at := eng.now() + 0.03
	if err := player.SendParameter(ParameterIntensityControl, 0.25, at); err != nil {
		t.Fatal(err)
	}

	player.mu.Lock()
	early := player.ctrl.intensity
	player.mu.Unlock()
	if early != 1 {
		t.Errorf("intensity changed early: %g", early)
	}

	waitFor(t, time.Second, "deferred parameter", func() bool {
		player.mu.Lock()
		defer player.mu.Unlock()
		return player.ctrl.intensity == 0.25
	})
}

func TestPlayer_ScheduledStop(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, nil)
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}

	long, err := ahap.Build([]ahap.Event{ahap.Continuous(0, 5, 0.5, 0.5)}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	player, err := eng.NewPlayer(long)
	if err != nil {
		t.Fatal(err)
	}

	if err := player.Play(0); err != nil {
		t.Fatal(err)
	}
	if err := player.Stop(eng.now() + 0.05); err != nil {
		t.Fatal(err)
	}

	if !player.Playing() {
		t.Error("player stopped before scheduled time")
	}
	waitFor(t, time.Second, "scheduled stop", func() bool {
		return !player.Playing()
	})
}

func TestPlayer_Close(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, nil)
	if err := eng.Start(ctx); err != nil {
		t.Fatal(err)
	}

	player, err := eng.NewPlayer(shortPattern(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := player.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := player.Play(0); errors.CodeOf(err) != errors.CodePlayer {
		t.Errorf("Play on closed player: %v", err)
	}
	if err := player.SetLoop(true, 0, 0); errors.CodeOf(err) != errors.CodePlayer {
		t.Errorf("SetLoop on closed player: %v", err)
	}
	if err := player.SendParameter(ParameterIntensityControl, 1, 0); errors.CodeOf(err) != errors.CodePlayer {
		t.Errorf("SendParameter on closed player: %v", err)
	}
}

func TestEngine_NewPlayerNilPattern(t *testing.T) {
	eng, _ := newTestEngine(t, nil)
	if _, err := eng.NewPlayer(nil); errors.CodeOf(err) != errors.CodeInvalidArgument {
		t.Errorf("NewPlayer(nil): %v", err)
	}
}

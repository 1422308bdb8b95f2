// Package haptics is the root of a haptic playback runtime built around
// the AHAP pattern format.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	haptics-runtime/     Root package with hardware availability helpers
//	├── ahap/            AHAP pattern decoding, validation and construction
//	├── engine/          Playback engine, players and state notifications
//	├── device/          Output device abstraction and simulator
//	│   └── procon/      Nintendo Pro Controller rumble backend
//	├── feedback/        Fire-and-forget impact/notification/selection triggers
//	├── bridge/          Flat handle-and-status surface for embedding hosts
//	├── api/             REST API over the bridge
//	├── handle/          Opaque handle table
//	└── errors/          Structured error types with stable numeric codes
//
// # Quick Start
//
// Decode a pattern and play it:
//
//	pattern, err := ahap.DecodeFile("tap.ahap")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.New(feedback.DefaultDevice())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer eng.Close()
//
//	eng.Start(ctx)
//	player, _ := eng.NewPlayer(pattern)
//	player.Play(0)
//
// For a single tap without any setup, use the feedback package:
//
//	feedback.Impact(feedback.ImpactMedium)
package haptics

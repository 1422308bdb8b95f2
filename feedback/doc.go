// Package feedback provides fire-and-forget haptic triggers: impacts,
// notifications, and selection ticks. Triggers share one lazily started
// engine and never return errors; failures are logged and the call is a
// no-op. For scheduled or looped playback use the engine package
// directly.
package feedback

package engine

// EventCode identifies an asynchronous engine state transition. The
// values are stable and wire-visible, like the status codes in the
// errors package.
type EventCode int32

const (
	EventStopped     EventCode = 1
	EventReset       EventCode = 2
	EventInterrupted EventCode = 3
	EventRestarted   EventCode = 4
)

// String returns the conventional name for an event code.
func (c EventCode) String() string {
	switch c {
	case EventStopped:
		return "stopped"
	case EventReset:
		return "reset"
	case EventInterrupted:
		return "interrupted"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event is an asynchronous engine state notification.
type Event struct {
	Code    EventCode
	Message string
}

// StateHandler receives engine state notifications. The handler runs on a
// goroutine owned by the engine, never on the goroutine that triggered
// the transition; it must synchronize access to any shared state itself.
type StateHandler func(Event)

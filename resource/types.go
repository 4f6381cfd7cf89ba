package resource

// Handle is an opaque reference to a live entry in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType enumerates lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event represents a lifecycle event for one table entry.
type Event[T any] struct {
	Value  T
	Handle Handle
	Type   EventType
}

// Observer receives notifications about lifecycle events.
type Observer[T any] interface {
	OnEvent(Event[T])
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[T any] func(Event[T])

// OnEvent calls f(e).
func (f ObserverFunc[T]) OnEvent(e Event[T]) { f(e) }

// Dropper is optionally implemented by values that need cleanup when
// their entry is removed.
type Dropper interface {
	Drop()
}

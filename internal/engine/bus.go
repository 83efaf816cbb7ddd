package engine

import "fmt"

// EventKind is one of the two notifications an Engine publishes.
type EventKind int

const (
	EventDrawingChanged EventKind = iota + 1
	EventToolChanged
)

func (k EventKind) String() string {
	switch k {
	case EventDrawingChanged:
		return "drawing-changed"
	case EventToolChanged:
		return "tool-changed"
	default:
		return "unknown"
	}
}

// ParseEventKind maps "drawing-changed" and "tool-changed" to their kinds.
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "drawing-changed":
		return EventDrawingChanged, nil
	case "tool-changed":
		return EventToolChanged, nil
	default:
		return 0, fmt.Errorf("unknown event %q", s)
	}
}

// Listener is invoked synchronously on publish.
type Listener func(EventKind)

// Bus is a synchronous observer list keyed by event kind. Listeners run in
// subscription order on the publishing goroutine; a panicking listener
// aborts the rest of that publish.
type Bus struct {
	listeners map[EventKind][]Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[EventKind][]Listener)}
}

// Subscribe registers fn for kind.
func (b *Bus) Subscribe(kind EventKind, fn Listener) {
	b.listeners[kind] = append(b.listeners[kind], fn)
}

// Publish calls every listener of kind.
func (b *Bus) Publish(kind EventKind) {
	for _, fn := range b.listeners[kind] {
		fn(kind)
	}
}

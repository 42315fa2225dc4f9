package game

type EventType int

const (
	EventResize EventType = iota
	EventBurst
	EventBulletFired
	EventBulletRemoved
)

func (t EventType) String() string {
	switch t {
	case EventResize:
		return "resize"
	case EventBurst:
		return "burst"
	case EventBulletFired:
		return "bullet_fired"
	case EventBulletRemoved:
		return "bullet_removed"
	}
	return "unknown"
}

type Event struct {
	Type  EventType
	Frame int
	X, Y  float64
	Data  int // Generic payload (new width for resize, splat count for burst).
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the frame loop goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

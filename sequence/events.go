package sequence

type EventKind string

const (
	EventPhaseEntered EventKind = "phase_entered"
	EventPhaseExited  EventKind = "phase_exited"
	EventCycled       EventKind = "cycled"
	EventFinished     EventKind = "finished"
)

// Event is something a sequencer wants its host to know about. Data carries
// scene-specific payloads such as a landed theme.
type Event struct {
	Kind  EventKind
	Scene string
	Phase string
	At    float64
	Data  any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

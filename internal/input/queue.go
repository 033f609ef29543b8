package input

// DefaultQueueSize is large enough for several frames of pointer motion.
const DefaultQueueSize = 256

// Queue is a bounded multi-producer, single-consumer event queue.
type Queue struct {
	events chan Event
}

// Poster accepts events from a producer.
type Poster interface {
	Post(ev Event) bool
}

// NewQueue creates a queue holding up to size events.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{events: make(chan Event, size)}
}

// Post adds ev without blocking. It reports false when the queue is full
// and the event was dropped.
func (q *Queue) Post(ev Event) bool {
	select {
	case q.events <- ev:
		return true
	default:
		return false
	}
}

// Drain returns the events pending at the time of the call, in arrival
// order, without blocking. Events posted meanwhile wait for the next call.
func (q *Queue) Drain() []Event {
	n := len(q.events)
	if n == 0 {
		return nil
	}
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, <-q.events)
	}
	return events
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

package events

// Queue collects events for one tick. A nil *Queue discards everything,
// so systems can be called without an event consumer.
type Queue struct {
	tick   int32
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 64)}
}

// SetTick sets the tick stamped onto subsequently pushed events.
func (q *Queue) SetTick(tick int32) {
	if q == nil {
		return
	}
	q.tick = tick
}

// Push appends an event.
func (q *Queue) Push(p Payload) {
	if q == nil || p == nil {
		return
	}
	q.events = append(q.events, Event{Tick: q.tick, Kind: p.Kind(), Payload: p})
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.events)
}

// Drain returns the pending events and empties the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]Event, 0, cap(out))
	return out
}

// Count returns how many events of kind are in evs.
func Count(evs []Event, kind Kind) int {
	n := 0
	for i := range evs {
		if evs[i].Kind == kind {
			n++
		}
	}
	return n
}

// OfKind returns the events of kind in evs, in order.
func OfKind(evs []Event, kind Kind) []Event {
	var out []Event
	for i := range evs {
		if evs[i].Kind == kind {
			out = append(out, evs[i])
		}
	}
	return out
}

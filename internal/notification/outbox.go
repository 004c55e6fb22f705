package notification

import "sync"

// Outbox is a bounded, thread-safe ring buffer of pending events. When
// full, the oldest events are dropped to make room: notifications are
// best-effort and must never block or fail a state transition.
type Outbox struct {
	mu       sync.Mutex
	events   []Event
	head     int // next write position
	tail     int // next read position
	count    int
	capacity int

	dropped int64
}

// NewOutbox creates an outbox with the given capacity.
func NewOutbox(capacity int) *Outbox {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Outbox{
		events:   make([]Event, capacity),
		capacity: capacity,
	}
}

// Publish adds an event, dropping the oldest if necessary. Never blocks.
func (o *Outbox) Publish(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.count >= o.capacity {
		o.tail = (o.tail + 1) % o.capacity
		o.count--
		o.dropped++
	}

	o.events[o.head] = event
	o.head = (o.head + 1) % o.capacity
	o.count++
}

// DequeueBatch removes up to n events from the outbox.
func (o *Outbox) DequeueBatch(n int) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.count == 0 {
		return nil
	}
	if n > o.count {
		n = o.count
	}

	result := make([]Event, n)
	for i := 0; i < n; i++ {
		result[i] = o.events[o.tail]
		o.events[o.tail] = nil
		o.tail = (o.tail + 1) % o.capacity
	}
	o.count -= n
	return result
}

// Len returns the current number of pending events.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.count
}

// Dropped returns the total number of events lost to overflow.
func (o *Outbox) Dropped() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped
}

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrQueueClosed is returned by Receive once the producer has closed the queue
// and every buffered event has been consumed
var ErrQueueClosed = errors.New("event queue closed")

// Queue is an unbounded FIFO carrying events from one producer to one consumer.
// Push never blocks and never drops; Receive blocks until an event is available.
type Queue struct {
	mu     sync.Mutex
	items  []Event
	closed bool
	cause  error
	// Holds at most one pending wake-up for the consumer
	ready chan struct{}
}

// NewQueue creates an empty, open Queue
func NewQueue() *Queue {
	return &Queue{
		items: make([]Event, 0, 16),
		ready: make(chan struct{}, 1),
	}
}

// Push appends an event. Returns false if the queue has been closed.
func (q *Queue) Push(ev Event) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, ev)
	q.mu.Unlock()

	q.wake()
	return true
}

// Close stops the queue from accepting events. cause is reported by Receive
// after the buffer drains; a nil cause reports ErrQueueClosed alone.
// Only the first call has effect.
func (q *Queue) Close(cause error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.cause = cause
	q.mu.Unlock()

	q.wake()
}

// Receive removes and returns the oldest event, blocking until one is pushed,
// the queue is closed, or ctx is done
func (q *Queue) Receive(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			ev := q.items[0]
			q.items[0] = Event{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return ev, nil
		}
		if q.closed {
			cause := q.cause
			q.mu.Unlock()
			if cause != nil {
				return Event{}, fmt.Errorf("%w: %w", ErrQueueClosed, cause)
			}
			return Event{}, ErrQueueClosed
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-q.ready:
		}
	}
}

// Len returns the number of buffered events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) wake() {
	select {
	case q.ready <- struct{}{}:
	default:
		// A wake-up is already pending
	}
}

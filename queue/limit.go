package queue

import "errors"

// ErrInvalidCapacity is returned when a size limit is not positive.
var ErrInvalidCapacity = errors.New("queue capacity must be positive")

type limitQueue struct {
	Queue
	capacity int
}

// WithLimit wraps q so that Insert is rejected once the queue holds capacity
// elements. IsFull reports true at capacity (or whenever the wrapped queue
// itself reports full). Remove forwards unchanged.
func WithLimit(q Queue, capacity int) (Queue, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &limitQueue{Queue: q, capacity: capacity}, nil
}

func (q *limitQueue) Insert(v int64) bool {
	if q.IsFull() {
		return false
	}

	return q.Queue.Insert(v)
}

func (q *limitQueue) IsFull() bool {
	return q.Queue.Size() >= q.capacity || q.Queue.IsFull()
}

// Bounded composes the usual chain: a FIFO core wrapped in Safety, then in a
// size limit. The result refuses both underflow and overflow as ordinary
// failures.
func Bounded(capacity int) (Queue, error) {
	return WithLimit(WithSafety(New()), capacity)
}

package queue

type safeQueue struct {
	Queue
}

// WithSafety wraps q so that Remove on an empty queue reports failure
// instead of reaching the core's underflow panic. All other operations
// forward to the wrapped queue unchanged.
func WithSafety(q Queue) Queue {
	return &safeQueue{Queue: q}
}

func (q *safeQueue) Remove() (int64, bool) {
	if q.Queue.IsEmpty() {
		return 0, false
	}

	return q.Queue.Remove()
}

package queue

// New creates the unsynchronized FIFO core.
//
// Insert always succeeds and IsFull is always false; bounding is the job of
// the Limit decorator. Remove on an empty core panics - wrap the core with
// WithSafety (or check IsEmpty first) to get a recoverable failure instead.
func New() Queue {
	return &fifo{}
}

type fifo struct {
	head, bottom *entry
	count        int
}

type entry struct {
	Value int64
	Next  *entry
}

func (q *fifo) Insert(v int64) bool {
	bottom := &entry{v, nil}
	if q.bottom != nil {
		q.bottom.Next = bottom
	}
	q.bottom = bottom
	if q.head == nil {
		q.head = bottom
	}
	q.count += 1
	return true
}

func (q *fifo) Remove() (result int64, ok bool) {
	if q.head == nil {
		panic("queue: remove from empty queue")
	}

	result = q.head.Value
	q.head = q.head.Next
	if q.head == nil {
		q.bottom = nil
	}
	q.count -= 1
	return result, true
}

func (q *fifo) IsEmpty() bool {
	return q.head == nil
}

func (q *fifo) IsFull() bool {
	return false
}

func (q *fifo) Size() int {
	return q.count
}

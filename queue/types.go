package queue

// Queue is the capability set shared by the core container and every
// decorator wrapping it. Implementations carry no synchronization of their
// own; callers that share a queue across goroutines must serialize access
// externally (see the strategy package).
type Queue interface {
	// Insert appends v. The result reports whether the value was accepted.
	Insert(v int64) bool
	// Remove takes one element. The second result reports success; what
	// happens on an empty queue depends on the implementation.
	Remove() (int64, bool)
	IsEmpty() bool
	IsFull() bool
	Size() int
}

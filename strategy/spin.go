package strategy

import "github.com/coordq/coordq-lib/queue"

// NewSpin creates the busy-wait baseline: lock, attempt, unlock, and on
// failure retry immediately until success or stop. Simplest possible
// correctness; trades CPU for latency.
func NewSpin(q queue.Queue, opts ...Option) Strategy {
	s := newSettings(opts...)
	return &spin{base: base{queue: q, logger: s.logger}}
}

type spin struct {
	base
}

func (s *spin) Produce(v int64) bool {
	for !s.stop.Load() {
		s.lock.Lock()
		ok := s.queue.Insert(v)
		s.lock.Unlock()
		if ok {
			return true
		}
	}
	return false
}

func (s *spin) Consume() (int64, bool) {
	for !s.stop.Load() {
		s.lock.Lock()
		v, ok := s.queue.Remove()
		s.lock.Unlock()
		if ok {
			return v, true
		}
	}
	return 0, false
}

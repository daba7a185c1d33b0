package strategy

import (
	"runtime"
	"time"

	"github.com/coordq/coordq-lib/queue"
)

// FixedDelay returns a Delay that sleeps for d on every failed attempt.
func FixedDelay(d time.Duration) Delay {
	return func() {
		time.Sleep(d)
	}
}

// NewSleepPoll creates the polling strategy: like NewSpin, but the delay
// policy runs between failed attempts, outside the lock. The default policy
// yields the processor; use WithDelay(FixedDelay(d)) for fixed pacing.
func NewSleepPoll(q queue.Queue, opts ...Option) Strategy {
	s := newSettings(opts...)
	if s.delay == nil {
		s.delay = runtime.Gosched
	}
	return &sleepPoll{base: base{queue: q, logger: s.logger}, delay: s.delay}
}

type sleepPoll struct {
	base
	delay Delay
}

func (s *sleepPoll) Produce(v int64) bool {
	for !s.stop.Load() {
		s.lock.Lock()
		ok := s.queue.Insert(v)
		s.lock.Unlock()
		if ok {
			return true
		}
		s.delay()
	}
	return false
}

func (s *sleepPoll) Consume() (int64, bool) {
	for !s.stop.Load() {
		s.lock.Lock()
		v, ok := s.queue.Remove()
		s.lock.Unlock()
		if ok {
			return v, true
		}
		s.delay()
	}
	return 0, false
}

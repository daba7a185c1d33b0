// Package strategy provides interchangeable coordination disciplines for
// producer and consumer goroutines sharing one queue.
//
// A Strategy owns the mutex (and, for WaitSignal, the condition variables)
// guarding all access to the queue it was built around; the queue itself is
// unsynchronized. Strategies retry until the underlying operation succeeds,
// so the queue must report overflow and underflow as failures rather than
// panicking - wrap it with queue.WithSafety, or use queue.Bounded.
package strategy

import (
	"sync"
	"sync/atomic"

	"github.com/coordq/coordq-lib/queue"
	"github.com/hashicorp/go-hclog"
)

// Strategy is a coordination policy around one shared queue. Produce and
// Consume block the calling goroutine until the operation completes or Stop
// is observed; the bool result reports whether the operation completed.
//
// A strategy is bound to its queue for one run. Once stopped it is never
// reused; build a fresh strategy and queue pair per run.
type Strategy interface {
	Produce(v int64) bool
	Consume() (int64, bool)

	// Stop requests cooperative cancellation. It is one-way and idempotent
	// and promptly unblocks every goroutine inside Produce or Consume.
	Stop()
	Stopped() bool
}

// Delay suspends the calling goroutine for an implementation-defined short
// interval. Used by NewSleepPoll between failed attempts.
type Delay func()

type settings struct {
	logger hclog.Logger
	delay  Delay
}

// Option configures a strategy at construction time.
type Option func(*settings)

// WithLogger attaches a logger for lifecycle diagnostics.
func WithLogger(logger hclog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDelay sets the pacing policy for NewSleepPoll. Strategies that never
// sleep ignore it.
func WithDelay(delay Delay) Option {
	return func(s *settings) {
		if delay != nil {
			s.delay = delay
		}
	}
}

type base struct {
	queue  queue.Queue
	lock   sync.Mutex
	stop   atomic.Bool
	logger hclog.Logger
}

func newSettings(opts ...Option) settings {
	s := settings{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (b *base) Stop() {
	if !b.stop.Swap(true) {
		b.logger.Debug("stop requested")
	}
}

func (b *base) Stopped() bool {
	return b.stop.Load()
}

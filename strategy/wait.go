package strategy

import (
	"sync"

	"github.com/coordq/coordq-lib/queue"
)

// NewWaitSignal creates the condition-variable strategy. Producers sleep on
// the notFull condition and consumers on notEmpty; a successful insert that
// took the queue from empty to non-empty signals notEmpty, and a removal
// that took it from full to non-full signals notFull. No busy-waiting, no
// polling delay, at the price of getting the wake conditions exactly right.
func NewWaitSignal(q queue.Queue, opts ...Option) Strategy {
	s := newSettings(opts...)
	w := &waitSignal{base: base{queue: q, logger: s.logger}}
	w.notEmpty = sync.NewCond(&w.lock)
	w.notFull = sync.NewCond(&w.lock)
	return w
}

type waitSignal struct {
	base
	notEmpty *sync.Cond
	notFull  *sync.Cond
}

func (w *waitSignal) Produce(v int64) bool {
	w.lock.Lock()
	defer w.lock.Unlock()

	// Predicate loop: re-check after every wake, spurious ones included.
	for !w.stop.Load() {
		wasEmpty := w.queue.IsEmpty()
		if w.queue.Insert(v) {
			if wasEmpty {
				w.notEmpty.Signal()
			}
			return true
		}
		w.notFull.Wait()
	}
	return false
}

func (w *waitSignal) Consume() (int64, bool) {
	w.lock.Lock()
	defer w.lock.Unlock()

	for !w.stop.Load() {
		wasFull := w.queue.IsFull()
		if v, ok := w.queue.Remove(); ok {
			if wasFull {
				w.notFull.Signal()
			}
			return v, true
		}
		w.notEmpty.Wait()
	}
	return 0, false
}

// Stop sets the flag under the lock so no waiter can slip between its stop
// check and Wait, then wakes both sides.
func (w *waitSignal) Stop() {
	w.lock.Lock()
	first := !w.stop.Swap(true)
	w.lock.Unlock()

	w.notEmpty.Broadcast()
	w.notFull.Broadcast()
	if first {
		w.logger.Debug("stop requested")
	}
}

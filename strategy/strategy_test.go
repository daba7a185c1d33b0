package strategy_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coordq/coordq-lib/queue"
	"github.com/coordq/coordq-lib/strategy"
)

type factory struct {
	name string
	make func(q queue.Queue) strategy.Strategy
}

func factories() []factory {
	return []factory{
		{"Spin", func(q queue.Queue) strategy.Strategy {
			return strategy.NewSpin(q)
		}},
		{"SleepPoll", func(q queue.Queue) strategy.Strategy {
			return strategy.NewSleepPoll(q, strategy.WithDelay(strategy.FixedDelay(100*time.Microsecond)))
		}},
		{"WaitSignal", func(q queue.Queue) strategy.Strategy {
			return strategy.NewWaitSignal(q)
		}},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			q, err := queue.Bounded(8)
			if err != nil {
				t.Fatal(err)
			}
			s := f.make(q)
			for i := int64(0); i < 8; i++ {
				if !s.Produce(i) {
					t.Fatalf("produce %d did not complete", i)
				}
			}
			for i := int64(0); i < 8; i++ {
				v, ok := s.Consume()
				if !ok || v != i {
					t.Fatalf("consume = %v,%v want %d,true", v, ok, i)
				}
			}
			if q.Size() != 0 {
				t.Fatalf("size = %d want 0 after draining", q.Size())
			}
		})
	}
}

// A consumer blocked on an empty queue must complete promptly once a
// producer inserts a single value.
func TestConsumerWakes(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			q, err := queue.Bounded(4)
			if err != nil {
				t.Fatal(err)
			}
			s := f.make(q)
			got := make(chan int64, 1)
			go func() {
				if v, ok := s.Consume(); ok {
					got <- v
				}
			}()
			time.Sleep(10 * time.Millisecond)
			if !s.Produce(42) {
				t.Fatal("produce did not complete")
			}
			select {
			case v := <-got:
				if v != 42 {
					t.Fatalf("consumed %d want 42", v)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("consumer never woke")
			}
		})
	}
}

// A producer blocked on a full queue must complete promptly once a consumer
// removes a value.
func TestProducerWakes(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			q, err := queue.Bounded(1)
			if err != nil {
				t.Fatal(err)
			}
			s := f.make(q)
			if !s.Produce(1) {
				t.Fatal("initial produce did not complete")
			}
			done := make(chan struct{})
			go func() {
				defer close(done)
				if !s.Produce(2) {
					t.Error("blocked produce did not complete")
				}
			}()
			time.Sleep(10 * time.Millisecond)
			if v, ok := s.Consume(); !ok || v != 1 {
				t.Fatalf("consume = %v,%v want 1,true", v, ok)
			}
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("producer never woke")
			}
		})
	}
}

// Stop must unblock a consumer waiting on an empty queue and a producer
// waiting on a full one, even though neither ever becomes satisfiable.
func TestStopUnblocks(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			emptyQ, err := queue.Bounded(1)
			if err != nil {
				t.Fatal(err)
			}
			fullQ, err := queue.Bounded(1)
			if err != nil {
				t.Fatal(err)
			}
			consumerSide := f.make(emptyQ)
			producerSide := f.make(fullQ)
			if consumerSide.Stopped() {
				t.Fatal("fresh strategy reports stopped")
			}
			if !producerSide.Produce(1) {
				t.Fatal("filling produce did not complete")
			}

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				if _, ok := consumerSide.Consume(); ok {
					t.Error("consume on empty queue completed")
				}
			}()
			go func() {
				defer wg.Done()
				if producerSide.Produce(2) {
					t.Error("produce into full queue completed")
				}
			}()

			time.Sleep(20 * time.Millisecond)
			consumerSide.Stop()
			consumerSide.Stop() // idempotent
			producerSide.Stop()

			joined := make(chan struct{})
			go func() {
				wg.Wait()
				close(joined)
			}()
			select {
			case <-joined:
			case <-time.After(time.Second):
				t.Fatal("stop did not unblock workers within a second")
			}
			if !consumerSide.Stopped() || !producerSide.Stopped() {
				t.Fatal("expected Stopped() after Stop()")
			}
		})
	}
}

// Conservation under contention: with several producers and consumers the
// reported size never leaves [0, capacity] and successful inserts minus
// successful removals equals the final size exactly.
func TestConcurrentConservation(t *testing.T) {
	const (
		capacity  = 4
		producers = 3
		consumers = 2
	)
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			q, err := queue.Bounded(capacity)
			if err != nil {
				t.Fatal(err)
			}
			s := f.make(q)

			var produced, consumed atomic.Int64
			var wg sync.WaitGroup
			for p := 0; p < producers; p++ {
				wg.Add(1)
				go func(p int) {
					defer wg.Done()
					for i := int64(0); ; i++ {
						if !s.Produce(int64(p)<<32 | i) {
							return
						}
						produced.Add(1)
					}
				}(p)
			}
			for c := 0; c < consumers; c++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for {
						if _, ok := s.Consume(); !ok {
							return
						}
						consumed.Add(1)
					}
				}()
			}

			time.Sleep(200 * time.Millisecond)
			s.Stop()
			wg.Wait()

			size := q.Size()
			if size < 0 || size > capacity {
				t.Fatalf("final size %d outside [0, %d]", size, capacity)
			}
			if got := produced.Load() - consumed.Load(); got != int64(size) {
				t.Fatalf("produced-consumed = %d want final size %d", got, size)
			}
		})
	}
}

func TestSleepPollDelayRuns(t *testing.T) {
	q, err := queue.Bounded(1)
	if err != nil {
		t.Fatal(err)
	}
	var polls atomic.Int64
	s := strategy.NewSleepPoll(q, strategy.WithDelay(func() {
		polls.Add(1)
		time.Sleep(time.Millisecond)
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Consume()
	}()
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	<-done

	if polls.Load() == 0 {
		t.Fatal("delay policy never invoked on failed attempts")
	}
}

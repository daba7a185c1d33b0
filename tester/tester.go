// Package tester drives one producer and one consumer goroutine against a
// shared coordination strategy for a fixed duration, with randomized pacing,
// and reports what both sides observed. Build a Tester through the Builder;
// a Tester runs exactly once and binds a fresh queue and strategy pair.
package tester

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/oklog/run"

	"github.com/coordq/coordq-lib/queue"
	"github.com/coordq/coordq-lib/strategy"
)

// StrategyFactory builds a strategy around a queue. The constructors in the
// strategy package satisfy this signature directly.
type StrategyFactory func(q queue.Queue, opts ...strategy.Option) strategy.Strategy

// ErrAlreadyRun is returned by Run on reuse; a Tester is single-shot.
var ErrAlreadyRun = errors.New("tester has already run")

type Tester struct {
	queue    queue.Queue
	strategy strategy.Strategy
	logger   hclog.Logger

	producerInterval time.Duration
	consumerInterval time.Duration
	duration         time.Duration

	ran atomic.Bool
}

// Result collects both sides of a run. Produced holds the values whose
// Produce completed, in order; Consumed likewise for Consume.
type Result struct {
	Produced  []int64
	Consumed  []int64
	FinalSize int
}

// Check verifies the run's conservation properties: completed produces minus
// completed consumes must equal the final queue size, and the consumed
// sequence must be exactly the produced sequence in order. This replaces the
// reference harness's broken counter assertion with a real oracle.
func (r Result) Check() error {
	if diff := len(r.Produced) - len(r.Consumed); diff != r.FinalSize {
		return fmt.Errorf("conservation violated - produced %d, consumed %d, final size %d",
			len(r.Produced), len(r.Consumed), r.FinalSize)
	}
	for i, v := range r.Consumed {
		if v != r.Produced[i] {
			return fmt.Errorf("order violated - consumed %d at position %d, expected %d",
				v, i, r.Produced[i])
		}
	}
	return nil
}

// Run executes the producer/consumer pair under ctx for the configured
// duration, then raises stop and joins both goroutines.
func (t *Tester) Run(ctx context.Context) (Result, error) {
	if !t.ran.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyRun
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runCtx, cancel := context.WithTimeout(ctx, t.duration)
	defer cancel()

	var result Result
	var g run.Group

	producerLog := t.logger.Named("producer")
	consumerLog := t.logger.Named("consumer")
	seed := time.Now().UnixNano()

	g.Add(func() error {
		rnd := rand.New(rand.NewSource(seed))
		var counter int64
		for {
			if !pace(runCtx, rnd, t.producerInterval) {
				return nil
			}
			if !t.strategy.Produce(counter) {
				return nil
			}
			producerLog.Trace("produced", "value", counter)
			result.Produced = append(result.Produced, counter)
			counter++
		}
	}, func(error) {
		cancel()
		t.strategy.Stop()
	})

	g.Add(func() error {
		// The reference seeds the consumer apart from the producer so their
		// pacing does not move in lockstep.
		rnd := rand.New(rand.NewSource(seed + 1000))
		for {
			if !pace(runCtx, rnd, t.consumerInterval) {
				return nil
			}
			v, ok := t.strategy.Consume()
			if !ok {
				return nil
			}
			consumerLog.Trace("consumed", "value", v)
			result.Consumed = append(result.Consumed, v)
		}
	}, func(error) {
		cancel()
		t.strategy.Stop()
	})

	t.logger.Debug("run starting",
		"duration", t.duration,
		"producer_interval", t.producerInterval,
		"consumer_interval", t.consumerInterval)

	err := g.Run()

	result.FinalSize = t.queue.Size()
	t.logger.Debug("run finished",
		"produced", len(result.Produced),
		"consumed", len(result.Consumed),
		"final_size", result.FinalSize)

	if err != nil {
		return result, fmt.Errorf("run failed - %s", err)
	}
	return result, nil
}

// pace sleeps a uniformly random time in [interval/2, interval*3/2), the
// reference harness's sleepTime/2 + rand()%sleepTime. Reports false once ctx
// is done.
func pace(ctx context.Context, rnd *rand.Rand, interval time.Duration) bool {
	d := interval/2 + time.Duration(rnd.Int63n(int64(interval)))
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

package tester

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/coordq/coordq-lib/queue"
	"github.com/coordq/coordq-lib/strategy"
	"github.com/coordq/coordq-lib/trace"
)

// Environment variables supplying builder defaults.
const (
	EnvProducerInterval = "COORDQ_PRODUCER_INTERVAL"
	EnvConsumerInterval = "COORDQ_CONSUMER_INTERVAL"
	EnvDuration         = "COORDQ_DURATION"
	EnvCapacity         = "COORDQ_CAPACITY"
	EnvStrategy         = "COORDQ_STRATEGY"
)

const (
	defaultInterval = 100 * time.Microsecond
	defaultDuration = 10 * time.Second
	defaultCapacity = 16
)

// Builder assembles a Tester. Each Build binds a fresh queue and strategy
// pair, so one Builder can produce any number of independent runs.
type Builder struct {
	factory          StrategyFactory
	opts             []strategy.Option
	capacity         int
	producerInterval time.Duration
	consumerInterval time.Duration
	duration         time.Duration
	logger           hclog.Logger
	trace            *trace.Provider
}

// NewBuilder creates a builder with defaults taken from the environment
// where set, falling back to 100µs pacing on both sides, a 10s run, and a
// capacity of 16. COORDQ_STRATEGY may hold a ParseSpec string to preselect a
// strategy; malformed values are ignored.
func NewBuilder() *Builder {
	b := &Builder{
		capacity:         getIntEnvDef(EnvCapacity, defaultCapacity),
		producerInterval: getDurationEnvDef(EnvProducerInterval, defaultInterval),
		consumerInterval: getDurationEnvDef(EnvConsumerInterval, defaultInterval),
		duration:         getDurationEnvDef(EnvDuration, defaultDuration),
	}
	if spec := getEnvDef(EnvStrategy, ""); spec != "" {
		if factory, err := ParseSpec(spec); err == nil {
			b.factory = factory
		}
	}
	return b
}

// SetStrategy sets the strategy constructor; the constructors in the
// strategy package can be passed directly, as can ParseSpec results.
func (b *Builder) SetStrategy(factory StrategyFactory, opts ...strategy.Option) *Builder {
	b.factory = factory
	b.opts = opts
	return b
}

func (b *Builder) SetCapacity(capacity int) *Builder {
	b.capacity = capacity
	return b
}

func (b *Builder) SetProducerInterval(interval time.Duration) *Builder {
	b.producerInterval = interval
	return b
}

func (b *Builder) SetConsumerInterval(interval time.Duration) *Builder {
	b.consumerInterval = interval
	return b
}

func (b *Builder) SetDuration(duration time.Duration) *Builder {
	b.duration = duration
	return b
}

func (b *Builder) SetLogger(logger hclog.Logger) *Builder {
	b.logger = logger
	return b
}

// SetTrace streams run logs through p so they can be tailed while the run is
// in progress. When no explicit logger is set, Build creates one writing to
// the trace stream.
func (b *Builder) SetTrace(p *trace.Provider) *Builder {
	b.trace = p
	return b
}

// Build validates the configuration and assembles a single-shot Tester
// around a fresh bounded queue and strategy.
func (b *Builder) Build() (*Tester, error) {
	if b.factory == nil {
		return nil, fmt.Errorf("no strategy configured")
	}
	if b.producerInterval <= 0 || b.consumerInterval <= 0 {
		return nil, fmt.Errorf("pacing intervals must be positive")
	}
	if b.duration <= 0 {
		return nil, fmt.Errorf("run duration must be positive")
	}

	q, err := queue.Bounded(b.capacity)
	if err != nil {
		return nil, fmt.Errorf("invalid queue configuration - %s", err)
	}

	logger := b.logger
	if logger == nil {
		if b.trace.Available() {
			w, err := b.trace.Writer()
			if err != nil {
				return nil, fmt.Errorf("invalid trace configuration - %s", err)
			}
			logger = hclog.New(&hclog.LoggerOptions{
				Name:   "tester",
				Output: w,
				Level:  hclog.Trace,
			})
		} else {
			logger = hclog.NewNullLogger()
		}
	}

	opts := append([]strategy.Option{strategy.WithLogger(logger)}, b.opts...)
	return &Tester{
		queue:            q,
		strategy:         b.factory(q, opts...),
		logger:           logger,
		producerInterval: b.producerInterval,
		consumerInterval: b.consumerInterval,
		duration:         b.duration,
	}, nil
}

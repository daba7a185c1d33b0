package tester

import (
	"fmt"
	"time"

	"github.com/google/shlex"

	"github.com/coordq/coordq-lib/queue"
	"github.com/coordq/coordq-lib/strategy"
)

// ParseSpec turns a textual strategy description into a factory. Specs are
// shell-style word lists:
//
//	spin
//	sleep [delay]   e.g. "sleep 250µs"; without a delay the poll loop yields
//	wait
func ParseSpec(spec string) (StrategyFactory, error) {
	fields, err := shlex.Split(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid strategy spec - %s", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty strategy spec")
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "spin":
		if len(args) > 0 {
			return nil, fmt.Errorf("spin takes no arguments")
		}
		return strategy.NewSpin, nil

	case "sleep":
		switch len(args) {
		case 0:
			return strategy.NewSleepPoll, nil
		case 1:
			delay, err := time.ParseDuration(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid sleep delay %q - %s", args[0], err)
			}
			if delay <= 0 {
				return nil, fmt.Errorf("sleep delay must be positive")
			}
			return func(q queue.Queue, opts ...strategy.Option) strategy.Strategy {
				opts = append(opts, strategy.WithDelay(strategy.FixedDelay(delay)))
				return strategy.NewSleepPoll(q, opts...)
			}, nil
		default:
			return nil, fmt.Errorf("sleep takes at most one argument")
		}

	case "wait":
		if len(args) > 0 {
			return nil, fmt.Errorf("wait takes no arguments")
		}
		return strategy.NewWaitSignal, nil

	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

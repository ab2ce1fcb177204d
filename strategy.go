// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envschema

import "context"

// ErrorStrategy decides what happens to the field errors collected
// while loading a configuration.
type ErrorStrategy string

const (
	// StrategyThrow fails the load with an [*AggregateError] and
	// no configuration.
	StrategyThrow ErrorStrategy = "throw"

	// StrategyLog reports the aggregate message to a [Sink] and
	// returns the partial configuration.
	StrategyLog ErrorStrategy = "log"

	// StrategySilent returns the partial configuration without
	// reporting anything.
	StrategySilent ErrorStrategy = "silent"

	// StrategyDefault behaves like StrategySilent.
	StrategyDefault ErrorStrategy = "default"
)

func (s ErrorStrategy) valid() bool {
	switch s {
	case "", StrategyThrow, StrategyLog, StrategySilent, StrategyDefault:
		return true
	default:
		return false
	}
}

// Sink receives the aggregate error message when loading
// with [StrategyLog].
type Sink interface {
	Report(ctx context.Context, msg string)
}

// SinkFunc is a functional implementation of the [Sink] interface.
type SinkFunc func(context.Context, string)

// Report implements the [Sink] interface.
func (f SinkFunc) Report(ctx context.Context, msg string) {
	f(ctx, msg)
}

// Handle applies the strategy to the collected errors. It is a no-op
// when errs is empty. Only [StrategyThrow] returns an error.
func Handle(ctx context.Context, errs []error, strategy ErrorStrategy, sink Sink) error {
	if len(errs) == 0 {
		return nil
	}

	aggErr := &AggregateError{Errors: errs}
	switch strategy {
	case StrategyThrow:
		return aggErr
	case StrategyLog:
		if sink != nil {
			sink.Report(ctx, aggErr.Error())
		}
		return nil
	default:
		return nil
	}
}

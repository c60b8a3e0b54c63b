// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"fmt"

	"go.uber.org/zap"
)

// TimerOption is a configurable option for a Timer.
type TimerOption interface {
	apply(*Timer) error
}

type timerOptionFunc func(*Timer) error

func (f timerOptionFunc) apply(t *Timer) error { return f(t) }

// WithClockSource selects the clock a Timer samples for its entire lifetime.
// If this option is not supplied, DefaultClockSource is used.
func WithClockSource(cs ClockSource) TimerOption {
	return timerOptionFunc(func(t *Timer) error {
		switch cs {
		case LogicalClock, WallClock:
			t.source = cs
			return nil

		default:
			return &ConfigurationError{
				Field: "clock source",
				Err:   fmt.Errorf("%w: %d", ErrInvalidClockSource, int(cs)),
			}
		}
	})
}

// WithLogicalClock supplies the clock used when the timer's source is LogicalClock.
// A nil clock is ignored.
func WithLogicalClock(c Clock) TimerOption {
	return timerOptionFunc(func(t *Timer) error {
		if c != nil {
			t.logical = c
		}

		return nil
	})
}

// WithWallClock supplies the clock used when the timer's source is WallClock.
// By default, a SystemClock sampling the host clock is used. A nil clock is ignored.
func WithWallClock(c Clock) TimerOption {
	return timerOptionFunc(func(t *Timer) error {
		if c != nil {
			t.wall = c
		}

		return nil
	})
}

// WithLogger sets the logger that receives timer lifecycle events. By default,
// no logging is done.
func WithLogger(l *zap.Logger) TimerOption {
	return timerOptionFunc(func(t *Timer) error {
		if l != nil {
			t.logger = l
		}

		return nil
	})
}

// WithMetrics sets the collectors that record timer activity. A nil *Metrics
// disables metrics.
func WithMetrics(m *Metrics) TimerOption {
	return timerOptionFunc(func(t *Timer) error {
		t.metrics = m
		return nil
	})
}

// WithStrictPeriod rejects negative periods with a *ConfigurationError instead
// of using their absolute value.
func WithStrictPeriod() TimerOption {
	return timerOptionFunc(func(t *Timer) error {
		t.strict = true
		return nil
	})
}

// withNodeName sets the label used for this timer's metrics.
func withNodeName(name string) TimerOption {
	return timerOptionFunc(func(t *Timer) error {
		t.nodeName = name
		return nil
	})
}

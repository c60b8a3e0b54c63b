// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatchUpFactor is the multiple of a timer's period at which a late timer
// stops trying to hold its phase. When a poll observes this many periods or more
// since the last firing, the timer fires once and restarts from the current time.
const CatchUpFactor = 2

// Timer invokes a callback no more often than once per period. A Timer never
// runs on its own: an owner, typically a Node, calls Poll repeatedly at a cadence
// at least as fine as the period.
//
// Poll must not be called concurrently for the same Timer. Dispose may be called
// at any time, from any goroutine, any number of times.
type Timer struct {
	id       uuid.UUID
	owner    any
	callback func() error
	period   time.Duration
	source   ClockSource
	clock    Clock

	logical  Clock
	wall     Clock
	logger   *zap.Logger
	metrics  *Metrics
	nodeName string
	strict   bool

	lock     sync.Mutex
	lastFire Timestamp
	disposed bool
}

// NewTimer creates a Timer with the given period and callback. The owner is an
// opaque reference retained only for identification.
//
// A negative period is replaced with its absolute value unless WithStrictPeriod
// is used. The timer's clock is sampled immediately, so the first firing cannot
// happen until a full period after construction. If the clock cannot be read,
// for example because no logical time has been published yet, an error is returned.
func NewTimer(period time.Duration, owner any, callback func() error, opts ...TimerOption) (*Timer, error) {
	t := &Timer{
		id:       uuid.New(),
		owner:    owner,
		callback: callback,
		source:   DefaultClockSource,
		wall:     SystemClock{},
		logger:   zap.NewNop(),
	}

	for _, o := range opts {
		if err := o.apply(t); err != nil {
			return nil, err
		}
	}

	switch {
	case t.callback == nil:
		return nil, &ConfigurationError{Field: "callback", Err: ErrNilCallback}

	case period < 0 && t.strict:
		return nil, &ConfigurationError{
			Field: "period",
			Err:   fmt.Errorf("%w: %s", ErrNegativePeriod, period),
		}

	case period < 0:
		period = -period
	}

	t.period = period
	t.clock = t.logical
	if t.source == WallClock {
		t.clock = t.wall
	}

	if t.clock == nil {
		return nil, &ConfigurationError{Field: "clock", Err: ErrNoLogicalClock}
	}

	var err error
	t.lastFire, err = t.clock.Now()
	if err != nil {
		return nil, fmt.Errorf("unable to start timer: %w", err)
	}

	return t, nil
}

// ID is the unique identifier of this timer.
func (t *Timer) ID() uuid.UUID {
	return t.id
}

// Owner returns the opaque owner reference passed at construction.
func (t *Timer) Owner() any {
	return t.owner
}

// Delay returns this timer's period, the minimum interval between callbacks.
func (t *Timer) Delay() time.Duration {
	return t.period
}

// ClockSource returns the source this timer samples.
func (t *Timer) ClockSource() ClockSource {
	return t.source
}

// LastFireTime returns the timestamp this timer measures its next firing from.
func (t *Timer) LastFireTime() Timestamp {
	defer t.lock.Unlock()
	t.lock.Lock()

	return t.lastFire
}

// IsDisposed tests if Dispose has been called.
func (t *Timer) IsDisposed() bool {
	defer t.lock.Unlock()
	t.lock.Lock()

	return t.disposed
}

// Poll samples the clock and invokes the callback at most once if more than
// one period has elapsed since the last firing.
//
// When only mildly late, the last firing time advances by exactly one period so
// that firings stay locked to multiples of the period. When CatchUpFactor periods
// or more have elapsed, the timer fires once and restarts from the current time
// rather than firing a backlog of missed callbacks.
//
// The last firing time is updated before the callback runs. An error returned
// by the callback is returned from Poll as is, and the timer does not retry it
// until another period has elapsed. A disposed timer never invokes its callback
// and returns ErrTimerDisposed.
func (t *Timer) Poll() error {
	fire, err := t.advance()
	if err != nil || !fire {
		return err
	}

	if err = t.callback(); err != nil {
		t.metrics.callbackFailed(t.nodeName)
	}

	return err
}

// advance moves this timer's state forward and reports whether the callback is due.
// The lock is released before the callback runs, so a callback can dispose its own timer.
func (t *Timer) advance() (bool, error) {
	defer t.lock.Unlock()
	t.lock.Lock()

	if t.disposed {
		return false, ErrTimerDisposed
	}

	now, err := t.clock.Now()
	if err != nil {
		return false, fmt.Errorf("unable to read %s clock: %w", t.source, err)
	}

	elapsed := now.Sub(t.lastFire)
	if elapsed <= t.period {
		return false, nil
	}

	// elapsed/CatchUpFactor >= period is elapsed >= CatchUpFactor*period
	// without overflowing for very long periods or saturated gaps
	reset := elapsed/CatchUpFactor >= t.period
	if reset {
		t.lastFire = now
	} else {
		t.lastFire = t.lastFire.Add(t.period)
	}

	t.metrics.fired(t.nodeName, reset)
	return true, nil
}

// Dispose tears down this timer. Only the first call has any effect, and it
// emits a single log event. Dispose does not interrupt a callback that is
// currently running.
func (t *Timer) Dispose() {
	defer t.lock.Unlock()
	t.lock.Lock()

	if t.disposed {
		return
	}

	t.disposed = true
	t.metrics.disposed(t.nodeName)
	t.logger.Info(
		"timer disposed",
		zap.Stringer("timer", t.id),
		zap.Duration("period", t.period),
		zap.Stringer("clockSource", t.source),
	)
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"errors"
	"fmt"
)

var (
	// ErrNilCallback indicates a Timer was created without a callback.
	ErrNilCallback = errors.New("a timer callback is required")

	// ErrNegativePeriod indicates a negative period given to a timer that uses WithStrictPeriod.
	ErrNegativePeriod = errors.New("a timer period cannot be negative")

	// ErrNoLogicalClock indicates a LogicalClock timer was created without WithLogicalClock.
	ErrNoLogicalClock = errors.New("no logical clock was supplied")

	// ErrTimerDisposed is returned by Poll once a Timer has been disposed.
	ErrTimerDisposed = errors.New("that timer has been disposed")

	// ErrNodeClosed is returned by a Node's methods after it has been closed.
	ErrNodeClosed = errors.New("that node has been closed")

	// ErrInvalidInterval indicates a Spin interval that was zero or negative.
	ErrInvalidInterval = errors.New("a spin interval must be positive")
)

// ConfigurationError indicates that a Timer or Node could not be created because
// of invalid configuration.
type ConfigurationError struct {
	// Field is the name of the offending configuration value.
	Field string

	// Err is the underlying cause.
	Err error
}

func (ce *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", ce.Field, ce.Err)
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

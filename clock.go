// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	// ErrClockNotStarted is returned by a Logical clock that has never had
	// a time published to it.
	ErrClockNotStarted = errors.New("no logical time has been published")

	// ErrInvalidClockSource indicates text that could not be parsed as a ClockSource.
	ErrInvalidClockSource = errors.New("invalid clock source")
)

// ClockSource selects where a Timer obtains its notion of "now".
type ClockSource int

const (
	// LogicalClock is time published by an external driver, such as a simulation
	// or a playback tool.
	LogicalClock ClockSource = iota // logical

	// WallClock is the host's real-time clock.
	WallClock // wall
)

// DefaultClockSource is the ClockSource used when none is configured.
const DefaultClockSource = LogicalClock

func (cs ClockSource) String() string {
	switch cs {
	case LogicalClock:
		return "logical"

	case WallClock:
		return "wall"

	default:
		return fmt.Sprintf("ClockSource(%d)", int(cs))
	}
}

// MarshalText emits the String() form of this source.
func (cs ClockSource) MarshalText() ([]byte, error) {
	switch cs {
	case LogicalClock, WallClock:
		return []byte(cs.String()), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidClockSource, int(cs))
	}
}

// UnmarshalText parses a clock source. Matching is case-insensitive. An empty
// value yields DefaultClockSource.
func (cs *ClockSource) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "":
		*cs = DefaultClockSource

	case "logical", "logicalclock", "sim", "simulated":
		*cs = LogicalClock

	case "wall", "wallclock", "system", "realtime":
		*cs = WallClock

	default:
		return fmt.Errorf("%w: %q", ErrInvalidClockSource, text)
	}

	return nil
}

// Clock is the capability that produces the current time.
type Clock interface {
	// Now returns the current time, or an error if this clock cannot
	// produce one.
	Now() (Timestamp, error)
}

// Nower is the minimal behavior of a wall clock. *chronon.FakeClock satisfies
// this interface, which makes SystemClock controllable in tests.
type Nower interface {
	Now() time.Time
}

// SystemClock samples a real-time clock. Readings are not monotonic if the
// host clock is adjusted while a Timer is running.
//
// The zero value samples the host clock.
type SystemClock struct {
	// Source is the optional wall clock to sample. If unset, time.Now is used.
	Source Nower
}

// Now samples the wall clock. This method never returns an error.
func (sc SystemClock) Now() (Timestamp, error) {
	if sc.Source == nil {
		return TimestampOf(time.Now()), nil
	}

	return TimestampOf(sc.Source.Now()), nil
}

// Logical is a clock driven by an external publisher, e.g. a node that
// receives simulated time. Logical is safe for concurrent use.
//
// The zero value has no time published, and Now returns ErrClockNotStarted
// until the first Publish.
type Logical struct {
	lock      sync.RWMutex
	current   Timestamp
	published bool
}

// NewLogical creates a Logical clock with an initial time already published.
func NewLogical(start Timestamp) *Logical {
	return &Logical{
		current:   start,
		published: true,
	}
}

// Now returns the most recently published time.
func (l *Logical) Now() (Timestamp, error) {
	defer l.lock.RUnlock()
	l.lock.RLock()

	if !l.published {
		return Timestamp{}, ErrClockNotStarted
	}

	return l.current, nil
}

// Publish sets the current logical time. Publishers may move time
// backwards, e.g. when a playback loops.
func (l *Logical) Publish(ts Timestamp) {
	defer l.lock.Unlock()
	l.lock.Lock()

	l.current = ts
	l.published = true
}

// Advance moves the published time forward by d and returns the new time.
// If no time was ever published, the clock starts from the zero Timestamp.
func (l *Logical) Advance(d time.Duration) Timestamp {
	defer l.lock.Unlock()
	l.lock.Lock()

	l.current = l.current.Add(d)
	l.published = true
	return l.current
}

// Published tests if any time has been published to this clock.
func (l *Logical) Published() bool {
	defer l.lock.RUnlock()
	l.lock.RLock()

	return l.published
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"fmt"
	"math"
	"time"
)

const (
	nanosPerSecond = int64(time.Second)

	// maxSubSeconds is the largest whole-second gap Sub can express without
	// overflowing a time.Duration, leaving room for the nanosecond component.
	maxSubSeconds = math.MaxInt64/nanosPerSecond - 1
)

// Timestamp is a point in time expressed as whole seconds plus a sub-second
// nanosecond component. Both wall clock and logical clock readings use this type.
//
// Nanoseconds is always in the range [0, 1e9). Use NewTimestamp to build
// a Timestamp from values that may be out of range.
type Timestamp struct {
	// Seconds is the whole number of seconds since the clock's epoch.
	Seconds int64 `json:"sec" yaml:"sec" mapstructure:"sec"`

	// Nanoseconds is the sub-second portion of this timestamp.
	Nanoseconds uint32 `json:"nanosec" yaml:"nanosec" mapstructure:"nanosec"`
}

// NewTimestamp creates a normalized Timestamp. Any nanosecond overflow or
// underflow is carried into the seconds component.
func NewTimestamp(sec, nsec int64) Timestamp {
	sec += nsec / nanosPerSecond
	nsec %= nanosPerSecond
	if nsec < 0 {
		sec--
		nsec += nanosPerSecond
	}

	return Timestamp{
		Seconds:     sec,
		Nanoseconds: uint32(nsec),
	}
}

// TimestampOf converts a time.Time into a Timestamp relative to the Unix epoch.
func TimestampOf(t time.Time) Timestamp {
	return NewTimestamp(t.Unix(), int64(t.Nanosecond()))
}

// Time returns this timestamp as a time.Time relative to the Unix epoch.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanoseconds))
}

// IsZero tests if this is the zero timestamp.
func (ts Timestamp) IsZero() bool {
	return ts.Seconds == 0 && ts.Nanoseconds == 0
}

// Add returns this timestamp advanced by d. The result is normalized.
func (ts Timestamp) Add(d time.Duration) Timestamp {
	return NewTimestamp(
		ts.Seconds+int64(d/time.Second),
		int64(ts.Nanoseconds)+int64(d%time.Second),
	)
}

// Sub returns the duration ts-other. Seconds and nanoseconds are subtracted
// separately, so no precision is lost for timestamps far from the epoch.
//
// Gaps too large for a time.Duration, roughly 292 years, saturate to
// math.MaxInt64 or math.MinInt64.
func (ts Timestamp) Sub(other Timestamp) time.Duration {
	seconds := ts.Seconds - other.Seconds
	switch {
	case seconds > maxSubSeconds:
		return math.MaxInt64

	case seconds < -maxSubSeconds:
		return math.MinInt64
	}

	return time.Duration(seconds)*time.Second +
		time.Duration(int64(ts.Nanoseconds)-int64(other.Nanoseconds))
}

// Before tests if ts occurs strictly before other.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Seconds < other.Seconds ||
		(ts.Seconds == other.Seconds && ts.Nanoseconds < other.Nanoseconds)
}

// Equal tests if ts and other represent the same instant.
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts == other
}

// InSeconds returns this timestamp as floating point seconds.
func (ts Timestamp) InSeconds() float64 {
	return float64(ts.Seconds) + float64(ts.Nanoseconds)/1e9
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%d.%09ds", ts.Seconds, ts.Nanoseconds)
}

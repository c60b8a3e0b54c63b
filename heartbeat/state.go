// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package heartbeat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/consul/api"
)

// ErrInvalidStatus indicates a Status that has no text form, or text that
// does not name a Status.
var ErrInvalidStatus = errors.New("invalid check status")

// Status represents the Consul check status. The String() value
// for this type is the correct value to use with Consul's TTL check API.
//
// The zero value is Passing, so the zero State is healthy.
type Status int

const (
	// Passing indicates that a service is fully healthy.
	Passing Status = iota

	// Warning indicates that a service can still take some traffic, but
	// that something is wrong.
	Warning

	// Critical means that a service cannot take traffic and is down.
	Critical
)

func (s Status) String() string {
	switch s {
	case Passing:
		return api.HealthPassing

	case Warning:
		return api.HealthWarning

	case Critical:
		return api.HealthCritical

	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// MarshalText returns the consul name of this status.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Passing, Warning, Critical:
		return []byte(s.String()), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
}

// UnmarshalText parses a status, ignoring case. Besides the consul names,
// "pass", "warn", and "fail" are accepted. Empty text is Passing.
func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "pass", api.HealthPassing:
		*s = Passing

	case "warn", api.HealthWarning:
		*s = Warning

	case "fail", api.HealthCritical:
		*s = Critical

	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, text)
	}

	return nil
}

// State is the check state reported on each heartbeat. The zero value of this
// type represents a healthy service with no output.
type State struct {
	// Output is the additional detail text associated with this state. Consul
	// does not interpret it.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Status is the Consul check status.
	Status Status `json:"status" yaml:"status" mapstructure:"status"`
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"time"
)

const (
	// DefaultNodeName is the name given to a Node configured without one.
	DefaultNodeName = "metronome"

	// DefaultSpinInterval is the time a Node waits between spins when no
	// interval is configured.
	DefaultSpinInterval = 10 * time.Millisecond
)

// Config is an easily unmarshalable configuration for a Node.
type Config struct {
	// Name is the node's name, used in logs and metrics. If unset, DefaultNodeName is used.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// SpinInterval is how long the node waits between polls of its timers. This should be
	// no coarser than the shortest timer period. If unset, DefaultSpinInterval is used.
	SpinInterval time.Duration `json:"spinInterval" yaml:"spinInterval" mapstructure:"spinInterval"`

	// ClockSource is the clock used by timers that do not choose one. If unset,
	// DefaultClockSource is used.
	ClockSource ClockSource `json:"clockSource" yaml:"clockSource" mapstructure:"clockSource"`

	// StrictPeriod causes negative timer periods to be rejected rather than
	// replaced with their absolute values.
	StrictPeriod bool `json:"strictPeriod" yaml:"strictPeriod" mapstructure:"strictPeriod"`
}

// NodeName returns the configured name, or DefaultNodeName if none was set.
func (c Config) NodeName() string {
	if len(c.Name) > 0 {
		return c.Name
	}

	return DefaultNodeName
}

// Interval returns the configured spin interval, or DefaultSpinInterval if none was set.
func (c Config) Interval() time.Duration {
	if c.SpinInterval > 0 {
		return c.SpinInterval
	}

	return DefaultSpinInterval
}

// NewNodeFromConfig creates a Node from configuration. Any opts are applied after
// the options derived from src.
func NewNodeFromConfig(src Config, opts ...NodeOption) (*Node, error) {
	all := []NodeOption{
		WithDefaultClockSource(src.ClockSource),
	}

	if src.StrictPeriod {
		all = append(all, WithNodeStrictPeriod())
	}

	return NewNode(src.NodeName(), append(all, opts...)...)
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package heartbeat

import (
	"time"

	"github.com/hashicorp/consul/api"
	"github.com/xmidt-org/metronome"
)

// DefaultInterval is the period between TTL updates when none is configured.
const DefaultInterval = 10 * time.Second

// Config describes the TTL check that a Heartbeat keeps alive.
type Config struct {
	// CheckID is the consul identifier of the TTL check. This field is required.
	CheckID string `json:"checkID" yaml:"checkID" mapstructure:"checkID"`

	// Interval is the minimum time between TTL updates. This should be comfortably
	// shorter than the check's TTL. If unset, DefaultInterval is used.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`

	// ClockSource is the clock the heartbeat's timer measures its interval on.
	// If unset, metronome.WallClock is used since consul TTLs run in real time.
	ClockSource *metronome.ClockSource `json:"clockSource" yaml:"clockSource" mapstructure:"clockSource"`

	// Initial is the state reported until SetState is called.
	Initial State `json:"initial" yaml:"initial" mapstructure:"initial"`

	// Namespace is the optional consul namespace for the check's updates.
	Namespace string `json:"namespace" yaml:"namespace" mapstructure:"namespace"`

	// Partition is the optional consul partition for the check's updates.
	Partition string `json:"partition" yaml:"partition" mapstructure:"partition"`
}

func (c Config) interval() time.Duration {
	if c.Interval > 0 {
		return c.Interval
	}

	return DefaultInterval
}

func (c Config) clockSource() metronome.ClockSource {
	if c.ClockSource != nil {
		return *c.ClockSource
	}

	return metronome.WallClock
}

// ClientConfig is an easily unmarshalable configuration used to create
// a consul client. Fields in this struct mirror those of api.Config.
type ClientConfig struct {
	// Scheme is the URI scheme of the consul server.
	Scheme string `json:"scheme" yaml:"scheme" mapstructure:"scheme"`

	// Address is the address of the consul server, including port.
	Address string `json:"address" yaml:"address" mapstructure:"address"`

	// Datacenter is the optional datacenter to use when interacting with the agent.
	// If unset, the datacenter of the agent is used.
	Datacenter string `json:"datacenter" yaml:"datacenter" mapstructure:"datacenter"`

	// Token is a per request ACL token. If unset, the agent's token is used.
	Token string `json:"token" yaml:"token" mapstructure:"token"`

	// TokenFile is a file containing the per request ACL token.
	TokenFile string `json:"tokenFile" yaml:"tokenFile" mapstructure:"tokenFile"`
}

// NewAPIConfig constructs a consul client api.Config. Unset fields fall back
// to api.DefaultConfig, which honors the standard CONSUL_* environment variables.
func NewAPIConfig(src ClientConfig) (dst api.Config) {
	dst = *api.DefaultConfig()
	if len(src.Scheme) > 0 {
		dst.Scheme = src.Scheme
	}

	if len(src.Address) > 0 {
		dst.Address = src.Address
	}

	if len(src.Datacenter) > 0 {
		dst.Datacenter = src.Datacenter
	}

	if len(src.Token) > 0 {
		dst.Token = src.Token
	}

	if len(src.TokenFile) > 0 {
		dst.TokenFile = src.TokenFile
	}

	return
}

// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package heartbeat

import (
	"github.com/hashicorp/consul/api"
	"github.com/xmidt-org/metronome"
	"go.uber.org/fx"
)

// NewClient creates a consul client from a ClientConfig. Unset fields use
// the consul defaults, as with NewAPIConfig.
func NewClient(cfg ClientConfig) (*api.Client, error) {
	acfg := NewAPIConfig(cfg)
	return api.NewClient(&acfg)
}

func newAgent(c *api.Client) *api.Agent { return c.Agent() }

func newTTLUpdater(a *api.Agent) TTLUpdater { return a }

// ProvideAgent bootstraps a consul *api.Client from an optional ClientConfig and
// produces the *api.Agent and TTLUpdater components. A client can further decorate
// the TTLUpdater via fx.Decorate.
func ProvideAgent() fx.Option {
	return fx.Provide(
		fx.Annotate(
			NewClient,
			fx.ParamTags(`optional:"true"`),
		),
		newAgent,
		newTTLUpdater,
	)
}

type heartbeatIn struct {
	fx.In

	Node      *metronome.Node
	Config    Config
	Updater   TTLUpdater
	Lifecycle fx.Lifecycle
}

func newHeartbeat(in heartbeatIn) (h *Heartbeat, err error) {
	h, err = New(in.Node, in.Config, in.Updater)
	if err == nil {
		in.Lifecycle.Append(fx.StopHook(
			func() { h.Stop() },
		))
	}

	return
}

// Provide creates a *Heartbeat component from a Config, a metronome *Node, and a
// TTLUpdater. The TTLUpdater can come from ProvideAgent or any other source.
//
// The heartbeat's timer is removed from the node when the application stops.
func Provide() fx.Option {
	return fx.Options(
		fx.Provide(
			newHeartbeat,
		),
		fx.Invoke(
			func(*Heartbeat) {},
		),
	)
}

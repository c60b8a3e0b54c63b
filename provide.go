// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type nodeIn struct {
	fx.In

	Config     Config                `optional:"true"`
	Logger     *zap.Logger           `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
	Lifecycle  fx.Lifecycle
}

// newNode is the internal constructor for a Node based on fx.App dependencies.
func newNode(in nodeIn) (n *Node, err error) {
	var m *Metrics
	if in.Registerer != nil {
		m, err = NewMetrics(in.Registerer)
	}

	if err == nil {
		n, err = NewNodeFromConfig(
			in.Config,
			WithNodeLogger(in.Logger),
			WithNodeMetrics(m),
		)
	}

	if err == nil {
		bindNode(n, in.Config.Interval(), in.Lifecycle)
	}

	return
}

// bindNode ties a Node's spin loop to the application lifecycle. On stop, the
// spin loop is halted and the node is closed, which disposes every remaining timer.
func bindNode(n *Node, interval time.Duration, lc fx.Lifecycle) {
	var (
		cancel context.CancelFunc
		done   = make(chan struct{})
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var spinCtx context.Context
			spinCtx, cancel = context.WithCancel(context.Background())
			go func() {
				defer close(done)
				n.Spin(spinCtx, interval) // ignore errors: canceled on stop
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}

			return n.Close()
		},
	})
}

// Provide creates a *Node component whose timers are polled for the lifetime of
// the enclosing application.
//
// A Config can be present in the enclosing application. If it is not, the zero
// Config is used. A *zap.Logger and a prometheus.Registerer are also optional
// dependencies. When a Registerer is present, the node's metrics are registered with it.
//
// The node begins spinning when the application starts. When the application stops,
// spinning halts and every timer still owned by the node is disposed.
func Provide() fx.Option {
	return fx.Options(
		fx.Provide(
			newNode,
		),
	)
}

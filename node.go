// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// NodeOption is a configurable option for a Node.
type NodeOption interface {
	apply(*Node) error
}

type nodeOptionFunc func(*Node) error

func (f nodeOptionFunc) apply(n *Node) error { return f(n) }

// WithNodeLogger sets the logger for the node and every timer it creates.
func WithNodeLogger(l *zap.Logger) NodeOption {
	return nodeOptionFunc(func(n *Node) error {
		if l != nil {
			n.logger = l
		}

		return nil
	})
}

// WithNodeMetrics sets the collectors shared by the node and its timers.
func WithNodeMetrics(m *Metrics) NodeOption {
	return nodeOptionFunc(func(n *Node) error {
		n.metrics = m
		return nil
	})
}

// WithNodeClock supplies the logical clock that the node publishes time to.
// By default, a node creates its own Logical clock with no time published.
func WithNodeClock(l *Logical) NodeOption {
	return nodeOptionFunc(func(n *Node) error {
		if l != nil {
			n.logical = l
		}

		return nil
	})
}

// WithNodeWallClock supplies the wall clock used by timers with the WallClock source.
func WithNodeWallClock(c Clock) NodeOption {
	return nodeOptionFunc(func(n *Node) error {
		if c != nil {
			n.wall = c
		}

		return nil
	})
}

// WithDefaultClockSource sets the clock source for timers that do not specify one.
func WithDefaultClockSource(cs ClockSource) NodeOption {
	return nodeOptionFunc(func(n *Node) error {
		if _, err := cs.MarshalText(); err != nil {
			return &ConfigurationError{Field: "clock source", Err: err}
		}

		n.source = cs
		return nil
	})
}

// WithNodeStrictPeriod causes every timer created by the node to reject negative periods.
func WithNodeStrictPeriod() NodeOption {
	return nodeOptionFunc(func(n *Node) error {
		n.strict = true
		return nil
	})
}

// WithSpinErrorHandler sets the sink for errors returned by SpinOnce while
// the node is spinning. By default, these errors are logged.
func WithSpinErrorHandler(f func(error)) NodeOption {
	return nodeOptionFunc(func(n *Node) error {
		if f != nil {
			n.onSpinError = f
		}

		return nil
	})
}

// Node owns a set of timers and polls them. Closing a Node disposes every timer
// it still owns, so timers never depend on garbage collection for teardown.
//
// A Node is safe for concurrent use. Its timers are polled sequentially, so a
// slow callback delays every timer that follows it.
type Node struct {
	name        string
	logger      *zap.Logger
	metrics     *Metrics
	logical     *Logical
	wall        Clock
	source      ClockSource
	strict      bool
	onSpinError func(error)
	newTimer    newTimer

	lock   sync.Mutex
	timers []*Timer
	closed bool
}

// NewNode creates an empty Node with the given name.
func NewNode(name string, opts ...NodeOption) (*Node, error) {
	if len(name) == 0 {
		return nil, &ConfigurationError{Field: "name", Err: errors.New("a node name is required")}
	}

	n := &Node{
		name:     name,
		logger:   zap.NewNop(),
		logical:  new(Logical),
		wall:     SystemClock{},
		source:   DefaultClockSource,
		newTimer: defaultNewTimer,
	}

	for _, o := range opts {
		if err := o.apply(n); err != nil {
			return nil, err
		}
	}

	n.logger = n.logger.With(zap.String("node", n.name))
	if n.onSpinError == nil {
		n.onSpinError = func(err error) {
			n.logger.Error("timer poll failed", zap.Error(err))
		}
	}

	return n, nil
}

// Name returns this node's name.
func (n *Node) Name() string {
	return n.name
}

// Clock returns the logical clock shared by this node's logical timers.
func (n *Node) Clock() *Logical {
	return n.logical
}

// PublishTime broadcasts a new logical time to this node's timers.
func (n *Node) PublishTime(ts Timestamp) {
	n.logical.Publish(ts)
}

// Len returns the number of live timers owned by this node.
func (n *Node) Len() int {
	defer n.lock.Unlock()
	n.lock.Lock()

	return len(n.timers)
}

// CreateTimer creates a Timer owned by this node. The node's clocks, logger, and
// metrics are applied first, so opts can override them.
//
// Creating a logical time timer before any time has been published fails
// with ErrClockNotStarted.
func (n *Node) CreateTimer(period time.Duration, callback func() error, opts ...TimerOption) (*Timer, error) {
	defer n.lock.Unlock()
	n.lock.Lock()

	if n.closed {
		return nil, ErrNodeClosed
	}

	all := append(
		[]TimerOption{
			WithClockSource(n.source),
			WithLogicalClock(n.logical),
			WithWallClock(n.wall),
			WithLogger(n.logger),
			WithMetrics(n.metrics),
			withNodeName(n.name),
		},
		opts...,
	)

	if n.strict {
		all = append(all, WithStrictPeriod())
	}

	t, err := NewTimer(period, n, callback, all...)
	if err != nil {
		return nil, err
	}

	n.timers = append(n.timers, t)
	n.metrics.setTimers(n.name, len(n.timers))
	return t, nil
}

// RemoveTimer disposes a timer and releases it from this node. This method
// returns false if the timer is not owned by this node.
func (n *Node) RemoveTimer(t *Timer) bool {
	n.lock.Lock()
	i := slices.Index(n.timers, t)
	if i >= 0 {
		n.timers = slices.Delete(n.timers, i, i+1)
		n.metrics.setTimers(n.name, len(n.timers))
	}

	n.lock.Unlock()
	if i < 0 {
		return false
	}

	t.Dispose()
	return true
}

// SpinOnce polls each timer once, in creation order. Errors from callbacks or
// clocks do not stop the remaining timers from being polled. The returned error
// is an aggregate of every failure.
//
// Callbacks may safely create or remove timers on this node. Timers created
// during a spin are first polled on the next spin.
func (n *Node) SpinOnce() (err error) {
	n.lock.Lock()
	timers := slices.Clone(n.timers)
	n.lock.Unlock()

	for _, t := range timers {
		if t.IsDisposed() {
			// removed by an earlier callback in this spin
			continue
		}

		err = multierr.Append(err, t.Poll())
	}

	return
}

// Spin repeatedly calls SpinOnce, waiting interval between each spin, until
// the context is canceled or this node is closed. Errors from each spin are
// passed to the node's spin error handler.
//
// The returned error is ctx.Err() if the context ended the spin, or ErrNodeClosed.
func (n *Node) Spin(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return &ConfigurationError{
			Field: "spin interval",
			Err:   fmt.Errorf("%w: %s", ErrInvalidInterval, interval),
		}
	}

	n.logger.Debug("spinning", zap.Duration("interval", interval))
	for {
		if n.isClosed() {
			return ErrNodeClosed
		}

		if err := n.SpinOnce(); err != nil {
			n.onSpinError(err)
		}

		// don't bother creating a timer if it's not necessary
		if ctx.Err() != nil {
			return ctx.Err()
		}

		ch, stop := n.newTimer(interval)
		select {
		case <-ctx.Done():
			stop()
			return ctx.Err()

		case <-ch:
			// continue
		}
	}
}

func (n *Node) isClosed() bool {
	defer n.lock.Unlock()
	n.lock.Lock()

	return n.closed
}

// Close disposes every timer owned by this node. Subsequent calls to Close
// or CreateTimer return ErrNodeClosed.
func (n *Node) Close() error {
	n.lock.Lock()
	if n.closed {
		n.lock.Unlock()
		return ErrNodeClosed
	}

	n.closed = true
	timers := n.timers
	n.timers = nil
	n.metrics.setTimers(n.name, 0)
	n.lock.Unlock()

	for _, t := range timers {
		t.Dispose()
	}

	n.logger.Info("node closed", zap.Int("timers", len(timers)))
	return nil
}

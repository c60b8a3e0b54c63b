// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package heartbeat

import (
	"errors"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/xmidt-org/metronome"
)

var (
	ErrNoCheckID = errors.New("a TTL check id is required")
	ErrNoUpdater = errors.New("a TTL updater is required")
)

// Heartbeat reports a State to a consul TTL check on a fixed interval. By default,
// the interval is measured on the node's wall clock, since consul TTLs are real time.
type Heartbeat struct {
	updater TTLUpdater
	checkID string
	options api.QueryOptions
	node    *metronome.Node
	timer   *metronome.Timer

	lock  sync.RWMutex
	state State
}

// New creates a Heartbeat whose timer is owned by the given node. The first
// update happens once the configured interval has elapsed and the node spins.
func New(node *metronome.Node, cfg Config, updater TTLUpdater) (*Heartbeat, error) {
	switch {
	case len(cfg.CheckID) == 0:
		return nil, ErrNoCheckID

	case updater == nil:
		return nil, ErrNoUpdater
	}

	h := &Heartbeat{
		updater: updater,
		checkID: cfg.CheckID,
		options: api.QueryOptions{
			Namespace: cfg.Namespace,
			Partition: cfg.Partition,
		},
		node:  node,
		state: cfg.Initial,
	}

	var err error
	h.timer, err = node.CreateTimer(
		cfg.interval(),
		h.update,
		metronome.WithClockSource(cfg.clockSource()),
	)

	if err != nil {
		return nil, err
	}

	return h, nil
}

// update performs an update with the check's current state.
func (h *Heartbeat) update() error {
	s := h.State()

	// clone the options, to avoid unintended modification
	opts := h.options
	return h.updater.UpdateTTLOpts(
		h.checkID,
		s.Output,
		s.Status.String(),
		&opts,
	)
}

// CheckID returns the consul check this heartbeat updates.
func (h *Heartbeat) CheckID() string {
	return h.checkID
}

// Timer returns the node-owned timer that paces this heartbeat.
func (h *Heartbeat) Timer() *metronome.Timer {
	return h.timer
}

// State returns the state that will be sent on the next update.
func (h *Heartbeat) State() State {
	defer h.lock.RUnlock()
	h.lock.RLock()

	return h.state
}

// SetState changes the state sent on subsequent updates and returns the previous state.
func (h *Heartbeat) SetState(s State) (previous State) {
	defer h.lock.Unlock()
	h.lock.Lock()

	previous, h.state = h.state, s
	return
}

// Stop removes this heartbeat's timer from its node. Consul will mark the
// check critical once its TTL expires. This method returns false if the
// heartbeat was already stopped.
func (h *Heartbeat) Stop() bool {
	return h.node.RemoveTimer(h.timer)
}

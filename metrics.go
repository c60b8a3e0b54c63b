// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package metronome

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

const (
	// MetricsNamespace is the prometheus namespace for all metronome metrics.
	MetricsNamespace = "metronome"

	// NodeLabel is the label holding a Node's name.
	NodeLabel = "node"

	// ModeLabel is the label that distinguishes how a timer advanced after firing.
	ModeLabel = "mode"

	// ModePhaseLocked indicates a firing that advanced the timer by exactly one period.
	ModePhaseLocked = "phase_locked"

	// ModeReset indicates a firing that was so late the timer was reset to the current time.
	ModeReset = "reset"
)

// Metrics holds the prometheus collectors for timers and nodes. A nil *Metrics
// is valid, and all of its methods do nothing.
type Metrics struct {
	fires          *prometheus.CounterVec
	callbackErrors *prometheus.CounterVec
	disposals      *prometheus.CounterVec
	timers         *prometheus.GaugeVec
}

// NewMetrics creates and registers the metronome collectors. If r is nil,
// the collectors are created but not registered anywhere.
func NewMetrics(r prometheus.Registerer) (m *Metrics, err error) {
	m = &Metrics{
		fires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: "timer",
				Name:      "fires_total",
				Help:      "The number of timer callback invocations",
			},
			[]string{NodeLabel, ModeLabel},
		),
		callbackErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: "timer",
				Name:      "callback_errors_total",
				Help:      "The number of timer callbacks that returned an error",
			},
			[]string{NodeLabel},
		),
		disposals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: "timer",
				Name:      "disposals_total",
				Help:      "The number of disposed timers",
			},
			[]string{NodeLabel},
		),
		timers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: MetricsNamespace,
				Subsystem: "node",
				Name:      "timers",
				Help:      "The number of live timers owned by a node",
			},
			[]string{NodeLabel},
		),
	}

	if r != nil {
		err = multierr.Combine(
			r.Register(m.fires),
			r.Register(m.callbackErrors),
			r.Register(m.disposals),
			r.Register(m.timers),
		)
	}

	if err != nil {
		m = nil
	}

	return
}

func (m *Metrics) fired(node string, reset bool) {
	if m == nil {
		return
	}

	mode := ModePhaseLocked
	if reset {
		mode = ModeReset
	}

	m.fires.WithLabelValues(node, mode).Inc()
}

func (m *Metrics) callbackFailed(node string) {
	if m != nil {
		m.callbackErrors.WithLabelValues(node).Inc()
	}
}

func (m *Metrics) disposed(node string) {
	if m != nil {
		m.disposals.WithLabelValues(node).Inc()
	}
}

func (m *Metrics) setTimers(node string, n int) {
	if m != nil {
		m.timers.WithLabelValues(node).Set(float64(n))
	}
}

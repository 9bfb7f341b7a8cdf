// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package metrics records item activity as Prometheus metrics.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/samber/oops"

	"github.com/holomush/itemforge/pkg/item"
)

// Lookup results.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// Compile-time interface check.
var _ item.Observer = (*Metrics)(nil)

// Metrics implements item.Observer with Prometheus collectors.
type Metrics struct {
	Materializations *prometheus.CounterVec
	Registrations    prometheus.Counter
	Lookups          *prometheus.CounterVec
	RegistrySize     prometheus.Gauge
}

// New creates unregistered item metrics. Use RegisterMetrics to expose them.
func New() *Metrics {
	return &Metrics{
		Materializations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemforge_materializations_total",
				Help: "Total number of artifacts materialized by kind",
			},
			[]string{"kind"},
		),
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "itemforge_registry_registrations_total",
			Help: "Total number of descriptors registered",
		}),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemforge_registry_lookups_total",
				Help: "Total number of registry lookups by result",
			},
			[]string{"result"},
		),
		RegistrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "itemforge_registry_size",
			Help: "Number of descriptors currently registered",
		}),
	}
}

// RegisterMetrics registers m with reg.
// Panics if registration fails (following prometheus convention).
func (m *Metrics) RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(m.Materializations)
	reg.MustRegister(m.Registrations)
	reg.MustRegister(m.Lookups)
	reg.MustRegister(m.RegistrySize)
}

// NewRegistered creates metrics registered with reg.
func NewRegistered(reg prometheus.Registerer) *Metrics {
	m := New()
	m.RegisterMetrics(reg)
	return m
}

// Materialized implements item.Observer.
func (m *Metrics) Materialized(kind string) {
	m.Materializations.WithLabelValues(kind).Inc()
}

// Registered implements item.Observer.
func (m *Metrics) Registered(size int) {
	m.Registrations.Inc()
	m.RegistrySize.Set(float64(size))
}

// Removed implements item.Observer.
func (m *Metrics) Removed(size int) {
	m.RegistrySize.Set(float64(size))
}

// Looked implements item.Observer.
func (m *Metrics) Looked(hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	m.Lookups.WithLabelValues(result).Inc()
}

// Dump writes every metric gathered from g in the text exposition format.
func Dump(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return oops.In("metrics").Wrapf(err, "gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return oops.In("metrics").With("metric", mf.GetName()).Wrapf(err, "write metrics")
		}
	}
	return nil
}

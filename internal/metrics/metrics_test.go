// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package metrics_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/itemforge/internal/metrics"
	"github.com/holomush/itemforge/pkg/catalog"
	"github.com/holomush/itemforge/pkg/item"
	"github.com/holomush/itemforge/pkg/memhost"
)

func TestMetrics_Observer(t *testing.T) {
	m := metrics.New()

	m.Materialized("STONE")
	m.Materialized("STONE")
	m.Materialized("APPLE")
	m.Registered(1)
	m.Registered(2)
	m.Looked(true)
	m.Looked(false)
	m.Looked(false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Materializations.WithLabelValues("STONE")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Materializations.WithLabelValues("APPLE")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Registrations), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.RegistrySize), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.ResultHit)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Lookups.WithLabelValues(metrics.ResultMiss)), 0)
}

func TestMetrics_WiredThroughFactory(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewRegistered(reg)

	registry := item.NewRegistry(item.WithRegistryObserver(m))
	f := item.NewFactory(memhost.New(catalog.Default()),
		item.WithRegistry(registry), item.WithObserver(m), item.WithTracking(true))

	d, err := f.FromKindName("DIAMOND_SWORD", 1)
	require.NoError(t, err)
	a, err := d.Materialize()
	require.NoError(t, err)
	_, found := registry.Lookup(a)
	require.True(t, found)

	expected := `
# HELP itemforge_materializations_total Total number of artifacts materialized by kind
# TYPE itemforge_materializations_total counter
itemforge_materializations_total{kind="DIAMOND_SWORD"} 1
# HELP itemforge_registry_size Number of descriptors currently registered
# TYPE itemforge_registry_size gauge
itemforge_registry_size 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"itemforge_materializations_total", "itemforge_registry_size"))
}

func TestRegisterMetrics_Twice(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New()
	m.RegisterMetrics(reg)
	assert.Panics(t, func() { m.RegisterMetrics(reg) })
}

func TestDump(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewRegistered(reg)
	m.Materialized("PAPER")

	var buf bytes.Buffer
	require.NoError(t, metrics.Dump(reg, &buf))
	assert.Contains(t, buf.String(), `itemforge_materializations_total{kind="PAPER"} 1`)
	assert.Contains(t, buf.String(), "# TYPE itemforge_registry_size gauge")
}

func TestMetrics_RegistrySizeFollowsRemove(t *testing.T) {
	m := metrics.New()
	registry := item.NewRegistry(item.WithRegistryObserver(m))
	f := item.NewFactory(memhost.New(catalog.Default()), item.WithRegistry(registry), item.WithTracking(true))

	first, err := f.FromKindName("STONE", 1)
	require.NoError(t, err)
	_, err = f.FromKindName("APPLE", 1)
	require.NoError(t, err)
	assert.InDelta(t, 2, testutil.ToFloat64(m.RegistrySize), 0)

	require.True(t, registry.Remove(first.ID()))
	assert.InDelta(t, 1, testutil.ToFloat64(m.RegistrySize), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Registrations), 0, "removal does not count as a registration")
}

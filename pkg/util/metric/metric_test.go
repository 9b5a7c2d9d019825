// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package metric

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGauge(t *testing.T) {
	g := NewGauge(Metadata{Name: "test.gauge"})
	g.Update(10)
	g.Inc(5)
	g.Dec(3)
	require.Equal(t, int64(12), g.Value())
	require.Equal(t, 12.0, g.ToPrometheusMetric().GetGauge().GetValue())
}

func TestCounter(t *testing.T) {
	c := NewCounter(Metadata{Name: "test.counter"})
	c.Inc(3)
	c.Inc(-1)
	require.Equal(t, int64(3), c.Count())
	require.Equal(t, 3.0, c.ToPrometheusMetric().GetCounter().GetValue())
}

func TestPrometheusExporter(t *testing.T) {
	r := NewRegistry()
	g := NewGauge(Metadata{Name: "mem.cur", Help: "current bytes", Unit: Unit_BYTES})
	c := NewCounter(Metadata{Name: "mem.refused", Help: "refused allocations", Unit: Unit_COUNT})
	r.AddMetric(g)
	r.AddMetric(c)
	g.Update(4096)
	c.Inc(2)

	pm := MakePrometheusExporter()
	pm.ScrapeRegistry(r)
	var buf strings.Builder
	require.NoError(t, pm.PrintAsText(&buf))
	require.Equal(t, `# HELP mem_cur current bytes
# TYPE mem_cur gauge
mem_cur 4096
# HELP mem_refused refused allocations
# TYPE mem_refused counter
mem_refused 2
`, buf.String())

	// Families are emptied between scrapes.
	buf.Reset()
	require.NoError(t, pm.PrintAsText(&buf))
	require.Empty(t, buf.String())
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	r.MustAddMetric(NewGauge(Metadata{Name: "a"}))
	require.Panics(t, func() { r.MustAddMetric(NewCounter(Metadata{Name: "a"})) })
}

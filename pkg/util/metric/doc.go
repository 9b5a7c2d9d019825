// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

/*
Package metric provides gauges and counters for the memory accounting that
backs the containers, and a Prometheus exporter for them.

# Adding a new metric

First, describe the metric with a Metadata, then create it and add it to a
Registry:

	reg := metric.NewRegistry()
	cur := metric.NewGauge(metric.Metadata{
		Name:        "containers.mem.cur",
		Help:        "Current bytes reserved by container blocks",
		Measurement: "Memory",
		Unit:        metric.Unit_BYTES,
	})
	reg.AddMetric(cur)

The exporter then renders the registry in the Prometheus text format:

	pm := metric.MakePrometheusExporter()
	pm.ScrapeRegistry(reg)
	_ = pm.PrintAsText(w)
*/
package metric

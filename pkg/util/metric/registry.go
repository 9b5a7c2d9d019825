// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package metric

import (
	"github.com/cockroachdb/containers/pkg/util/syncutil"
	"github.com/cockroachdb/errors"
)

// A Registry is a list of metrics. It provides a simple way of iterating
// over them.
type Registry struct {
	mu struct {
		syncutil.Mutex
		metrics []PrometheusExportable
	}
}

// NewRegistry creates a new Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddMetric adds the passed-in metric to the registry.
func (r *Registry) AddMetric(metric PrometheusExportable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mu.metrics = append(r.mu.metrics, metric)
}

// MustAddMetric is like AddMetric but panics if a metric with the same name
// was already registered.
func (r *Registry) MustAddMetric(metric PrometheusExportable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mu.metrics {
		if m.GetName() == metric.GetName() {
			panic(errors.AssertionFailedf("metric %q registered twice", metric.GetName()))
		}
	}
	r.mu.metrics = append(r.mu.metrics, metric)
}

// Each calls the given closure for all metrics.
func (r *Registry) Each(f func(name string, val PrometheusExportable)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mu.metrics {
		f(m.GetName(), m)
	}
}

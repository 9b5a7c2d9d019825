// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package metric

import (
	"io"
	"sort"
	"strings"

	prometheusgo "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// PrometheusExporter contains a map of metric families (a metric with multiple labels).
// It initializes each metric family once and reuses it for each prometheus scrape.
// It is NOT thread-safe.
type PrometheusExporter struct {
	families map[string]*prometheusgo.MetricFamily
}

// MakePrometheusExporter returns an initialized prometheus exporter.
func MakePrometheusExporter() PrometheusExporter {
	return PrometheusExporter{families: map[string]*prometheusgo.MetricFamily{}}
}

// exportedName converts a dotted metric name into a prometheus-friendly one.
func exportedName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

// ScrapeRegistry scrapes all metrics contained in the registry to the metric
// family map, holding on only to the scraped values.
func (pm *PrometheusExporter) ScrapeRegistry(registry *Registry) {
	registry.Each(func(_ string, v PrometheusExportable) {
		name := exportedName(v.GetName())
		family, ok := pm.families[name]
		if !ok {
			help := v.GetHelp()
			family = &prometheusgo.MetricFamily{
				Name: &name,
				Help: &help,
				Type: v.GetType(),
			}
			pm.families[name] = family
		}
		family.Metric = append(family.Metric, v.ToPrometheusMetric())
	})
}

// PrintAsText writes all metrics in the families map to the io.Writer in
// prometheus' text format. It removes individual metrics from the families
// as it goes, readying the families for another round of registry scraping.
// Families with no scraped metrics are skipped.
func (pm *PrometheusExporter) PrintAsText(w io.Writer) error {
	names := make([]string, 0, len(pm.families))
	for name := range pm.families {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		family := pm.families[name]
		if len(family.Metric) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
		family.Metric = []*prometheusgo.Metric{}
	}
	return nil
}

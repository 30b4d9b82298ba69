// Package metrics instruments cmd/gridotbench with Prometheus collectors:
// promauto-registered histograms and counter vectors against a private
// registry. A one-shot benchmark has no scraper to serve, so Summary
// renders the gathered values as a text report instead of exposing
// /metrics.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects per-pair benchmark outcomes.
type Recorder struct {
	registry *prometheus.Registry

	pairDuration *prometheus.HistogramVec
	pairsTotal   *prometheus.CounterVec
}

// New builds a Recorder whose metric names are prefixed with namespace
// (cmd/gridotbench's config defaults it to "gridot").
func New(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		pairDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "pair_duration_seconds",
			Help:      "Wall-clock duration of one solved image pair.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"class", "resolution"}),
		pairsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bench",
			Name:      "pairs_total",
			Help:      "Total solved image pairs by outcome status.",
		}, []string{"status"}),
	}
}

// Observe records one solved pair's wall-clock duration and status
// ("OPTIMAL", "INFEASIBLE", or "UNBOUNDED").
func (r *Recorder) Observe(class string, resolution int, status string, seconds float64) {
	r.pairDuration.WithLabelValues(class, fmt.Sprintf("%d", resolution)).Observe(seconds)
	r.pairsTotal.WithLabelValues(status).Inc()
}

// Summary gathers every registered metric and renders a short text report:
// total pairs per status, and count/sum/mean duration per metric family.
// Reads client_model's *dto.MetricFamily directly rather than depending on
// the full Prometheus text-exposition formatter, since nothing here serves
// an actual /metrics endpoint.
func (r *Recorder) Summary() string {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Sprintf("metrics: gather failed: %v", err)
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})

	var b strings.Builder
	for _, fam := range families {
		fmt.Fprintf(&b, "%s (%s): %s\n", fam.GetName(), fam.GetType(), fam.GetHelp())
		for _, m := range fam.GetMetric() {
			fmt.Fprintf(&b, "  %s%s\n", labelString(m.GetLabel()), metricString(m))
		}
	}
	return b.String()
}

func labelString(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s=%s", l.GetName(), l.GetValue())
	}
	return "{" + strings.Join(parts, ",") + "} "
}

func metricString(m *dto.Metric) string {
	switch {
	case m.Counter != nil:
		return fmt.Sprintf("count=%g", m.GetCounter().GetValue())
	case m.Histogram != nil:
		h := m.GetHistogram()
		n := h.GetSampleCount()
		sum := h.GetSampleSum()
		mean := 0.0
		if n > 0 {
			mean = sum / float64(n)
		}
		return fmt.Sprintf("count=%d sum=%.6f mean=%.6f", n, sum, mean)
	default:
		return ""
	}
}

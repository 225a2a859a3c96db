// Package metrics holds the prometheus collectors of node directory lookups
// and topology resolutions.
//
// A CLI run is short-lived, so metrics are not served over HTTP; they are
// written once to a node_exporter textfile with [Metrics.WriteTextfile].
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "delivery_cluster"

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics groups the collectors on a private registry.
// All methods are safe on a nil receiver, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	resolutions    *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "lookups_total",
			Help:      "Node directory lookups by driver and outcome.",
		}, []string{"driver", "outcome"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "lookup_duration_seconds",
			Help:      "Latency of node directory lookups.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"driver"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "topology",
			Name:      "resolutions_total",
			Help:      "Topology resolutions by role, kind (fqdn or hostname) and outcome.",
		}, []string{"role", "kind", "outcome"}),
	}

	m.registry.MustRegister(m.lookups, m.lookupDuration, m.resolutions)
	return m
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveLookup records one directory lookup.
func (m *Metrics) ObserveLookup(driver, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(driver, outcome).Inc()
	m.lookupDuration.WithLabelValues(driver).Observe(elapsed.Seconds())
}

// ObserveResolution records one FQDN or hostname resolution.
func (m *Metrics) ObserveResolution(role, kind, outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(role, kind, outcome).Inc()
}

// WriteTextfile writes the current values in the text exposition format,
// atomically replacing path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

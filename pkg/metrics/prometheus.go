// Package metrics provides Prometheus metrics for the fastbreak pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Feature Engine accounting
	rowsIngested   prometheus.Counter
	playersDropped prometheus.Counter
	coldStartRows  prometheus.Counter
	featureRows    prometheus.Counter

	// Entity Resolver quality
	matchesAccepted *prometheus.CounterVec
	matchesDropped  prometheus.Counter
	lookupErrors    prometheus.Counter

	// Stage timings
	stageDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fastbreak",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_ingested_total",
		Help:      "Gamelog rows loaded across all season tables",
	})
	m.playersDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_dropped_total",
		Help:      "Players removed by the minimum game-count filter",
	})
	m.coldStartRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cold_start_rows_total",
		Help:      "Rows dropped for lacking any prior-game signal",
	})
	m.featureRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feature_rows_total",
		Help:      "Rows written to the golden feature table",
	})

	m.matchesAccepted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_accepted_total",
		Help:      "Identity matches that passed the confidence gate",
	}, []string{"method"})
	m.matchesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_dropped_total",
		Help:      "Observed names rejected below the confidence gate",
	})
	m.lookupErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "lookup_errors_total",
		Help:      "Per-name identifier lookup failures",
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Wall-clock duration of each pipeline stage",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})
}

// Handler returns an HTTP handler serving the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRowsIngested adds loaded gamelog rows.
func (m *Manager) RecordRowsIngested(n int) {
	if m.enabled && n > 0 {
		m.rowsIngested.Add(float64(n))
	}
}

// RecordPlayersDropped adds players cut by the population filter.
func (m *Manager) RecordPlayersDropped(n int) {
	if m.enabled && n > 0 {
		m.playersDropped.Add(float64(n))
	}
}

// RecordColdStartRows adds rows removed by the leakage guard.
func (m *Manager) RecordColdStartRows(n int) {
	if m.enabled && n > 0 {
		m.coldStartRows.Add(float64(n))
	}
}

// RecordFeatureRows adds rows written to the golden table.
func (m *Manager) RecordFeatureRows(n int) {
	if m.enabled && n > 0 {
		m.featureRows.Add(float64(n))
	}
}

// RecordMatchAccepted counts an accepted identity match by method.
func (m *Manager) RecordMatchAccepted(method string) {
	if m.enabled {
		m.matchesAccepted.WithLabelValues(method).Inc()
	}
}

// RecordMatchDropped counts a name rejected by the confidence gate.
func (m *Manager) RecordMatchDropped() {
	if m.enabled {
		m.matchesDropped.Inc()
	}
}

// RecordLookupError counts a per-name identifier lookup failure.
func (m *Manager) RecordLookupError() {
	if m.enabled {
		m.lookupErrors.Inc()
	}
}

// ObserveStageDuration records one stage's wall-clock time.
func (m *Manager) ObserveStageDuration(stage string, d time.Duration) {
	if m.enabled {
		m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// Default returns the global manager.
func Default() *Manager {
	return globalManager
}

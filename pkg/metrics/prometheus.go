// Package metrics provides Prometheus metrics for the scoutbase service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Mutation path
	dispatches     *prometheus.CounterVec
	dispatchErrors *prometheus.CounterVec

	// Store shape
	records prometheus.Gauge
	fields  prometheus.Gauge
	teams   prometheus.Gauge

	// Persistence
	saveDuration prometheus.Histogram
	saveErrors   prometheus.Counter
	loadFallback prometheus.Counter

	// Remote sync
	syncPushes       prometheus.Counter
	syncPushFailures prometheus.Counter
	syncPulls        prometheus.Counter
	syncPullFailures prometheus.Counter
	syncSkipped      prometheus.Counter
	syncBusyRejected prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoutbase",
		subsystem:        "store",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.dispatches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "dispatches_total",
			Help:      "Total number of accepted state operations by kind",
		},
		[]string{"op"},
	)

	m.dispatchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "dispatch_errors_total",
			Help:      "Total number of rejected state operations by kind",
		},
		[]string{"op"},
	)

	m.records = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records",
		Help:      "Current number of match records in the store",
	})

	m.fields = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "schema_fields",
		Help:      "Current number of scoring fields in the active schema",
	})

	m.teams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams",
		Help:      "Current number of distinct teams with at least one record",
	})

	m.saveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_duration_milliseconds",
		Help:      "Snapshot save latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.saveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_errors_total",
		Help:      "Total number of failed snapshot saves",
	})

	m.loadFallback = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_fallbacks_total",
		Help:      "Total number of startup loads that fell back to the default snapshot",
	})

	m.syncPushes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_pushes_total",
		Help:      "Total number of records pushed to the remote endpoint",
	})

	m.syncPushFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_push_failures_total",
		Help:      "Total number of failed record pushes",
	})

	m.syncPulls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_pulls_total",
		Help:      "Total number of successful remote pulls",
	})

	m.syncPullFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_pull_failures_total",
		Help:      "Total number of failed remote pulls",
	})

	m.syncSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_skipped_total",
		Help:      "Total number of sync attempts skipped because no endpoint is configured",
	})

	m.syncBusyRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sync_busy_rejected_total",
		Help:      "Total number of sync attempts rejected by the busy gate",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers operating on the global manager.

// RecordDispatch increments the accepted-operation counter for op.
func RecordDispatch(op string) {
	globalManager.dispatches.WithLabelValues(op).Inc()
}

// RecordDispatchError increments the rejected-operation counter for op.
func RecordDispatchError(op string) {
	globalManager.dispatchErrors.WithLabelValues(op).Inc()
}

// UpdateRecordCount sets the current record count gauge.
func UpdateRecordCount(n int) {
	globalManager.records.Set(float64(n))
}

// UpdateFieldCount sets the current schema field count gauge.
func UpdateFieldCount(n int) {
	globalManager.fields.Set(float64(n))
}

// UpdateTeamCount sets the current distinct team count gauge.
func UpdateTeamCount(n int) {
	globalManager.teams.Set(float64(n))
}

// RecordSaveDuration observes one snapshot save latency.
func RecordSaveDuration(ms float64) {
	globalManager.saveDuration.Observe(ms)
}

// RecordSaveError increments the failed-save counter.
func RecordSaveError() {
	globalManager.saveErrors.Inc()
}

// RecordLoadFallback increments the default-snapshot fallback counter.
func RecordLoadFallback() {
	globalManager.loadFallback.Inc()
}

// RecordSyncPush increments the pushed-record counter.
func RecordSyncPush() {
	globalManager.syncPushes.Inc()
}

// RecordSyncPushFailure increments the failed-push counter.
func RecordSyncPushFailure() {
	globalManager.syncPushFailures.Inc()
}

// RecordSyncPull increments the successful-pull counter.
func RecordSyncPull() {
	globalManager.syncPulls.Inc()
}

// RecordSyncPullFailure increments the failed-pull counter.
func RecordSyncPullFailure() {
	globalManager.syncPullFailures.Inc()
}

// RecordSyncSkipped increments the no-endpoint skip counter.
func RecordSyncSkipped() {
	globalManager.syncSkipped.Inc()
}

// RecordSyncBusyRejected increments the busy-gate rejection counter.
func RecordSyncBusyRejected() {
	globalManager.syncBusyRejected.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

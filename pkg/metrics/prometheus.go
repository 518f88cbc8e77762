// Package metrics provides Prometheus metrics for the SalaryScope service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Dataset Metrics - load outcome and row quality
	datasetLoads        *prometheus.CounterVec
	datasetLoadDuration prometheus.Histogram
	datasetRowsLoaded   prometheus.Gauge
	datasetRowsDropped  *prometheus.CounterVec
	catalogTitles       prometheus.Gauge

	// Render Metrics
	renders         *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
	pointsRendered  prometheus.Gauge
	interactions    *prometheus.CounterVec
	interactionTime prometheus.Histogram

	// Session Metrics
	sessionsActive  prometheus.Gauge
	sessionsEvicted prometheus.Counter

	// Queue Metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors *prometheus.CounterVec

	// HTTP Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "salaryscope",
		subsystem:        "plot",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.datasetLoads = m.counterVec("dataset_loads_total", "Dataset load attempts by outcome (loaded, empty, failed)", "outcome")
	m.datasetLoadDuration = m.histogram("dataset_load_duration_milliseconds", "Time to fetch and normalise the dataset", m.histogramBuckets)
	m.datasetRowsLoaded = m.gauge("dataset_rows_loaded", "Number of valid samples in the working set")
	m.datasetRowsDropped = m.counterVec("dataset_rows_dropped_total", "Rows dropped during normalisation by reason", "reason")
	m.catalogTitles = m.gauge("catalog_titles", "Number of distinct job titles in the catalog")

	m.renders = m.counterVec("renders_total", "Scene renders by output format and outcome", "format", "outcome")
	m.renderDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_duration_milliseconds",
		Help:        "Scene build plus encode latency by output format",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"format"})
	m.pointsRendered = m.gauge("points_rendered", "Markers drawn by the most recent render")
	m.interactions = m.counterVec("interactions_total", "Interactions applied to viewer sessions by kind", "kind")
	m.interactionTime = m.histogram("interaction_latency_milliseconds", "Time from enqueue to applied interaction", m.histogramBuckets)

	m.sessionsActive = m.gauge("sessions_active", "Viewer sessions currently registered")
	m.sessionsEvicted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sessions_evicted_total",
		Help:        "Sessions evicted because the registry was full",
		ConstLabels: m.customLabels,
	})

	m.queueSize = m.gauge("queue_size", "Interactions waiting for the event loop")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the interaction queue")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Interactions rejected by the queue", "reason")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpRateLimited = m.counterVec("http_rate_limited_total", "Requests rejected by the rate limiter", "endpoint")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by HTTP endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Current memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Current number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Dataset Metrics Functions.

// RecordDatasetLoad counts a load attempt and its duration.
func RecordDatasetLoad(outcome string, durationMs float64) {
	globalManager.datasetLoads.WithLabelValues(outcome).Inc()
	globalManager.datasetLoadDuration.Observe(durationMs)
}

// UpdateDatasetRows sets the size of the working set.
func UpdateDatasetRows(count int) {
	globalManager.datasetRowsLoaded.Set(float64(count))
}

// RecordRowsDropped adds dropped rows for a reason.
func RecordRowsDropped(reason string, count int) {
	if count <= 0 {
		return
	}
	globalManager.datasetRowsDropped.WithLabelValues(reason).Add(float64(count))
}

// UpdateCatalogTitles sets the number of titles offered by the filter control.
func UpdateCatalogTitles(count int) {
	globalManager.catalogTitles.Set(float64(count))
}

// Render Metrics Functions.

// RecordRender counts a render and records its latency.
func RecordRender(format, outcome string, durationMs float64, points int) {
	globalManager.renders.WithLabelValues(format, outcome).Inc()
	globalManager.renderDuration.WithLabelValues(format).Observe(durationMs)
	globalManager.pointsRendered.Set(float64(points))
}

// RecordInteraction counts an applied interaction.
func RecordInteraction(kind string, latencyMs float64) {
	globalManager.interactions.WithLabelValues(kind).Inc()
	globalManager.interactionTime.Observe(latencyMs)
}

// Session Metrics Functions.

// UpdateSessionsActive sets the session registry size.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// RecordSessionEvicted counts an evicted session.
func RecordSessionEvicted() {
	globalManager.sessionsEvicted.Inc()
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError counts a rejected interaction.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error for an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

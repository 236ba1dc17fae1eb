package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector tracks request outcomes, retries and cache effectiveness
// as Prometheus metrics.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
}

// NewMetricsCollector creates a collector registered on the default
// Prometheus registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector registered on reg.
func NewMetricsCollectorWithRegistry(reg prometheus.Registerer) *MetricsCollector {
	m := &MetricsCollector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dubplate_requests_total",
			Help: "Total API requests by operation, method and status code.",
		}, []string{"operation", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dubplate_request_duration_seconds",
			Help:    "API request latency including retries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "method"}),
		retriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dubplate_retries_total",
			Help: "Retry attempts scheduled by operation.",
		}, []string{"operation"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dubplate_errors_total",
			Help: "Failed calls by error type and operation.",
		}, []string{"type", "operation"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dubplate_cache_hits_total",
			Help: "Responses served from the cache.",
		}, []string{"operation"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dubplate_cache_misses_total",
			Help: "Cache lookups that fell through to the network.",
		}, []string{"operation"}),
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.retriesTotal, m.errorsTotal, m.cacheHits, m.cacheMisses)
	return m
}

// RecordRequest records one completed call. A zero status means the call
// failed before any HTTP response arrived.
func (m *MetricsCollector) RecordRequest(operation, method string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(operation, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(operation, method).Observe(duration.Seconds())
}

// RecordRetry records a scheduled retry after the given attempt.
func (m *MetricsCollector) RecordRetry(operation string, attempt int) {
	m.retriesTotal.WithLabelValues(operation).Inc()
}

// RecordError records a failed call by error type.
func (m *MetricsCollector) RecordError(errType, operation string) {
	m.errorsTotal.WithLabelValues(errType, operation).Inc()
}

// RecordCacheHit records a response served from the cache.
func (m *MetricsCollector) RecordCacheHit(operation string) {
	m.cacheHits.WithLabelValues(operation).Inc()
}

// RecordCacheMiss records a cache lookup that missed.
func (m *MetricsCollector) RecordCacheMiss(operation string) {
	m.cacheMisses.WithLabelValues(operation).Inc()
}

package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// StorageFallbacksTotal counts operations rerouted from the durable
	// store to the ephemeral store.
	StorageFallbacksTotal *prometheus.CounterVec
	StorageErrorsTotal    *prometheus.CounterVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	SearchQueriesTotal prometheus.Counter
	MigratedRowsTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics on a fresh
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "atlas_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		StorageFallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_storage_fallbacks_total",
				Help: "Operations rerouted to the ephemeral store",
			},
			[]string{"kind", "op", "reason"},
		),
		StorageErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_storage_errors_total",
				Help: "Storage operations that failed on both backends",
			},
			[]string{"kind", "op"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_cache_hits_total",
				Help: "Cache hits by layer",
			},
			[]string{"layer"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_cache_misses_total",
				Help: "Cache misses by layer",
			},
			[]string{"layer"},
		),
		SearchQueriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "atlas_search_queries_total",
				Help: "Cross-kind search queries served",
			},
		),
		MigratedRowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_migrated_rows_total",
				Help: "Rows copied by the migration utility",
			},
			[]string{"kind", "outcome"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StorageFallbacksTotal,
		m.StorageErrorsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.SearchQueriesTotal,
		m.MigratedRowsTotal,
	)
	return m
}

// Handler returns the /metrics scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// InstrumentHandler wraps an HTTP handler with request counting and
// latency observation. The path label is the route template, not the
// raw URL, to keep cardinality bounded.
func (m *Metrics) InstrumentHandler(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

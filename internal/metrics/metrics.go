// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clickstream_db_query_duration_seconds",
			Help:    "Duration of dashboard queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "template"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickstream_db_query_errors_total",
			Help: "Total number of failed dashboard queries",
		},
		[]string{"driver", "template", "error_type"},
	)

	DBRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickstream_db_rows_loaded_total",
			Help: "Rows inserted into shopper_data by the CSV loader",
		},
		[]string{"outcome"}, // "inserted", "dropped"
	)

	// Charts
	ChartRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clickstream_chart_renders_total",
			Help: "Chart render outcomes per context",
		},
		[]string{"context", "status"}, // status: "ok", "empty", "error"
	)

	RenderPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clickstream_render_pass_duration_seconds",
			Help:    "Duration of a full dashboard render pass",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "charts", "filter_options"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a query's duration and, on failure, its error.
func RecordDBQuery(driver, template string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(driver, template).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(driver, template, errorType).Inc()
	}
}

// RecordChartRender counts one chart outcome.
func RecordChartRender(context, status string) {
	ChartRenders.WithLabelValues(context, status).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

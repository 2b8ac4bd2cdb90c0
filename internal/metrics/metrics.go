// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Recommendation pipeline latency and outcomes
// - Storage read performance and circuit breaker state
// - API endpoint latency and throughput
// - Engine cache efficiency

var (
	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"}, // "success", "not_found", "unavailable", "error"
	)

	RecommendationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_latency_seconds",
			Help:    "End-to-end recommendation pipeline latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates_scored",
			Help:    "Number of candidates scored per request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	RecommendationSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_candidates_skipped_total",
			Help: "Total number of malformed candidates skipped during scoring",
		},
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Storage Metrics
	StoreReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_read_duration_seconds",
			Help:    "Duration of storage reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "user", "swipes", "threads", "matches", "interactions", "candidates"
	)

	StoreReadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_read_errors_total",
			Help: "Total number of storage read errors",
		},
		[]string{"operation"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_gc_runs_total",
			Help: "Total number of value log garbage collection runs",
		},
		[]string{"result"}, // "reclaimed", "noop", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)
)

// RecordRecommendation records an engine request outcome and latency.
func RecordRecommendation(outcome string, duration time.Duration, candidatesScored int) {
	RecommendationRequests.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		RecommendationLatency.Observe(duration.Seconds())
		RecommendationCandidates.Observe(float64(candidatesScored))
	}
}

// RecordStoreRead records a storage read metric.
func RecordStoreRead(operation string, duration time.Duration, err error) {
	StoreReadDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreReadErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, endpoint, statusCode).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

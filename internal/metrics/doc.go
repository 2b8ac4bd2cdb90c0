// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the matching platform using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - Recommendation pipeline latency, outcomes, and candidate volumes
  - Storage read performance and garbage collection
  - Circuit breaker state transitions
  - Engine cache hit/miss rates
  - HTTP request latency and throughput

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Usage

Metrics are package-level collectors registered via promauto at init time.
Record helpers wrap the common patterns:

	defer func(start time.Time) {
	    metrics.RecordRecommendation("success", time.Since(start), scored)
	}(time.Now())

Gauges and counters can also be used directly:

	metrics.CircuitBreakerState.WithLabelValues("store").Set(0)
*/
package metrics

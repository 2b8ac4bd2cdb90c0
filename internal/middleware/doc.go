// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - RequestID: UUID-based request tracking, honoring upstream X-Request-ID
  - RequestLogger: One structured zerolog line per request
  - PrometheusMetrics: Request count, latency, and in-flight instrumentation

Middleware Stack:

The router applies the chain outermost first:

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics)

Compression and rate limiting come from chi's ecosystem (middleware.Compress,
httprate) and are wired directly in the router rather than reimplemented here.
*/
package middleware

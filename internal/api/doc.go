// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

/*
Package api provides the HTTP surface of the recommendation service.

Routing uses chi with go-chi/cors for CORS and go-chi/httprate for
per-IP rate limiting. All responses share the APIResponse envelope with
request IDs threaded through for tracing.

Endpoints:

	GET  /health                                        liveness
	GET  /ready                                         readiness (store probe)
	GET  /metrics                                       Prometheus metrics
	GET  /api/v1/recommendations/user/{userID}          ranked recommendations (?k=N)
	GET  /api/v1/recommendations/user/{userID}/profile  derived behavior profile
	GET  /api/v1/recommendations/user/{userID}/patterns mined success patterns
	GET  /api/v1/recommendations/status                 engine counters
	GET  /api/v1/recommendations/config                 current scoring config
	PUT  /api/v1/recommendations/config                 replace scoring config

Pipeline errors map to status codes: unknown users produce 404, an open
circuit breaker or fan-out timeout produces 503, anything else 500.
*/
package api

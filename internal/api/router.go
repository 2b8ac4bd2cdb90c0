// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/founderbridge/founderbridge/internal/middleware"
)

// RouterConfig holds the API surface knobs the router needs.
type RouterConfig struct {
	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string

	// RateLimitReqs is the per-IP request budget per window. Zero
	// disables rate limiting.
	RateLimitReqs int

	// RateLimitWindow is the rate limit measurement window.
	RateLimitWindow time.Duration
}

// NewRouter wires the HTTP routes and middleware stack.
func NewRouter(h *Handler, cfg RouterConfig, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied outermost first.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Operational endpoints stay outside the rate limit so probes and
	// scrapers are never throttled.
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/recommendations", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/status", h.Status)
		r.Get("/config", h.ConfigGet)
		r.Put("/config", h.ConfigUpdate)

		r.Route("/user/{userID}", func(r chi.Router) {
			r.Get("/", h.Recommendations)
			r.Get("/profile", h.Profile)
			r.Get("/patterns", h.Patterns)
		})
	})

	return r
}

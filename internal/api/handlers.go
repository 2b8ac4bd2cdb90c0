// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/founderbridge/founderbridge/internal/recommend"
	"github.com/founderbridge/founderbridge/internal/validation"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	engine    *recommend.Engine
	logger    zerolog.Logger
	startTime time.Time

	// readyCheck probes the storage backend for the readiness endpoint.
	// Nil means always ready.
	readyCheck func() error

	version string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithReadyCheck sets the readiness probe used by /ready.
func WithReadyCheck(check func() error) HandlerOption {
	return func(h *Handler) {
		h.readyCheck = check
	}
}

// WithVersion sets the version string reported by /health and /status.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) {
		h.version = v
	}
}

// NewHandler creates a Handler around the recommendation engine.
func NewHandler(engine *recommend.Engine, logger zerolog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:    engine,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
		version:   "dev",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// recommendationsQuery is the validated input for the recommendations
// endpoint.
type recommendationsQuery struct {
	UserID string `validate:"required,min=1,max=128"`
	K      int    `validate:"min=0,max=100"`
}

// Recommendations handles GET /api/v1/recommendations/user/{userID}.
// The optional k query parameter caps the number of results; zero
// selects the configured default.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := recommendationsQuery{UserID: chi.URLParam(r, "userID")}
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			rw.BadRequest("k must be an integer")
			return
		}
		q.K = k
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		UserID: q.UserID,
		K:      q.K,
	})
	if err != nil {
		h.respondEngineError(rw, err)
		return
	}

	rw.Success(resp)
}

// Profile handles GET /api/v1/recommendations/user/{userID}/profile.
// It exposes the derived behavior profile for diagnostics.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		rw.BadRequest("userID is required")
		return
	}

	profile, err := h.engine.BuildProfile(r.Context(), userID)
	if err != nil {
		h.respondEngineError(rw, err)
		return
	}

	rw.Success(profile)
}

// Patterns handles GET /api/v1/recommendations/user/{userID}/patterns.
// It exposes the mined success patterns for diagnostics.
func (h *Handler) Patterns(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		rw.BadRequest("userID is required")
		return
	}

	patterns, err := h.engine.MinePatterns(r.Context(), userID)
	if err != nil {
		h.respondEngineError(rw, err)
		return
	}

	rw.Success(map[string]interface{}{
		"user_id":  userID,
		"patterns": patterns,
		"count":    len(patterns),
	})
}

// Status handles GET /api/v1/recommendations/status. It reports engine
// counters alongside process uptime.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	m := h.engine.GetMetrics()
	rw.Success(map[string]interface{}{
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"engine":         m,
	})
}

// ConfigGet handles GET /api/v1/recommendations/config.
func (h *Handler) ConfigGet(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(h.engine.GetConfig())
}

// ConfigUpdate handles PUT /api/v1/recommendations/config. The new
// configuration takes effect atomically and clears the response cache.
func (h *Handler) ConfigUpdate(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var cfg recommend.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		rw.BadRequest("invalid JSON body: " + err.Error())
		return
	}

	if err := h.engine.UpdateConfig(&cfg); err != nil {
		rw.ValidationError(err.Error(), nil)
		return
	}

	h.logger.Info().Msg("scoring configuration updated")
	rw.Success(h.engine.GetConfig())
}

// Health handles GET /health. It reports liveness only.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(map[string]interface{}{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}

// Ready handles GET /ready. It probes the storage backend so load
// balancers stop routing before the store goes away.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.readyCheck != nil {
		if err := h.readyCheck(); err != nil {
			h.logger.Warn().Err(err).Msg("readiness probe failed")
			rw.ServiceUnavailable("store not ready")
			return
		}
	}

	rw.Success(map[string]interface{}{"status": "ready"})
}

// respondEngineError maps pipeline errors onto HTTP status codes.
func (h *Handler) respondEngineError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrUserNotFound):
		rw.NotFound("user not found")
	case recommend.IsUnavailable(err):
		rw.ServiceUnavailable("recommendations temporarily unavailable")
	default:
		h.logger.Error().Err(err).Msg("recommendation pipeline failed")
		rw.InternalError("recommendation pipeline failed")
	}
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/founderbridge/founderbridge/internal/metrics"
	"github.com/founderbridge/founderbridge/internal/recommend"
)

// Provider adapts a Store to the recommendation engine's DataProvider
// interface behind a circuit breaker. When storage misbehaves the
// breaker opens and requests fail fast with a classified error instead
// of stacking up behind a slow backend.
//
// The circuit breaker uses real time (via sony/gobreaker) for its
// interval and timeout calculations. The timing determines when to
// recover from failures, not data integrity; tests exercising engine
// behavior should use the Store directly.
type Provider struct {
	store  Store
	cb     *gobreaker.CircuitBreaker[any]
	logger zerolog.Logger
}

// NewProvider wraps a Store in a DataProvider with circuit breaker
// protection. Breaker configuration:
//   - Max 3 concurrent probes in half-open state
//   - 1 minute measurement window
//   - 30 second timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewProvider(s Store, logger zerolog.Logger) *Provider {
	cbName := "store"
	logger = logger.With().Str("component", "store_provider").Logger()

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},

		// Missing records are a caller problem, not a storage failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})

	return &Provider{store: s, cb: cb, logger: logger}
}

// GetUser implements recommend.DataProvider.
func (p *Provider) GetUser(ctx context.Context, userID string) (*recommend.UserProfile, error) {
	return execute(p, func() (*recommend.UserProfile, error) {
		return p.store.GetUser(ctx, userID)
	})
}

// GetSwipeHistory implements recommend.DataProvider.
func (p *Provider) GetSwipeHistory(ctx context.Context, userID string) ([]recommend.SwipeEvent, error) {
	return execute(p, func() ([]recommend.SwipeEvent, error) {
		return p.store.SwipeHistory(ctx, userID)
	})
}

// GetMessageThreads implements recommend.DataProvider.
func (p *Provider) GetMessageThreads(ctx context.Context, userID string) ([]recommend.MessageThread, error) {
	return execute(p, func() ([]recommend.MessageThread, error) {
		return p.store.MessageThreads(ctx, userID)
	})
}

// GetMatchHistory implements recommend.DataProvider.
func (p *Provider) GetMatchHistory(ctx context.Context, userID string) ([]recommend.MatchRecord, error) {
	return execute(p, func() ([]recommend.MatchRecord, error) {
		return p.store.MatchHistory(ctx, userID)
	})
}

// GetRecentInteractions implements recommend.DataProvider. The user ID
// is unused: recency is a property of the candidates, so the window is
// platform-wide.
func (p *Provider) GetRecentInteractions(ctx context.Context, _ string, since time.Time) ([]recommend.InteractionEvent, error) {
	return execute(p, func() ([]recommend.InteractionEvent, error) {
		return p.store.RecentInteractions(ctx, since)
	})
}

// GetCandidatePool implements recommend.DataProvider.
func (p *Provider) GetCandidatePool(ctx context.Context, userID string, limit int) ([]recommend.Candidate, error) {
	return execute(p, func() ([]recommend.Candidate, error) {
		return p.store.CandidatePool(ctx, userID, limit)
	})
}

// execute runs a store read through the circuit breaker and maps
// storage errors to the engine's sentinel errors.
func execute[T any](p *Provider, fn func() (T, error)) (T, error) {
	result, err := p.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, classifyStoreErr(err)
	}
	out, ok := result.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return out, nil
}

func classifyStoreErr(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return recommend.ErrUserNotFound
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return recommend.ErrUpstreamUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return recommend.ErrUpstreamTimeout
	default:
		return err
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package supervisor

import (
	"context"
	"errors"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/founderbridge/founderbridge/internal/metrics"
)

// GCRunner runs one round of value log garbage collection.
// Satisfied by store.BadgerStore.
type GCRunner interface {
	RunGC(discardRatio float64) error
}

// StoreGCService periodically runs BadgerDB value log garbage
// collection. Badger never reclaims value log space on its own, so a
// long-running service has to drive it.
type StoreGCService struct {
	store        GCRunner
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
	name         string
}

// NewStoreGCService creates the garbage collection service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStoreGCService(store GCRunner, interval time.Duration, discardRatio float64, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &StoreGCService{
		store:        store,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("service", "store-gc").Logger(),
		name:         "store-gc",
	}
}

// Serve implements suture.Service. One GC round may only rewrite a
// single value log file, so each tick loops until badger reports
// nothing left to reclaim.
func (s *StoreGCService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.interval).
		Float64("discard_ratio", s.discardRatio).
		Msg("store gc service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("store gc service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *StoreGCService) runOnce() {
	reclaimed := 0
	for {
		err := s.store.RunGC(s.discardRatio)
		if err == nil {
			reclaimed++
			metrics.StoreGCRuns.WithLabelValues("reclaimed").Inc()
			continue
		}
		if errors.Is(err, badger.ErrNoRewrite) {
			if reclaimed == 0 {
				metrics.StoreGCRuns.WithLabelValues("noop").Inc()
			}
			s.logger.Debug().Int("files_reclaimed", reclaimed).Msg("gc round complete")
			return
		}
		metrics.StoreGCRuns.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Msg("value log gc failed")
		return
	}
}

// String implements fmt.Stringer for suture's log messages.
func (s *StoreGCService) String() string {
	return s.name
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

// Package main is the entry point for the FounderBridge recommendation
// server.
//
// FounderBridge matches entrepreneurs with funders. This service ranks
// candidate profiles for a user by combining static compatibility,
// learned swipe behavior, and patterns mined from past successful
// matches, and explains every score with human-readable insights.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load via koanf (defaults, YAML file, FB_ env vars)
//  2. Storage: BadgerDB (or in-memory for development)
//  3. Data provider: store reads behind a circuit breaker
//  4. Recommendation engine: scoring pipeline with response cache
//  5. Supervisor tree: store GC and the HTTP server under suture
//
// # Configuration
//
// Configuration is loaded via koanf with layered sources (highest
// priority wins): FB_-prefixed environment variables, a YAML config
// file (FB_CONFIG_PATH or ./config.yaml), and built-in defaults.
//
// Common variables:
//   - FB_SERVER_PORT: listen port (default 8080)
//   - FB_STORE_TYPE: badger or memory (default badger)
//   - FB_STORE_PATH: BadgerDB directory (default /data/founderbridge)
//   - FB_STORE_SEED_DEMO: load the demo dataset at startup
//   - FB_LOG_LEVEL: debug, info, warn, error (default info)
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the HTTP
// server stops accepting connections, in-flight requests get the
// configured shutdown timeout, and the store is closed last.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/founderbridge/founderbridge/internal/api"
	"github.com/founderbridge/founderbridge/internal/config"
	"github.com/founderbridge/founderbridge/internal/logging"
	"github.com/founderbridge/founderbridge/internal/recommend"
	"github.com/founderbridge/founderbridge/internal/store"
	"github.com/founderbridge/founderbridge/internal/supervisor"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, so this uses the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Caller: cfg.Log.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("store_type", cfg.Store.Type).
		Int("port", cfg.Server.Port).
		Msg("Starting FounderBridge recommendation service")

	s, badgerStore, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := s.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Store.SeedDemo {
		if err := store.SeedDemo(ctx, s, time.Now().UTC()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		logging.Info().Msg("Demo dataset seeded (FB_STORE_SEED_DEMO=true)")
	}

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetDataProvider(store.NewProvider(s, logging.Logger()))
	logging.Info().Msg("Recommendation engine initialized")

	handler := api.NewHandler(engine, logging.Logger(),
		api.WithVersion(version),
		api.WithReadyCheck(func() error {
			// A probe read exercises the full read path.
			_, err := s.CandidatePool(context.Background(), "", 1)
			return err
		}),
	)

	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.API.CORSOrigins,
		RateLimitReqs:   cfg.API.RateLimitReqs,
		RateLimitWindow: cfg.API.RateLimitWindow,
	}, logging.Logger())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Supervisor events go through the slog adapter so sutureslog and
	// zerolog share one output stream.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	if badgerStore != nil {
		tree.AddDataService(supervisor.NewStoreGCService(
			badgerStore,
			cfg.Store.GCInterval,
			cfg.Store.GCDiscardRatio,
			logging.Logger(),
		))
		logging.Info().
			Dur("interval", cfg.Store.GCInterval).
			Msg("Store GC service added to supervisor tree")
	}

	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor finishes shutting down.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// openStore opens the configured storage backend. The second return
// value is non-nil only for badger, where the caller wires GC.
func openStore(cfg *config.Config) (store.Store, *store.BadgerStore, error) {
	switch cfg.Store.Type {
	case "badger":
		bs, err := store.OpenBadger(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger at %s: %w", cfg.Store.Path, err)
		}
		return bs, bs, nil
	case "memory":
		logging.Warn().Msg("Using in-memory store; all data is lost on restart")
		return store.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
}

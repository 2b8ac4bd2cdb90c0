// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package config

import (
	"fmt"
	"time"

	"github.com/founderbridge/founderbridge/internal/recommend"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Store     StoreConfig     `koanf:"store"`
	API       APIConfig       `koanf:"api"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// ReadTimeout bounds request header and body reads.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown on exit.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line in log output.
	Caller bool `koanf:"caller"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// Type selects the backend: badger or memory.
	Type string `koanf:"type"`

	// Path is the BadgerDB data directory. Ignored for memory stores.
	Path string `koanf:"path"`

	// SeedDemo loads the demo dataset at startup when true.
	SeedDemo bool `koanf:"seed_demo"`

	// GCInterval is how often value log garbage collection runs.
	GCInterval time.Duration `koanf:"gc_interval"`

	// GCDiscardRatio is the badger value log discard ratio (0-1).
	GCDiscardRatio float64 `koanf:"gc_discard_ratio"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the per-IP request budget per window.
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit measurement window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// RecommendConfig holds the operator-tunable subset of the engine
// configuration. Omitted knobs keep the engine defaults.
type RecommendConfig struct {
	BaseWeight     float64 `koanf:"base_weight"`
	BehaviorWeight float64 `koanf:"behavior_weight"`
	PatternWeight  float64 `koanf:"pattern_weight"`

	DefaultK        int           `koanf:"default_k"`
	MaxK            int           `koanf:"max_k"`
	MaxCandidates   int           `koanf:"max_candidates"`
	PipelineTimeout time.Duration `koanf:"pipeline_timeout"`

	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}

	switch c.Store.Type {
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for badger stores")
		}
		if c.Store.GCDiscardRatio <= 0 || c.Store.GCDiscardRatio >= 1 {
			return fmt.Errorf("store.gc_discard_ratio must be in (0, 1), got %f", c.Store.GCDiscardRatio)
		}
		if c.Store.GCInterval <= 0 {
			return fmt.Errorf("store.gc_interval must be positive, got %v", c.Store.GCInterval)
		}
	case "memory":
	default:
		return fmt.Errorf("store.type must be badger or memory, got %q", c.Store.Type)
	}

	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be positive, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive, got %v", c.API.RateLimitWindow)
	}

	// Engine-level validation catches weight and limit errors.
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	return nil
}

// EngineConfig builds the engine configuration from the engine defaults
// overlaid with the operator-tunable knobs.
func (c *Config) EngineConfig() *recommend.Config {
	ec := recommend.DefaultConfig()

	ec.Weights.Base = c.Recommend.BaseWeight
	ec.Weights.Behavior = c.Recommend.BehaviorWeight
	ec.Weights.Pattern = c.Recommend.PatternWeight

	ec.Limits.DefaultK = c.Recommend.DefaultK
	ec.Limits.MaxK = c.Recommend.MaxK
	ec.Limits.MaxCandidates = c.Recommend.MaxCandidates
	ec.Limits.PipelineTimeout = c.Recommend.PipelineTimeout

	ec.Cache.Enabled = c.Recommend.CacheEnabled
	ec.Cache.TTL = c.Recommend.CacheTTL

	return ec
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/founderbridge/founderbridge/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/founderbridge/config.yaml",
	"/etc/founderbridge/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the
// config file path.
const ConfigPathEnvVar = "FB_CONFIG_PATH"

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	engine := recommend.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Store: StoreConfig{
			Type:           "badger",
			Path:           "/data/founderbridge",
			SeedDemo:       false,
			GCInterval:     10 * time.Minute,
			GCDiscardRatio: 0.5,
		},
		API: APIConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Recommend: RecommendConfig{
			BaseWeight:      engine.Weights.Base,
			BehaviorWeight:  engine.Weights.Behavior,
			PatternWeight:   engine.Weights.Pattern,
			DefaultK:        engine.Limits.DefaultK,
			MaxK:            engine.Limits.MaxK,
			MaxCandidates:   engine.Limits.MaxCandidates,
			PipelineTimeout: engine.Limits.PipelineTimeout,
			CacheEnabled:    engine.Cache.Enabled,
			CacheTTL:        engine.Cache.TTL,
		},
	}
}

// Load builds the configuration from three layers: struct defaults,
// an optional YAML file, and FB_-prefixed environment variables
// (highest priority).
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// FB_SERVER_PORT -> server.port, FB_STORE_PATH -> store.path
	envProvider := env.Provider("FB_", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	// CORS origins arrive as a comma-separated string from the env.
	if origins := k.String("api.cors_origins"); origins != "" && strings.Contains(origins, ",") {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set("api.cors_origins", parts); err != nil {
			return nil, fmt.Errorf("set cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile locates the config file, honoring FB_CONFIG_PATH.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc transforms FB_-prefixed environment variable names
// to koanf config paths.
//
// Examples:
//   - FB_SERVER_PORT -> server.port
//   - FB_STORE_PATH -> store.path
//   - FB_RECOMMEND_DEFAULT_K -> recommend.default_k
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, "FB_"))

	// Multi-word field names cannot be derived by splitting on the
	// first underscore alone, so map them explicitly.
	envMappings := map[string]string{
		"server_read_timeout":     "server.read_timeout",
		"server_write_timeout":    "server.write_timeout",
		"server_shutdown_timeout": "server.shutdown_timeout",

		"store_seed_demo":        "store.seed_demo",
		"store_gc_interval":      "store.gc_interval",
		"store_gc_discard_ratio": "store.gc_discard_ratio",

		"api_cors_origins":      "api.cors_origins",
		"api_rate_limit_reqs":   "api.rate_limit_reqs",
		"api_rate_limit_window": "api.rate_limit_window",

		"recommend_base_weight":      "recommend.base_weight",
		"recommend_behavior_weight":  "recommend.behavior_weight",
		"recommend_pattern_weight":   "recommend.pattern_weight",
		"recommend_default_k":        "recommend.default_k",
		"recommend_max_k":            "recommend.max_k",
		"recommend_max_candidates":   "recommend.max_candidates",
		"recommend_pipeline_timeout": "recommend.pipeline_timeout",
		"recommend_cache_enabled":    "recommend.cache_enabled",
		"recommend_cache_ttl":        "recommend.cache_ttl",
	}
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Single-word fields: SECTION_FIELD -> section.field
	if idx := strings.Index(key, "_"); idx > 0 {
		return key[:idx] + "." + key[idx+1:]
	}
	return key
}

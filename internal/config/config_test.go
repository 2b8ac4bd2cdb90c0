// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearFBEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Store.Type != "badger" {
		t.Errorf("Store.Type = %q, want badger", cfg.Store.Type)
	}
	if cfg.Recommend.BaseWeight != 0.4 {
		t.Errorf("Recommend.BaseWeight = %f, want 0.4", cfg.Recommend.BaseWeight)
	}
	if cfg.Recommend.DefaultK != 20 {
		t.Errorf("Recommend.DefaultK = %d, want 20", cfg.Recommend.DefaultK)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearFBEnv(t)
	t.Setenv("FB_SERVER_PORT", "9090")
	t.Setenv("FB_LOG_LEVEL", "debug")
	t.Setenv("FB_STORE_TYPE", "memory")
	t.Setenv("FB_RECOMMEND_DEFAULT_K", "10")
	t.Setenv("FB_RECOMMEND_CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Store.Type != "memory" {
		t.Errorf("Store.Type = %q, want memory", cfg.Store.Type)
	}
	if cfg.Recommend.DefaultK != 10 {
		t.Errorf("Recommend.DefaultK = %d, want 10", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.CacheTTL != 30*time.Second {
		t.Errorf("Recommend.CacheTTL = %v, want 30s", cfg.Recommend.CacheTTL)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	clearFBEnv(t)
	t.Setenv("FB_API_CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.API.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
	for i := range want {
		if cfg.API.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.API.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearFBEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "server:\n  port: 7070\nstore:\n  type: memory\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Store.Type != "memory" {
		t.Errorf("Store.Type = %q, want memory", cfg.Store.Type)
	}
	// Untouched sections keep their defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearFBEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("FB_SERVER_PORT", "9191")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191 (env over file)", cfg.Server.Port)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"no shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{"unknown store type", func(c *Config) { c.Store.Type = "postgres" }},
		{"badger without path", func(c *Config) { c.Store.Path = "" }},
		{"discard ratio out of range", func(c *Config) { c.Store.GCDiscardRatio = 1.5 }},
		{"gc interval zero", func(c *Config) { c.Store.GCInterval = 0 }},
		{"rate limit zero", func(c *Config) { c.API.RateLimitReqs = 0 }},
		{"rate limit window zero", func(c *Config) { c.API.RateLimitWindow = 0 }},
		{"weights do not sum to 1", func(c *Config) { c.Recommend.BaseWeight = 0.9 }},
		{"default k zero", func(c *Config) { c.Recommend.DefaultK = 0 }},
		{"max k below default k", func(c *Config) { c.Recommend.MaxK = 5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestEngineConfigOverlay(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.BaseWeight = 0.5
	cfg.Recommend.BehaviorWeight = 0.25
	cfg.Recommend.PatternWeight = 0.25
	cfg.Recommend.MaxCandidates = 200
	cfg.Recommend.CacheEnabled = false

	ec := cfg.EngineConfig()
	if ec.Weights.Base != 0.5 || ec.Weights.Behavior != 0.25 || ec.Weights.Pattern != 0.25 {
		t.Errorf("weights = %v, want 0.5/0.25/0.25", ec.Weights)
	}
	if ec.Limits.MaxCandidates != 200 {
		t.Errorf("MaxCandidates = %d, want 200", ec.Limits.MaxCandidates)
	}
	if ec.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}
	// Knobs not exposed in the operator config keep the engine defaults.
	if ec.Boosts.RecentActivity == 0 {
		t.Error("Boosts.RecentActivity should keep its default")
	}
	if err := ec.Validate(); err != nil {
		t.Fatalf("overlaid engine config should be valid: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FB_SERVER_PORT", "server.port"},
		{"FB_SERVER_READ_TIMEOUT", "server.read_timeout"},
		{"FB_LOG_LEVEL", "log.level"},
		{"FB_STORE_GC_DISCARD_RATIO", "store.gc_discard_ratio"},
		{"FB_API_CORS_ORIGINS", "api.cors_origins"},
		{"FB_RECOMMEND_DEFAULT_K", "recommend.default_k"},
		{"FB_RECOMMEND_PIPELINE_TIMEOUT", "recommend.pipeline_timeout"},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// clearFBEnv unsets FB_ variables that could leak in from the outer
// environment and makes sure no config file is picked up.
func clearFBEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "FB_") {
			name, _, _ := strings.Cut(kv, "=")
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	t.Setenv(ConfigPathEnvVar, "")
	os.Unsetenv(ConfigPathEnvVar)
}

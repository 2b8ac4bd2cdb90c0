// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the component mix of the smart score. The values
	// are a fixed product decision (0.4/0.3/0.3) and must sum to 1.0.
	Weights WeightConfig `json:"weights"`

	// Boosts contains the contextual boost multipliers.
	Boosts BoostConfig `json:"boosts"`

	// Profile contains the behavior-profile derivation gates.
	Profile ProfileConfig `json:"profile"`

	// Scoring contains scoring thresholds and normalization bounds.
	Scoring ScoringConfig `json:"scoring"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response-cache parameters.
	Cache CacheConfig `json:"cache"`
}

// WeightConfig defines the fixed component weighting of the smart score.
type WeightConfig struct {
	// Base is the weight of static compatibility.
	// Default: 0.4.
	Base float64 `json:"base"`

	// Behavior is the weight of behavior-profile alignment.
	// Default: 0.3.
	Behavior float64 `json:"behavior"`

	// Pattern is the weight of success-pattern alignment.
	// Default: 0.3.
	Pattern float64 `json:"pattern"`
}

// BoostConfig contains the contextual boost multipliers. Boosts compose
// by sequential multiplication; the final score is clamped to 100.
type BoostConfig struct {
	// OptimalTime multiplies the score when the request falls inside the
	// candidate's declared activity window.
	// Default: 1.10.
	OptimalTime float64 `json:"optimal_time"`

	// RecentActivity multiplies the score when the candidate interacted
	// within RecentWindow.
	// Default: 1.15.
	RecentActivity float64 `json:"recent_activity"`

	// PerMutualConnection is the additive multiplier increment per shared
	// connection: x(1 + PerMutualConnection * count).
	// Default: 0.05.
	PerMutualConnection float64 `json:"per_mutual_connection"`

	// RecentWindow is the trailing window for the recent-activity boost.
	// Default: 24h.
	RecentWindow time.Duration `json:"recent_window"`

	// ContextWindow bounds how far back interaction events are fetched.
	// Default: 30 days.
	ContextWindow time.Duration `json:"context_window"`
}

// ProfileConfig contains the behavior-profile derivation gates.
type ProfileConfig struct {
	// MinIndustrySwipes is the minimum observed swipes before an industry
	// can enter the preferred set.
	// Default: 5.
	MinIndustrySwipes int `json:"min_industry_swipes"`

	// MinLikeRate is the exclusive like-rate threshold for the preferred
	// set (a rate of exactly MinLikeRate does not qualify).
	// Default: 0.6.
	MinLikeRate float64 `json:"min_like_rate"`

	// RangeHeadroom widens the inferred investment range on each side:
	// [min*(1-h), max*(1+h)].
	// Default: 0.2.
	RangeHeadroom float64 `json:"range_headroom"`

	// ActivityMinEvents is the minimum events an hour/day bucket needs to
	// clear the noise floor.
	// Default: 3.
	ActivityMinEvents int `json:"activity_min_events"`

	// ActivityMinShare is the minimum fraction of total activity an
	// hour/day bucket needs to clear the noise floor.
	// Default: 0.10.
	ActivityMinShare float64 `json:"activity_min_share"`
}

// ScoringConfig contains scoring thresholds and normalization bounds.
type ScoringConfig struct {
	// NeutralScore is the component score used when a signal source is
	// absent (empty profile or pattern set). Neutral means neither
	// penalizing nor dominant.
	// Default: 50.
	NeutralScore float64 `json:"neutral_score"`

	// MaxExperienceGapYears is the gap at which experience alignment
	// reaches zero.
	// Default: 20.
	MaxExperienceGapYears int `json:"max_experience_gap_years"`

	// PatternMatchThreshold is the minimum pattern alignment that counts
	// as a qualifying historical match for the success insight.
	// Default: 0.7.
	PatternMatchThreshold float64 `json:"pattern_match_threshold"`

	// IndustryInsightThreshold is the minimum industry overlap that
	// yields an industry insight.
	// Default: 0.5.
	IndustryInsightThreshold float64 `json:"industry_insight_threshold"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the default number of recommendations to return.
	// Default: 20.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 100.
	MaxK int `json:"max_k"`

	// MaxCandidates caps the pool size scored per request.
	// Default: 1000.
	MaxCandidates int `json:"max_candidates"`

	// PipelineTimeout bounds the whole pipeline including fan-out reads.
	// On expiry the pipeline fails closed.
	// Default: 10s.
	PipelineTimeout time.Duration `json:"pipeline_timeout"`

	// ScoreWorkers is the number of parallel scoring workers.
	// Zero means runtime.NumCPU.
	ScoreWorkers int `json:"score_workers"`
}

// CacheConfig contains response-cache parameters. The cache is transient
// and never outlives the process; it is the pipeline's only permitted
// write target.
type CacheConfig struct {
	// Enabled controls whether response caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with production defaults. The weight and
// boost constants are fixed product decisions; everything else is tunable.
func DefaultConfig() *Config {
	return &Config{
		Weights: WeightConfig{
			Base:     0.4,
			Behavior: 0.3,
			Pattern:  0.3,
		},
		Boosts: BoostConfig{
			OptimalTime:         1.10,
			RecentActivity:      1.15,
			PerMutualConnection: 0.05,
			RecentWindow:        24 * time.Hour,
			ContextWindow:       30 * 24 * time.Hour,
		},
		Profile: ProfileConfig{
			MinIndustrySwipes: 5,
			MinLikeRate:       0.6,
			RangeHeadroom:     0.2,
			ActivityMinEvents: 3,
			ActivityMinShare:  0.10,
		},
		Scoring: ScoringConfig{
			NeutralScore:             50,
			MaxExperienceGapYears:    20,
			PatternMatchThreshold:    0.7,
			IndustryInsightThreshold: 0.5,
		},
		Limits: LimitsConfig{
			DefaultK:        20,
			MaxK:            100,
			MaxCandidates:   1000,
			PipelineTimeout: 10 * time.Second,
			ScoreWorkers:    0,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Weights.Base < 0 || c.Weights.Behavior < 0 || c.Weights.Pattern < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}
	sum := c.Weights.Base + c.Weights.Behavior + c.Weights.Pattern
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %f", sum)
	}

	if c.Boosts.OptimalTime < 1 {
		return fmt.Errorf("boosts.optimal_time must be >= 1, got %f", c.Boosts.OptimalTime)
	}
	if c.Boosts.RecentActivity < 1 {
		return fmt.Errorf("boosts.recent_activity must be >= 1, got %f", c.Boosts.RecentActivity)
	}
	if c.Boosts.PerMutualConnection < 0 {
		return fmt.Errorf("boosts.per_mutual_connection must be non-negative, got %f", c.Boosts.PerMutualConnection)
	}
	if c.Boosts.RecentWindow <= 0 {
		return fmt.Errorf("boosts.recent_window must be positive, got %v", c.Boosts.RecentWindow)
	}
	if c.Boosts.ContextWindow < c.Boosts.RecentWindow {
		return fmt.Errorf("boosts.context_window must be >= recent_window, got %v < %v",
			c.Boosts.ContextWindow, c.Boosts.RecentWindow)
	}

	if c.Profile.MinIndustrySwipes < 1 {
		return fmt.Errorf("profile.min_industry_swipes must be positive, got %d", c.Profile.MinIndustrySwipes)
	}
	if c.Profile.MinLikeRate < 0 || c.Profile.MinLikeRate >= 1 {
		return fmt.Errorf("profile.min_like_rate must be in [0, 1), got %f", c.Profile.MinLikeRate)
	}
	if c.Profile.RangeHeadroom < 0 || c.Profile.RangeHeadroom >= 1 {
		return fmt.Errorf("profile.range_headroom must be in [0, 1), got %f", c.Profile.RangeHeadroom)
	}

	if c.Scoring.NeutralScore < 0 || c.Scoring.NeutralScore > 100 {
		return fmt.Errorf("scoring.neutral_score must be in [0, 100], got %f", c.Scoring.NeutralScore)
	}
	if c.Scoring.MaxExperienceGapYears < 1 {
		return fmt.Errorf("scoring.max_experience_gap_years must be positive, got %d", c.Scoring.MaxExperienceGapYears)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.MaxCandidates < 1 {
		return fmt.Errorf("limits.max_candidates must be positive, got %d", c.Limits.MaxCandidates)
	}
	if c.Limits.PipelineTimeout <= 0 {
		return fmt.Errorf("limits.pipeline_timeout must be positive, got %v", c.Limits.PipelineTimeout)
	}
	if c.Limits.ScoreWorkers < 0 {
		return fmt.Errorf("limits.score_workers must be non-negative, got %d", c.Limits.ScoreWorkers)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	out := *c
	return &out
}

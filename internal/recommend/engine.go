// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Note: This package has no dependencies on other internal packages to
// maintain clean separation. The DataProvider interface allows the
// storage layer to plug in without creating circular imports.

// Engine builds behavior profiles, mines success patterns, and produces
// ranked, explained candidate lists. It is safe for concurrent use.
type Engine struct {
	config   *Config
	configMu sync.RWMutex
	logger   zerolog.Logger

	// Metrics
	requestCount      atomic.Int64
	cacheHits         atomic.Int64
	cacheMisses       atomic.Int64
	errorCount        atomic.Int64
	skippedCandidates atomic.Int64

	// Cache (in-memory with TTL eviction)
	cache   map[string]cacheEntry
	cacheMu sync.RWMutex

	// Monotonic request ID counter
	requestSeq atomic.Int64

	// now is swappable so rankings are reproducible under test.
	now   func() time.Time
	nowMu sync.RWMutex

	dataProvider DataProvider
}

// cacheEntry holds a cached recommendation response.
type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// userData holds the five history streams fetched concurrently for a
// single recommendation request.
type userData struct {
	user         *UserProfile
	swipes       []SwipeEvent
	threads      []MessageThread
	matches      []MatchRecord
	interactions []InteractionEvent
	candidates   []Candidate
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  make(map[string]cacheEntry),
		now:    time.Now,
	}, nil
}

// SetDataProvider sets the data provider used to fetch user histories
// and candidate pools.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// SetClock overrides the engine's time source. Intended for tests that
// need reproducible time-of-day boosts and pattern ages.
func (e *Engine) SetClock(now func() time.Time) {
	e.nowMu.Lock()
	defer e.nowMu.Unlock()
	if now != nil {
		e.now = now
	}
}

func (e *Engine) clock() time.Time {
	e.nowMu.RLock()
	defer e.nowMu.RUnlock()
	return e.now()
}

// Recommend generates ranked recommendations for a user. The five data
// reads run concurrently; any read failure fails the whole request
// rather than returning a silently degraded ranking.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	cfg := e.currentConfig()
	req = e.prepareRequest(cfg, req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	if resp := e.tryGetCachedResponse(cfg, req, start, logger); resp != nil {
		return resp, nil
	}

	data, err := e.fetchUserData(ctx, cfg, req.UserID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	now := e.clock()
	profile := BuildBehaviorProfile(cfg.Profile, data.swipes, data.threads, data.matches)
	patterns := MinePatterns(cfg.Scoring, data.user, data.matches, now)
	snap := NewContextSnapshot(now, data.interactions)

	candidates, skipped := e.filterCandidates(cfg, req.UserID, data.candidates, logger)
	if len(candidates) == 0 {
		logger.Debug().Msg("no valid candidates available")
		return e.emptyResponse(req, &profile, patterns, skipped, start), nil
	}

	ranked, err := e.scoreAll(ctx, cfg, data.user, &profile, patterns, &snap, candidates)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SmartScore > ranked[j].SmartScore
	})
	if len(ranked) > req.K {
		ranked = ranked[:req.K]
	}

	resp := e.buildResponse(req, ranked, &profile, patterns, len(candidates), skipped, start)
	e.cacheResponse(cfg, req, resp)

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("skipped", skipped).
		Int("returned", len(ranked)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// BuildProfile returns the behavior profile the engine would use for a
// user without running the full ranking pipeline. Used by the
// diagnostics endpoints.
func (e *Engine) BuildProfile(ctx context.Context, userID string) (*BehaviorProfile, error) {
	cfg := e.currentConfig()
	data, err := e.fetchUserData(ctx, cfg, userID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	profile := BuildBehaviorProfile(cfg.Profile, data.swipes, data.threads, data.matches)
	return &profile, nil
}

// MinePatterns returns the success patterns mined from a user's match
// history. Used by the diagnostics endpoints.
func (e *Engine) MinePatterns(ctx context.Context, userID string) ([]MatchPattern, error) {
	cfg := e.currentConfig()
	data, err := e.fetchUserData(ctx, cfg, userID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	return MinePatterns(cfg.Scoring, data.user, data.matches, e.clock()), nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(cfg *Config, req Request) Request {
	if req.RequestID == "" {
		req.RequestID = e.generateRequestID()
	}

	if req.K <= 0 {
		req.K = cfg.Limits.DefaultK
	}
	if req.K > cfg.Limits.MaxK {
		req.K = cfg.Limits.MaxK
	}

	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()
}

// fetchUserData loads the subject's profile, then fans out the five
// history reads concurrently. The whole fan-out shares one deadline;
// context expiry maps to ErrUpstreamTimeout so callers fail closed.
func (e *Engine) fetchUserData(ctx context.Context, cfg *Config, userID string) (*userData, error) {
	if e.dataProvider == nil {
		return nil, ErrNoDataProvider
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Limits.PipelineTimeout)
	defer cancel()

	user, err := e.dataProvider.GetUser(ctx, userID)
	if err != nil {
		return nil, classifyFetchErr(fmt.Errorf("get user: %w", err))
	}

	data := &userData{user: user}
	since := e.clock().Add(-cfg.Boosts.ContextWindow)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.swipes, err = e.dataProvider.GetSwipeHistory(gctx, userID)
		if err != nil {
			return fmt.Errorf("get swipe history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.threads, err = e.dataProvider.GetMessageThreads(gctx, userID)
		if err != nil {
			return fmt.Errorf("get message threads: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.matches, err = e.dataProvider.GetMatchHistory(gctx, userID)
		if err != nil {
			return fmt.Errorf("get match history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.interactions, err = e.dataProvider.GetRecentInteractions(gctx, userID, since)
		if err != nil {
			return fmt.Errorf("get recent interactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.candidates, err = e.dataProvider.GetCandidatePool(gctx, userID, cfg.Limits.MaxCandidates)
		if err != nil {
			return fmt.Errorf("get candidate pool: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, classifyFetchErr(err)
	}

	return data, nil
}

// filterCandidates drops the subject and any malformed candidate
// records. Malformed records are skipped and counted, never scored.
func (e *Engine) filterCandidates(cfg *Config, userID string, pool []Candidate, logger zerolog.Logger) ([]Candidate, int) {
	filtered := make([]Candidate, 0, len(pool))
	skipped := 0
	for _, c := range pool {
		if c.ID == userID {
			continue
		}
		if !c.Valid() {
			skipped++
			logger.Debug().Str("candidate_id", c.ID).Msg("skipping malformed candidate")
			continue
		}
		filtered = append(filtered, c)
	}
	if skipped > 0 {
		e.skippedCandidates.Add(int64(skipped))
	}
	if len(filtered) > cfg.Limits.MaxCandidates {
		filtered = filtered[:cfg.Limits.MaxCandidates]
	}
	return filtered, skipped
}

// scoreAll scores candidates across a bounded worker pool. Results are
// written by input index so the pre-sort order never depends on
// goroutine scheduling. Cancellation mid-scoring fails the whole call;
// a partially scored slice would rank unscored candidates at zero.
func (e *Engine) scoreAll(ctx context.Context, cfg *Config, user *UserProfile, profile *BehaviorProfile, patterns []MatchPattern, snap *ContextSnapshot, candidates []Candidate) ([]RankedCandidate, error) {
	workers := cfg.Limits.ScoreWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	ranked := make([]RankedCandidate, len(candidates))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				ranked[i] = e.rankOne(cfg, user, profile, patterns, snap, candidates[i])
			}
		}()
	}

	for i := range candidates {
		select {
		case idx <- i:
		case <-ctx.Done():
			// Stop feeding work; already-scheduled scores finish.
			close(idx)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(idx)
	wg.Wait()
	return ranked, nil
}

// rankOne produces the full scored, boosted, explained record for one
// candidate.
func (e *Engine) rankOne(cfg *Config, user *UserProfile, profile *BehaviorProfile, patterns []MatchPattern, snap *ContextSnapshot, c Candidate) RankedCandidate {
	base, behavior, pattern, sig := scoreCandidate(cfg, user, profile, patterns, c)
	combined := combineScores(cfg.Weights, base, behavior, pattern)

	factors := contextualFactors(cfg.Boosts, snap, c)
	smart := applyBoosts(cfg.Boosts, combined, factors)

	return RankedCandidate{
		Candidate:     c,
		BaseScore:     base,
		BehaviorScore: behavior,
		PatternScore:  pattern,
		SmartScore:    smart,
		Insights:      generateInsights(cfg, profile, c, sig),
		Factors:       factors,
	}
}

// tryGetCachedResponse attempts to retrieve a cached response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(cfg *Config, req Request, start time.Time, logger zerolog.Logger) *Response {
	if !cfg.Cache.Enabled {
		return nil
	}

	resp := e.checkCache(cacheKey(req))
	if resp == nil {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp.Metadata.CacheHit = true
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return resp
}

// buildResponse constructs the final response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, ranked []RankedCandidate, profile *BehaviorProfile, patterns []MatchPattern, total, skipped int, start time.Time) *Response {
	return &Response{
		Candidates:        ranked,
		TotalCandidates:   total,
		SkippedCandidates: skipped,
		Metadata:          e.buildResponseMetadata(req, profile, patterns, start),
	}
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponseMetadata(req Request, profile *BehaviorProfile, patterns []MatchPattern, start time.Time) ResponseMetadata {
	signals := 0
	if profile != nil && !profile.Empty() {
		signals = len(profile.PreferredIndustries) + len(profile.ActiveHours) + len(profile.ActiveDays)
	}
	return ResponseMetadata{
		RequestID:      req.RequestID,
		UserID:         req.UserID,
		LatencyMS:      time.Since(start).Milliseconds(),
		CacheHit:       false,
		ProfileSignals: signals,
		PatternCount:   len(patterns),
		GeneratedAt:    e.clock(),
	}
}

// cacheResponse stores the response in cache if enabled.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheResponse(cfg *Config, req Request, resp *Response) {
	if cfg.Cache.Enabled {
		e.storeCache(cfg, cacheKey(req), resp)
	}
}

//nolint:gocritic // hugeParam: req passed by value for simplicity
func cacheKey(req Request) string {
	return fmt.Sprintf("rec:%s:%d", req.UserID, req.K)
}

// checkCache checks if a cached response exists and is valid.
// Returns a copy of the cached response to avoid concurrent modification.
func (e *Engine) checkCache(key string) *Response {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()

	entry, ok := e.cache[key]
	if !ok {
		return nil
	}

	if time.Now().After(entry.expiresAt) {
		return nil
	}

	return copyCachedResponse(entry.response)
}

// copyCachedResponse creates a copy of a cached response.
func copyCachedResponse(resp *Response) *Response {
	ranked := make([]RankedCandidate, len(resp.Candidates))
	copy(ranked, resp.Candidates)

	return &Response{
		Candidates:        ranked,
		TotalCandidates:   resp.TotalCandidates,
		SkippedCandidates: resp.SkippedCandidates,
		Metadata:          resp.Metadata, // Metadata is a value type, safe to copy
	}
}

// storeCache stores a response in the cache.
func (e *Engine) storeCache(cfg *Config, key string, resp *Response) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	if len(e.cache) >= cfg.Cache.MaxEntries {
		e.evictExpiredLocked()
	}

	e.cache[key] = cacheEntry{
		response:  resp,
		expiresAt: time.Now().Add(cfg.Cache.TTL),
	}
}

// ClearCache removes all cached entries. Called after a config update
// so stale rankings do not survive a weight change.
func (e *Engine) ClearCache() {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()

	e.cache = make(map[string]cacheEntry)
	e.logger.Debug().Msg("cache cleared")
}

// evictExpiredLocked removes expired cache entries.
// Must be called with cacheMu held.
func (e *Engine) evictExpiredLocked() {
	now := time.Now()
	for key, entry := range e.cache {
		if now.After(entry.expiresAt) {
			delete(e.cache, key)
		}
	}
}

// emptyResponse returns an empty response for cases with no candidates.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) emptyResponse(req Request, profile *BehaviorProfile, patterns []MatchPattern, skipped int, start time.Time) *Response {
	return &Response{
		Candidates:        []RankedCandidate{},
		TotalCandidates:   0,
		SkippedCandidates: skipped,
		Metadata:          e.buildResponseMetadata(req, profile, patterns, start),
	}
}

// GetMetrics returns a snapshot of engine counters.
func (e *Engine) GetMetrics() EngineMetrics {
	return EngineMetrics{
		RequestCount:      e.requestCount.Load(),
		CacheHits:         e.cacheHits.Load(),
		CacheMisses:       e.cacheMisses.Load(),
		ErrorCount:        e.errorCount.Load(),
		SkippedCandidates: e.skippedCandidates.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.config.Clone()
}

// UpdateConfig replaces the engine configuration and invalidates the
// cache so prior weights cannot leak into new responses.
func (e *Engine) UpdateConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	e.configMu.Lock()
	e.config = cfg
	e.configMu.Unlock()

	e.ClearCache()
	e.logger.Info().Msg("configuration updated")

	return nil
}

func (e *Engine) currentConfig() *Config {
	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.config
}

// generateRequestID generates a unique request ID for tracing. A
// monotonic counter keeps IDs unique without a shared random source.
func (e *Engine) generateRequestID() string {
	return fmt.Sprintf("rec-%d-%d", time.Now().UnixNano(), e.requestSeq.Add(1))
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	user            *UserProfile
	swipes          []SwipeEvent
	threads         []MessageThread
	matches         []MatchRecord
	interactions    []InteractionEvent
	candidates      []Candidate
	userErr         error
	swipesErr       error
	threadsErr      error
	matchesErr      error
	interactionsErr error
	candidatesErr   error
	swipeDelay      time.Duration
	poolCalls       int32
	cancelOnPool    context.CancelFunc
}

func (m *mockDataProvider) GetUser(ctx context.Context, userID string) (*UserProfile, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	return m.user, nil
}

func (m *mockDataProvider) GetSwipeHistory(ctx context.Context, userID string) ([]SwipeEvent, error) {
	if m.swipeDelay > 0 {
		select {
		case <-time.After(m.swipeDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.swipesErr != nil {
		return nil, m.swipesErr
	}
	return m.swipes, nil
}

func (m *mockDataProvider) GetMessageThreads(ctx context.Context, userID string) ([]MessageThread, error) {
	if m.threadsErr != nil {
		return nil, m.threadsErr
	}
	return m.threads, nil
}

func (m *mockDataProvider) GetMatchHistory(ctx context.Context, userID string) ([]MatchRecord, error) {
	if m.matchesErr != nil {
		return nil, m.matchesErr
	}
	return m.matches, nil
}

func (m *mockDataProvider) GetRecentInteractions(ctx context.Context, userID string, since time.Time) ([]InteractionEvent, error) {
	if m.interactionsErr != nil {
		return nil, m.interactionsErr
	}
	return m.interactions, nil
}

func (m *mockDataProvider) GetCandidatePool(ctx context.Context, userID string, limit int) ([]Candidate, error) {
	atomic.AddInt32(&m.poolCalls, 1)
	if m.cancelOnPool != nil {
		m.cancelOnPool()
	}
	if m.candidatesErr != nil {
		return nil, m.candidatesErr
	}
	if len(m.candidates) > limit {
		return m.candidates[:limit], nil
	}
	return m.candidates, nil
}

func newTestEngine(t *testing.T, cfg *Config, dp DataProvider) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	engine.SetDataProvider(dp)
	engine.SetClock(func() time.Time {
		return time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	})
	return engine
}

func testPool() []Candidate {
	return []Candidate{
		{ID: "strong", DisplayName: "Strong", Industries: []string{"fintech", "payments"},
			YearsExperience: 8, InvestmentCapacity: 250000, Verification: VerificationAccredited},
		{ID: "medium", DisplayName: "Medium", Industries: []string{"fintech"},
			YearsExperience: 12, InvestmentCapacity: 400000},
		{ID: "weak", DisplayName: "Weak", Industries: []string{"agtech"},
			YearsExperience: 25, InvestmentCapacity: 50000},
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Base = 0.9

	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestRecommendNoDataProvider(t *testing.T) {
	engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	_, err = engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if !errors.Is(err, ErrNoDataProvider) {
		t.Fatalf("expected ErrNoDataProvider, got %v", err)
	}
}

func TestRecommendUserNotFound(t *testing.T) {
	dp := &mockDataProvider{userErr: ErrUserNotFound}
	engine := newTestEngine(t, DefaultConfig(), dp)

	_, err := engine.Recommend(context.Background(), Request{UserID: "ghost"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if m := engine.GetMetrics(); m.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", m.ErrorCount)
	}
}

func TestRecommendRanksByScore(t *testing.T) {
	dp := &mockDataProvider{user: testUser(), candidates: testPool()}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine := newTestEngine(t, cfg, dp)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if len(resp.Candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(resp.Candidates))
	}
	for i := 1; i < len(resp.Candidates); i++ {
		if resp.Candidates[i].SmartScore > resp.Candidates[i-1].SmartScore {
			t.Errorf("candidates not sorted descending at index %d: %f > %f",
				i, resp.Candidates[i].SmartScore, resp.Candidates[i-1].SmartScore)
		}
	}
	if resp.Candidates[0].Candidate.ID != "strong" {
		t.Errorf("top candidate = %s, want strong", resp.Candidates[0].Candidate.ID)
	}
	if resp.TotalCandidates != 3 {
		t.Errorf("TotalCandidates = %d, want 3", resp.TotalCandidates)
	}
}

func TestRecommendDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	dp := &mockDataProvider{
		user:       testUser(),
		candidates: testPool(),
		swipes: []SwipeEvent{
			swipe("a", "fintech", SwipeLike, 200000, now.Add(-time.Hour)),
			swipe("b", "fintech", SwipeLike, 300000, now.Add(-2*time.Hour)),
			swipe("c", "fintech", SwipeLike, 250000, now.Add(-3*time.Hour)),
			swipe("d", "fintech", SwipeLike, 150000, now.Add(-4*time.Hour)),
			swipe("e", "fintech", SwipeLike, 280000, now.Add(-5*time.Hour)),
		},
		interactions: []InteractionEvent{{ActorID: "strong", Timestamp: now.Add(-time.Hour)}},
		matches: []MatchRecord{
			{Counterparty: testCandidate(), Accepted: true, MatchedAt: now.Add(-30 * 24 * time.Hour), MessagesExchanged: 40},
		},
	}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine := newTestEngine(t, cfg, dp)

	var first []RankedCandidate
	for run := 0; run < 5; run++ {
		resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", RequestID: "fixed"})
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if first == nil {
			first = resp.Candidates
			continue
		}
		if !reflect.DeepEqual(resp.Candidates, first) {
			t.Fatalf("run %d produced different output", run)
		}
	}
}

func TestRecommendSkipsMalformedCandidates(t *testing.T) {
	pool := testPool()
	pool = append(pool,
		Candidate{ID: "", Industries: []string{"fintech"}, InvestmentCapacity: 1000},
		Candidate{ID: "no-industry", YearsExperience: 5, InvestmentCapacity: 1000},
	)
	dp := &mockDataProvider{user: testUser(), candidates: pool}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine := newTestEngine(t, cfg, dp)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.SkippedCandidates != 2 {
		t.Errorf("SkippedCandidates = %d, want 2", resp.SkippedCandidates)
	}
	if len(resp.Candidates) != 3 {
		t.Errorf("got %d candidates, want 3", len(resp.Candidates))
	}
	// TotalCandidates counts only records that survived filtering.
	if resp.TotalCandidates != 3 {
		t.Errorf("TotalCandidates = %d, want 3", resp.TotalCandidates)
	}
	if m := engine.GetMetrics(); m.SkippedCandidates != 2 {
		t.Errorf("metric SkippedCandidates = %d, want 2", m.SkippedCandidates)
	}
}

func TestRecommendFailsClosedOnCancellation(t *testing.T) {
	var pool []Candidate
	for i := 0; i < 200; i++ {
		c := testCandidate()
		c.ID = "cand-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		pool = append(pool, c)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The pool read is the last fetch to complete, so cancelling there
	// leaves a dead context for the scoring stage.
	dp := &mockDataProvider{user: testUser(), candidates: pool, cancelOnPool: cancel}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Limits.ScoreWorkers = 2
	engine := newTestEngine(t, cfg, dp)

	resp, err := engine.Recommend(ctx, Request{UserID: "user-1", K: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if resp != nil {
		t.Errorf("expected no response on cancellation, got %d candidates", len(resp.Candidates))
	}
	if m := engine.GetMetrics(); m.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", m.ErrorCount)
	}
}

func TestRecommendExcludesSelf(t *testing.T) {
	pool := append(testPool(), Candidate{
		ID: "user-1", Industries: []string{"fintech"}, InvestmentAsk: 250000,
	})
	dp := &mockDataProvider{user: testUser(), candidates: pool}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine := newTestEngine(t, cfg, dp)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, rc := range resp.Candidates {
		if rc.Candidate.ID == "user-1" {
			t.Error("subject appeared in own recommendations")
		}
	}
}

func TestRecommendTruncatesToK(t *testing.T) {
	var pool []Candidate
	for i := 0; i < 50; i++ {
		c := testCandidate()
		c.ID = "cand-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		pool = append(pool, c)
	}
	dp := &mockDataProvider{user: testUser(), candidates: pool}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine := newTestEngine(t, cfg, dp)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1", K: 5})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Candidates) != 5 {
		t.Errorf("got %d candidates, want 5", len(resp.Candidates))
	}
	if resp.TotalCandidates != 50 {
		t.Errorf("TotalCandidates = %d, want 50", resp.TotalCandidates)
	}
}

func TestRecommendEmptyPool(t *testing.T) {
	dp := &mockDataProvider{user: testUser()}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine := newTestEngine(t, cfg, dp)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(resp.Candidates) != 0 || resp.TotalCandidates != 0 {
		t.Errorf("expected empty response, got %+v", resp)
	}
}

func TestRecommendUpstreamTimeout(t *testing.T) {
	dp := &mockDataProvider{
		user:       testUser(),
		candidates: testPool(),
		swipeDelay: 500 * time.Millisecond,
	}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Limits.PipelineTimeout = 20 * time.Millisecond
	engine := newTestEngine(t, cfg, dp)

	_, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if !errors.Is(err, ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestRecommendFanoutFailureFailsRequest(t *testing.T) {
	wantErr := errors.New("db unavailable")
	dp := &mockDataProvider{user: testUser(), candidates: testPool(), matchesErr: wantErr}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine := newTestEngine(t, cfg, dp)

	_, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
}

func TestRecommendCacheHit(t *testing.T) {
	dp := &mockDataProvider{user: testUser(), candidates: testPool()}
	engine := newTestEngine(t, DefaultConfig(), dp)

	first, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("first Recommend: %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first request should not be a cache hit")
	}

	second, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("second Recommend: %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second request should be a cache hit")
	}
	if calls := atomic.LoadInt32(&dp.poolCalls); calls != 1 {
		t.Errorf("pool fetched %d times, want 1", calls)
	}
	if m := engine.GetMetrics(); m.CacheHits != 1 || m.CacheMisses != 1 {
		t.Errorf("cache counters = %+v, want 1 hit 1 miss", m)
	}
}

func TestUpdateConfigClearsCache(t *testing.T) {
	dp := &mockDataProvider{user: testUser(), candidates: testPool()}
	engine := newTestEngine(t, DefaultConfig(), dp)

	if _, err := engine.Recommend(context.Background(), Request{UserID: "user-1"}); err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Weights = WeightConfig{Base: 0.5, Behavior: 0.25, Pattern: 0.25}
	if err := engine.UpdateConfig(cfg); err != nil {
		t.Fatalf("UpdateConfig: %v", err)
	}

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Recommend after update: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("config update should have invalidated the cache")
	}
}

func TestUpdateConfigRejectsInvalid(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), &mockDataProvider{})

	bad := DefaultConfig()
	bad.Weights.Pattern = 0.9
	if err := engine.UpdateConfig(bad); err == nil {
		t.Fatal("expected error for invalid config update")
	}
}

func TestGetConfigReturnsCopy(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig(), &mockDataProvider{})

	cfg := engine.GetConfig()
	cfg.Limits.DefaultK = 99

	if engine.GetConfig().Limits.DefaultK == 99 {
		t.Error("mutating returned config changed engine state")
	}
}

func TestBuildProfileDiagnostics(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	var swipes []SwipeEvent
	for i := 0; i < 6; i++ {
		swipes = append(swipes, swipe("t", "fintech", SwipeLike, 200000, now))
	}
	dp := &mockDataProvider{user: testUser(), swipes: swipes}
	engine := newTestEngine(t, DefaultConfig(), dp)

	profile, err := engine.BuildProfile(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("BuildProfile: %v", err)
	}
	if !profile.PrefersIndustry("fintech") {
		t.Errorf("expected fintech preference, got %+v", profile)
	}
}

func TestMinePatternsDiagnostics(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	dp := &mockDataProvider{
		user: testUser(),
		matches: []MatchRecord{
			{Counterparty: testCandidate(), Accepted: true, MatchedAt: now.Add(-10 * 24 * time.Hour), MessagesExchanged: 20},
		},
	}
	engine := newTestEngine(t, DefaultConfig(), dp)

	patterns, err := engine.MinePatterns(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("MinePatterns: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1", len(patterns))
	}
	if patterns[0].IndustryAlignment != 1 {
		t.Errorf("IndustryAlignment = %f, want 1", patterns[0].IndustryAlignment)
	}
}

func TestRecommendAppliesContextBoost(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	boosted := testCandidate()
	boosted.ID = "boosted"
	boosted.OptimalHours = []int{14}
	plain := testCandidate()
	plain.ID = "plain"

	dp := &mockDataProvider{
		user:         testUser(),
		candidates:   []Candidate{plain, boosted},
		interactions: []InteractionEvent{{ActorID: "boosted", Timestamp: now.Add(-time.Hour)}},
	}
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	engine := newTestEngine(t, cfg, dp)

	resp, err := engine.Recommend(context.Background(), Request{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if resp.Candidates[0].Candidate.ID != "boosted" {
		t.Fatalf("top candidate = %s, want boosted", resp.Candidates[0].Candidate.ID)
	}
	top := resp.Candidates[0]
	if !top.Factors.OptimalTime || !top.Factors.RecentlyActive {
		t.Errorf("expected both boost factors set, got %+v", top.Factors)
	}
	if top.SmartScore <= resp.Candidates[1].SmartScore {
		t.Errorf("boosted score %f should exceed plain score %f", top.SmartScore, resp.Candidates[1].SmartScore)
	}
}

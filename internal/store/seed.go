// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/founderbridge/founderbridge/internal/recommend"
)

// SeedDemo populates a store with a small demo dataset: one
// entrepreneur with swipe, messaging, and match history, plus a funder
// pool. Intended for local development and smoke testing.
func SeedDemo(ctx context.Context, s Store, now time.Time) error {
	founder := recommend.UserProfile{
		ID:              "demo-founder",
		DisplayName:     "Demo Founder",
		Industries:      []string{"fintech", "payments"},
		YearsExperience: 8,
		InvestmentAsk:   250000,
		Verification:    recommend.VerificationIdentity,
	}
	if err := s.PutUser(ctx, founder); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	funders := []recommend.Candidate{
		{
			ID: "demo-funder-1", DisplayName: "Avery Capital",
			Industries:      []string{"fintech", "payments"},
			YearsExperience: 10, InvestmentCapacity: 300000,
			Verification: recommend.VerificationAccredited,
			OptimalHours: []int{9, 10, 11, 14, 15},
		},
		{
			ID: "demo-funder-2", DisplayName: "Birch Ventures",
			Industries:      []string{"fintech"},
			YearsExperience: 15, InvestmentCapacity: 500000,
			Verification: recommend.VerificationIdentity,
			OptimalHours: []int{20, 21, 22},
		},
		{
			ID: "demo-funder-3", DisplayName: "Cedar Angels",
			Industries:      []string{"agtech", "climate"},
			YearsExperience: 6, InvestmentCapacity: 150000,
			Verification: recommend.VerificationEmail,
		},
	}
	for _, f := range funders {
		if err := s.PutCandidate(ctx, f); err != nil {
			return fmt.Errorf("seed candidate %s: %w", f.ID, err)
		}
	}

	for i := 0; i < 6; i++ {
		ev := recommend.SwipeEvent{
			SubjectID:        founder.ID,
			TargetID:         fmt.Sprintf("past-target-%d", i),
			TargetIndustries: []string{"fintech"},
			TargetInvestment: 200000 + float64(i)*25000,
			Direction:        recommend.SwipeLike,
			Timestamp:        now.Add(-time.Duration(i+1) * 24 * time.Hour),
		}
		if err := s.PutSwipe(ctx, ev); err != nil {
			return fmt.Errorf("seed swipe: %w", err)
		}
	}

	thread := recommend.MessageThread{
		ThreadID: "demo-thread-1",
		Timestamps: []time.Time{
			now.Add(-72 * time.Hour),
			now.Add(-71 * time.Hour),
			now.Add(-48 * time.Hour),
		},
	}
	if err := s.PutThread(ctx, founder.ID, thread); err != nil {
		return fmt.Errorf("seed thread: %w", err)
	}

	match := recommend.MatchRecord{
		Counterparty:      funders[0],
		Accepted:          true,
		MatchedAt:         now.Add(-14 * 24 * time.Hour),
		MessagesExchanged: 25,
	}
	if err := s.PutMatch(ctx, founder.ID, match); err != nil {
		return fmt.Errorf("seed match: %w", err)
	}

	interaction := recommend.InteractionEvent{
		ActorID:   "demo-funder-1",
		Timestamp: now.Add(-2 * time.Hour),
	}
	if err := s.PutInteraction(ctx, interaction); err != nil {
		return fmt.Errorf("seed interaction: %w", err)
	}

	return nil
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import (
	"math"
	"time"
)

// MinePatterns emits one MatchPattern per mutually-accepted match in the
// user's history. Non-accepted matches are ignored. A user with no
// successful matches yields an empty set; scoring treats that as "no
// pattern signal", not an error.
func MinePatterns(cfg ScoringConfig, user *UserProfile, matches []MatchRecord, now time.Time) []MatchPattern {
	if user == nil {
		return nil
	}

	patterns := make([]MatchPattern, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		if !m.Accepted {
			continue
		}
		patterns = append(patterns, MatchPattern{
			IndustryAlignment:   jaccard(user.Industries, m.Counterparty.Industries),
			ExperienceAlignment: experienceAlignment(cfg, user.YearsExperience, m.Counterparty.YearsExperience),
			InvestmentAlignment: investmentAlignment(user, m.Counterparty),
			Verification:        m.Counterparty.Verification,
			ConversionRate:      conversionRate(m.MessagesExchanged, m.MatchedAt, now),
		})
	}
	if len(patterns) == 0 {
		return nil
	}
	return patterns
}

// jaccard is the normalized overlap ratio of two tag sets:
// 0 = disjoint, 1 = identical.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	inter := 0
	union := len(set)
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := set[s]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// experienceAlignment inverts and normalizes the absolute experience gap:
// identical experience scores 1.0, a gap of MaxExperienceGapYears or more
// scores 0.
func experienceAlignment(cfg ScoringConfig, a, b int) float64 {
	gap := math.Abs(float64(a - b))
	limit := float64(cfg.MaxExperienceGapYears)
	if gap >= limit {
		return 0
	}
	return 1 - gap/limit
}

// investmentAlignment measures closeness between one party's ask and the
// other's capacity, normalized to [0,1]. The better-aligned pairing of
// ask-vs-capacity is used so the formula is symmetric in roles.
func investmentAlignment(user *UserProfile, c Candidate) float64 {
	best := amountCloseness(user.InvestmentAsk, c.InvestmentCapacity)
	if v := amountCloseness(c.InvestmentAsk, user.InvestmentCapacity); v > best {
		best = v
	}
	return best
}

// amountCloseness is 1 - |a-b|/max(a,b) clamped to [0,1]; zero when
// either figure is missing.
func amountCloseness(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	larger := math.Max(a, b)
	v := 1 - math.Abs(a-b)/larger
	if v < 0 {
		return 0
	}
	return v
}

// conversionRate measures how strongly a match converted to sustained
// conversation: messages / (messages + ageDays). Non-negative, bounded
// below 1, and monotonically increasing in exchanged-message count.
func conversionRate(messages int, matchedAt, now time.Time) float64 {
	if messages <= 0 {
		return 0
	}
	ageDays := now.Sub(matchedAt).Hours() / 24
	if ageDays < 1 {
		ageDays = 1
	}
	return float64(messages) / (float64(messages) + ageDays)
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import "math"

// scoreSignals carries the intermediate measurements produced while
// scoring one candidate. Insight generation reads from the same
// breakdown so explanations always agree with the score.
type scoreSignals struct {
	IndustryOverlap     float64 // jaccard of user vs candidate industries
	SharedIndustries    []string
	InvestmentCloseness float64 // ask-vs-capacity alignment, [0,1]
	ExperienceProximity float64 // [0,1]
	PreferredHit        bool    // candidate matches a learned industry preference
	InRange             bool    // candidate figure inside learned investment range
	ActivityOverlap     float64 // shared active-hour fraction, [0,1]
	BestPatternSim      float64 // strongest historical-pattern similarity, [0,1]
	PatternCount        int
}

// scoreCandidate computes the three component scores and the combined
// smart score for a single candidate. All components are bounded to
// [0,100] before weighting so no single factor can dominate through
// overflow.
func scoreCandidate(cfg *Config, user *UserProfile, profile *BehaviorProfile, patterns []MatchPattern, c Candidate) (base, behavior, pattern float64, sig scoreSignals) {
	base, sig = baseScore(cfg, user, c)
	behavior = behaviorScore(cfg, profile, c, &sig)
	pattern = patternScore(cfg, user, patterns, c, &sig)

	base = clampScore(base)
	behavior = clampScore(behavior)
	pattern = clampScore(pattern)
	return base, behavior, pattern, sig
}

// combineScores applies the configured component weights. The result is
// clamped later, after contextual boosting.
func combineScores(w WeightConfig, base, behavior, pattern float64) float64 {
	return w.Base*base + w.Behavior*behavior + w.Pattern*pattern
}

// baseScore rates static profile compatibility: shared industries,
// investment figures, and experience proximity.
func baseScore(cfg *Config, user *UserProfile, c Candidate) (float64, scoreSignals) {
	sig := scoreSignals{
		IndustryOverlap:     jaccard(user.Industries, c.Industries),
		SharedIndustries:    sharedStrings(user.Industries, c.Industries),
		InvestmentCloseness: investmentAlignment(user, c),
		ExperienceProximity: experienceAlignment(cfg.Scoring, user.YearsExperience, c.YearsExperience),
	}
	score := sig.IndustryOverlap*40 + sig.InvestmentCloseness*35 + sig.ExperienceProximity*25
	return score, sig
}

// behaviorScore rates the candidate against the learned behavior
// profile. An empty profile (new user, no history) yields the neutral
// score so cold-start users still receive base-compatibility ordering.
func behaviorScore(cfg *Config, profile *BehaviorProfile, c Candidate, sig *scoreSignals) float64 {
	if profile == nil || profile.Empty() {
		return cfg.Scoring.NeutralScore
	}

	var score float64
	for _, ind := range c.Industries {
		if profile.PrefersIndustry(ind) {
			sig.PreferredHit = true
			score += 45
			break
		}
	}
	if fig := c.InvestmentFigure(); fig > 0 && profile.InvestmentMin > 0 &&
		fig >= profile.InvestmentMin && fig <= profile.InvestmentMax {
		sig.InRange = true
		score += 35
	}
	sig.ActivityOverlap = hourOverlap(profile.ActiveHours, c.OptimalHours)
	score += sig.ActivityOverlap * 20
	return score
}

// patternScore rates the candidate against mined success patterns,
// taking the single strongest similarity rather than an average so one
// well-matched historical pattern is enough to surface a candidate.
// With no mined patterns the component is neutral.
func patternScore(cfg *Config, user *UserProfile, patterns []MatchPattern, c Candidate, sig *scoreSignals) float64 {
	sig.PatternCount = len(patterns)
	if len(patterns) == 0 {
		return cfg.Scoring.NeutralScore
	}

	candidate := MatchPattern{
		IndustryAlignment:   sig.IndustryOverlap,
		ExperienceAlignment: sig.ExperienceProximity,
		InvestmentAlignment: sig.InvestmentCloseness,
		Verification:        c.Verification,
	}
	best := 0.0
	for i := range patterns {
		if s := patternSimilarity(patterns[i], candidate); s > best {
			best = s
		}
	}
	sig.BestPatternSim = best
	return best * 100
}

// patternSimilarity compares a mined pattern against a prospective one.
// Alignment dimensions contribute by inverse distance; verification
// contributes when the candidate is at least as verified as the
// historical counterparty. The pattern's conversion rate scales the
// whole similarity so patterns backed by sustained conversations count
// for more.
func patternSimilarity(mined, candidate MatchPattern) float64 {
	s := 0.0
	s += 0.35 * (1 - math.Abs(mined.IndustryAlignment-candidate.IndustryAlignment))
	s += 0.25 * (1 - math.Abs(mined.ExperienceAlignment-candidate.ExperienceAlignment))
	s += 0.25 * (1 - math.Abs(mined.InvestmentAlignment-candidate.InvestmentAlignment))
	if candidate.Verification >= mined.Verification {
		s += 0.15
	}
	weight := 0.5 + 0.5*mined.ConversionRate
	return s * weight
}

// hourOverlap returns the fraction of the profile's active hours that
// the candidate is also active in. Zero when either side has no data.
func hourOverlap(profileHours, candidateHours []int) float64 {
	if len(profileHours) == 0 || len(candidateHours) == 0 {
		return 0
	}
	set := make(map[int]struct{}, len(candidateHours))
	for _, h := range candidateHours {
		set[h] = struct{}{}
	}
	shared := 0
	for _, h := range profileHours {
		if _, ok := set[h]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(profileHours))
}

func sharedStrings(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := set[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

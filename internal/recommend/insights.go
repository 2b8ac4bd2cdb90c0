// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import (
	"fmt"
	"strings"
)

// generateInsights produces the human-readable explanations attached to
// a ranked candidate. Insights are emitted in a fixed order (industry,
// investment, activity, success pattern) so identical inputs always
// produce identical output. Every message is derived from the same
// signal breakdown the scorer used.
func generateInsights(cfg *Config, profile *BehaviorProfile, c Candidate, sig scoreSignals) []Insight {
	var out []Insight

	if in := industryInsight(cfg, c, sig); in != nil {
		out = append(out, *in)
	}
	if in := investmentInsight(profile, c, sig); in != nil {
		out = append(out, *in)
	}
	if in := activityInsight(sig); in != nil {
		out = append(out, *in)
	}
	if in := successInsight(cfg, sig); in != nil {
		out = append(out, *in)
	}
	return out
}

func industryInsight(cfg *Config, c Candidate, sig scoreSignals) *Insight {
	if sig.PreferredHit {
		return &Insight{
			Type:       InsightIndustry,
			Confidence: ConfidenceHigh,
			Message:    fmt.Sprintf("%s works in an industry you consistently engage with", c.DisplayName),
			Details:    map[string]float64{"industry_overlap": sig.IndustryOverlap},
		}
	}
	if sig.IndustryOverlap >= cfg.Scoring.IndustryInsightThreshold && len(sig.SharedIndustries) > 0 {
		return &Insight{
			Type:       InsightIndustry,
			Confidence: ConfidenceMedium,
			Message:    fmt.Sprintf("You share a focus on %s", strings.Join(sig.SharedIndustries, ", ")),
			Details:    map[string]float64{"industry_overlap": sig.IndustryOverlap},
		}
	}
	return nil
}

func investmentInsight(profile *BehaviorProfile, c Candidate, sig scoreSignals) *Insight {
	if sig.InRange && profile != nil {
		return &Insight{
			Type:       InsightInvestment,
			Confidence: ConfidenceHigh,
			Message:    "Their investment figure matches the range you have responded to before",
			Details: map[string]float64{
				"candidate_figure": c.InvestmentFigure(),
				"range_min":        profile.InvestmentMin,
				"range_max":        profile.InvestmentMax,
			},
		}
	}
	if sig.InvestmentCloseness >= 0.8 {
		return &Insight{
			Type:       InsightInvestment,
			Confidence: ConfidenceMedium,
			Message:    "Your investment expectations are closely aligned",
			Details:    map[string]float64{"investment_closeness": sig.InvestmentCloseness},
		}
	}
	return nil
}

func activityInsight(sig scoreSignals) *Insight {
	if sig.ActivityOverlap < 0.5 {
		return nil
	}
	return &Insight{
		Type:       InsightActivity,
		Confidence: ConfidenceMedium,
		Message:    "You are active on the platform at similar times, which makes a quick reply more likely",
		Details:    map[string]float64{"activity_overlap": sig.ActivityOverlap},
	}
}

func successInsight(cfg *Config, sig scoreSignals) *Insight {
	if sig.PatternCount == 0 || sig.BestPatternSim < cfg.Scoring.PatternMatchThreshold {
		return nil
	}
	return &Insight{
		Type:       InsightSuccess,
		Confidence: ConfidenceHigh,
		Message:    "This profile resembles matches that worked out well for you",
		Details: map[string]float64{
			"pattern_similarity": sig.BestPatternSim,
			"pattern_count":      float64(sig.PatternCount),
		},
	}
}

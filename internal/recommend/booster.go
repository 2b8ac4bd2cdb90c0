// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

// contextualFactors resolves which boosts apply to a candidate right
// now: current hour and weekday overlap with the candidate's declared
// activity window, recent platform activity inside the configured
// window, and the mutual connection count carried on the candidate
// record.
func contextualFactors(cfg BoostConfig, snap *ContextSnapshot, c Candidate) ContextualFactors {
	f := ContextualFactors{MutualConnections: c.MutualConnections}
	if snap == nil {
		return f
	}
	f.OptimalTime = inOptimalWindow(c, snap.Now.Hour(), int(snap.Now.Weekday()))
	f.RecentlyActive = snap.RecentlyActive(c.ID, cfg.RecentWindow)
	return f
}

// inOptimalWindow reports whether the hour and weekday both fall inside
// the candidate's declared window. No declared hours means no time
// boost; no declared days restricts nothing.
func inOptimalWindow(c Candidate, hour, weekday int) bool {
	hourMatch := false
	for _, h := range c.OptimalHours {
		if h == hour {
			hourMatch = true
			break
		}
	}
	if !hourMatch {
		return false
	}
	if len(c.ActiveDays) == 0 {
		return true
	}
	for _, d := range c.ActiveDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// applyBoosts applies the multiplicative contextual boosts to a combined
// score and clamps the result to [0,100]. Boosts are multiplicative so
// they compound; the clamp keeps a heavily-boosted strong match from
// escaping the score scale.
func applyBoosts(cfg BoostConfig, score float64, f ContextualFactors) float64 {
	if f.OptimalTime {
		score *= cfg.OptimalTime
	}
	if f.RecentlyActive {
		score *= cfg.RecentActivity
	}
	if f.MutualConnections > 0 {
		score *= 1 + cfg.PerMutualConnection*float64(f.MutualConnections)
	}
	return clampScore(score)
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import "sort"

// BuildBehaviorProfile derives a user's behavioral signature from raw
// swipe, message, and match history. A user with no history yields a
// zero-valued profile, never an error.
func BuildBehaviorProfile(cfg ProfileConfig, swipes []SwipeEvent, threads []MessageThread, matches []MatchRecord) BehaviorProfile {
	var p BehaviorProfile

	p.PreferredIndustries = preferredIndustries(cfg, swipes)
	p.InvestmentMin, p.InvestmentMax = investmentRange(cfg, swipes)
	p.ActiveHours, p.ActiveDays = activityPattern(cfg, threads)
	p.ResponseRate = responseRate(threads)
	p.HistoricalMatchRate = matchRate(matches)

	return p
}

// industryTally tracks like/total counts for one industry tag.
type industryTally struct {
	likes int
	total int
}

// preferredIndustries returns industries clearing both the sample-size
// gate and the like-rate gate, sorted. The gates keep single-swipe
// industries out of the preferred set.
func preferredIndustries(cfg ProfileConfig, swipes []SwipeEvent) []string {
	tallies := make(map[string]*industryTally)

	for i := range swipes {
		for _, ind := range swipes[i].TargetIndustries {
			if ind == "" {
				continue
			}
			t := tallies[ind]
			if t == nil {
				t = &industryTally{}
				tallies[ind] = t
			}
			t.total++
			if swipes[i].Direction == SwipeLike {
				t.likes++
			}
		}
	}

	preferred := make([]string, 0, len(tallies))
	for ind, t := range tallies {
		if t.total < cfg.MinIndustrySwipes {
			continue
		}
		// Strictly greater: a like rate of exactly MinLikeRate does not
		// qualify.
		if float64(t.likes)/float64(t.total) <= cfg.MinLikeRate {
			continue
		}
		preferred = append(preferred, ind)
	}

	sort.Strings(preferred)
	return preferred
}

// investmentRange infers the preferred investment band from the liked
// targets' investment figures, widened by the configured headroom.
// Monotonic: a superset of the same liked data can only widen the range.
func investmentRange(cfg ProfileConfig, swipes []SwipeEvent) (minAmount, maxAmount float64) {
	seen := false
	for i := range swipes {
		if swipes[i].Direction != SwipeLike || swipes[i].TargetInvestment <= 0 {
			continue
		}
		v := swipes[i].TargetInvestment
		if !seen {
			minAmount, maxAmount = v, v
			seen = true
			continue
		}
		if v < minAmount {
			minAmount = v
		}
		if v > maxAmount {
			maxAmount = v
		}
	}
	if !seen {
		return 0, 0
	}
	return minAmount * (1 - cfg.RangeHeadroom), maxAmount * (1 + cfg.RangeHeadroom)
}

// activityPattern buckets message timestamps by hour-of-day and
// day-of-week, keeping only buckets above the noise floor.
func activityPattern(cfg ProfileConfig, threads []MessageThread) (hours, days []int) {
	hourCounts := make(map[int]int)
	dayCounts := make(map[int]int)
	total := 0

	for i := range threads {
		for _, ts := range threads[i].Timestamps {
			hourCounts[ts.Hour()]++
			dayCounts[int(ts.Weekday())]++
			total++
		}
	}
	if total == 0 {
		return nil, nil
	}

	floor := float64(total) * cfg.ActivityMinShare
	keep := func(counts map[int]int) []int {
		kept := make([]int, 0, len(counts))
		for bucket, n := range counts {
			if n >= cfg.ActivityMinEvents && float64(n) >= floor {
				kept = append(kept, bucket)
			}
		}
		sort.Ints(kept)
		if len(kept) == 0 {
			return nil
		}
		return kept
	}

	return keep(hourCounts), keep(dayCounts)
}

// responseRate is responded conversations over total conversations.
// Returns 0 for an empty history, never NaN.
func responseRate(threads []MessageThread) float64 {
	if len(threads) == 0 {
		return 0
	}
	responded := 0
	for i := range threads {
		if threads[i].Responded() {
			responded++
		}
	}
	return float64(responded) / float64(len(threads))
}

// matchRate is mutually-accepted matches over all matches. Returns 0 for
// a user with no match history.
func matchRate(matches []MatchRecord) float64 {
	if len(matches) == 0 {
		return 0
	}
	accepted := 0
	for i := range matches {
		if matches[i].Accepted {
			accepted++
		}
	}
	return float64(accepted) / float64(len(matches))
}

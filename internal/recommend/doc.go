// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

// Package recommend implements the matching engine that pairs
// entrepreneurs with funders.
//
// # Architecture
//
// The pipeline runs four stages per request:
//
//   - Behavior profiling: swipe, messaging, and match history condensed
//     into industry preferences, an investment comfort range, activity
//     windows, and response/match rates
//   - Pattern mining: one pattern per successful past match capturing
//     what alignment looked like when it worked
//   - Scoring: base compatibility, behavioral fit, and pattern
//     similarity combined under configurable weights
//   - Contextual boosting: multiplicative adjustments for time-of-day
//     overlap, recent activity, and mutual connections
//
// Every ranked candidate carries the component scores, the applied
// boost factors, and plain-language insights derived from the same
// signals the scorer used.
//
// # Design Principles
//
//   - Deterministic: identical inputs and clock produce identical
//     rankings (injected clock, stable sort, index-addressed workers)
//   - Fail closed: any upstream read failure fails the request rather
//     than returning a silently degraded ranking
//   - Auditable: structured logging with request IDs on every request
//   - Self-contained: integration happens through the DataProvider
//     interface, never through direct storage imports
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetDataProvider(provider)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    UserID: userID,
//	    K:      20,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Configuration updates swap the
// config under a lock and invalidate the response cache.
package recommend

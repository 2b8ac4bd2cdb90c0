// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import (
	"context"
	"time"
)

// Note: This package has no dependencies on other internal packages to
// maintain clean separation. The DataProvider interface allows integration
// with the store package without creating circular imports.

// SwipeDirection classifies a swipe action on a candidate profile.
type SwipeDirection int

const (
	// SwipePass indicates the user dismissed the profile.
	SwipePass SwipeDirection = iota
	// SwipeLike indicates the user expressed interest in the profile.
	SwipeLike
)

// String returns a human-readable name for the swipe direction.
func (d SwipeDirection) String() string {
	switch d {
	case SwipePass:
		return "pass"
	case SwipeLike:
		return "like"
	default:
		return "unknown"
	}
}

// VerificationLevel is the identity verification tier of a profile.
type VerificationLevel int

const (
	// VerificationNone indicates an unverified profile.
	VerificationNone VerificationLevel = iota
	// VerificationEmail indicates a confirmed email address.
	VerificationEmail
	// VerificationIdentity indicates a verified government ID.
	VerificationIdentity
	// VerificationAccredited indicates a verified accredited investor.
	VerificationAccredited
)

// String returns a human-readable name for the verification level.
func (v VerificationLevel) String() string {
	switch v {
	case VerificationNone:
		return "none"
	case VerificationEmail:
		return "email"
	case VerificationIdentity:
		return "identity"
	case VerificationAccredited:
		return "accredited"
	default:
		return "unknown"
	}
}

// SwipeEvent is one immutable swipe action from the user's history.
// Target attributes are denormalized onto the event so profile building
// needs no secondary lookups.
type SwipeEvent struct {
	// SubjectID is the user who swiped.
	SubjectID string `json:"subject_id"`

	// TargetID is the profile that was swiped on.
	TargetID string `json:"target_id"`

	// TargetIndustries are the industry tags of the swiped profile.
	TargetIndustries []string `json:"target_industries"`

	// TargetInvestment is the investment ask (entrepreneurs) or typical
	// check size (funders) of the swiped profile, in USD.
	TargetInvestment float64 `json:"target_investment"`

	// Direction is like or pass.
	Direction SwipeDirection `json:"direction"`

	// Timestamp is when the swipe occurred.
	Timestamp time.Time `json:"timestamp"`
}

// MessageThread is a read-only sample of one conversation, reduced to the
// message timestamps involving the user. Used for response-rate and
// activity-rhythm derivation only.
type MessageThread struct {
	// ThreadID identifies the conversation.
	ThreadID string `json:"thread_id"`

	// Timestamps are the send times of all messages in the thread,
	// oldest first.
	Timestamps []time.Time `json:"timestamps"`
}

// Responded reports whether the conversation progressed past the opener.
func (t MessageThread) Responded() bool {
	return len(t.Timestamps) > 1
}

// MatchRecord is one historical match involving the user, accepted or not.
// Accepted records feed the pattern miner; the full set feeds the
// historical match rate.
type MatchRecord struct {
	// Counterparty is the other party's profile at match time.
	Counterparty Candidate `json:"counterparty"`

	// Accepted reports whether the match reached mutual acceptance.
	Accepted bool `json:"accepted"`

	// MatchedAt is when the match was created.
	MatchedAt time.Time `json:"matched_at"`

	// MessagesExchanged is the total messages sent in the match thread.
	MessagesExchanged int `json:"messages_exchanged"`
}

// InteractionEvent is one recent platform interaction (swipe, message,
// profile view) by some actor, used only for contextual boosting.
type InteractionEvent struct {
	// ActorID is the user who acted.
	ActorID string `json:"actor_id"`

	// Timestamp is when the interaction occurred.
	Timestamp time.Time `json:"timestamp"`
}

// UserProfile is the requesting user's static profile.
type UserProfile struct {
	// ID is the user identifier.
	ID string `json:"id"`

	// DisplayName is the public profile name.
	DisplayName string `json:"display_name"`

	// Industries are the user's industry tags.
	Industries []string `json:"industries"`

	// YearsExperience is the user's professional experience in years.
	YearsExperience int `json:"years_experience"`

	// InvestmentAsk is the amount sought (entrepreneurs), in USD.
	InvestmentAsk float64 `json:"investment_ask"`

	// InvestmentCapacity is the amount available (funders), in USD.
	InvestmentCapacity float64 `json:"investment_capacity"`

	// Verification is the profile's verification tier.
	Verification VerificationLevel `json:"verification"`
}

// Candidate is a profile under consideration for recommendation.
type Candidate struct {
	// ID is the candidate's user identifier.
	ID string `json:"id"`

	// DisplayName is the public profile name.
	DisplayName string `json:"display_name"`

	// Industries are the candidate's industry tags.
	Industries []string `json:"industries"`

	// YearsExperience is the candidate's professional experience in years.
	YearsExperience int `json:"years_experience"`

	// InvestmentAsk is the amount sought (entrepreneurs), in USD.
	InvestmentAsk float64 `json:"investment_ask"`

	// InvestmentCapacity is the amount available (funders), in USD.
	InvestmentCapacity float64 `json:"investment_capacity"`

	// Verification is the candidate's verification tier.
	Verification VerificationLevel `json:"verification"`

	// OptimalHours are the hours-of-day (0-23) the candidate is usually
	// active, if declared. Optional.
	OptimalHours []int `json:"optimal_hours,omitempty"`

	// ActiveDays are the days-of-week (0=Sunday) the candidate is usually
	// active, if declared. Optional.
	ActiveDays []int `json:"active_days,omitempty"`

	// MutualConnections is the number of shared connections with the
	// requesting user. Optional.
	MutualConnections int `json:"mutual_connections,omitempty"`
}

// Valid reports whether the candidate carries the static attributes
// scoring requires. Invalid candidates are skipped, not scored.
func (c Candidate) Valid() bool {
	if c.ID == "" {
		return false
	}
	if len(c.Industries) == 0 {
		return false
	}
	if c.YearsExperience < 0 {
		return false
	}
	return c.InvestmentAsk > 0 || c.InvestmentCapacity > 0
}

// InvestmentFigure returns the candidate's primary investment figure:
// the ask when present, otherwise the capacity.
func (c Candidate) InvestmentFigure() float64 {
	if c.InvestmentAsk > 0 {
		return c.InvestmentAsk
	}
	return c.InvestmentCapacity
}

// BehaviorProfile is the derived behavioral signature of one user,
// recomputed per request and owned by a single pipeline invocation.
// Set-valued fields are sorted slices so output is reproducible.
type BehaviorProfile struct {
	// PreferredIndustries are industries with at least MinIndustrySwipes
	// observed swipes and a like rate above MinLikeRate, sorted.
	PreferredIndustries []string `json:"preferred_industries"`

	// InvestmentMin and InvestmentMax bound the inferred investment
	// preference, derived from liked targets. Both zero when no signal.
	InvestmentMin float64 `json:"investment_min"`
	InvestmentMax float64 `json:"investment_max"`

	// ActiveHours are the hours-of-day (0-23) with message activity above
	// the noise floor, sorted.
	ActiveHours []int `json:"active_hours"`

	// ActiveDays are the days-of-week (0=Sunday) with message activity
	// above the noise floor, sorted.
	ActiveDays []int `json:"active_days"`

	// ResponseRate is the fraction of conversations with a reply, in [0,1].
	ResponseRate float64 `json:"response_rate"`

	// HistoricalMatchRate is the fraction of the user's matches that
	// reached mutual acceptance, in [0,1].
	HistoricalMatchRate float64 `json:"historical_match_rate"`
}

// Empty reports whether the profile carries no behavioral signal at all.
// An empty profile makes the behavior score neutral rather than zero.
func (p BehaviorProfile) Empty() bool {
	return len(p.PreferredIndustries) == 0 &&
		p.InvestmentMax == 0 &&
		len(p.ActiveHours) == 0 &&
		len(p.ActiveDays) == 0 &&
		p.ResponseRate == 0 &&
		p.HistoricalMatchRate == 0
}

// PrefersIndustry reports whether industry is in the preferred set.
func (p BehaviorProfile) PrefersIndustry(industry string) bool {
	for _, ind := range p.PreferredIndustries {
		if ind == industry {
			return true
		}
	}
	return false
}

// MatchPattern is the fingerprint of one historical successful match.
// All alignment fields are normalized to [0,1]; higher is better.
type MatchPattern struct {
	// IndustryAlignment is the normalized industry overlap between the
	// two parties (0 = disjoint, 1 = identical sets).
	IndustryAlignment float64 `json:"industry_alignment"`

	// ExperienceAlignment is the inverted, normalized experience gap
	// (1 = same experience, 0 = gap of MaxExperienceGapYears or more).
	ExperienceAlignment float64 `json:"experience_alignment"`

	// InvestmentAlignment is the normalized closeness between one party's
	// ask and the other's capacity.
	InvestmentAlignment float64 `json:"investment_alignment"`

	// Verification is the counterparty's verification tier, carried
	// through unchanged.
	Verification VerificationLevel `json:"verification"`

	// ConversionRate measures how quickly the match converted to
	// sustained conversation, in [0,1). Monotonic in message count.
	ConversionRate float64 `json:"conversion_rate"`
}

// ContextSnapshot captures the recent-interaction context used for
// time-sensitive boosting. It is immutable once built.
type ContextSnapshot struct {
	// Now is the pipeline's injected clock reading.
	Now time.Time

	// lastActive maps actor ID to the most recent interaction timestamp
	// observed inside the context window.
	lastActive map[string]time.Time
}

// NewContextSnapshot builds a snapshot from interaction events. Events
// older than the context window were already filtered by the fetch.
func NewContextSnapshot(now time.Time, events []InteractionEvent) ContextSnapshot {
	last := make(map[string]time.Time, len(events))
	for _, ev := range events {
		if ev.ActorID == "" {
			continue
		}
		if prev, ok := last[ev.ActorID]; !ok || ev.Timestamp.After(prev) {
			last[ev.ActorID] = ev.Timestamp
		}
	}
	return ContextSnapshot{Now: now, lastActive: last}
}

// RecentlyActive reports whether the actor interacted within the window
// ending at the snapshot's Now.
func (s ContextSnapshot) RecentlyActive(actorID string, window time.Duration) bool {
	last, ok := s.lastActive[actorID]
	if !ok {
		return false
	}
	return s.Now.Sub(last) <= window
}

// ContextualFactors records the boost inputs for one candidate, returned
// alongside the score for transparency.
type ContextualFactors struct {
	// OptimalTime reports whether the request fell inside the candidate's
	// declared activity window.
	OptimalTime bool `json:"optimal_time"`

	// RecentlyActive reports whether the candidate interacted within the
	// recent-activity window.
	RecentlyActive bool `json:"recently_active"`

	// MutualConnections is the shared connection count used for boosting.
	MutualConnections int `json:"mutual_connections"`
}

// InsightType classifies a recommendation explanation.
type InsightType string

const (
	// InsightIndustry explains an industry-overlap signal.
	InsightIndustry InsightType = "industry"
	// InsightInvestment explains an investment-range signal.
	InsightInvestment InsightType = "investment"
	// InsightActivity explains an activity-overlap signal.
	InsightActivity InsightType = "activity"
	// InsightSuccess explains a historical-pattern signal.
	InsightSuccess InsightType = "success"
)

// Confidence grades how strongly an insight's signal was observed.
type Confidence string

const (
	// ConfidenceLow marks a weak signal.
	ConfidenceLow Confidence = "low"
	// ConfidenceMedium marks a moderate signal.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceHigh marks a strong signal.
	ConfidenceHigh Confidence = "high"
)

// Insight is one human-readable explanation for a candidate's score.
// Insights are derived from the same signals used for scoring and never
// feed back into it.
type Insight struct {
	// Type is the insight category.
	Type InsightType `json:"type"`

	// Confidence grades the underlying signal.
	Confidence Confidence `json:"confidence"`

	// Message is the human-readable explanation.
	Message string `json:"message"`

	// Details carries optional supporting values (pattern alignments,
	// conversion rates) for debugging surfaces.
	Details map[string]float64 `json:"details,omitempty"`
}

// RankedCandidate is one scored entry in the recommendation response.
type RankedCandidate struct {
	// Candidate is the scored profile.
	Candidate Candidate `json:"candidate"`

	// BaseScore is the static-compatibility component, in [0,100].
	BaseScore float64 `json:"base_score"`

	// BehaviorScore is the behavior-alignment component, in [0,100].
	BehaviorScore float64 `json:"behavior_score"`

	// PatternScore is the pattern-alignment component, in [0,100].
	PatternScore float64 `json:"pattern_score"`

	// SmartScore is the final boosted composite, clamped to [0,100].
	SmartScore float64 `json:"smart_score"`

	// Insights explain the score, strongest signals first.
	Insights []Insight `json:"insights"`

	// Factors are the contextual-boost inputs.
	Factors ContextualFactors `json:"contextual_factors"`
}

// Request is one recommendation request.
type Request struct {
	// UserID is the user to generate recommendations for.
	UserID string `json:"user_id"`

	// K is the number of recommendations to return.
	// Defaults to Config.Limits.DefaultK if zero.
	K int `json:"k,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the ordered recommendation result.
type Response struct {
	// Candidates is the ranked list, best first.
	Candidates []RankedCandidate `json:"candidates"`

	// TotalCandidates is the number of valid candidates scored, after
	// self-exclusion and malformed-record filtering.
	TotalCandidates int `json:"total_candidates"`

	// SkippedCandidates is the number of malformed records dropped.
	SkippedCandidates int `json:"skipped_candidates"`

	// Metadata carries timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// UserID is the user the recommendations are for.
	UserID string `json:"user_id"`

	// LatencyMS is the pipeline latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result came from the response cache.
	CacheHit bool `json:"cache_hit"`

	// ProfileSignals is the number of preferred industries in the derived
	// behavior profile (0 for cold-start users).
	ProfileSignals int `json:"profile_signals"`

	// PatternCount is the number of mined success patterns.
	PatternCount int `json:"pattern_count"`

	// GeneratedAt is the injected clock reading used for scoring.
	GeneratedAt time.Time `json:"generated_at"`
}

// EngineMetrics is a point-in-time snapshot of engine counters.
type EngineMetrics struct {
	// RequestCount is the total number of recommendation requests.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of response cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of response cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// ErrorCount is the number of failed pipeline runs.
	ErrorCount int64 `json:"error_count"`

	// SkippedCandidates is the cumulative count of malformed candidates
	// dropped from responses.
	SkippedCandidates int64 `json:"skipped_candidates"`
}

// DataProvider is the read-only data-access collaborator. It is typically
// implemented by the store package; the pipeline never writes through it.
type DataProvider interface {
	// GetUser resolves the requesting user's static profile.
	// Returns ErrUserNotFound if the ID does not resolve.
	GetUser(ctx context.Context, userID string) (*UserProfile, error)

	// GetSwipeHistory returns the user's full swipe history.
	GetSwipeHistory(ctx context.Context, userID string) ([]SwipeEvent, error)

	// GetMessageThreads returns conversation samples involving the user.
	GetMessageThreads(ctx context.Context, userID string) ([]MessageThread, error)

	// GetMatchHistory returns all matches involving the user, accepted
	// or not, with counterparty profiles attached.
	GetMatchHistory(ctx context.Context, userID string) ([]MatchRecord, error)

	// GetRecentInteractions returns interaction events since the given
	// timestamp, across all actors relevant to the user's pool.
	GetRecentInteractions(ctx context.Context, userID string, since time.Time) ([]InteractionEvent, error)

	// GetCandidatePool returns up to limit profiles eligible for
	// recommendation to the user, in stable storage order. The user's
	// own profile is excluded.
	GetCandidatePool(ctx context.Context, userID string, limit int) ([]Candidate, error)
}

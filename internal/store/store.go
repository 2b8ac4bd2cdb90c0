// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package store

import (
	"context"
	"errors"
	"time"

	"github.com/founderbridge/founderbridge/internal/recommend"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence interface for matching data. All reads
// return records in a deterministic order: history streams by
// timestamp, candidate pools by ID.
type Store interface {
	// PutUser stores or replaces a user profile.
	PutUser(ctx context.Context, user recommend.UserProfile) error

	// GetUser returns a user profile, or ErrNotFound.
	GetUser(ctx context.Context, userID string) (*recommend.UserProfile, error)

	// PutCandidate stores or replaces a candidate record.
	PutCandidate(ctx context.Context, c recommend.Candidate) error

	// CandidatePool returns up to limit candidates, excluding the given
	// user, ordered by candidate ID.
	CandidatePool(ctx context.Context, excludeUserID string, limit int) ([]recommend.Candidate, error)

	// PutSwipe appends a swipe event to the subject's history.
	PutSwipe(ctx context.Context, ev recommend.SwipeEvent) error

	// SwipeHistory returns a user's swipe events ordered by timestamp.
	SwipeHistory(ctx context.Context, userID string) ([]recommend.SwipeEvent, error)

	// PutThread stores or replaces a message thread for a user.
	PutThread(ctx context.Context, userID string, t recommend.MessageThread) error

	// MessageThreads returns a user's message threads ordered by thread ID.
	MessageThreads(ctx context.Context, userID string) ([]recommend.MessageThread, error)

	// PutMatch stores or replaces a match record for a user.
	PutMatch(ctx context.Context, userID string, m recommend.MatchRecord) error

	// MatchHistory returns a user's match records ordered by
	// counterparty ID.
	MatchHistory(ctx context.Context, userID string) ([]recommend.MatchRecord, error)

	// PutInteraction appends a platform interaction event.
	PutInteraction(ctx context.Context, ev recommend.InteractionEvent) error

	// RecentInteractions returns interaction events at or after since,
	// ordered by actor then timestamp.
	RecentInteractions(ctx context.Context, since time.Time) ([]recommend.InteractionEvent, error)

	// Close releases underlying resources.
	Close() error
}

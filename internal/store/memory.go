// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/founderbridge/founderbridge/internal/recommend"
)

// MemoryStore implements Store with in-process maps. Suitable for tests
// and ephemeral deployments; contents are lost on restart.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]recommend.UserProfile
	candidates   map[string]recommend.Candidate
	swipes       map[string][]recommend.SwipeEvent
	threads      map[string]map[string]recommend.MessageThread
	matches      map[string]map[string]recommend.MatchRecord
	interactions []recommend.InteractionEvent
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]recommend.UserProfile),
		candidates: make(map[string]recommend.Candidate),
		swipes:     make(map[string][]recommend.SwipeEvent),
		threads:    make(map[string]map[string]recommend.MessageThread),
		matches:    make(map[string]map[string]recommend.MatchRecord),
	}
}

// PutUser stores or replaces a user profile.
func (s *MemoryStore) PutUser(ctx context.Context, user recommend.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

// GetUser returns a user profile, or ErrNotFound.
func (s *MemoryStore) GetUser(ctx context.Context, userID string) (*recommend.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// PutCandidate stores or replaces a candidate record.
func (s *MemoryStore) PutCandidate(ctx context.Context, c recommend.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[c.ID] = c
	return nil
}

// CandidatePool returns up to limit candidates, excluding the given
// user, ordered by candidate ID.
func (s *MemoryStore) CandidatePool(ctx context.Context, excludeUserID string, limit int) ([]recommend.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.candidates))
	for id := range s.candidates {
		if id == excludeUserID {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	pool := make([]recommend.Candidate, 0, len(ids))
	for _, id := range ids {
		pool = append(pool, s.candidates[id])
	}
	return pool, nil
}

// PutSwipe appends a swipe event to the subject's history.
func (s *MemoryStore) PutSwipe(ctx context.Context, ev recommend.SwipeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swipes[ev.SubjectID] = append(s.swipes[ev.SubjectID], ev)
	return nil
}

// SwipeHistory returns a user's swipe events ordered by timestamp.
func (s *MemoryStore) SwipeHistory(ctx context.Context, userID string) ([]recommend.SwipeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]recommend.SwipeEvent, len(s.swipes[userID]))
	copy(events, s.swipes[userID])
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

// PutThread stores or replaces a message thread for a user.
func (s *MemoryStore) PutThread(ctx context.Context, userID string, t recommend.MessageThread) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.threads[userID] == nil {
		s.threads[userID] = make(map[string]recommend.MessageThread)
	}
	s.threads[userID][t.ThreadID] = t
	return nil
}

// MessageThreads returns a user's message threads ordered by thread ID.
func (s *MemoryStore) MessageThreads(ctx context.Context, userID string) ([]recommend.MessageThread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.threads[userID]))
	for id := range s.threads[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	threads := make([]recommend.MessageThread, 0, len(ids))
	for _, id := range ids {
		threads = append(threads, s.threads[userID][id])
	}
	return threads, nil
}

// PutMatch stores or replaces a match record for a user.
func (s *MemoryStore) PutMatch(ctx context.Context, userID string, m recommend.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.matches[userID] == nil {
		s.matches[userID] = make(map[string]recommend.MatchRecord)
	}
	s.matches[userID][m.Counterparty.ID] = m
	return nil
}

// MatchHistory returns a user's match records ordered by counterparty ID.
func (s *MemoryStore) MatchHistory(ctx context.Context, userID string) ([]recommend.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.matches[userID]))
	for id := range s.matches[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	matches := make([]recommend.MatchRecord, 0, len(ids))
	for _, id := range ids {
		matches = append(matches, s.matches[userID][id])
	}
	return matches, nil
}

// PutInteraction appends a platform interaction event.
func (s *MemoryStore) PutInteraction(ctx context.Context, ev recommend.InteractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, ev)
	return nil
}

// RecentInteractions returns interaction events at or after since,
// ordered by actor then timestamp.
func (s *MemoryStore) RecentInteractions(ctx context.Context, since time.Time) ([]recommend.InteractionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []recommend.InteractionEvent
	for _, ev := range s.interactions {
		if !ev.Timestamp.Before(since) {
			events = append(events, ev)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].ActorID != events[j].ActorID {
			return events[i].ActorID < events[j].ActorID
		}
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

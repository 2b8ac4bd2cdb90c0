// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/founderbridge/founderbridge/internal/recommend"
)

// Key prefixes for BadgerDB storage. History keys embed a zero-padded
// nanosecond timestamp so prefix iteration yields chronological order.
const (
	userKeyPrefix        = "user:"
	candidateKeyPrefix   = "candidate:"
	swipeKeyPrefix       = "swipe:"
	threadKeyPrefix      = "thread:"
	matchKeyPrefix       = "match:"
	interactionKeyPrefix = "interaction:"
)

// BadgerStore implements Store using BadgerDB for durable storage.
// Suitable for production use with persistence across restarts.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a BadgerDB at the given path and wraps it in a
// BadgerStore.
func OpenBadger(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already-open BadgerDB.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// PutUser stores or replaces a user profile.
func (s *BadgerStore) PutUser(ctx context.Context, user recommend.UserProfile) error {
	return s.putJSON(userKeyPrefix+user.ID, user)
}

// GetUser returns a user profile, or ErrNotFound.
func (s *BadgerStore) GetUser(ctx context.Context, userID string) (*recommend.UserProfile, error) {
	var user recommend.UserProfile
	if err := s.getJSON(userKeyPrefix+userID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PutCandidate stores or replaces a candidate record.
func (s *BadgerStore) PutCandidate(ctx context.Context, c recommend.Candidate) error {
	return s.putJSON(candidateKeyPrefix+c.ID, c)
}

// CandidatePool returns up to limit candidates, excluding the given
// user. Badger iterates keys in byte order, so the pool is ordered by
// candidate ID.
func (s *BadgerStore) CandidatePool(ctx context.Context, excludeUserID string, limit int) ([]recommend.Candidate, error) {
	var pool []recommend.Candidate

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(candidateKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(pool) >= limit {
				break
			}

			var c recommend.Candidate
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &c)
			})
			if err != nil {
				return fmt.Errorf("decode candidate: %w", err)
			}
			if c.ID == excludeUserID {
				continue
			}
			pool = append(pool, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// PutSwipe appends a swipe event to the subject's history.
func (s *BadgerStore) PutSwipe(ctx context.Context, ev recommend.SwipeEvent) error {
	key := fmt.Sprintf("%s%s:%020d:%s", swipeKeyPrefix, ev.SubjectID, ev.Timestamp.UnixNano(), ev.TargetID)
	return s.putJSON(key, ev)
}

// SwipeHistory returns a user's swipe events ordered by timestamp.
func (s *BadgerStore) SwipeHistory(ctx context.Context, userID string) ([]recommend.SwipeEvent, error) {
	var events []recommend.SwipeEvent
	err := s.scanJSON(swipeKeyPrefix+userID+":", func(val []byte) error {
		var ev recommend.SwipeEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// PutThread stores or replaces a message thread for a user.
func (s *BadgerStore) PutThread(ctx context.Context, userID string, t recommend.MessageThread) error {
	return s.putJSON(threadKeyPrefix+userID+":"+t.ThreadID, t)
}

// MessageThreads returns a user's message threads ordered by thread ID.
func (s *BadgerStore) MessageThreads(ctx context.Context, userID string) ([]recommend.MessageThread, error) {
	var threads []recommend.MessageThread
	err := s.scanJSON(threadKeyPrefix+userID+":", func(val []byte) error {
		var t recommend.MessageThread
		if err := json.Unmarshal(val, &t); err != nil {
			return err
		}
		threads = append(threads, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return threads, nil
}

// PutMatch stores or replaces a match record for a user.
func (s *BadgerStore) PutMatch(ctx context.Context, userID string, m recommend.MatchRecord) error {
	return s.putJSON(matchKeyPrefix+userID+":"+m.Counterparty.ID, m)
}

// MatchHistory returns a user's match records ordered by counterparty ID.
func (s *BadgerStore) MatchHistory(ctx context.Context, userID string) ([]recommend.MatchRecord, error) {
	var matches []recommend.MatchRecord
	err := s.scanJSON(matchKeyPrefix+userID+":", func(val []byte) error {
		var m recommend.MatchRecord
		if err := json.Unmarshal(val, &m); err != nil {
			return err
		}
		matches = append(matches, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// PutInteraction appends a platform interaction event.
func (s *BadgerStore) PutInteraction(ctx context.Context, ev recommend.InteractionEvent) error {
	key := fmt.Sprintf("%s%s:%020d", interactionKeyPrefix, ev.ActorID, ev.Timestamp.UnixNano())
	return s.putJSON(key, ev)
}

// RecentInteractions returns interaction events at or after since,
// ordered by actor then timestamp.
func (s *BadgerStore) RecentInteractions(ctx context.Context, since time.Time) ([]recommend.InteractionEvent, error) {
	var events []recommend.InteractionEvent
	err := s.scanJSON(interactionKeyPrefix, func(val []byte) error {
		var ev recommend.InteractionEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.Timestamp.Before(since) {
			return nil
		}
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// RunGC runs one round of BadgerDB value log garbage collection.
// Returns badger.ErrNoRewrite when there was nothing to reclaim.
func (s *BadgerStore) RunGC(discardRatio float64) error {
	return s.db.RunValueLogGC(discardRatio)
}

// Close closes the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *BadgerStore) getJSON(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

func (s *BadgerStore) scanJSON(prefix string, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

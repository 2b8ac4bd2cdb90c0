// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/founderbridge/founderbridge/internal/recommend"
)

func TestMemoryStoreImplementsStore(t *testing.T) {
	var _ Store = NewMemoryStore()
	var _ Store = (*BadgerStore)(nil)
}

func TestMemoryUserNotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetUser(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCandidatePoolOrderAndExclusion(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"z", "a", "m", "self"} {
		if err := s.PutCandidate(ctx, recommend.Candidate{ID: id}); err != nil {
			t.Fatalf("PutCandidate: %v", err)
		}
	}

	pool, err := s.CandidatePool(ctx, "self", 0)
	if err != nil {
		t.Fatalf("CandidatePool: %v", err)
	}
	for i, want := range []string{"a", "m", "z"} {
		if pool[i].ID != want {
			t.Errorf("pool[%d].ID = %s, want %s", i, pool[i].ID, want)
		}
	}
}

func TestMemorySwipeHistorySortsByTimestamp(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	for _, offset := range []time.Duration{2 * time.Hour, time.Hour} {
		ev := recommend.SwipeEvent{SubjectID: "u1", Timestamp: base.Add(offset)}
		if err := s.PutSwipe(ctx, ev); err != nil {
			t.Fatalf("PutSwipe: %v", err)
		}
	}

	events, err := s.SwipeHistory(ctx, "u1")
	if err != nil {
		t.Fatalf("SwipeHistory: %v", err)
	}
	if !events[0].Timestamp.Before(events[1].Timestamp) {
		t.Error("swipe history not sorted by timestamp")
	}
}

func TestMemoryThreadUpsert(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	thread := recommend.MessageThread{ThreadID: "t1", Timestamps: []time.Time{now}}
	if err := s.PutThread(ctx, "u1", thread); err != nil {
		t.Fatalf("PutThread: %v", err)
	}
	thread.Timestamps = append(thread.Timestamps, now.Add(time.Hour))
	if err := s.PutThread(ctx, "u1", thread); err != nil {
		t.Fatalf("PutThread update: %v", err)
	}

	threads, err := s.MessageThreads(ctx, "u1")
	if err != nil {
		t.Fatalf("MessageThreads: %v", err)
	}
	if len(threads) != 1 || len(threads[0].Timestamps) != 2 {
		t.Errorf("thread not upserted: %+v", threads)
	}
}

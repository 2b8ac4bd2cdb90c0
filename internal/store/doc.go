// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

// Package store persists user profiles, swipe history, message threads,
// match outcomes, and interaction events, and feeds them to the
// recommendation engine.
//
// Two implementations are provided: BadgerStore for durable production
// storage and MemoryStore for tests and ephemeral deployments. Both
// satisfy the Store interface; the Provider adapter exposes a Store to
// the recommendation engine behind a circuit breaker so storage
// failures degrade into fast, classified errors instead of piling up
// blocked requests.
package store

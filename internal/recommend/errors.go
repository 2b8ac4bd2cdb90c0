// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package recommend

import (
	"context"
	"errors"
)

// Terminal pipeline errors. Absence of history is NOT an error: empty
// swipe/message/match sets degrade to neutral signals instead.
var (
	// ErrUserNotFound indicates the requested user ID does not resolve.
	ErrUserNotFound = errors.New("user not found")

	// ErrUpstreamTimeout indicates a fan-out read exceeded the pipeline
	// deadline. The pipeline fails closed rather than ranking on partial
	// signals.
	ErrUpstreamTimeout = errors.New("upstream read timed out")

	// ErrUpstreamUnavailable indicates the data-access collaborator is
	// refusing reads (circuit open, backend down).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNoDataProvider indicates the engine was used before a provider
	// was attached.
	ErrNoDataProvider = errors.New("data provider not set")
)

// IsUnavailable reports whether err means "recommendations currently
// unavailable" as opposed to a bad request. Callers map this to a 503.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout) || errors.Is(err, ErrUpstreamUnavailable)
}

// classifyFetchErr maps context deadline errors from fan-out reads onto
// the pipeline's error taxonomy.
func classifyFetchErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUpstreamTimeout
	}
	return err
}

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

// Package logging provides centralized zerolog-based structured logging.
//
// The package exposes a process-global logger with JSON output for
// production and human-readable console output for development, plus
// context propagation of request IDs and an slog adapter for libraries
// that require log/slog (the supervision tree's logger hook).
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("server starting")
//	logging.Err(err).Msg("operation failed")
//
//	// With request context
//	logging.Ctx(ctx).Info().Str("user_id", uid).Msg("request processed")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting.
package logging

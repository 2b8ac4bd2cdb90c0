// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

// Package config loads and validates the application configuration.
//
// Configuration is layered with koanf: struct defaults first, then an
// optional YAML file, then FB_-prefixed environment variables with the
// highest priority. The recommend section is the operator-tunable
// subset of the engine configuration; EngineConfig overlays it onto the
// engine defaults.
package config

// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

/*
Package supervisor provides suture-based process supervision.

The tree has a root supervisor with two child layers:

	founderbridge
	├── data-layer    StoreGCService (badger value log GC)
	└── api-layer     HTTPService (the chi router behind http.Server)

Services restart automatically on failure with suture's default
threshold/decay/backoff parameters. Supervisor events are logged
through the sutureslog adapter, bridged to zerolog via the logging
package's slog handler.
*/
package supervisor

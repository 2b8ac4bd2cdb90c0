// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with custom validators and user-friendly error
// messages. It integrates with the API error envelope for consistent error
// responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - APIError conversion matching the API envelope
//   - A custom industry_slug validator for industry identifiers
//
// # Quick Start
//
//	type RecommendationsRequest struct {
//	    UserID string `validate:"required,uuid"`
//	    K      int    `validate:"min=1,max=100"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    req := RecommendationsRequest{...}
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	        return
//	    }
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//   - uuid: Valid UUID format
//   - industry_slug: Lowercase hyphenated industry identifier
//
// Numeric validations:
//   - gte=n, lte=n, gt=n, lt=n
//   - min=n, max=n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the API envelope:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "K must be at most 100",
//	    "details": {"field": "K", "tag": "max", "value": 500}
//	}
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use.
package validation

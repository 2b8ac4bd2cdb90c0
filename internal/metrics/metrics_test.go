// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecommendationOutcomes(t *testing.T) {
	before := testutil.ToFloat64(RecommendationRequests.WithLabelValues("success"))
	RecordRecommendation("success", 50*time.Millisecond, 10)
	after := testutil.ToFloat64(RecommendationRequests.WithLabelValues("success"))
	if after != before+1 {
		t.Errorf("success counter = %f, want %f", after, before+1)
	}

	beforeErr := testutil.ToFloat64(RecommendationRequests.WithLabelValues("error"))
	RecordRecommendation("error", time.Millisecond, 0)
	afterErr := testutil.ToFloat64(RecommendationRequests.WithLabelValues("error"))
	if afterErr != beforeErr+1 {
		t.Errorf("error counter = %f, want %f", afterErr, beforeErr+1)
	}
}

func TestRecordStoreReadErrorCounting(t *testing.T) {
	before := testutil.ToFloat64(StoreReadErrors.WithLabelValues("user"))

	RecordStoreRead("user", time.Millisecond, nil)
	if got := testutil.ToFloat64(StoreReadErrors.WithLabelValues("user")); got != before {
		t.Errorf("error counter moved on success: %f", got)
	}

	RecordStoreRead("user", time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(StoreReadErrors.WithLabelValues("user")); got != before+1 {
		t.Errorf("error counter = %f, want %f", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active gauge = %f, want %f", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active gauge = %f, want %f", got, before)
	}
}

func TestCircuitBreakerStateGauge(t *testing.T) {
	CircuitBreakerState.WithLabelValues("test-breaker").Set(2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != 2 {
		t.Errorf("breaker state = %f, want 2", got)
	}
}

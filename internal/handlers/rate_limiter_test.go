package handlers

import (
	"testing"
	"time"
)

func TestSubmissionLimiter(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	limiter := newSubmissionLimiter(2, time.Minute, clock)
	if limiter == nil {
		t.Fatalf("expected limiter for positive limit and window")
	}

	if !limiter.allow("minsu") || !limiter.allow("minsu") {
		t.Fatalf("first two submissions should pass")
	}
	if limiter.allow("minsu") {
		t.Fatalf("third submission within the window should be rejected")
	}
	if !limiter.allow("jiyoung") {
		t.Fatalf("another author should have an independent window")
	}

	now = now.Add(2 * time.Minute)
	if !limiter.allow("minsu") {
		t.Fatalf("submission after the window resets should pass")
	}
}

func TestSubmissionLimiterDisabled(t *testing.T) {
	if newSubmissionLimiter(0, time.Minute, nil) != nil {
		t.Fatalf("zero limit should disable the limiter")
	}

	var limiter *submissionLimiter
	if !limiter.allow("anyone") {
		t.Fatalf("nil limiter must allow everything")
	}
}

package payments

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSimulatedSettlerSucceeds(t *testing.T) {
	now := time.Date(2024, time.February, 1, 12, 0, 0, 0, time.UTC)
	settler := NewSimulatedSettler(
		WithDelay(0),
		WithClock(func() time.Time { return now }),
	)

	result, err := settler.Settle(context.Background(), SettlementRequest{SessionID: "s1", ProjectID: "1", Amount: 500})
	if err != nil {
		t.Fatalf("Settle returned error: %v", err)
	}
	if result.Status != StatusSucceeded {
		t.Fatalf("expected succeeded, got %q", result.Status)
	}
	if result.Reference != "sim-s1" {
		t.Fatalf("unexpected reference %q", result.Reference)
	}
	if !result.SettledAt.Equal(now) {
		t.Fatalf("expected settledAt %v, got %v", now, result.SettledAt)
	}
}

func TestSimulatedSettlerDeclines(t *testing.T) {
	settler := NewSimulatedSettler(
		WithDelay(0),
		WithFailure(func(SettlementRequest) bool { return true }),
	)

	result, err := settler.Settle(context.Background(), SettlementRequest{SessionID: "s1"})
	if !errors.Is(err, ErrSettlementDeclined) {
		t.Fatalf("expected ErrSettlementDeclined, got %v", err)
	}
	if result.Status != StatusFailed {
		t.Fatalf("expected failed status, got %q", result.Status)
	}
}

func TestSimulatedSettlerHonoursCancellation(t *testing.T) {
	settler := NewSimulatedSettler(WithDelay(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := settler.Settle(ctx, SettlementRequest{SessionID: "s1"})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("settlement did not abort after cancellation")
	}
}

func TestSimulatedSettlerZeroDelayCancelledContext(t *testing.T) {
	settler := NewSimulatedSettler(WithDelay(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := settler.Settle(ctx, SettlementRequest{SessionID: "s1"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

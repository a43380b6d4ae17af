// Package payments holds the settlement seam between the funding flow and a
// payment gateway. No real gateway is wired; the simulated settler stands in
// behind the same interface.
package payments

import (
	"context"
	"errors"
	"time"
)

// Status enumerates the normalised settlement states.
type Status string

const (
	// StatusSucceeded indicates the settlement completed and the charge stands.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the settlement was rejected and no charge stands.
	StatusFailed Status = "failed"
)

// ErrSettlementDeclined is returned when the gateway rejects the charge.
var ErrSettlementDeclined = errors.New("payments: settlement declined")

// SettlementRequest carries the fixed-amount charge to settle.
type SettlementRequest struct {
	SessionID string
	ProjectID string
	RewardID  string
	Amount    int64
}

// SettlementResult reports the outcome of a settlement attempt.
type SettlementResult struct {
	Status    Status
	SettledAt time.Time
	Reference string
}

// Settler is the contract a payment gateway adapter implements. Settle blocks
// until the charge resolves or ctx is cancelled; cancellation means no charge
// was made.
type Settler interface {
	Settle(ctx context.Context, req SettlementRequest) (SettlementResult, error)
}

// SimulatedSettler resolves settlements locally after a fixed delay. The delay
// stands in for gateway latency and is interruptible through the context so an
// abandoned confirmation never completes a charge.
type SimulatedSettler struct {
	delay time.Duration
	fail  func(req SettlementRequest) bool
	clock func() time.Time
}

// SimulatedOption configures a SimulatedSettler.
type SimulatedOption func(*SimulatedSettler)

// WithDelay overrides the simulated gateway latency.
func WithDelay(delay time.Duration) SimulatedOption {
	return func(s *SimulatedSettler) {
		if delay >= 0 {
			s.delay = delay
		}
	}
}

// WithFailure injects a predicate deciding which settlements are declined.
func WithFailure(fail func(req SettlementRequest) bool) SimulatedOption {
	return func(s *SimulatedSettler) {
		s.fail = fail
	}
}

// WithClock overrides the time source used for settlement timestamps.
func WithClock(clock func() time.Time) SimulatedOption {
	return func(s *SimulatedSettler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewSimulatedSettler builds a settler that succeeds after roughly one second
// unless configured otherwise.
func NewSimulatedSettler(opts ...SimulatedOption) *SimulatedSettler {
	s := &SimulatedSettler{
		delay: time.Second,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settle waits out the configured delay and resolves the charge. A cancelled
// context aborts the wait and returns ctx.Err(); nothing is charged.
func (s *SimulatedSettler) Settle(ctx context.Context, req SettlementRequest) (SettlementResult, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return SettlementResult{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return SettlementResult{}, err
	}

	if s.fail != nil && s.fail(req) {
		return SettlementResult{Status: StatusFailed, SettledAt: s.clock().UTC()}, ErrSettlementDeclined
	}
	return SettlementResult{
		Status:    StatusSucceeded,
		SettledAt: s.clock().UTC(),
		Reference: "sim-" + req.SessionID,
	}, nil
}

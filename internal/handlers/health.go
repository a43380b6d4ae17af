package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	domain "github.com/techfunding/api/internal/domain"
)

// BuildInfo describes the running binary for the health endpoints.
type BuildInfo struct {
	Version     string
	CommitSHA   string
	Environment string
	StartedAt   time.Time
}

// ReadinessCheck probes one downstream dependency. A nil error means ready.
type ReadinessCheck func(ctx context.Context) error

// HealthHandlers serves the /healthz and /readyz monitoring endpoints.
type HealthHandlers struct {
	build  BuildInfo
	checks map[string]ReadinessCheck
	clock  func() time.Time
}

// HealthOption customises the health handlers.
type HealthOption func(*HealthHandlers)

// WithHealthBuildInfo attaches version metadata to health responses.
func WithHealthBuildInfo(info BuildInfo) HealthOption {
	return func(h *HealthHandlers) {
		h.build = info
	}
}

// WithHealthClock overrides the time source, primarily for tests.
func WithHealthClock(clock func() time.Time) HealthOption {
	return func(h *HealthHandlers) {
		if clock != nil {
			h.clock = clock
		}
	}
}

// WithHealthReadinessCheck registers a named dependency probe for /readyz.
func WithHealthReadinessCheck(name string, check ReadinessCheck) HealthOption {
	return func(h *HealthHandlers) {
		if name == "" || check == nil {
			return
		}
		if h.checks == nil {
			h.checks = make(map[string]ReadinessCheck)
		}
		h.checks[name] = check
	}
}

// NewHealthHandlers constructs the health endpoints with the provided options.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{
		build: BuildInfo{StartedAt: time.Now().UTC()},
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Healthz reports liveness together with build metadata.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	now := h.clock().UTC()

	payload := map[string]any{
		"status":    domain.HealthStatusOK,
		"timestamp": now.Format(time.RFC3339),
	}
	if h.build.Version != "" {
		payload["version"] = h.build.Version
	}
	if h.build.CommitSHA != "" {
		payload["commitSha"] = h.build.CommitSHA
	}
	if h.build.Environment != "" {
		payload["environment"] = h.build.Environment
	}
	if !h.build.StartedAt.IsZero() {
		payload["uptime"] = now.Sub(h.build.StartedAt).String()
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

type readyzCheckPayload struct {
	Status    string `json:"status"`
	Latency   string `json:"latency,omitempty"`
	Error     string `json:"error,omitempty"`
	CheckedAt string `json:"checkedAt"`
}

type readyzPayload struct {
	Status  string                        `json:"status"`
	Checks  map[string]readyzCheckPayload `json:"checks"`
	Details []string                      `json:"details"`
}

// Readyz runs every registered dependency probe and degrades to 503 when any fails.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := readyzPayload{
		Status:  domain.HealthStatusOK,
		Checks:  make(map[string]readyzCheckPayload, len(h.checks)),
		Details: []string{},
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		started := h.clock()
		err := h.checks[name](ctx)
		checkedAt := h.clock()

		check := readyzCheckPayload{
			Status:    domain.HealthStatusOK,
			Latency:   checkedAt.Sub(started).String(),
			CheckedAt: checkedAt.UTC().Format(time.RFC3339),
		}
		if err != nil {
			check.Status = domain.HealthStatusDegraded
			check.Error = err.Error()
			payload.Status = domain.HealthStatusDegraded
			payload.Details = append(payload.Details, name+": "+err.Error())
		}
		payload.Checks[name] = check
	}

	status := http.StatusOK
	if payload.Status != domain.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}
	writeJSONResponse(w, status, payload)
}

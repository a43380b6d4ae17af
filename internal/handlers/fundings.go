package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/techfunding/api/internal/platform/httpx"
	"github.com/techfunding/api/internal/services"
)

// FundingHandlers drives the funding confirmation flow over HTTP. A session is
// created, confirmed or cancelled, and finally dismissed by the client.
type FundingHandlers struct {
	fundings services.FundingService
}

// NewFundingHandlers constructs a new FundingHandlers instance.
func NewFundingHandlers(fundings services.FundingService) *FundingHandlers {
	return &FundingHandlers{fundings: fundings}
}

// Routes registers the /fundings endpoints.
func (h *FundingHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.startFunding)
	r.Get("/{sessionID}", h.getSession)
	r.Post("/{sessionID}/confirm", h.confirmFunding)
	r.Post("/{sessionID}/cancel", h.cancelFunding)
	r.Post("/{sessionID}/dismiss", h.dismissFunding)
}

type startFundingRequest struct {
	ProjectID string `json:"projectId"`
	RewardID  string `json:"rewardId"`
}

func (h *FundingHandlers) startFunding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.fundings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("funding_unavailable", "funding service unavailable", http.StatusServiceUnavailable))
		return
	}

	var req startFundingRequest
	if !decodeJSONBody(ctx, w, r, &req) {
		return
	}

	session, err := h.fundings.Start(ctx, services.StartFundingCommand{
		ProjectID: strings.TrimSpace(req.ProjectID),
		RewardID:  strings.TrimSpace(req.RewardID),
	})
	if err != nil {
		writeFundingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildFundingSessionPayload(session))
}

func (h *FundingHandlers) getSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.fundings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("funding_unavailable", "funding service unavailable", http.StatusServiceUnavailable))
		return
	}

	session, err := h.fundings.Get(ctx, strings.TrimSpace(chi.URLParam(r, "sessionID")))
	if err != nil {
		writeFundingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildFundingSessionPayload(session))
}

func (h *FundingHandlers) confirmFunding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.fundings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("funding_unavailable", "funding service unavailable", http.StatusServiceUnavailable))
		return
	}

	session, err := h.fundings.Confirm(ctx, strings.TrimSpace(chi.URLParam(r, "sessionID")))
	if err != nil {
		writeFundingError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildFundingSessionPayload(session))
}

func (h *FundingHandlers) cancelFunding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.fundings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("funding_unavailable", "funding service unavailable", http.StatusServiceUnavailable))
		return
	}

	if err := h.fundings.Cancel(ctx, strings.TrimSpace(chi.URLParam(r, "sessionID"))); err != nil {
		writeFundingError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FundingHandlers) dismissFunding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.fundings == nil {
		httpx.WriteError(ctx, w, httpx.NewError("funding_unavailable", "funding service unavailable", http.StatusServiceUnavailable))
		return
	}

	if err := h.fundings.Dismiss(ctx, strings.TrimSpace(chi.URLParam(r, "sessionID"))); err != nil {
		writeFundingError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeFundingError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, services.ErrFundingSessionNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("funding_session_not_found", "funding session not found", http.StatusNotFound))
	case errors.Is(err, services.ErrFundingInvalidState):
		httpx.WriteError(ctx, w, httpx.NewError("funding_invalid_state", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrFundingNotSupported):
		httpx.WriteError(ctx, w, httpx.NewError("funding_not_supported", "category does not support funding", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrFundingRewardRequired):
		httpx.WriteError(ctx, w, httpx.NewError("funding_reward_required", "reward selection is required", http.StatusBadRequest))
	case errors.Is(err, services.ErrFundingRewardNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("funding_reward_not_found", "reward not found", http.StatusNotFound))
	case errors.Is(err, services.ErrFundingRewardSoldOut):
		httpx.WriteError(ctx, w, httpx.NewError("funding_reward_sold_out", "reward is sold out", http.StatusConflict))
	case errors.Is(err, services.ErrProjectIDRequired):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "project id is required", http.StatusBadRequest))
	default:
		if writeRepositoryError(ctx, w, err, "project") {
			return
		}
		writeInternalError(ctx, w, "funding")
	}
}

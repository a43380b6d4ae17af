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

// PurchaseHandlers exposes the one-step product purchase endpoint. There is no
// confirmation session; the purchase resolves within the request.
type PurchaseHandlers struct {
	purchases services.PurchaseService
}

// NewPurchaseHandlers constructs a new PurchaseHandlers instance.
func NewPurchaseHandlers(purchases services.PurchaseService) *PurchaseHandlers {
	return &PurchaseHandlers{purchases: purchases}
}

// Routes registers the /purchases endpoints.
func (h *PurchaseHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.createPurchase)
}

type createPurchaseRequest struct {
	ProductID string `json:"productId"`
}

func (h *PurchaseHandlers) createPurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.purchases == nil {
		httpx.WriteError(ctx, w, httpx.NewError("purchase_unavailable", "purchase service unavailable", http.StatusServiceUnavailable))
		return
	}

	var req createPurchaseRequest
	if !decodeJSONBody(ctx, w, r, &req) {
		return
	}

	purchase, err := h.purchases.Purchase(ctx, services.PurchaseCommand{
		ProductID: strings.TrimSpace(req.ProductID),
	})
	if err != nil {
		writePurchaseError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildPurchasePayload(purchase))
}

func writePurchaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, services.ErrProductIDRequired):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "product id is required", http.StatusBadRequest))
	case errors.Is(err, services.ErrPurchaseProductInactive):
		httpx.WriteError(ctx, w, httpx.NewError("product_inactive", "product is not available for purchase", http.StatusUnprocessableEntity))
	default:
		if writeRepositoryError(ctx, w, err, "product") {
			return
		}
		writeInternalError(ctx, w, "purchase")
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/techfunding/api/internal/platform/httpx"
	"github.com/techfunding/api/internal/services"
)

// ProductHandlers exposes the product catalog endpoints, including the
// per-product review surface.
type ProductHandlers struct {
	catalog services.CatalogService
	reviews services.ReviewService
	limiter *submissionLimiter
}

// ProductOption customises ProductHandlers construction.
type ProductOption func(*ProductHandlers)

// WithReviewSubmissionLimit caps review submissions per author per window.
func WithReviewSubmissionLimit(limit int, window time.Duration) ProductOption {
	return func(h *ProductHandlers) {
		h.limiter = newSubmissionLimiter(limit, window, nil)
	}
}

// NewProductHandlers constructs a new ProductHandlers instance.
func NewProductHandlers(catalog services.CatalogService, reviews services.ReviewService, opts ...ProductOption) *ProductHandlers {
	handlers := &ProductHandlers{
		catalog: catalog,
		reviews: reviews,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(handlers)
		}
	}
	return handlers
}

// Routes registers the /products endpoints.
func (h *ProductHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listProducts)
	r.Post("/", h.createProduct)
	r.Get("/{productID}", h.getProduct)
	r.Get("/{productID}/reviews", h.listReviews)
	r.Post("/{productID}/reviews", h.createReview)
}

type createProductRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Price          int64    `json:"price"`
	OriginalPrice  int64    `json:"originalPrice"`
	MainImage      string   `json:"mainImage"`
	Images         []string `json:"images"`
	CreatorName    string   `json:"creatorName"`
	CreatorEmail   string   `json:"creatorEmail"`
	DeliveryMethod string   `json:"deliveryMethod"`
	Tags           []string `json:"tags"`
}

type createReviewRequest struct {
	Author  string   `json:"author"`
	Rating  int      `json:"rating"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

type productListResponse struct {
	Products      []productPayload `json:"products"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
}

type reviewListResponse struct {
	Reviews       []reviewPayload `json:"reviews"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

func (h *ProductHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	filter, err := parseCatalogFilter(r)
	if err != nil {
		writePaginationError(ctx, w, err)
		return
	}

	page, err := h.catalog.ListProducts(ctx, filter)
	if err != nil {
		writeProductError(ctx, w, err)
		return
	}

	payload := productListResponse{
		Products:      make([]productPayload, 0, len(page.Items)),
		NextPageToken: page.NextPageToken,
	}
	for _, product := range page.Items {
		payload.Products = append(payload.Products, buildProductPayload(product))
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *ProductHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	product, err := h.catalog.GetProduct(ctx, productID)
	if err != nil {
		writeProductError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildProductPayload(product))
}

func (h *ProductHandlers) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	var req createProductRequest
	if !decodeJSONBody(ctx, w, r, &req) {
		return
	}

	product, err := h.catalog.CreateProduct(ctx, services.CreateProductCommand{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		MainImage:      req.MainImage,
		Images:         req.Images,
		CreatorName:    req.CreatorName,
		CreatorEmail:   req.CreatorEmail,
		DeliveryMethod: req.DeliveryMethod,
		Tags:           req.Tags,
	})
	if err != nil {
		writeProductError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildProductPayload(product))
}

func (h *ProductHandlers) listReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.reviews == nil {
		httpx.WriteError(ctx, w, httpx.NewError("review_unavailable", "review service unavailable", http.StatusServiceUnavailable))
		return
	}

	pager, err := parsePagination(r)
	if err != nil {
		writePaginationError(ctx, w, err)
		return
	}

	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	page, err := h.reviews.ListReviews(ctx, productID, pager)
	if err != nil {
		writeReviewError(ctx, w, err)
		return
	}

	payload := reviewListResponse{
		Reviews:       make([]reviewPayload, 0, len(page.Items)),
		NextPageToken: page.NextPageToken,
	}
	for _, review := range page.Items {
		payload.Reviews = append(payload.Reviews, buildReviewPayload(review))
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *ProductHandlers) createReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.reviews == nil {
		httpx.WriteError(ctx, w, httpx.NewError("review_unavailable", "review service unavailable", http.StatusServiceUnavailable))
		return
	}

	var req createReviewRequest
	if !decodeJSONBody(ctx, w, r, &req) {
		return
	}

	if !h.limiter.allow(req.Author) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many reviews, slow down", http.StatusTooManyRequests))
		return
	}

	review, err := h.reviews.CreateReview(ctx, services.CreateReviewCommand{
		ProductID: strings.TrimSpace(chi.URLParam(r, "productID")),
		Author:    req.Author,
		Rating:    req.Rating,
		Content:   req.Content,
		Images:    req.Images,
	})
	if err != nil {
		writeReviewError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildReviewPayload(review))
}

func writeProductError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeValidationError(ctx, w, vErr)
	case errors.Is(err, services.ErrProductIDRequired):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "product id is required", http.StatusBadRequest))
	default:
		if writeRepositoryError(ctx, w, err, "product") {
			return
		}
		writeInternalError(ctx, w, "product")
	}
}

func writeReviewError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeValidationError(ctx, w, vErr)
	case errors.Is(err, services.ErrProductIDRequired):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "product id is required", http.StatusBadRequest))
	default:
		if writeRepositoryError(ctx, w, err, "product") {
			return
		}
		writeInternalError(ctx, w, "review")
	}
}

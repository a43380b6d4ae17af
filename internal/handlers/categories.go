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

// CategoryHandlers exposes the fixed category table and per-category landing pages.
type CategoryHandlers struct {
	catalog services.CatalogService
	clock   func() time.Time
}

// NewCategoryHandlers constructs a new CategoryHandlers instance.
func NewCategoryHandlers(catalog services.CatalogService) *CategoryHandlers {
	return &CategoryHandlers{
		catalog: catalog,
		clock:   time.Now,
	}
}

// Routes registers the /categories endpoints.
func (h *CategoryHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listCategories)
	r.Get("/{categoryID}", h.getCategoryPage)
}

type categoryListResponse struct {
	Categories []categoryPayload `json:"categories"`
}

type categoryPageResponse struct {
	Category categoryPayload  `json:"category"`
	Projects []projectPayload `json:"projects,omitempty"`
	Products []productPayload `json:"products,omitempty"`
}

func (h *CategoryHandlers) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	infos := h.catalog.Categories(ctx)
	payload := categoryListResponse{Categories: make([]categoryPayload, 0, len(infos))}
	for _, info := range infos {
		payload.Categories = append(payload.Categories, buildCategoryPayload(info))
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *CategoryHandlers) getCategoryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	categoryID := strings.TrimSpace(chi.URLParam(r, "categoryID"))
	page, err := h.catalog.GetCategoryPage(ctx, categoryID)
	if err != nil {
		writeCategoryError(ctx, w, err)
		return
	}

	payload := categoryPageResponse{Category: buildCategoryPayload(page.Info)}
	if page.Projects != nil {
		now := h.clock().UTC()
		payload.Projects = make([]projectPayload, 0, len(page.Projects))
		for _, project := range page.Projects {
			payload.Projects = append(payload.Projects, buildProjectPayload(project, now))
		}
	}
	if page.Products != nil {
		payload.Products = make([]productPayload, 0, len(page.Products))
		for _, product := range page.Products {
			payload.Products = append(payload.Products, buildProductPayload(product))
		}
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

func writeCategoryError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("category_not_found", "category not found", http.StatusNotFound))
	default:
		if writeRepositoryError(ctx, w, err, "category") {
			return
		}
		writeInternalError(ctx, w, "category")
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/platform/httpx"
	"github.com/techfunding/api/internal/platform/pagination"
	"github.com/techfunding/api/internal/repositories"
	"github.com/techfunding/api/internal/services"
)

const defaultBodySize = 32 * 1024

var (
	errBodyTooLarge = errors.New("request body too large")
	errEmptyBody    = errors.New("request body is required")
)

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	if limit <= 0 {
		limit = defaultBodySize
	}
	reader := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

func decodeJSONBody(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := readLimitedBody(r, defaultBodySize)
	if err != nil {
		switch {
		case errors.Is(err, errEmptyBody):
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body is required", http.StatusBadRequest))
		case errors.Is(err, errBodyTooLarge):
			httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "request body exceeds allowed size", http.StatusRequestEntityTooLarge))
		default:
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		}
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "invalid JSON payload", http.StatusBadRequest))
		return false
	}
	return true
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseCatalogFilter collects category, q, sort and pagination query params
// into the raw filter input the catalog service normalises.
func parseCatalogFilter(r *http.Request) (services.CatalogFilterInput, error) {
	params, err := pagination.FromRequest(r, pagination.Options{})
	if err != nil {
		return services.CatalogFilterInput{}, err
	}
	values := r.URL.Query()
	return services.CatalogFilterInput{
		Category: values.Get("category"),
		Query:    values.Get("q"),
		Sort:     values.Get("sort"),
		Pagination: domain.Pagination{
			PageSize:  params.PageSize,
			PageToken: params.PageToken,
		},
	}, nil
}

func parsePagination(r *http.Request) (domain.Pagination, error) {
	params, err := pagination.FromRequest(r, pagination.Options{})
	if err != nil {
		return domain.Pagination{}, err
	}
	return domain.Pagination{PageSize: params.PageSize, PageToken: params.PageToken}, nil
}

func writePaginationError(ctx context.Context, w http.ResponseWriter, err error) {
	httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
}

// writeValidationError renders the aggregated field errors so clients can show
// every rejected field at once.
func writeValidationError(ctx context.Context, w http.ResponseWriter, vErr *services.ValidationError) {
	httpx.WriteError(ctx, w, httpx.NewError("validation_failed", vErr.Error(), http.StatusBadRequest).
		WithDetails(map[string]any{"fields": vErr.Fields}))
}

// writeRepositoryError maps repository error traits onto HTTP statuses.
// It reports whether the error was handled.
func writeRepositoryError(ctx context.Context, w http.ResponseWriter, err error, resource string) bool {
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) {
		return false
	}
	switch {
	case repoErr.IsNotFound():
		httpx.WriteError(ctx, w, httpx.NewError(resource+"_not_found", resource+" not found", http.StatusNotFound))
	case repoErr.IsConflict():
		httpx.WriteError(ctx, w, httpx.NewError(resource+"_conflict", err.Error(), http.StatusConflict))
	case repoErr.IsUnavailable():
		httpx.WriteError(ctx, w, httpx.NewError(resource+"_unavailable", resource+" repository unavailable", http.StatusServiceUnavailable))
	default:
		return false
	}
	return true
}

func writeInternalError(ctx context.Context, w http.ResponseWriter, resource string) {
	httpx.WriteError(ctx, w, httpx.NewError(resource+"_error", "failed to process "+resource+" request", http.StatusInternalServerError))
}

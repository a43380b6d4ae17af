package memory

import (
	"context"
	"sync"

	domain "github.com/techfunding/api/internal/domain"
)

// ReviewRepository keeps product reviews in insertion order behind a mutex.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]domain.Review
	order   []string
}

// NewReviewRepository returns an empty in-memory review store.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[string]domain.Review)}
}

// Insert stores a new review.
func (r *ReviewRepository) Insert(ctx context.Context, review domain.Review) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reviews[review.ID]; exists {
		return domain.Review{}, conflictError("memory: insert review", "review %q already exists", review.ID)
	}
	r.reviews[review.ID] = review
	r.order = append(r.order, review.ID)
	return review, nil
}

// ListByProduct returns the product's reviews, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, pager domain.Pagination) (domain.CursorPage[domain.Review], error) {
	if err := ctx.Err(); err != nil {
		return domain.CursorPage[domain.Review]{}, err
	}

	r.mu.RLock()
	items := make([]domain.Review, 0)
	for _, id := range r.order {
		if review := r.reviews[id]; review.ProductID == productID {
			items = append(items, review)
		}
	}
	r.mu.RUnlock()

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return paginate(items, pager)
}

package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"

	domain "github.com/techfunding/api/internal/domain"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/repositories"
)

// ReviewRepository persists product reviews in Firestore.
type ReviewRepository struct {
	base *pfirestore.BaseRepository[reviewDocument]
}

// NewReviewRepository constructs a Firestore-backed review repository.
func NewReviewRepository(provider *pfirestore.Provider) (*ReviewRepository, error) {
	if provider == nil {
		return nil, errors.New("review repository requires firestore provider")
	}
	return &ReviewRepository{
		base: pfirestore.NewBaseRepository[reviewDocument](provider, reviewsCollection, nil, nil),
	}, nil
}

// Insert stores a new review.
func (r *ReviewRepository) Insert(ctx context.Context, review domain.Review) (domain.Review, error) {
	if strings.TrimSpace(review.ID) == "" {
		return domain.Review{}, errors.New("reviews.insert: review id is required")
	}
	if _, err := r.base.Set(ctx, review.ID, encodeReview(review)); err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// ListByProduct returns the product's reviews, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string, pager domain.Pagination) (domain.CursorPage[domain.Review], error) {
	docs, err := r.base.Query(ctx, func(query firestore.Query) firestore.Query {
		return query.Where("productRef", "==", productDocPath(productID)).
			OrderBy("createdAt", firestore.Desc).
			OrderBy(firestore.DocumentID, firestore.Desc)
	})
	if err != nil {
		return domain.CursorPage[domain.Review]{}, err
	}

	reviews := make([]domain.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, decodeReview(doc.ID, doc.Data))
	}
	return paginate(reviews, pager)
}

var _ repositories.ReviewRepository = (*ReviewRepository)(nil)

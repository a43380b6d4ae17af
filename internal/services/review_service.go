package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/repositories"
)

// ReviewServiceDeps bundles constructor inputs for the review service.
type ReviewServiceDeps struct {
	Products repositories.ProductRepository
	Reviews  repositories.ReviewRepository
	Clock    func() time.Time
	NewID    func() string
}

type reviewService struct {
	products repositories.ProductRepository
	reviews  repositories.ReviewRepository
	clock    func() time.Time
	newID    func() string
	policy   *bluemonday.Policy
}

// NewReviewService constructs the review service.
func NewReviewService(deps ReviewServiceDeps) (ReviewService, error) {
	if deps.Products == nil {
		return nil, fmt.Errorf("review service: product repository is required")
	}
	if deps.Reviews == nil {
		return nil, fmt.Errorf("review service: review repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	return &reviewService{
		products: deps.Products,
		reviews:  deps.Reviews,
		clock:    func() time.Time { return clock().UTC() },
		newID:    newID,
		policy:   bluemonday.StrictPolicy(),
	}, nil
}

// CreateReview validates and stores buyer feedback on an existing product.
func (s *reviewService) CreateReview(ctx context.Context, cmd CreateReviewCommand) (domain.Review, error) {
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return domain.Review{}, ErrProductIDRequired
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return domain.Review{}, err
	}

	v := &ValidationError{}
	requireField(v, "author", cmd.Author)
	requireMinLength(v, "content", cmd.Content, minContentLength)
	limitImages(v, "images", cmd.Images, maxReviewImages)
	if cmd.Rating == 0 {
		v.add("rating", CodeMissingField)
	} else if cmd.Rating < minReviewRating || cmd.Rating > maxReviewRating {
		v.add("rating", CodeInvalidValue)
	}
	if err := v.errOrNil(); err != nil {
		return domain.Review{}, err
	}

	review := domain.Review{
		ID:        s.newID(),
		ProductID: productID,
		Author:    strings.TrimSpace(s.policy.Sanitize(cmd.Author)),
		Rating:    cmd.Rating,
		Content:   strings.TrimSpace(s.policy.Sanitize(cmd.Content)),
		Images:    copyStrings(cmd.Images),
		CreatedAt: s.clock(),
	}
	return s.reviews.Insert(ctx, review)
}

// ListReviews returns the product's reviews, newest first.
func (s *reviewService) ListReviews(ctx context.Context, productID string, pager domain.Pagination) (domain.CursorPage[domain.Review], error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.CursorPage[domain.Review]{}, ErrProductIDRequired
	}
	return s.reviews.ListByProduct(ctx, productID, pager)
}

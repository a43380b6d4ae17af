package repositories

import (
	"context"

	domain "github.com/techfunding/api/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// CatalogFilter carries the listing query inputs shared by project and
// product repositories. Category, Query, and Sort follow the catalog engine
// semantics; empty values are no-ops.
type CatalogFilter struct {
	Category   domain.Category
	Query      string
	Sort       string
	Pagination domain.Pagination
}

// ProjectRepository persists crowdfunding project listings.
type ProjectRepository interface {
	List(ctx context.Context, filter CatalogFilter) (domain.CursorPage[domain.Project], error)
	FindByID(ctx context.Context, projectID string) (domain.Project, error)
	Insert(ctx context.Context, project domain.Project) (domain.Project, error)
	// AddFunding increments currentFunding and, when rewardID is set, the
	// reward's claim counter. Implementations must keep currentQuantity within
	// maxQuantity and report a conflict when the reward is sold out.
	AddFunding(ctx context.Context, projectID string, rewardID string, amount int64) (domain.Project, error)
}

// ProductRepository persists marketplace product listings.
type ProductRepository interface {
	List(ctx context.Context, filter CatalogFilter) (domain.CursorPage[domain.Product], error)
	FindByID(ctx context.Context, productID string) (domain.Product, error)
	Insert(ctx context.Context, product domain.Product) (domain.Product, error)
	// RecordSale increments the product's sales counter after a completed purchase.
	RecordSale(ctx context.Context, productID string) (domain.Product, error)
}

// QuestionRepository stores QnA threads attached to projects.
type QuestionRepository interface {
	Insert(ctx context.Context, question domain.Question) (domain.Question, error)
	FindByID(ctx context.Context, questionID string) (domain.Question, error)
	ListByProject(ctx context.Context, projectID string, pager domain.Pagination) (domain.CursorPage[domain.Question], error)
	AppendAnswer(ctx context.Context, questionID string, answer domain.Answer) (domain.Question, error)
}

// ReviewRepository stores buyer feedback on products.
type ReviewRepository interface {
	Insert(ctx context.Context, review domain.Review) (domain.Review, error)
	ListByProduct(ctx context.Context, productID string, pager domain.Pagination) (domain.CursorPage[domain.Review], error)
}

// FundingRepository stores settled and failed funding records.
type FundingRepository interface {
	Insert(ctx context.Context, funding domain.Funding) (domain.Funding, error)
	FindByID(ctx context.Context, fundingID string) (domain.Funding, error)
	ListByProject(ctx context.Context, projectID string, pager domain.Pagination) (domain.CursorPage[domain.Funding], error)
}

// PurchaseRepository stores completed purchase records.
type PurchaseRepository interface {
	Insert(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error)
	FindByID(ctx context.Context, purchaseID string) (domain.Purchase, error)
}

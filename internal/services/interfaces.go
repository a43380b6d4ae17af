package services

import (
	"context"
	"time"

	domain "github.com/techfunding/api/internal/domain"
)

// CatalogFilterInput carries raw listing query values from the transport layer.
// Normalisation happens inside the service.
type CatalogFilterInput struct {
	Category   string
	Query      string
	Sort       string
	Pagination domain.Pagination
}

// RewardInput describes one reward tier on a project creation request.
type RewardInput struct {
	Name           string
	Description    string
	DeliveryMethod string
	DeliveryDate   time.Time
	MaxQuantity    int
}

// CreateProjectCommand carries a project creation request.
type CreateProjectCommand struct {
	Title        string
	Description  string
	Category     string
	MainImage    string
	Images       []string
	CreatorName  string
	CreatorEmail string
	FundingGoal  int64
	FundingStart time.Time
	FundingEnd   time.Time
	Rewards      []RewardInput
}

// CreateProductCommand carries a product creation request.
type CreateProductCommand struct {
	Title          string
	Description    string
	Category       string
	Price          int64
	OriginalPrice  int64
	MainImage      string
	Images         []string
	CreatorName    string
	CreatorEmail   string
	DeliveryMethod string
	Tags           []string
}

// CategoryPage resolves one category into the data its landing page needs:
// metadata, which tabs to render, and the first page of each visible listing.
type CategoryPage struct {
	Info     domain.CategoryInfo
	Projects []domain.Project
	Products []domain.Product
}

// CatalogService exposes the browse/search/create surface over projects and products.
type CatalogService interface {
	ListProjects(ctx context.Context, filter CatalogFilterInput) (domain.CursorPage[domain.Project], error)
	GetProject(ctx context.Context, projectID string) (domain.Project, error)
	CreateProject(ctx context.Context, cmd CreateProjectCommand) (domain.Project, error)

	ListProducts(ctx context.Context, filter CatalogFilterInput) (domain.CursorPage[domain.Product], error)
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
	CreateProduct(ctx context.Context, cmd CreateProductCommand) (domain.Product, error)

	Categories(ctx context.Context) []domain.CategoryInfo
	GetCategoryPage(ctx context.Context, categoryID string) (CategoryPage, error)
}

// FundingSessionState tracks a confirmation session through its lifecycle.
type FundingSessionState string

const (
	// FundingStateConfirmPending means the confirmation dialog is open and no charge exists.
	FundingStateConfirmPending FundingSessionState = "confirm_pending"
	// FundingStateProcessing means settlement is in flight.
	FundingStateProcessing FundingSessionState = "processing"
	// FundingStateSucceeded means the charge settled and a funding record exists.
	FundingStateSucceeded FundingSessionState = "succeeded"
	// FundingStateFailed means the gateway declined the charge; terminal.
	FundingStateFailed FundingSessionState = "failed"
)

// FundingSession is the server-side confirmation flow for a single fixed-amount
// donation. Exactly one session exists per started flow; Dismiss removes it.
type FundingSession struct {
	ID           string
	ProjectID    string
	ProjectTitle string
	RewardID     string
	RewardName   string
	Amount       int64
	State        FundingSessionState
	Message      string
	FundingID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StartFundingCommand opens a confirmation session for a project.
type StartFundingCommand struct {
	ProjectID string
	RewardID  string
}

// FundingService drives the funding confirmation state machine.
type FundingService interface {
	Start(ctx context.Context, cmd StartFundingCommand) (FundingSession, error)
	Get(ctx context.Context, sessionID string) (FundingSession, error)
	Confirm(ctx context.Context, sessionID string) (FundingSession, error)
	Cancel(ctx context.Context, sessionID string) error
	Dismiss(ctx context.Context, sessionID string) error
}

// FundingSettledMessage is the event payload published after settlement resolves.
type FundingSettledMessage struct {
	FundingID string    `json:"fundingId"`
	ProjectID string    `json:"projectId"`
	RewardID  string    `json:"rewardId,omitempty"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	SettledAt time.Time `json:"settledAt"`
}

// FundingEventPublisher pushes settlement events to interested consumers.
type FundingEventPublisher interface {
	PublishFundingSettled(ctx context.Context, message FundingSettledMessage) (string, error)
}

// PurchaseCommand carries a direct product purchase.
type PurchaseCommand struct {
	ProductID string
}

// PurchaseService completes product purchases. Unlike fundings there is no
// confirmation session; the purchase resolves in a single call.
type PurchaseService interface {
	Purchase(ctx context.Context, cmd PurchaseCommand) (domain.Purchase, error)
}

// CreateQuestionCommand carries a new QnA thread.
type CreateQuestionCommand struct {
	ProjectID string
	Type      string
	Title     string
	Content   string
	Author    string
	IsPrivate bool
	Images    []string
}

// AnswerQuestionCommand carries a reply to an existing thread.
type AnswerQuestionCommand struct {
	QuestionID string
	Content    string
	Author     string
	IsCreator  bool
}

// QnAService manages question threads on projects.
type QnAService interface {
	CreateQuestion(ctx context.Context, cmd CreateQuestionCommand) (domain.Question, error)
	GetQuestion(ctx context.Context, questionID string) (domain.Question, error)
	ListQuestions(ctx context.Context, projectID string, pager domain.Pagination) (domain.CursorPage[domain.Question], error)
	AnswerQuestion(ctx context.Context, cmd AnswerQuestionCommand) (domain.Question, error)
}

// CreateReviewCommand carries a new product review.
type CreateReviewCommand struct {
	ProductID string
	Author    string
	Rating    int
	Content   string
	Images    []string
}

// ReviewService manages buyer feedback on products.
type ReviewService interface {
	CreateReview(ctx context.Context, cmd CreateReviewCommand) (domain.Review, error)
	ListReviews(ctx context.Context, productID string, pager domain.Pagination) (domain.CursorPage[domain.Review], error)
}

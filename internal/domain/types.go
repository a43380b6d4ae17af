package domain

import "time"

// Category identifies one of the fixed listing categories. The set is closed;
// values outside it are treated as unknown and resolve to not-found views.
type Category string

const (
	CategoryAppService     Category = "app-service"
	CategoryNotionTemplate Category = "notion-template"
	CategorySlideProposal  Category = "slide-proposal"
	CategoryAutomationTool Category = "automation-tool"
	CategoryDesignResource Category = "design-resource"

	// CategoryAll is the filter sentinel that matches every listing.
	CategoryAll Category = "all"
)

// CategoryInfo describes a category and which commerce modes it supports.
// Which tab a category page renders is driven entirely by these flags.
type CategoryInfo struct {
	ID               Category
	Name             string
	Icon             string
	SupportsFunding  bool
	SupportsPurchase bool
}

var categoryTable = []CategoryInfo{
	{ID: CategoryAppService, Name: "앱/서비스", Icon: "📱", SupportsFunding: true, SupportsPurchase: true},
	{ID: CategoryNotionTemplate, Name: "노션 템플릿", Icon: "📝", SupportsFunding: false, SupportsPurchase: true},
	{ID: CategorySlideProposal, Name: "슬라이드/제안서", Icon: "📊", SupportsFunding: false, SupportsPurchase: true},
	{ID: CategoryAutomationTool, Name: "자동화툴", Icon: "⚙️", SupportsFunding: true, SupportsPurchase: true},
	{ID: CategoryDesignResource, Name: "디자인 리소스", Icon: "🎨", SupportsFunding: false, SupportsPurchase: true},
}

// Categories returns the fixed category metadata table in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryTable))
	copy(out, categoryTable)
	return out
}

// CategoryByID looks up metadata for a category. The second return value is
// false for unknown ids, including the "all" sentinel.
func CategoryByID(id Category) (CategoryInfo, bool) {
	for _, info := range categoryTable {
		if info.ID == id {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// IsValidCategory reports whether id names one of the five fixed categories.
func IsValidCategory(id Category) bool {
	_, ok := CategoryByID(id)
	return ok
}

// Creator is the read-only summary of a listing's author surfaced in catalog
// views. There is no account identity behind it.
type Creator struct {
	ID        string
	Name      string
	Email     string
	Followers int
	Following int
	Likes     int
}

// ProjectStatus tracks a project through its moderation and funding lifecycle.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusApproved  ProjectStatus = "approved"
	ProjectStatusRejected  ProjectStatus = "rejected"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// FundingPeriod bounds the window during which a project accepts fundings.
// End is expected to be after Start.
type FundingPeriod struct {
	Start time.Time
	End   time.Time
}

// Reward is a deliverable tier promised to supporters of a project. Claims
// are capped: CurrentQuantity never exceeds MaxQuantity when MaxQuantity > 0.
type Reward struct {
	ID              string
	Name            string
	Description     string
	Amount          int64
	DeliveryMethod  string
	DeliveryDate    time.Time
	MaxQuantity     int
	CurrentQuantity int
}

// Project is a listing collecting fixed-amount donations.
//
// FundingGoal is optional (zero means no goal was declared); progress
// reporting only applies when it is set.
type Project struct {
	ID             string
	Title          string
	Description    string
	Category       Category
	MainImage      string
	Images         []string
	Creator        Creator
	CurrentFunding int64
	FundingGoal    int64
	FundingPeriod  FundingPeriod
	Rewards        []Reward
	Status         ProjectStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductStatus is the visibility switch for products.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// DeliveryMethod describes how a product's deliverable reaches the buyer.
type DeliveryMethod string

const (
	DeliveryMethodFile  DeliveryMethod = "file"
	DeliveryMethodLink  DeliveryMethod = "link"
	DeliveryMethodEmail DeliveryMethod = "email"
)

// Fulfillment is the coarser digital/physical classification shown in list
// views. It deliberately remains a separate enum from DeliveryMethod; the two
// vocabularies coexist in the product data and are not to be unified silently.
type Fulfillment string

const (
	FulfillmentDigital  Fulfillment = "digital"
	FulfillmentPhysical Fulfillment = "physical"
	FulfillmentBoth     Fulfillment = "both"
)

// Product is a listing sold for a one-time payment.
//
// OriginalPrice is optional; when present it must exceed Price and is used
// only to derive the display discount percentage.
type Product struct {
	ID             string
	Title          string
	Description    string
	Category       Category
	Price          int64
	OriginalPrice  int64
	MainImage      string
	Images         []string
	Creator        Creator
	Rating         float64
	ReviewCount    int
	SalesCount     int
	DeliveryMethod DeliveryMethod
	Fulfillment    Fulfillment
	Tags           []string
	Status         ProductStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasDiscount reports whether the product carries a valid strike-through
// price. An OriginalPrice at or below Price yields no discount badge.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price && p.Price > 0
}

// QuestionType categorises a QnA thread.
type QuestionType string

const (
	QuestionTypeGeneral   QuestionType = "general"
	QuestionTypeTechnical QuestionType = "technical"
	QuestionTypeDelivery  QuestionType = "delivery"
	QuestionTypeRefund    QuestionType = "refund"
	QuestionTypeOther     QuestionType = "other"
)

// ValidQuestionTypes lists the accepted question categories.
func ValidQuestionTypes() []QuestionType {
	return []QuestionType{
		QuestionTypeGeneral,
		QuestionTypeTechnical,
		QuestionTypeDelivery,
		QuestionTypeRefund,
		QuestionTypeOther,
	}
}

// QuestionStatus reflects whether the creator has replied yet.
type QuestionStatus string

const (
	QuestionStatusPending  QuestionStatus = "pending"
	QuestionStatusAnswered QuestionStatus = "answered"
)

// Answer is a single reply inside a question thread. IsCreator distinguishes
// the project creator's replies from other commenters.
type Answer struct {
	ID        string
	Content   string
	Author    string
	IsCreator bool
	Likes     int
	Dislikes  int
	CreatedAt time.Time
}

// Question is a QnA thread attached to one project.
type Question struct {
	ID        string
	ProjectID string
	Type      QuestionType
	Title     string
	Content   string
	Author    string
	IsPrivate bool
	Images    []string
	Status    QuestionStatus
	Answers   []Answer
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Review is buyer feedback on a purchased product.
type Review struct {
	ID        string
	ProductID string
	Author    string
	Rating    int
	Content   string
	Images    []string
	CreatedAt time.Time
}

// TransactionStatus is shared by funding and purchase records.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Funding records a settled (or attempted) supporter donation.
type Funding struct {
	ID        string
	ProjectID string
	RewardID  string
	Amount    int64
	Status    TransactionStatus
	CreatedAt time.Time
}

// Purchase records a buyer's one-time payment for a product.
type Purchase struct {
	ID        string
	ProductID string
	Amount    int64
	Status    TransactionStatus
	CreatedAt time.Time
}

// Pagination carries cursor paging inputs through repository calls.
type Pagination struct {
	PageSize  int
	PageToken string
}

// CursorPage wraps a single page of results together with the continuation
// token; an empty NextPageToken means the listing is exhausted.
type CursorPage[T any] struct {
	Items         []T
	NextPageToken string
}

// Health status values reported by the monitoring endpoints.
const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/repositories"
)

const categoryPagePreviewSize = 12

// CatalogServiceDeps bundles constructor inputs for the catalog service.
type CatalogServiceDeps struct {
	Projects repositories.ProjectRepository
	Products repositories.ProductRepository
	Clock    func() time.Time
	NewID    func() string
}

type catalogService struct {
	projects repositories.ProjectRepository
	products repositories.ProductRepository
	clock    func() time.Time
	newID    func() string
	policy   *bluemonday.Policy
}

var (
	// ErrCatalogRepositoryMissing indicates a repository dependency is absent.
	ErrCatalogRepositoryMissing = errors.New("catalog service: repository is not configured")
	// ErrProjectIDRequired indicates an empty project id was supplied.
	ErrProjectIDRequired = errors.New("catalog service: project id is required")
	// ErrProductIDRequired indicates an empty product id was supplied.
	ErrProductIDRequired = errors.New("catalog service: product id is required")
	// ErrCategoryNotFound indicates the requested category id is outside the fixed set.
	ErrCategoryNotFound = errors.New("catalog service: category not found")
)

// NewCatalogService constructs the catalog service with the supplied dependencies.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Projects == nil {
		return nil, fmt.Errorf("catalog service: project repository is required")
	}
	if deps.Products == nil {
		return nil, fmt.Errorf("catalog service: product repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	return &catalogService{
		projects: deps.Projects,
		products: deps.Products,
		clock:    func() time.Time { return clock().UTC() },
		newID:    newID,
		policy:   bluemonday.StrictPolicy(),
	}, nil
}

func normalizeCatalogFilter(filter CatalogFilterInput) repositories.CatalogFilter {
	return repositories.CatalogFilter{
		Category: domain.Category(strings.ToLower(strings.TrimSpace(filter.Category))),
		Query:    strings.TrimSpace(filter.Query),
		Sort:     strings.TrimSpace(filter.Sort),
		Pagination: domain.Pagination{
			PageSize:  filter.Pagination.PageSize,
			PageToken: strings.TrimSpace(filter.Pagination.PageToken),
		},
	}
}

func (s *catalogService) sanitize(value string) string {
	return strings.TrimSpace(s.policy.Sanitize(value))
}

func (s *catalogService) ListProjects(ctx context.Context, filter CatalogFilterInput) (domain.CursorPage[domain.Project], error) {
	if s.projects == nil {
		return domain.CursorPage[domain.Project]{}, ErrCatalogRepositoryMissing
	}
	return s.projects.List(ctx, normalizeCatalogFilter(filter))
}

func (s *catalogService) GetProject(ctx context.Context, projectID string) (domain.Project, error) {
	if s.projects == nil {
		return domain.Project{}, ErrCatalogRepositoryMissing
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return domain.Project{}, ErrProjectIDRequired
	}
	return s.projects.FindByID(ctx, projectID)
}

func (s *catalogService) CreateProject(ctx context.Context, cmd CreateProjectCommand) (domain.Project, error) {
	if s.projects == nil {
		return domain.Project{}, ErrCatalogRepositoryMissing
	}

	v := &ValidationError{}
	requireField(v, "title", cmd.Title)
	requireMinLength(v, "description", cmd.Description, minContentLength)
	category := domain.Category(strings.ToLower(strings.TrimSpace(cmd.Category)))
	if category == "" {
		v.add("category", CodeMissingField)
	} else if !domain.IsValidCategory(category) {
		v.add("category", CodeInvalidValue)
	}
	limitImages(v, "images", cmd.Images, maxListingImages)
	if !cmd.FundingStart.IsZero() && !cmd.FundingEnd.IsZero() && !cmd.FundingEnd.After(cmd.FundingStart) {
		v.add("fundingPeriod", CodeInvalidValue)
	}
	for i, reward := range cmd.Rewards {
		if strings.TrimSpace(reward.Name) == "" {
			v.add(fmt.Sprintf("rewards[%d].name", i), CodeMissingField)
		}
	}
	if err := v.errOrNil(); err != nil {
		return domain.Project{}, err
	}

	now := s.clock()
	rewards := make([]domain.Reward, 0, len(cmd.Rewards))
	for _, input := range cmd.Rewards {
		rewards = append(rewards, domain.Reward{
			ID:             s.newID(),
			Name:           s.sanitize(input.Name),
			Description:    s.sanitize(input.Description),
			Amount:         domain.FundingAmount,
			DeliveryMethod: strings.TrimSpace(input.DeliveryMethod),
			DeliveryDate:   input.DeliveryDate,
			MaxQuantity:    input.MaxQuantity,
		})
	}

	project := domain.Project{
		ID:          s.newID(),
		Title:       s.sanitize(cmd.Title),
		Description: s.sanitize(cmd.Description),
		Category:    category,
		MainImage:   strings.TrimSpace(cmd.MainImage),
		Images:      copyStrings(cmd.Images),
		Creator: domain.Creator{
			ID:    s.newID(),
			Name:  s.sanitize(cmd.CreatorName),
			Email: strings.TrimSpace(cmd.CreatorEmail),
		},
		FundingGoal:   cmd.FundingGoal,
		FundingPeriod: domain.FundingPeriod{Start: cmd.FundingStart, End: cmd.FundingEnd},
		Rewards:       rewards,
		Status:        domain.ProjectStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.projects.Insert(ctx, project)
}

func (s *catalogService) ListProducts(ctx context.Context, filter CatalogFilterInput) (domain.CursorPage[domain.Product], error) {
	if s.products == nil {
		return domain.CursorPage[domain.Product]{}, ErrCatalogRepositoryMissing
	}
	return s.products.List(ctx, normalizeCatalogFilter(filter))
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	if s.products == nil {
		return domain.Product{}, ErrCatalogRepositoryMissing
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.Product{}, ErrProductIDRequired
	}
	return s.products.FindByID(ctx, productID)
}

func (s *catalogService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (domain.Product, error) {
	if s.products == nil {
		return domain.Product{}, ErrCatalogRepositoryMissing
	}

	v := &ValidationError{}
	requireField(v, "title", cmd.Title)
	requireMinLength(v, "description", cmd.Description, minContentLength)
	category := domain.Category(strings.ToLower(strings.TrimSpace(cmd.Category)))
	if category == "" {
		v.add("category", CodeMissingField)
	} else if !domain.IsValidCategory(category) {
		v.add("category", CodeInvalidValue)
	}
	if cmd.Price <= 0 {
		v.add("price", CodeMissingField)
	}
	// An original price only makes sense above the sale price.
	if cmd.OriginalPrice != 0 && cmd.OriginalPrice <= cmd.Price {
		v.add("originalPrice", CodeInvalidPriceRelation)
	}
	limitImages(v, "images", cmd.Images, maxListingImages)
	deliveryMethod := domain.DeliveryMethod(strings.ToLower(strings.TrimSpace(cmd.DeliveryMethod)))
	switch deliveryMethod {
	case "", domain.DeliveryMethodFile, domain.DeliveryMethodLink, domain.DeliveryMethodEmail:
	default:
		v.add("deliveryMethod", CodeInvalidValue)
	}
	if err := v.errOrNil(); err != nil {
		return domain.Product{}, err
	}

	now := s.clock()
	product := domain.Product{
		ID:            s.newID(),
		Title:         s.sanitize(cmd.Title),
		Description:   s.sanitize(cmd.Description),
		Category:      category,
		Price:         cmd.Price,
		OriginalPrice: cmd.OriginalPrice,
		MainImage:     strings.TrimSpace(cmd.MainImage),
		Images:        copyStrings(cmd.Images),
		Creator: domain.Creator{
			ID:    s.newID(),
			Name:  s.sanitize(cmd.CreatorName),
			Email: strings.TrimSpace(cmd.CreatorEmail),
		},
		DeliveryMethod: deliveryMethod,
		Fulfillment:    domain.FulfillmentDigital,
		Tags:           normalizeTags(cmd.Tags),
		Status:         domain.ProductStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.products.Insert(ctx, product)
}

func (s *catalogService) Categories(context.Context) []domain.CategoryInfo {
	return domain.Categories()
}

// GetCategoryPage resolves category metadata plus the first page of every
// listing kind the category supports. Unknown ids degrade to ErrCategoryNotFound.
func (s *catalogService) GetCategoryPage(ctx context.Context, categoryID string) (CategoryPage, error) {
	if s.projects == nil || s.products == nil {
		return CategoryPage{}, ErrCatalogRepositoryMissing
	}

	id := domain.Category(strings.ToLower(strings.TrimSpace(categoryID)))
	info, ok := domain.CategoryByID(id)
	if !ok {
		return CategoryPage{}, ErrCategoryNotFound
	}

	page := CategoryPage{Info: info}
	filter := repositories.CatalogFilter{
		Category:   info.ID,
		Pagination: domain.Pagination{PageSize: categoryPagePreviewSize},
	}

	if info.SupportsFunding {
		projects, err := s.projects.List(ctx, filter)
		if err != nil {
			return CategoryPage{}, err
		}
		page.Projects = projects.Items
	}
	if info.SupportsPurchase {
		products, err := s.products.List(ctx, filter)
		if err != nil {
			return CategoryPage{}, err
		}
		page.Products = products.Items
	}
	return page, nil
}

func copyStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

package memory

import (
	"context"
	"sync"

	"github.com/techfunding/api/internal/catalog"
	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/repositories"
)

// ProductRepository keeps marketplace products in insertion order behind a mutex.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

// NewProductRepository returns an empty in-memory product store.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]domain.Product)}
}

func (r *ProductRepository) snapshot() []domain.Product {
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.products[id])
	}
	return out
}

// List answers a catalog query over the stored products.
func (r *ProductRepository) List(ctx context.Context, filter repositories.CatalogFilter) (domain.CursorPage[domain.Product], error) {
	if err := ctx.Err(); err != nil {
		return domain.CursorPage[domain.Product]{}, err
	}

	r.mu.RLock()
	items := r.snapshot()
	r.mu.RUnlock()

	items = catalog.QueryProducts(items, filter.Category, filter.Query, catalog.NormalizeSortKey(filter.Sort))
	return paginate(items, filter.Pagination)
}

// FindByID looks up a single product.
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[productID]
	if !ok {
		return domain.Product{}, notFoundError("memory: find product", "product %q not found", productID)
	}
	return product, nil
}

// Insert stores a new product. Duplicate ids are a conflict.
func (r *ProductRepository) Insert(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return domain.Product{}, conflictError("memory: insert product", "product %q already exists", product.ID)
	}
	r.products[product.ID] = product
	r.order = append(r.order, product.ID)
	return product, nil
}

// RecordSale bumps the sales counter after a completed purchase.
func (r *ProductRepository) RecordSale(ctx context.Context, productID string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[productID]
	if !ok {
		return domain.Product{}, notFoundError("memory: record sale", "product %q not found", productID)
	}
	product.SalesCount++
	r.products[productID] = product
	return product, nil
}

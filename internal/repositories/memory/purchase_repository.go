package memory

import (
	"context"
	"sync"

	domain "github.com/techfunding/api/internal/domain"
)

// PurchaseRepository keeps purchase records behind a mutex.
type PurchaseRepository struct {
	mu        sync.RWMutex
	purchases map[string]domain.Purchase
}

// NewPurchaseRepository returns an empty in-memory purchase store.
func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{purchases: make(map[string]domain.Purchase)}
}

// Insert stores a completed purchase record.
func (r *PurchaseRepository) Insert(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return domain.Purchase{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.purchases[purchase.ID]; exists {
		return domain.Purchase{}, conflictError("memory: insert purchase", "purchase %q already exists", purchase.ID)
	}
	r.purchases[purchase.ID] = purchase
	return purchase, nil
}

// FindByID looks up a single purchase record.
func (r *PurchaseRepository) FindByID(ctx context.Context, purchaseID string) (domain.Purchase, error) {
	if err := ctx.Err(); err != nil {
		return domain.Purchase{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	purchase, ok := r.purchases[purchaseID]
	if !ok {
		return domain.Purchase{}, notFoundError("memory: find purchase", "purchase %q not found", purchaseID)
	}
	return purchase, nil
}

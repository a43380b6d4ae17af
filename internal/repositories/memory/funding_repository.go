package memory

import (
	"context"
	"sync"

	domain "github.com/techfunding/api/internal/domain"
)

// FundingRepository keeps funding records in insertion order behind a mutex.
type FundingRepository struct {
	mu       sync.RWMutex
	fundings map[string]domain.Funding
	order    []string
}

// NewFundingRepository returns an empty in-memory funding store.
func NewFundingRepository() *FundingRepository {
	return &FundingRepository{fundings: make(map[string]domain.Funding)}
}

// Insert stores a settled or failed funding record.
func (r *FundingRepository) Insert(ctx context.Context, funding domain.Funding) (domain.Funding, error) {
	if err := ctx.Err(); err != nil {
		return domain.Funding{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fundings[funding.ID]; exists {
		return domain.Funding{}, conflictError("memory: insert funding", "funding %q already exists", funding.ID)
	}
	r.fundings[funding.ID] = funding
	r.order = append(r.order, funding.ID)
	return funding, nil
}

// FindByID looks up a single funding record.
func (r *FundingRepository) FindByID(ctx context.Context, fundingID string) (domain.Funding, error) {
	if err := ctx.Err(); err != nil {
		return domain.Funding{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	funding, ok := r.fundings[fundingID]
	if !ok {
		return domain.Funding{}, notFoundError("memory: find funding", "funding %q not found", fundingID)
	}
	return funding, nil
}

// ListByProject returns the project's funding records, newest first.
func (r *FundingRepository) ListByProject(ctx context.Context, projectID string, pager domain.Pagination) (domain.CursorPage[domain.Funding], error) {
	if err := ctx.Err(); err != nil {
		return domain.CursorPage[domain.Funding]{}, err
	}

	r.mu.RLock()
	items := make([]domain.Funding, 0)
	for _, id := range r.order {
		if funding := r.fundings[id]; funding.ProjectID == projectID {
			items = append(items, funding)
		}
	}
	r.mu.RUnlock()

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return paginate(items, pager)
}

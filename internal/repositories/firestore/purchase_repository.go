package firestore

import (
	"context"
	"errors"
	"strings"

	domain "github.com/techfunding/api/internal/domain"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/repositories"
)

// PurchaseRepository persists completed purchase records in Firestore.
type PurchaseRepository struct {
	base *pfirestore.BaseRepository[purchaseDocument]
}

// NewPurchaseRepository constructs a Firestore-backed purchase repository.
func NewPurchaseRepository(provider *pfirestore.Provider) (*PurchaseRepository, error) {
	if provider == nil {
		return nil, errors.New("purchase repository requires firestore provider")
	}
	return &PurchaseRepository{
		base: pfirestore.NewBaseRepository[purchaseDocument](provider, purchasesCollection, nil, nil),
	}, nil
}

// Insert stores a new purchase record.
func (r *PurchaseRepository) Insert(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error) {
	if strings.TrimSpace(purchase.ID) == "" {
		return domain.Purchase{}, errors.New("purchases.insert: purchase id is required")
	}
	if _, err := r.base.Set(ctx, purchase.ID, encodePurchase(purchase)); err != nil {
		return domain.Purchase{}, err
	}
	return purchase, nil
}

// FindByID looks up a single purchase record.
func (r *PurchaseRepository) FindByID(ctx context.Context, purchaseID string) (domain.Purchase, error) {
	doc, err := r.base.Get(ctx, purchaseID)
	if err != nil {
		return domain.Purchase{}, err
	}
	return decodePurchase(doc.ID, doc.Data), nil
}

var _ repositories.PurchaseRepository = (*PurchaseRepository)(nil)

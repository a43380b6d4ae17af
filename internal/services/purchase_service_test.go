package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/repositories/memory"
)

func newPurchaseFixture(t *testing.T) (PurchaseService, *memory.ProductRepository, *memory.PurchaseRepository) {
	t.Helper()

	projects := memory.NewProjectRepository()
	products := memory.NewProductRepository()
	questions := memory.NewQuestionRepository()
	if err := memory.Seed(context.Background(), projects, products, questions); err != nil {
		t.Fatalf("seed: %v", err)
	}

	purchases := memory.NewPurchaseRepository()
	service, err := NewPurchaseService(PurchaseServiceDeps{
		Products:  products,
		Purchases: purchases,
		Clock: func() time.Time {
			return time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
		},
	})
	if err != nil {
		t.Fatalf("NewPurchaseService: %v", err)
	}
	return service, products, purchases
}

func TestPurchaseCompletesImmediately(t *testing.T) {
	service, products, purchases := newPurchaseFixture(t)
	ctx := context.Background()

	purchase, err := service.Purchase(ctx, PurchaseCommand{ProductID: "1"})
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if purchase.Status != domain.TransactionStatusCompleted {
		t.Fatalf("purchases complete in one step, got %q", purchase.Status)
	}
	if purchase.Amount != 29000 {
		t.Fatalf("purchase amount should match the product price, got %d", purchase.Amount)
	}

	if _, err := purchases.FindByID(ctx, purchase.ID); err != nil {
		t.Fatalf("purchase record not persisted: %v", err)
	}

	product, err := products.FindByID(ctx, "1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if product.SalesCount != 2341 {
		t.Fatalf("sales count not incremented: %d", product.SalesCount)
	}
}

func TestPurchaseUnknownProduct(t *testing.T) {
	service, _, _ := newPurchaseFixture(t)

	_, err := service.Purchase(context.Background(), PurchaseCommand{ProductID: "missing"})
	var repoErr interface{ IsNotFound() bool }
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found repository error, got %v", err)
	}
}

func TestPurchaseInactiveProduct(t *testing.T) {
	service, products, _ := newPurchaseFixture(t)
	ctx := context.Background()

	inactive := domain.Product{
		ID:       "inactive",
		Title:    "중단된 상품",
		Category: domain.CategoryDesignResource,
		Price:    10000,
		Status:   domain.ProductStatusInactive,
	}
	if _, err := products.Insert(ctx, inactive); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if _, err := service.Purchase(ctx, PurchaseCommand{ProductID: "inactive"}); !errors.Is(err, ErrPurchaseProductInactive) {
		t.Fatalf("expected ErrPurchaseProductInactive, got %v", err)
	}
}

func TestPurchaseMissingProductID(t *testing.T) {
	service, _, _ := newPurchaseFixture(t)

	if _, err := service.Purchase(context.Background(), PurchaseCommand{}); !errors.Is(err, ErrProductIDRequired) {
		t.Fatalf("expected ErrProductIDRequired, got %v", err)
	}
}

type failingSaleProductRepository struct {
	*memory.ProductRepository
	recordErr error
}

func (r *failingSaleProductRepository) RecordSale(ctx context.Context, productID string) (domain.Product, error) {
	if r.recordErr != nil {
		return domain.Product{}, r.recordErr
	}
	return r.ProductRepository.RecordSale(ctx, productID)
}

func TestPurchaseSurvivesSalesCounterFailure(t *testing.T) {
	projects := memory.NewProjectRepository()
	products := memory.NewProductRepository()
	questions := memory.NewQuestionRepository()
	ctx := context.Background()
	if err := memory.Seed(ctx, projects, products, questions); err != nil {
		t.Fatalf("seed: %v", err)
	}

	purchases := memory.NewPurchaseRepository()
	service, err := NewPurchaseService(PurchaseServiceDeps{
		Products: &failingSaleProductRepository{
			ProductRepository: products,
			recordErr:         errors.New("backend unavailable"),
		},
		Purchases: purchases,
	})
	if err != nil {
		t.Fatalf("NewPurchaseService: %v", err)
	}

	// The completed record is already saved; a lagging sales counter must not
	// turn the purchase into an error.
	purchase, err := service.Purchase(ctx, PurchaseCommand{ProductID: "1"})
	if err != nil {
		t.Fatalf("Purchase: %v", err)
	}
	if purchase.Status != domain.TransactionStatusCompleted {
		t.Fatalf("expected completed purchase, got %q", purchase.Status)
	}
	if _, err := purchases.FindByID(ctx, purchase.ID); err != nil {
		t.Fatalf("purchase record not persisted: %v", err)
	}
}

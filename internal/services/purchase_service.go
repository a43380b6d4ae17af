package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/repositories"
)

// ErrPurchaseProductInactive indicates the product is not currently for sale.
var ErrPurchaseProductInactive = errors.New("purchase service: product is inactive")

// PurchaseServiceDeps bundles constructor inputs for the purchase service.
type PurchaseServiceDeps struct {
	Products  repositories.ProductRepository
	Purchases repositories.PurchaseRepository
	Logger    *zap.Logger
	Clock     func() time.Time
	NewID     func() string
}

type purchaseService struct {
	products  repositories.ProductRepository
	purchases repositories.PurchaseRepository
	logger    *zap.Logger
	clock     func() time.Time
	newID     func() string
}

// NewPurchaseService constructs the purchase service.
func NewPurchaseService(deps PurchaseServiceDeps) (PurchaseService, error) {
	if deps.Products == nil {
		return nil, fmt.Errorf("purchase service: product repository is required")
	}
	if deps.Purchases == nil {
		return nil, fmt.Errorf("purchase service: purchase repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &purchaseService{
		products:  deps.Products,
		purchases: deps.Purchases,
		logger:    logger.Named("purchase"),
		clock:     func() time.Time { return clock().UTC() },
		newID:     newID,
	}, nil
}

// Purchase completes a product sale in one step. There is no confirmation
// session and no success acknowledgement beyond the returned record; the
// funding flow's confirm/dismiss pair intentionally has no counterpart here.
func (s *purchaseService) Purchase(ctx context.Context, cmd PurchaseCommand) (domain.Purchase, error) {
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return domain.Purchase{}, ErrProductIDRequired
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return domain.Purchase{}, err
	}
	if product.Status != domain.ProductStatusActive {
		return domain.Purchase{}, ErrPurchaseProductInactive
	}

	purchase := domain.Purchase{
		ID:        s.newID(),
		ProductID: product.ID,
		Amount:    product.Price,
		Status:    domain.TransactionStatusCompleted,
		CreatedAt: s.clock(),
	}
	saved, err := s.purchases.Insert(ctx, purchase)
	if err != nil {
		return domain.Purchase{}, err
	}

	if _, err := s.products.RecordSale(ctx, product.ID); err != nil {
		// The completed record is already saved; the sales counter can lag.
		s.logger.Warn("record sale", zap.String("productId", product.ID), zap.Error(err))
	}
	return saved, nil
}

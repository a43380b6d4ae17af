package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/techfunding/api/internal/catalog"
	domain "github.com/techfunding/api/internal/domain"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/repositories"
)

// ProductRepository persists marketplace products in Firestore.
type ProductRepository struct {
	provider *pfirestore.Provider
}

// NewProductRepository constructs a Firestore-backed product repository.
func NewProductRepository(provider *pfirestore.Provider) (*ProductRepository, error) {
	if provider == nil {
		return nil, errors.New("product repository requires firestore provider")
	}
	return &ProductRepository{provider: provider}, nil
}

// List returns products matching the catalog filter. The category predicate
// runs on Firestore; search and sort run through the catalog engine. Documents
// stream in default name order, which keeps offset paging stable without
// composite indexes.
func (r *ProductRepository) List(ctx context.Context, filter repositories.CatalogFilter) (domain.CursorPage[domain.Product], error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.CursorPage[domain.Product]{}, err
	}

	query := coll.Query
	category := domain.Category(strings.TrimSpace(string(filter.Category)))
	if category != "" && category != domain.CategoryAll {
		query = query.Where("category", "==", string(category))
	}

	products, err := r.fetch(ctx, query)
	if err != nil {
		return domain.CursorPage[domain.Product]{}, err
	}

	products = catalog.FilterProductsBySearch(products, filter.Query)
	products = catalog.SortProducts(products, catalog.NormalizeSortKey(filter.Sort))
	return paginate(products, filter.Pagination)
}

// FindByID looks up a single product.
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	snap, err := coll.Doc(productID).Get(ctx)
	if err != nil {
		return domain.Product{}, pfirestore.WrapError("products.get", err)
	}

	var doc productDocument
	if err := snap.DataTo(&doc); err != nil {
		return domain.Product{}, pfirestore.WrapError("products.get", err)
	}
	return decodeProduct(snap.Ref.ID, doc), nil
}

// Insert stores a new product. The document ID must be assigned by the caller.
func (r *ProductRepository) Insert(ctx context.Context, product domain.Product) (domain.Product, error) {
	if strings.TrimSpace(product.ID) == "" {
		return domain.Product{}, errors.New("products.insert: product id is required")
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	if _, err := coll.Doc(product.ID).Create(ctx, encodeProduct(product)); err != nil {
		return domain.Product{}, pfirestore.WrapError("products.insert", err)
	}
	return product, nil
}

// RecordSale transactionally increments the product's sales counter.
func (r *ProductRepository) RecordSale(ctx context.Context, productID string) (domain.Product, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	ref := coll.Doc(productID)
	var updated domain.Product

	txErr := r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var doc productDocument
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		product := decodeProduct(snap.Ref.ID, doc)
		product.SalesCount++
		product.UpdatedAt = time.Now().UTC()
		updated = product
		return tx.Set(ref, encodeProduct(product))
	})
	if txErr != nil {
		return domain.Product{}, pfirestore.WrapError("products.recordSale", txErr)
	}
	return updated, nil
}

func (r *ProductRepository) fetch(ctx context.Context, query firestore.Query) ([]domain.Product, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var products []domain.Product
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("products.list", err)
		}
		var doc productDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, pfirestore.WrapError("products.list", err)
		}
		products = append(products, decodeProduct(snap.Ref.ID, doc))
	}
	return products, nil
}

func (r *ProductRepository) collection(ctx context.Context) (*firestore.CollectionRef, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Collection(productsCollection), nil
}

var _ repositories.ProductRepository = (*ProductRepository)(nil)

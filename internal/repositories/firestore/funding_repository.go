package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"

	domain "github.com/techfunding/api/internal/domain"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/repositories"
)

// FundingRepository persists settled and failed funding records in Firestore.
type FundingRepository struct {
	base *pfirestore.BaseRepository[fundingDocument]
}

// NewFundingRepository constructs a Firestore-backed funding repository.
func NewFundingRepository(provider *pfirestore.Provider) (*FundingRepository, error) {
	if provider == nil {
		return nil, errors.New("funding repository requires firestore provider")
	}
	return &FundingRepository{
		base: pfirestore.NewBaseRepository[fundingDocument](provider, fundingsCollection, nil, nil),
	}, nil
}

// Insert stores a new funding record.
func (r *FundingRepository) Insert(ctx context.Context, funding domain.Funding) (domain.Funding, error) {
	if strings.TrimSpace(funding.ID) == "" {
		return domain.Funding{}, errors.New("fundings.insert: funding id is required")
	}
	if _, err := r.base.Set(ctx, funding.ID, encodeFunding(funding)); err != nil {
		return domain.Funding{}, err
	}
	return funding, nil
}

// FindByID looks up a single funding record.
func (r *FundingRepository) FindByID(ctx context.Context, fundingID string) (domain.Funding, error) {
	doc, err := r.base.Get(ctx, fundingID)
	if err != nil {
		return domain.Funding{}, err
	}
	return decodeFunding(doc.ID, doc.Data), nil
}

// ListByProject returns the project's funding records, newest first.
func (r *FundingRepository) ListByProject(ctx context.Context, projectID string, pager domain.Pagination) (domain.CursorPage[domain.Funding], error) {
	docs, err := r.base.Query(ctx, func(query firestore.Query) firestore.Query {
		return query.Where("projectRef", "==", projectDocPath(projectID)).
			OrderBy("createdAt", firestore.Desc).
			OrderBy(firestore.DocumentID, firestore.Desc)
	})
	if err != nil {
		return domain.CursorPage[domain.Funding]{}, err
	}

	fundings := make([]domain.Funding, 0, len(docs))
	for _, doc := range docs {
		fundings = append(fundings, decodeFunding(doc.ID, doc.Data))
	}
	return paginate(fundings, pager)
}

var _ repositories.FundingRepository = (*FundingRepository)(nil)

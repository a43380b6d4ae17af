package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/techfunding/api/internal/catalog"
	domain "github.com/techfunding/api/internal/domain"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/repositories"
)

// ProjectRepository persists crowdfunding projects in Firestore.
type ProjectRepository struct {
	provider *pfirestore.Provider
}

// NewProjectRepository constructs a Firestore-backed project repository.
func NewProjectRepository(provider *pfirestore.Provider) (*ProjectRepository, error) {
	if provider == nil {
		return nil, errors.New("project repository requires firestore provider")
	}
	return &ProjectRepository{provider: provider}, nil
}

// List returns projects matching the catalog filter. The category predicate
// runs on Firestore; search and sort run through the catalog engine. Documents
// stream in default name order, which keeps offset paging stable without
// composite indexes.
func (r *ProjectRepository) List(ctx context.Context, filter repositories.CatalogFilter) (domain.CursorPage[domain.Project], error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.CursorPage[domain.Project]{}, err
	}

	query := coll.Query
	category := domain.Category(strings.TrimSpace(string(filter.Category)))
	if category != "" && category != domain.CategoryAll {
		query = query.Where("category", "==", string(category))
	}

	projects, err := r.fetch(ctx, query)
	if err != nil {
		return domain.CursorPage[domain.Project]{}, err
	}

	projects = catalog.FilterProjectsBySearch(projects, filter.Query)
	projects = catalog.SortProjects(projects, catalog.NormalizeSortKey(filter.Sort))
	return paginate(projects, filter.Pagination)
}

// FindByID looks up a single project.
func (r *ProjectRepository) FindByID(ctx context.Context, projectID string) (domain.Project, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Project{}, err
	}

	snap, err := coll.Doc(projectID).Get(ctx)
	if err != nil {
		return domain.Project{}, pfirestore.WrapError("projects.get", err)
	}

	var doc projectDocument
	if err := snap.DataTo(&doc); err != nil {
		return domain.Project{}, pfirestore.WrapError("projects.get", err)
	}
	return decodeProject(snap.Ref.ID, doc), nil
}

// Insert stores a new project. The document ID must be assigned by the caller.
func (r *ProjectRepository) Insert(ctx context.Context, project domain.Project) (domain.Project, error) {
	if strings.TrimSpace(project.ID) == "" {
		return domain.Project{}, errors.New("projects.insert: project id is required")
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Project{}, err
	}

	if _, err := coll.Doc(project.ID).Create(ctx, encodeProject(project)); err != nil {
		return domain.Project{}, pfirestore.WrapError("projects.insert", err)
	}
	return project, nil
}

// AddFunding transactionally increments the funding total and, when rewardID
// is set, claims one unit of the reward. Sold-out rewards abort the
// transaction with a conflict.
func (r *ProjectRepository) AddFunding(ctx context.Context, projectID string, rewardID string, amount int64) (domain.Project, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Project{}, err
	}

	ref := coll.Doc(projectID)
	var updated domain.Project

	txErr := r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var doc projectDocument
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		project := decodeProject(snap.Ref.ID, doc)

		if rewardID != "" {
			idx := -1
			for i, reward := range project.Rewards {
				if reward.ID == rewardID {
					idx = i
					break
				}
			}
			if idx < 0 {
				return status.Errorf(codes.NotFound, "reward %s not found on project %s", rewardID, projectID)
			}
			reward := project.Rewards[idx]
			if reward.MaxQuantity > 0 && reward.CurrentQuantity >= reward.MaxQuantity {
				return status.Errorf(codes.FailedPrecondition, "reward %s is sold out", rewardID)
			}
			reward.CurrentQuantity++
			project.Rewards[idx] = reward
		}

		project.CurrentFunding += amount
		project.UpdatedAt = time.Now().UTC()
		updated = project
		return tx.Set(ref, encodeProject(project))
	})
	if txErr != nil {
		return domain.Project{}, pfirestore.WrapError("projects.addFunding", txErr)
	}
	return updated, nil
}

func (r *ProjectRepository) fetch(ctx context.Context, query firestore.Query) ([]domain.Project, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var projects []domain.Project
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, pfirestore.WrapError("projects.list", err)
		}
		var doc projectDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, pfirestore.WrapError("projects.list", err)
		}
		projects = append(projects, decodeProject(snap.Ref.ID, doc))
	}
	return projects, nil
}

func (r *ProjectRepository) collection(ctx context.Context) (*firestore.CollectionRef, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Collection(projectsCollection), nil
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

package memory

import (
	"context"
	"sync"

	"github.com/techfunding/api/internal/catalog"
	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/repositories"
)

// ProjectRepository keeps crowdfunding projects in insertion order behind a mutex.
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
	order    []string
}

// NewProjectRepository returns an empty in-memory project store.
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[string]domain.Project)}
}

func (r *ProjectRepository) snapshot() []domain.Project {
	out := make([]domain.Project, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.projects[id])
	}
	return out
}

// List answers a catalog query over the stored projects.
func (r *ProjectRepository) List(ctx context.Context, filter repositories.CatalogFilter) (domain.CursorPage[domain.Project], error) {
	if err := ctx.Err(); err != nil {
		return domain.CursorPage[domain.Project]{}, err
	}

	r.mu.RLock()
	items := r.snapshot()
	r.mu.RUnlock()

	items = catalog.QueryProjects(items, filter.Category, filter.Query, catalog.NormalizeSortKey(filter.Sort))
	return paginate(items, filter.Pagination)
}

// FindByID looks up a single project.
func (r *ProjectRepository) FindByID(ctx context.Context, projectID string) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[projectID]
	if !ok {
		return domain.Project{}, notFoundError("memory: find project", "project %q not found", projectID)
	}
	return project, nil
}

// Insert stores a new project. Duplicate ids are a conflict.
func (r *ProjectRepository) Insert(ctx context.Context, project domain.Project) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[project.ID]; exists {
		return domain.Project{}, conflictError("memory: insert project", "project %q already exists", project.ID)
	}
	r.projects[project.ID] = project
	r.order = append(r.order, project.ID)
	return project, nil
}

// AddFunding increments the project's funding total and, when a reward is
// selected, its claim counter. Sold-out rewards surface as conflicts.
func (r *ProjectRepository) AddFunding(ctx context.Context, projectID string, rewardID string, amount int64) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[projectID]
	if !ok {
		return domain.Project{}, notFoundError("memory: add funding", "project %q not found", projectID)
	}

	if rewardID != "" {
		idx := -1
		for i, reward := range project.Rewards {
			if reward.ID == rewardID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.Project{}, notFoundError("memory: add funding", "reward %q not found on project %q", rewardID, projectID)
		}
		reward := project.Rewards[idx]
		if reward.MaxQuantity > 0 && reward.CurrentQuantity >= reward.MaxQuantity {
			return domain.Project{}, conflictError("memory: add funding", "reward %q on project %q is sold out", rewardID, projectID)
		}
		rewards := make([]domain.Reward, len(project.Rewards))
		copy(rewards, project.Rewards)
		rewards[idx].CurrentQuantity++
		project.Rewards = rewards
	}

	project.CurrentFunding += amount
	r.projects[projectID] = project
	return project, nil
}

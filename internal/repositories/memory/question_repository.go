package memory

import (
	"context"
	"sync"

	domain "github.com/techfunding/api/internal/domain"
)

// QuestionRepository keeps QnA threads in insertion order behind a mutex.
type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[string]domain.Question
	order     []string
}

// NewQuestionRepository returns an empty in-memory question store.
func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: make(map[string]domain.Question)}
}

// Insert stores a new question thread.
func (r *QuestionRepository) Insert(ctx context.Context, question domain.Question) (domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return domain.Question{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.questions[question.ID]; exists {
		return domain.Question{}, conflictError("memory: insert question", "question %q already exists", question.ID)
	}
	r.questions[question.ID] = question
	r.order = append(r.order, question.ID)
	return question, nil
}

// FindByID looks up a single question thread.
func (r *QuestionRepository) FindByID(ctx context.Context, questionID string) (domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return domain.Question{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	question, ok := r.questions[questionID]
	if !ok {
		return domain.Question{}, notFoundError("memory: find question", "question %q not found", questionID)
	}
	return question, nil
}

// ListByProject returns the project's question threads, newest first.
func (r *QuestionRepository) ListByProject(ctx context.Context, projectID string, pager domain.Pagination) (domain.CursorPage[domain.Question], error) {
	if err := ctx.Err(); err != nil {
		return domain.CursorPage[domain.Question]{}, err
	}

	r.mu.RLock()
	items := make([]domain.Question, 0)
	for _, id := range r.order {
		if q := r.questions[id]; q.ProjectID == projectID {
			items = append(items, q)
		}
	}
	r.mu.RUnlock()

	// Newest threads first; insertion order breaks ties.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return paginate(items, pager)
}

// AppendAnswer attaches a reply and flips the thread to answered when the
// reply comes from the creator.
func (r *QuestionRepository) AppendAnswer(ctx context.Context, questionID string, answer domain.Answer) (domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return domain.Question{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	question, ok := r.questions[questionID]
	if !ok {
		return domain.Question{}, notFoundError("memory: append answer", "question %q not found", questionID)
	}

	answers := make([]domain.Answer, len(question.Answers))
	copy(answers, question.Answers)
	question.Answers = append(answers, answer)
	if answer.IsCreator {
		question.Status = domain.QuestionStatusAnswered
	}
	question.UpdatedAt = answer.CreatedAt
	r.questions[questionID] = question
	return question, nil
}

package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	domain "github.com/techfunding/api/internal/domain"
	pfirestore "github.com/techfunding/api/internal/platform/firestore"
	"github.com/techfunding/api/internal/repositories"
)

// QuestionRepository persists QnA threads in Firestore.
type QuestionRepository struct {
	provider *pfirestore.Provider
}

// NewQuestionRepository constructs a Firestore-backed question repository.
func NewQuestionRepository(provider *pfirestore.Provider) (*QuestionRepository, error) {
	if provider == nil {
		return nil, errors.New("question repository requires firestore provider")
	}
	return &QuestionRepository{provider: provider}, nil
}

// Insert stores a new question thread.
func (r *QuestionRepository) Insert(ctx context.Context, question domain.Question) (domain.Question, error) {
	if strings.TrimSpace(question.ID) == "" {
		return domain.Question{}, errors.New("questions.insert: question id is required")
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Question{}, err
	}

	if _, err := coll.Doc(question.ID).Create(ctx, encodeQuestion(question)); err != nil {
		return domain.Question{}, pfirestore.WrapError("questions.insert", err)
	}
	return question, nil
}

// FindByID looks up a single question thread.
func (r *QuestionRepository) FindByID(ctx context.Context, questionID string) (domain.Question, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Question{}, err
	}

	snap, err := coll.Doc(questionID).Get(ctx)
	if err != nil {
		return domain.Question{}, pfirestore.WrapError("questions.get", err)
	}

	var doc questionDocument
	if err := snap.DataTo(&doc); err != nil {
		return domain.Question{}, pfirestore.WrapError("questions.get", err)
	}
	return decodeQuestion(snap.Ref.ID, doc), nil
}

// ListByProject returns the project's question threads, newest first.
func (r *QuestionRepository) ListByProject(ctx context.Context, projectID string, pager domain.Pagination) (domain.CursorPage[domain.Question], error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.CursorPage[domain.Question]{}, err
	}

	query := coll.Where("projectRef", "==", projectDocPath(projectID)).
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var questions []domain.Question
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return domain.CursorPage[domain.Question]{}, pfirestore.WrapError("questions.list", err)
		}
		var doc questionDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.CursorPage[domain.Question]{}, pfirestore.WrapError("questions.list", err)
		}
		questions = append(questions, decodeQuestion(snap.Ref.ID, doc))
	}
	return paginate(questions, pager)
}

// AppendAnswer transactionally attaches a reply and flips the thread to
// answered when the reply comes from the creator.
func (r *QuestionRepository) AppendAnswer(ctx context.Context, questionID string, answer domain.Answer) (domain.Question, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return domain.Question{}, err
	}

	ref := coll.Doc(questionID)
	var updated domain.Question

	txErr := r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var doc questionDocument
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		question := decodeQuestion(snap.Ref.ID, doc)
		question.Answers = append(question.Answers, answer)
		if answer.IsCreator {
			question.Status = domain.QuestionStatusAnswered
		}
		question.UpdatedAt = answer.CreatedAt
		if question.UpdatedAt.IsZero() {
			question.UpdatedAt = time.Now().UTC()
		}
		updated = question
		return tx.Set(ref, encodeQuestion(question))
	})
	if txErr != nil {
		return domain.Question{}, pfirestore.WrapError("questions.appendAnswer", txErr)
	}
	return updated, nil
}

func (r *QuestionRepository) collection(ctx context.Context) (*firestore.CollectionRef, error) {
	client, err := r.provider.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Collection(questionsCollection), nil
}

var _ repositories.QuestionRepository = (*QuestionRepository)(nil)

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/repositories"
)

// ErrQuestionIDRequired indicates an empty question id was supplied.
var ErrQuestionIDRequired = errors.New("qna service: question id is required")

// QnAServiceDeps bundles constructor inputs for the QnA service.
type QnAServiceDeps struct {
	Projects  repositories.ProjectRepository
	Questions repositories.QuestionRepository
	Clock     func() time.Time
	NewID     func() string
}

type qnaService struct {
	projects  repositories.ProjectRepository
	questions repositories.QuestionRepository
	clock     func() time.Time
	newID     func() string
	policy    *bluemonday.Policy
}

// NewQnAService constructs the QnA service.
func NewQnAService(deps QnAServiceDeps) (QnAService, error) {
	if deps.Projects == nil {
		return nil, fmt.Errorf("qna service: project repository is required")
	}
	if deps.Questions == nil {
		return nil, fmt.Errorf("qna service: question repository is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := deps.NewID
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	return &qnaService{
		projects:  deps.Projects,
		questions: deps.Questions,
		clock:     func() time.Time { return clock().UTC() },
		newID:     newID,
		policy:    bluemonday.StrictPolicy(),
	}, nil
}

func (s *qnaService) sanitize(value string) string {
	return strings.TrimSpace(s.policy.Sanitize(value))
}

// CreateQuestion opens a new thread on an existing project.
func (s *qnaService) CreateQuestion(ctx context.Context, cmd CreateQuestionCommand) (domain.Question, error) {
	projectID := strings.TrimSpace(cmd.ProjectID)
	if projectID == "" {
		return domain.Question{}, ErrProjectIDRequired
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return domain.Question{}, err
	}

	v := &ValidationError{}
	requireField(v, "title", cmd.Title)
	requireField(v, "author", cmd.Author)
	requireMinLength(v, "content", cmd.Content, minContentLength)
	limitImages(v, "images", cmd.Images, maxQuestionImages)
	questionType := domain.QuestionType(strings.ToLower(strings.TrimSpace(cmd.Type)))
	if questionType == "" {
		v.add("questionType", CodeMissingField)
	} else if !isValidQuestionType(questionType) {
		v.add("questionType", CodeInvalidValue)
	}
	if err := v.errOrNil(); err != nil {
		return domain.Question{}, err
	}

	now := s.clock()
	question := domain.Question{
		ID:        s.newID(),
		ProjectID: projectID,
		Type:      questionType,
		Title:     s.sanitize(cmd.Title),
		Content:   s.sanitize(cmd.Content),
		Author:    s.sanitize(cmd.Author),
		IsPrivate: cmd.IsPrivate,
		Images:    copyStrings(cmd.Images),
		Status:    domain.QuestionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.questions.Insert(ctx, question)
}

// GetQuestion returns a single thread with its answers.
func (s *qnaService) GetQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return domain.Question{}, ErrQuestionIDRequired
	}
	return s.questions.FindByID(ctx, questionID)
}

// ListQuestions returns the project's threads, newest first.
func (s *qnaService) ListQuestions(ctx context.Context, projectID string, pager domain.Pagination) (domain.CursorPage[domain.Question], error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return domain.CursorPage[domain.Question]{}, ErrProjectIDRequired
	}
	return s.questions.ListByProject(ctx, projectID, pager)
}

// AnswerQuestion appends a reply. A creator reply marks the thread answered.
func (s *qnaService) AnswerQuestion(ctx context.Context, cmd AnswerQuestionCommand) (domain.Question, error) {
	questionID := strings.TrimSpace(cmd.QuestionID)
	if questionID == "" {
		return domain.Question{}, ErrQuestionIDRequired
	}

	v := &ValidationError{}
	requireField(v, "author", cmd.Author)
	requireMinLength(v, "content", cmd.Content, minContentLength)
	if err := v.errOrNil(); err != nil {
		return domain.Question{}, err
	}

	answer := domain.Answer{
		ID:        s.newID(),
		Content:   s.sanitize(cmd.Content),
		Author:    s.sanitize(cmd.Author),
		IsCreator: cmd.IsCreator,
		CreatedAt: s.clock(),
	}
	return s.questions.AppendAnswer(ctx, questionID, answer)
}

func isValidQuestionType(t domain.QuestionType) bool {
	for _, valid := range domain.ValidQuestionTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

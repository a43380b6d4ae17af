package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/techfunding/api/internal/domain"
	"github.com/techfunding/api/internal/repositories/memory"
)

func newQnAFixture(t *testing.T) QnAService {
	t.Helper()

	projects := memory.NewProjectRepository()
	products := memory.NewProductRepository()
	questions := memory.NewQuestionRepository()
	if err := memory.Seed(context.Background(), projects, products, questions); err != nil {
		t.Fatalf("seed: %v", err)
	}

	service, err := NewQnAService(QnAServiceDeps{
		Projects:  projects,
		Questions: questions,
		Clock: func() time.Time {
			return time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)
		},
	})
	if err != nil {
		t.Fatalf("NewQnAService: %v", err)
	}
	return service
}

func TestQnACreateAndAnswer(t *testing.T) {
	service := newQnAFixture(t)
	ctx := context.Background()

	question, err := service.CreateQuestion(ctx, CreateQuestionCommand{
		ProjectID: "1",
		Type:      "delivery",
		Title:     "배송 일정 문의",
		Content:   "리워드는 언제쯤 받아볼 수 있을까요?",
		Author:    "김후원",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if question.Status != domain.QuestionStatusPending {
		t.Fatalf("new threads start pending, got %q", question.Status)
	}

	answered, err := service.AnswerQuestion(ctx, AnswerQuestionCommand{
		QuestionID: question.ID,
		Content:    "4월 초에 순차 발송될 예정입니다.",
		Author:     "김창작",
		IsCreator:  true,
	})
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if answered.Status != domain.QuestionStatusAnswered {
		t.Fatalf("creator reply should mark thread answered, got %q", answered.Status)
	}
	if len(answered.Answers) != 1 || !answered.Answers[0].IsCreator {
		t.Fatalf("unexpected answers %+v", answered.Answers)
	}
}

func TestQnACreateQuestionValidation(t *testing.T) {
	service := newQnAFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		cmd       CreateQuestionCommand
		wantField string
		wantCode  string
	}{
		{
			name:      "missing title",
			cmd:       CreateQuestionCommand{ProjectID: "1", Type: "general", Content: "충분히 긴 문의 내용입니다.", Author: "김후원"},
			wantField: "title",
			wantCode:  CodeMissingField,
		},
		{
			name:      "short content",
			cmd:       CreateQuestionCommand{ProjectID: "1", Type: "general", Title: "문의", Content: "짧음", Author: "김후원"},
			wantField: "content",
			wantCode:  CodeBelowMinLength,
		},
		{
			name:      "invalid type",
			cmd:       CreateQuestionCommand{ProjectID: "1", Type: "gossip", Title: "문의", Content: "충분히 긴 문의 내용입니다.", Author: "김후원"},
			wantField: "questionType",
			wantCode:  CodeInvalidValue,
		},
		{
			name: "too many images",
			cmd: CreateQuestionCommand{
				ProjectID: "1", Type: "general", Title: "문의",
				Content: "충분히 긴 문의 내용입니다.", Author: "김후원",
				Images: []string{"1", "2", "3", "4"},
			},
			wantField: "images",
			wantCode:  CodeTooManyImages,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateQuestion(ctx, tc.cmd)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, f := range vErr.Fields {
				if f.Field == tc.wantField && f.Code == tc.wantCode {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %s/%s in %+v", tc.wantField, tc.wantCode, vErr.Fields)
			}
		})
	}
}

func TestQnACreateQuestionUnknownProject(t *testing.T) {
	service := newQnAFixture(t)

	_, err := service.CreateQuestion(context.Background(), CreateQuestionCommand{
		ProjectID: "missing",
		Type:      "general",
		Title:     "문의",
		Content:   "충분히 긴 문의 내용입니다.",
		Author:    "김후원",
	})
	var repoErr interface{ IsNotFound() bool }
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found repository error, got %v", err)
	}
}

func TestQnAListSeededThread(t *testing.T) {
	service := newQnAFixture(t)

	page, err := service.ListQuestions(context.Background(), "1", domain.Pagination{})
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "리워드 배송 문의" {
		t.Fatalf("expected the seeded thread, got %+v", page.Items)
	}
}

func TestQnASanitizesMarkup(t *testing.T) {
	service := newQnAFixture(t)

	question, err := service.CreateQuestion(context.Background(), CreateQuestionCommand{
		ProjectID: "1",
		Type:      "technical",
		Title:     "문의 <img src=x onerror=alert(1)>",
		Content:   "<b>강조된</b> 충분히 긴 문의 내용입니다.",
		Author:    "김후원",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if question.Title != "문의" {
		t.Fatalf("markup should be stripped from titles, got %q", question.Title)
	}
	if question.Content != "강조된 충분히 긴 문의 내용입니다." {
		t.Fatalf("markup should be stripped from content, got %q", question.Content)
	}
}

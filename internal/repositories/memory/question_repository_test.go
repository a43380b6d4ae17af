package memory

import (
	"context"
	"testing"
	"time"

	domain "github.com/techfunding/api/internal/domain"
)

func TestQuestionRepositoryAppendAnswer(t *testing.T) {
	repo := NewQuestionRepository()
	now := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)

	question := domain.Question{
		ID:        "q1",
		ProjectID: "1",
		Type:      domain.QuestionTypeDelivery,
		Title:     "리워드 배송 문의",
		Content:   "리워드 배송이 언제 될까요?",
		Author:    "김후원",
		Status:    domain.QuestionStatusPending,
		CreatedAt: now,
	}
	if _, err := repo.Insert(context.Background(), question); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	answered, err := repo.AppendAnswer(context.Background(), "q1", domain.Answer{
		ID:        "a1",
		Content:   "3월 15일에 배송 예정입니다.",
		Author:    "김창작",
		IsCreator: true,
		CreatedAt: now.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("AppendAnswer returned error: %v", err)
	}
	if answered.Status != domain.QuestionStatusAnswered {
		t.Fatalf("creator answer should mark thread answered, got %q", answered.Status)
	}
	if len(answered.Answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(answered.Answers))
	}

	// A non-creator reply must not flip the status back or count as an answer.
	followUp, err := repo.AppendAnswer(context.Background(), "q1", domain.Answer{
		ID:        "a2",
		Content:   "감사합니다!",
		Author:    "김후원",
		IsCreator: false,
		CreatedAt: now.Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("AppendAnswer returned error: %v", err)
	}
	if followUp.Status != domain.QuestionStatusAnswered {
		t.Fatalf("status should stay answered, got %q", followUp.Status)
	}
}

func TestQuestionRepositoryListByProjectNewestFirst(t *testing.T) {
	repo := NewQuestionRepository()
	base := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"q1", "q2", "q3"} {
		question := domain.Question{
			ID:        id,
			ProjectID: "1",
			Title:     "문의 " + id,
			CreatedAt: base.AddDate(0, 0, i),
		}
		if _, err := repo.Insert(context.Background(), question); err != nil {
			t.Fatalf("Insert returned error: %v", err)
		}
	}
	if _, err := repo.Insert(context.Background(), domain.Question{ID: "other", ProjectID: "2"}); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	page, err := repo.ListByProject(context.Background(), "1", domain.Pagination{})
	if err != nil {
		t.Fatalf("ListByProject returned error: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 threads, got %d", len(page.Items))
	}
	if page.Items[0].ID != "q3" || page.Items[2].ID != "q1" {
		t.Fatalf("expected newest first, got %s..%s", page.Items[0].ID, page.Items[2].ID)
	}
}

func TestSeedPopulatesCatalog(t *testing.T) {
	projects := NewProjectRepository()
	products := NewProductRepository()
	questions := NewQuestionRepository()

	if err := Seed(context.Background(), projects, products, questions); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if err := Seed(context.Background(), projects, products, questions); err == nil {
		t.Fatal("seeding twice should fail on duplicate ids")
	}

	question, err := questions.FindByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if question.Status != domain.QuestionStatusAnswered || !question.Answers[0].IsCreator {
		t.Fatalf("seeded thread should carry a creator answer: %+v", question)
	}
}

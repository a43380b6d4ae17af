package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/techfunding/api/internal/payments"
	"github.com/techfunding/api/internal/repositories/memory"
	"github.com/techfunding/api/internal/services"
)

// newTestRouter wires real services over seeded in-memory repositories so the
// handler tests exercise the full request path.
func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	projects := memory.NewProjectRepository()
	products := memory.NewProductRepository()
	questions := memory.NewQuestionRepository()
	if err := memory.Seed(context.Background(), projects, products, questions); err != nil {
		t.Fatalf("seed: %v", err)
	}

	catalog, err := services.NewCatalogService(services.CatalogServiceDeps{
		Projects: projects,
		Products: products,
	})
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}

	fundings, err := services.NewFundingService(services.FundingServiceDeps{
		Projects: projects,
		Fundings: memory.NewFundingRepository(),
		Settler:  payments.NewSimulatedSettler(payments.WithDelay(0)),
	})
	if err != nil {
		t.Fatalf("NewFundingService: %v", err)
	}

	purchases, err := services.NewPurchaseService(services.PurchaseServiceDeps{
		Products:  products,
		Purchases: memory.NewPurchaseRepository(),
	})
	if err != nil {
		t.Fatalf("NewPurchaseService: %v", err)
	}

	qna, err := services.NewQnAService(services.QnAServiceDeps{
		Projects:  projects,
		Questions: questions,
	})
	if err != nil {
		t.Fatalf("NewQnAService: %v", err)
	}

	reviews, err := services.NewReviewService(services.ReviewServiceDeps{
		Products: products,
		Reviews:  memory.NewReviewRepository(),
	})
	if err != nil {
		t.Fatalf("NewReviewService: %v", err)
	}

	return NewRouter(
		WithProjectRoutes(NewProjectHandlers(catalog, qna).Routes),
		WithProductRoutes(NewProductHandlers(catalog, reviews).Routes),
		WithCategoryRoutes(NewCategoryHandlers(catalog).Routes),
		WithFundingRoutes(NewFundingHandlers(fundings).Routes),
		WithPurchaseRoutes(NewPurchaseHandlers(purchases).Routes),
		WithQuestionRoutes(NewQuestionHandlers(qna).Routes),
	)
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rr.Body.String())
	}
}

func TestProjectEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("list with category filter", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/projects?category=app-service", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d (%s)", rr.Code, rr.Body.String())
		}

		var body struct {
			Projects []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"projects"`
		}
		decodeBody(t, rr, &body)
		if len(body.Projects) != 1 || body.Projects[0].ID != "1" {
			t.Fatalf("expected project 1 only, got %+v", body.Projects)
		}
	})

	t.Run("get detail", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/projects/1", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var body struct {
			Title   string `json:"title"`
			Rewards []struct {
				Amount  int64 `json:"amount"`
				SoldOut bool  `json:"soldOut"`
			} `json:"rewards"`
		}
		decodeBody(t, rr, &body)
		if body.Title != "AI 기반 개인 비서 앱" {
			t.Fatalf("unexpected title %q", body.Title)
		}
		if len(body.Rewards) != 2 || body.Rewards[0].Amount != 500 {
			t.Fatalf("unexpected rewards %+v", body.Rewards)
		}
	})

	t.Run("get unknown returns 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/projects/missing", nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rr.Code)
		}
	})

	t.Run("create with invalid body", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/v1/projects", map[string]any{
			"title": "제목",
		})
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rr.Code)
		}

		var body struct {
			Error  string `json:"error"`
			Fields []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"fields"`
		}
		decodeBody(t, rr, &body)
		if body.Error != "validation_failed" {
			t.Fatalf("expected validation_failed, got %s", body.Error)
		}
		if len(body.Fields) == 0 {
			t.Fatalf("expected field errors in %s", rr.Body.String())
		}
	})

	t.Run("list project questions", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/projects/1/questions", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var body struct {
			Questions []struct {
				Title  string `json:"title"`
				Status string `json:"status"`
			} `json:"questions"`
		}
		decodeBody(t, rr, &body)
		if len(body.Questions) != 1 || body.Questions[0].Title != "리워드 배송 문의" {
			t.Fatalf("expected the seeded thread, got %+v", body.Questions)
		}
	})
}

func TestProductEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("list sorted by price", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/products?sort=price-low", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var body struct {
			Products []struct {
				Price int64 `json:"price"`
			} `json:"products"`
		}
		decodeBody(t, rr, &body)
		if len(body.Products) != 4 {
			t.Fatalf("expected 4 products, got %d", len(body.Products))
		}
		for i := 1; i < len(body.Products); i++ {
			if body.Products[i].Price < body.Products[i-1].Price {
				t.Fatalf("products not ordered by price: %+v", body.Products)
			}
		}
	})

	t.Run("detail carries discount", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/products/1", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var body struct {
			Price           int64 `json:"price"`
			OriginalPrice   int64 `json:"originalPrice"`
			DiscountPercent int   `json:"discountPercent"`
		}
		decodeBody(t, rr, &body)
		if body.Price != 29000 || body.OriginalPrice != 49000 {
			t.Fatalf("unexpected prices %+v", body)
		}
		if body.DiscountPercent != 41 {
			t.Fatalf("expected 41%% discount badge, got %d", body.DiscountPercent)
		}
	})

	t.Run("create and list reviews", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/v1/products/1/reviews", map[string]any{
			"author":  "박구매",
			"rating":  5,
			"content": "기대했던 것보다 훨씬 좋은 상품입니다.",
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d (%s)", rr.Code, rr.Body.String())
		}

		rr = doJSON(t, router, http.MethodGet, "/api/v1/products/1/reviews", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var body struct {
			Reviews []struct {
				Rating int `json:"rating"`
			} `json:"reviews"`
		}
		decodeBody(t, rr, &body)
		if len(body.Reviews) != 1 || body.Reviews[0].Rating != 5 {
			t.Fatalf("expected the created review, got %+v", body.Reviews)
		}
	})
}

func TestCategoryEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("list categories", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/categories", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var body struct {
			Categories []struct {
				ID string `json:"id"`
			} `json:"categories"`
		}
		decodeBody(t, rr, &body)
		if len(body.Categories) != 5 {
			t.Fatalf("expected 5 categories, got %d", len(body.Categories))
		}
	})

	t.Run("category page splits tabs", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/categories/notion-template", nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}

		var body struct {
			Category struct {
				SupportsFunding  bool `json:"supportsFunding"`
				SupportsPurchase bool `json:"supportsPurchase"`
			} `json:"category"`
			Projects []json.RawMessage `json:"projects"`
			Products []json.RawMessage `json:"products"`
		}
		decodeBody(t, rr, &body)
		if body.Category.SupportsFunding {
			t.Fatalf("notion-template must not support funding")
		}
		if len(body.Projects) != 0 || len(body.Products) != 1 {
			t.Fatalf("expected products only, got %d/%d", len(body.Projects), len(body.Products))
		}
	})

	t.Run("unknown category returns 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/v1/categories/board-game", nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rr.Code)
		}

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, rr, &body)
		if body.Error != "category_not_found" {
			t.Fatalf("expected category_not_found, got %s", body.Error)
		}
	})
}

func TestFundingFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/fundings", map[string]any{
		"projectId": "1",
		"rewardId":  "1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	var session struct {
		ID     string `json:"id"`
		Amount int64  `json:"amount"`
		State  string `json:"state"`
	}
	decodeBody(t, rr, &session)
	if session.Amount != 500 || session.State != "confirm_pending" {
		t.Fatalf("unexpected session %+v", session)
	}

	rr = doJSON(t, router, http.MethodPost, "/api/v1/fundings/"+session.ID+"/confirm", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	var confirmed struct {
		State     string `json:"state"`
		Message   string `json:"message"`
		FundingID string `json:"fundingId"`
	}
	decodeBody(t, rr, &confirmed)
	if confirmed.State != "succeeded" {
		t.Fatalf("expected succeeded session, got %+v", confirmed)
	}
	if confirmed.FundingID == "" {
		t.Fatalf("succeeded session must reference its funding record")
	}

	rr = doJSON(t, router, http.MethodPost, "/api/v1/fundings/"+session.ID+"/dismiss", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/api/v1/fundings/"+session.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("dismissed session should be gone, got %d", rr.Code)
	}
}

func TestFundingRejectsPurchaseOnlyCategory(t *testing.T) {
	router := newTestRouter(t)

	// Project 2 sits in notion-template, which has no funding tab.
	rr := doJSON(t, router, http.MethodPost, "/api/v1/fundings", map[string]any{
		"projectId": "2",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d (%s)", rr.Code, rr.Body.String())
	}

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rr, &body)
	if body.Error != "funding_not_supported" {
		t.Fatalf("expected funding_not_supported, got %s", body.Error)
	}
}

func TestFundingCancelOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/fundings", map[string]any{
		"projectId": "1",
		"rewardId":  "1",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	var session struct {
		ID string `json:"id"`
	}
	decodeBody(t, rr, &session)

	rr = doJSON(t, router, http.MethodPost, "/api/v1/fundings/"+session.ID+"/cancel", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/api/v1/fundings/"+session.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("cancelled session should be gone, got %d", rr.Code)
	}
}

func TestPurchaseOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/purchases", map[string]any{
		"productId": "2",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	var body struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	}
	decodeBody(t, rr, &body)
	if body.Status != "completed" || body.Amount != 15000 {
		t.Fatalf("unexpected purchase %+v", body)
	}
}

func TestQuestionEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/questions", map[string]any{
		"projectId": "1",
		"type":      "delivery",
		"title":     "배송 일정 문의",
		"content":   "리워드는 언제쯤 받아볼 수 있을까요?",
		"author":    "김후원",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	var question struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, rr, &question)
	if question.Status != "pending" {
		t.Fatalf("new threads start pending, got %s", question.Status)
	}

	rr = doJSON(t, router, http.MethodPost, "/api/v1/questions/"+question.ID+"/answers", map[string]any{
		"content":   "4월 초에 순차 발송될 예정입니다.",
		"author":    "김창작",
		"isCreator": true,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rr.Code, rr.Body.String())
	}

	var answered struct {
		Status  string `json:"status"`
		Answers []struct {
			IsCreator bool `json:"isCreator"`
		} `json:"answers"`
	}
	decodeBody(t, rr, &answered)
	if answered.Status != "answered" {
		t.Fatalf("creator reply should mark thread answered, got %s", answered.Status)
	}
	if len(answered.Answers) != 1 || !answered.Answers[0].IsCreator {
		t.Fatalf("unexpected answers %+v", answered.Answers)
	}

	rr = doJSON(t, router, http.MethodPost, "/api/v1/questions", map[string]any{
		"projectId": "missing",
		"type":      "general",
		"title":     "문의",
		"content":   "충분히 긴 문의 내용입니다.",
		"author":    "김후원",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown project, got %d", rr.Code)
	}
}

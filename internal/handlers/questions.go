package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/techfunding/api/internal/platform/httpx"
	"github.com/techfunding/api/internal/services"
)

// QuestionHandlers exposes QnA thread creation, retrieval and replies.
type QuestionHandlers struct {
	qna     services.QnAService
	limiter *submissionLimiter
}

// QuestionOption customises QuestionHandlers construction.
type QuestionOption func(*QuestionHandlers)

// WithQuestionSubmissionLimit caps question submissions per author per window.
func WithQuestionSubmissionLimit(limit int, window time.Duration) QuestionOption {
	return func(h *QuestionHandlers) {
		h.limiter = newSubmissionLimiter(limit, window, nil)
	}
}

// NewQuestionHandlers constructs a new QuestionHandlers instance.
func NewQuestionHandlers(qna services.QnAService, opts ...QuestionOption) *QuestionHandlers {
	handlers := &QuestionHandlers{qna: qna}
	for _, opt := range opts {
		if opt != nil {
			opt(handlers)
		}
	}
	return handlers
}

// Routes registers the /questions endpoints.
func (h *QuestionHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.createQuestion)
	r.Get("/{questionID}", h.getQuestion)
	r.Post("/{questionID}/answers", h.answerQuestion)
}

type createQuestionRequest struct {
	ProjectID string   `json:"projectId"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Author    string   `json:"author"`
	IsPrivate bool     `json:"isPrivate"`
	Images    []string `json:"images"`
}

type answerQuestionRequest struct {
	Content   string `json:"content"`
	Author    string `json:"author"`
	IsCreator bool   `json:"isCreator"`
}

func (h *QuestionHandlers) createQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.qna == nil {
		httpx.WriteError(ctx, w, httpx.NewError("qna_unavailable", "qna service unavailable", http.StatusServiceUnavailable))
		return
	}

	var req createQuestionRequest
	if !decodeJSONBody(ctx, w, r, &req) {
		return
	}

	if !h.limiter.allow(req.Author) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many questions, slow down", http.StatusTooManyRequests))
		return
	}

	question, err := h.qna.CreateQuestion(ctx, services.CreateQuestionCommand{
		ProjectID: strings.TrimSpace(req.ProjectID),
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		IsPrivate: req.IsPrivate,
		Images:    req.Images,
	})
	if err != nil {
		// A repository miss here means the target project does not exist.
		if writeRepositoryError(ctx, w, err, "project") {
			return
		}
		writeQuestionError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildQuestionPayload(question))
}

func (h *QuestionHandlers) getQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.qna == nil {
		httpx.WriteError(ctx, w, httpx.NewError("qna_unavailable", "qna service unavailable", http.StatusServiceUnavailable))
		return
	}

	question, err := h.qna.GetQuestion(ctx, strings.TrimSpace(chi.URLParam(r, "questionID")))
	if err != nil {
		writeQuestionError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildQuestionPayload(question))
}

func (h *QuestionHandlers) answerQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.qna == nil {
		httpx.WriteError(ctx, w, httpx.NewError("qna_unavailable", "qna service unavailable", http.StatusServiceUnavailable))
		return
	}

	var req answerQuestionRequest
	if !decodeJSONBody(ctx, w, r, &req) {
		return
	}

	question, err := h.qna.AnswerQuestion(ctx, services.AnswerQuestionCommand{
		QuestionID: strings.TrimSpace(chi.URLParam(r, "questionID")),
		Content:    req.Content,
		Author:     req.Author,
		IsCreator:  req.IsCreator,
	})
	if err != nil {
		writeQuestionError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildQuestionPayload(question))
}

func writeQuestionError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeValidationError(ctx, w, vErr)
	case errors.Is(err, services.ErrQuestionIDRequired):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "question id is required", http.StatusBadRequest))
	case errors.Is(err, services.ErrProjectIDRequired):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "project id is required", http.StatusBadRequest))
	default:
		if writeRepositoryError(ctx, w, err, "question") {
			return
		}
		writeInternalError(ctx, w, "question")
	}
}

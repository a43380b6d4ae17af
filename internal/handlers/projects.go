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

// ProjectHandlers exposes the funding project catalog endpoints.
type ProjectHandlers struct {
	catalog services.CatalogService
	qna     services.QnAService
	clock   func() time.Time
}

// NewProjectHandlers constructs a new ProjectHandlers instance.
func NewProjectHandlers(catalog services.CatalogService, qna services.QnAService) *ProjectHandlers {
	return &ProjectHandlers{
		catalog: catalog,
		qna:     qna,
		clock:   time.Now,
	}
}

// Routes registers the /projects endpoints.
func (h *ProjectHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listProjects)
	r.Post("/", h.createProject)
	r.Get("/{projectID}", h.getProject)
	r.Get("/{projectID}/questions", h.listQuestions)
}

type createProjectRequest struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	MainImage    string                `json:"mainImage"`
	Images       []string              `json:"images"`
	CreatorName  string                `json:"creatorName"`
	CreatorEmail string                `json:"creatorEmail"`
	FundingGoal  int64                 `json:"fundingGoal"`
	FundingStart time.Time             `json:"fundingStart"`
	FundingEnd   time.Time             `json:"fundingEnd"`
	Rewards      []createRewardRequest `json:"rewards"`
}

type createRewardRequest struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	DeliveryMethod string    `json:"deliveryMethod"`
	DeliveryDate   time.Time `json:"deliveryDate"`
	MaxQuantity    int       `json:"maxQuantity"`
}

type projectListResponse struct {
	Projects      []projectPayload `json:"projects"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
}

type questionListResponse struct {
	Questions     []questionPayload `json:"questions"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}

func (h *ProjectHandlers) listProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	filter, err := parseCatalogFilter(r)
	if err != nil {
		writePaginationError(ctx, w, err)
		return
	}

	page, err := h.catalog.ListProjects(ctx, filter)
	if err != nil {
		writeProjectError(ctx, w, err)
		return
	}

	now := h.clock().UTC()
	payload := projectListResponse{
		Projects:      make([]projectPayload, 0, len(page.Items)),
		NextPageToken: page.NextPageToken,
	}
	for _, project := range page.Items {
		payload.Projects = append(payload.Projects, buildProjectPayload(project, now))
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

func (h *ProjectHandlers) getProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	projectID := strings.TrimSpace(chi.URLParam(r, "projectID"))
	project, err := h.catalog.GetProject(ctx, projectID)
	if err != nil {
		writeProjectError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, buildProjectPayload(project, h.clock().UTC()))
}

func (h *ProjectHandlers) createProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	var req createProjectRequest
	if !decodeJSONBody(ctx, w, r, &req) {
		return
	}

	cmd := services.CreateProjectCommand{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		MainImage:    req.MainImage,
		Images:       req.Images,
		CreatorName:  req.CreatorName,
		CreatorEmail: req.CreatorEmail,
		FundingGoal:  req.FundingGoal,
		FundingStart: req.FundingStart,
		FundingEnd:   req.FundingEnd,
	}
	for _, reward := range req.Rewards {
		cmd.Rewards = append(cmd.Rewards, services.RewardInput{
			Name:           reward.Name,
			Description:    reward.Description,
			DeliveryMethod: reward.DeliveryMethod,
			DeliveryDate:   reward.DeliveryDate,
			MaxQuantity:    reward.MaxQuantity,
		})
	}

	project, err := h.catalog.CreateProject(ctx, cmd)
	if err != nil {
		writeProjectError(ctx, w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, buildProjectPayload(project, h.clock().UTC()))
}

func (h *ProjectHandlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.qna == nil {
		httpx.WriteError(ctx, w, httpx.NewError("qna_unavailable", "qna service unavailable", http.StatusServiceUnavailable))
		return
	}

	pager, err := parsePagination(r)
	if err != nil {
		writePaginationError(ctx, w, err)
		return
	}

	projectID := strings.TrimSpace(chi.URLParam(r, "projectID"))
	page, err := h.qna.ListQuestions(ctx, projectID, pager)
	if err != nil {
		writeQuestionError(ctx, w, err)
		return
	}

	payload := questionListResponse{
		Questions:     make([]questionPayload, 0, len(page.Items)),
		NextPageToken: page.NextPageToken,
	}
	for _, question := range page.Items {
		payload.Questions = append(payload.Questions, buildQuestionPayload(question))
	}

	writeJSONResponse(w, http.StatusOK, payload)
}

func writeProjectError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeValidationError(ctx, w, vErr)
	case errors.Is(err, services.ErrProjectIDRequired):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "project id is required", http.StatusBadRequest))
	default:
		if writeRepositoryError(ctx, w, err, "project") {
			return
		}
		writeInternalError(ctx, w, "project")
	}
}

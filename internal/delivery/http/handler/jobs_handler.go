package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"pathmatch/internal/delivery/http/dto"
	"pathmatch/internal/delivery/http/middleware"
	"pathmatch/internal/domain/job"
	"pathmatch/internal/pkg/response"
	"pathmatch/internal/repository"
	"pathmatch/internal/usecase"
)

type JobsHandler struct {
	jobs  repository.JobRepository
	dedup usecase.DedupUsecase
}

func NewJobsHandler(jobs repository.JobRepository, dedup usecase.DedupUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, dedup: dedup}
}

type ingestJobRequest struct {
	Source      string     `json:"source"`
	ExternalID  string     `json:"external_id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	WorkModel   string     `json:"work_model"`
	Industry    string     `json:"industry"`
	SalaryMin   *int       `json:"salary_min"`
	SalaryMax   *int       `json:"salary_max"`
	Currency    string     `json:"salary_currency"`
	PostedDate  *time.Time `json:"posted_date"`
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Ingest)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", nil, err)
		}
		limit = n
	}

	out, err := h.jobs.ListRecent(c.Context(), limit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobListResponse(out))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.jobs.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

// Ingest routes one posting through the dedup engine. The response
// reports which of the four outcomes applied and the canonical id.
func (h *JobsHandler) Ingest(c fiber.Ctx) error {
	var req ingestJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Source == "" || req.Title == "" || req.Company == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "source, title and company are required", nil, nil)
	}

	candidate := job.Posting{
		ID:             uuid.New(),
		SourceName:     req.Source,
		ExternalID:     req.ExternalID,
		URL:            req.URL,
		Title:          req.Title,
		Company:        req.Company,
		Description:    req.Description,
		Location:       req.Location,
		WorkModel:      job.WorkModel(req.WorkModel),
		Industry:       req.Industry,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		SalaryCurrency: req.Currency,
		PostedDate:     req.PostedDate,
	}

	out, err := h.dedup.Ingest(c.Context(), candidate)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"outcome":      string(out.Kind),
		"canonical_id": out.CanonicalID,
	})
}

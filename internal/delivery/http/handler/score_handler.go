package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"pathmatch/internal/delivery/http/middleware"
	"pathmatch/internal/pkg/response"
	"pathmatch/internal/usecase"
)

type ScoreHandler struct {
	scores usecase.ScoreBatchUsecase
	ghost  usecase.GhostUsecase
}

func NewScoreHandler(scores usecase.ScoreBatchUsecase, ghost usecase.GhostUsecase) *ScoreHandler {
	return &ScoreHandler{scores: scores, ghost: ghost}
}

type batchScoreRequest struct {
	PersonaID uuid.UUID   `json:"persona_id"`
	JobIDs    []uuid.UUID `json:"job_ids"`
}

func (h *ScoreHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/batch", h.ScoreBatch)
	r.Get("/filter/:personaID/:jobID", h.Filter)
}

// ScoreBatch runs the full pipeline for one persona against a set of
// jobs and returns per-job results in request order.
func (h *ScoreHandler) ScoreBatch(c fiber.Ctx) error {
	var req batchScoreRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.PersonaID == uuid.Nil || len(req.JobIDs) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "persona_id and job_ids are required", nil, nil)
	}

	out, err := h.scores.ScoreBatch(c.Context(), req.PersonaID, req.JobIDs)
	if err != nil {
		return mapScoreError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"persona_id": req.PersonaID,
		"results":    out,
	})
}

// Filter exposes the non-negotiables gate alone, without any scoring.
func (h *ScoreHandler) Filter(c fiber.Ctx) error {
	personaID, err := uuid.Parse(c.Params("personaID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.scores.FilterJob(c.Context(), personaID, jobID)
	if err != nil {
		return mapScoreError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

// Ghost returns hiring-likelihood signals for a single posting.
func (h *ScoreHandler) Ghost(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	signals, err := h.ghost.CalculateGhostScore(c.Context(), jobID)
	if err != nil {
		return mapScoreError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, signals)
}

func mapScoreError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrPersonaNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Persona not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

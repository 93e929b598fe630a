package handler

import (
	"errors"

	"job-authenticity/internal/delivery/http/dto"
	"job-authenticity/internal/delivery/http/middleware"
	"job-authenticity/internal/domain/authenticity"
	"job-authenticity/internal/pkg/response"
	"job-authenticity/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ScoreHandler struct {
	uc usecase.ScoreUsecase
}

type scoreJobRequest struct {
	Job authenticity.JobRecord `json:"job"`
}

func NewScoreHandler(uc usecase.ScoreUsecase) *ScoreHandler {
	return &ScoreHandler{uc: uc}
}

func (h *ScoreHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/score", h.Score)
	r.Get("/:job_id/authenticity", h.GetAuthenticity)
}

func (h *ScoreHandler) Score(c fiber.Ctx) error {
	var req scoreJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.ScoreAndStore(c.Context(), req.Job)
	if err != nil {
		return mapScoreUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAuthenticityResponse(req.Job.JobID, res))
}

func (h *ScoreHandler) GetAuthenticity(c fiber.Ctx) error {
	jobID := c.Params("job_id")

	res, err := h.uc.GetResult(c.Context(), jobID)
	if err != nil {
		return mapScoreUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAuthenticityResponse(jobID, res))
}

func mapScoreUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrResultNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Authenticity result not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

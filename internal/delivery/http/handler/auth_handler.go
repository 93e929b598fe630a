package handler

import (
	"errors"

	"job-authenticity/internal/delivery/http/dto"
	"job-authenticity/internal/delivery/http/middleware"
	"job-authenticity/internal/pkg/response"
	"job-authenticity/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/token", h.Token)
}

func (h *AuthHandler) Token(c fiber.Ctx) error {
	var req tokenRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	token, exp, err := h.uc.IssueToken(c.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
	})
}

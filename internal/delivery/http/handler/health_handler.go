package handler

import (
	"context"
	"time"

	"job-authenticity/internal/database"
	"job-authenticity/internal/infrastructure/cache"
	"job-authenticity/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "disabled"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unreachable"
	}

	cacheStatus := "ok"
	if h.cache == nil {
		cacheStatus = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "unreachable"
	}

	data := map[string]string{
		"database": dbStatus,
		"cache":    cacheStatus,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

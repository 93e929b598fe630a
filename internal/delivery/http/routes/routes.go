package routes

import (
	"log"

	"job-authenticity/internal/config"
	"job-authenticity/internal/database"
	"job-authenticity/internal/delivery/http/handler"
	v1 "job-authenticity/internal/delivery/http/routes/v1"
	"job-authenticity/internal/domain/authenticity"
	"job-authenticity/internal/infrastructure/cache"
	"job-authenticity/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	scorer *authenticity.Scorer
	hub    *ws.Hub
	logger *log.Logger

	health *handler.HealthHandler
	wsh    *ws.Handler
}

func NewRegistry(
	cfg config.Config,
	db database.DB,
	redis *cache.Redis,
	scorer *authenticity.Scorer,
	hub *ws.Hub,
	logger *log.Logger,
) *Registry {
	return &Registry{
		cfg:    cfg,
		db:     db,
		cache:  redis,
		scorer: scorer,
		hub:    hub,
		logger: logger,
		health: handler.NewHealthHandler(db, redis),
		wsh:    ws.NewHandler(hub, logger),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	app.Get("/ws", r.wsh.HandleScoresWS)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.cache, r.scorer, r.hub, r.logger)
}

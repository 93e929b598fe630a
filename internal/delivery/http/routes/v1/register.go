package v1

import (
	"log"

	"job-authenticity/internal/config"
	"job-authenticity/internal/database"
	"job-authenticity/internal/delivery/http/handler"
	"job-authenticity/internal/delivery/http/middleware"
	"job-authenticity/internal/domain/authenticity"
	"job-authenticity/internal/infrastructure/cache"
	"job-authenticity/internal/infrastructure/enrich"
	"job-authenticity/internal/pkg/jwt"
	"job-authenticity/internal/repository"
	"job-authenticity/internal/usecase"
	"job-authenticity/internal/ws"

	"github.com/gofiber/fiber/v3"
)

func Register(
	r fiber.Router,
	cfg config.Config,
	db database.DB,
	redis *cache.Redis,
	scorer *authenticity.Scorer,
	hub *ws.Hub,
	logger *log.Logger,
) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	jobRepo := repository.NewPostgresJobRepository(db)
	resultRepo := repository.NewPostgresResultRepository(db)

	authUC := usecase.NewAuthUsecase(cfg.Auth, jwtSvc)
	scoreUC := usecase.NewScoreUsecase(scorer, jobRepo, resultRepo, redis, ws.NewNotifier(hub), logger)
	if enricher := enrich.New(cfg.Enrich, logger); enricher != nil {
		scoreUC.WithEnricher(enricher)
	}

	authHandler := handler.NewAuthHandler(authUC)
	scoreHandler := handler.NewScoreHandler(scoreUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	jobsGroup := protected.Group("/jobs")
	scoreHandler.RegisterRoutes(jobsGroup)
}

package app

import (
	"context"
	"fmt"
	"log"

	"job-authenticity/internal/config"
	"job-authenticity/internal/database"
	"job-authenticity/internal/database/migration"
	dbpostgres "job-authenticity/internal/database/postgres"
	"job-authenticity/internal/domain/authenticity"
	"job-authenticity/internal/infrastructure/cache"
	"job-authenticity/internal/ws"
)

// Container holds the long-lived dependencies shared by the HTTP server
// and the batch pipeline.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Scorer *authenticity.Scorer
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := migration.Run(context.Background(), db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	scorer, err := authenticity.NewScorerFromFile(cfg.Scoring.RulesPath, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load rule table: %w", err)
	}
	logger.Printf("[App] rule table loaded | rules=%d", scorer.RuleCount())

	redis := cache.NewRedis(logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  redis,
		Scorer: scorer,
		Hub:    hub,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

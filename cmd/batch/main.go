package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"job-authenticity/internal/app"
	"job-authenticity/internal/config"
	"job-authenticity/internal/infrastructure/enrich"
	"job-authenticity/internal/pipeline"
	"job-authenticity/internal/repository"
	"job-authenticity/internal/usecase"
	"job-authenticity/internal/ws"
)

// One-shot batch run: score every stored job that has no authenticity
// result yet, then exit.
func main() {
	workers := flag.Int("workers", 0, "worker pool size (defaults to BATCH_WORKERS)")
	limit := flag.Int("limit", 0, "jobs fetched per round (defaults to BATCH_LIMIT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	container, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	jobRepo := repository.NewPostgresJobRepository(container.DB)
	resultRepo := repository.NewPostgresResultRepository(container.DB)

	scoreUC := usecase.NewScoreUsecase(container.Scorer, jobRepo, resultRepo, container.Cache, ws.NewNotifier(container.Hub), container.Logger)
	if enricher := enrich.New(cfg.Enrich, container.Logger); enricher != nil {
		scoreUC.WithEnricher(enricher)
	}

	p := pipeline.NewScoringPipeline(jobRepo, scoreUC, container.Cache, container.Logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w := *workers
	if w <= 0 {
		w = cfg.Scoring.BatchWorkers
	}
	l := *limit
	if l <= 0 {
		l = cfg.Scoring.BatchLimit
	}

	if err := p.Run(ctx, pipeline.RunParams{Workers: w, Limit: l}); err != nil {
		log.Printf("batch run failed: %v", err)
		os.Exit(1)
	}
}

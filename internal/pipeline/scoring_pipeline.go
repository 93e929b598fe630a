package pipeline

import (
	"context"
	"log"
	"time"

	"job-authenticity/internal/repository"
	"job-authenticity/internal/usecase"
)

const (
	batchLockKey = "authenticity:batch:lock"
	batchLockTTL = 10 * time.Minute
)

// BatchLock is the piece of the cache the pipeline needs to keep two
// concurrent batch runs from scoring the same jobs.
type BatchLock interface {
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

type ScoringPipeline struct {
	jobs  repository.JobRepository
	score usecase.ScoreUsecase
	lock  BatchLock
	log   *log.Logger
	limit int
}

func NewScoringPipeline(jobs repository.JobRepository, score usecase.ScoreUsecase, lock BatchLock, logger *log.Logger) *ScoringPipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &ScoringPipeline{jobs: jobs, score: score, lock: lock, log: logger, limit: 500}
}

type RunParams struct {
	Workers int
	Limit   int
}

// Run scores every stored job that has no authenticity result yet. A
// failing job is logged and skipped, never aborting the batch.
func (p *ScoringPipeline) Run(ctx context.Context, params RunParams) error {
	if p == nil || p.jobs == nil || p.score == nil {
		return nil
	}
	workers := params.Workers
	if workers <= 0 {
		workers = 4
	}
	limit := params.Limit
	if limit <= 0 {
		limit = p.limit
	}

	if p.lock != nil {
		ok, err := p.lock.SetIfNotExists(ctx, batchLockKey, time.Now().UTC().Format(time.RFC3339), batchLockTTL)
		if err != nil {
			return err
		}
		if !ok {
			p.log.Printf("pipeline=scoring status=skipped reason=lock_held")
			return nil
		}
		defer func() { _ = p.lock.Delete(context.Background(), batchLockKey) }()
	}

	start := time.Now()
	scored := 0
	failed := 0

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		batch, err := p.jobs.ListUnscored(ctx, limit)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		pool := NewWorkerPool(workers, workers*2)
		results := pool.Run(ctx)

		for _, j := range batch {
			j := j
			pool.Submit(func(ctx context.Context) error {
				taskStart := time.Now()
				res, err := p.score.ScoreAndStore(ctx, j)
				if err != nil {
					p.log.Printf("pipeline=scoring status=error job_id=%s err=%v duration=%s", j.JobID, err, time.Since(taskStart))
					return err
				}
				p.log.Printf("pipeline=scoring status=ok job_id=%s score=%.1f level=%s duration=%s", j.JobID, res.AuthenticityScore, res.Level, time.Since(taskStart))
				return nil
			})
		}

		pool.Close()

		okThisBatch := 0
		for r := range results {
			if r.Err != nil {
				failed++
			} else {
				okThisBatch++
				scored++
			}
		}

		// Jobs that failed stay unscored and would be listed again next
		// round; stop once a whole batch makes no progress.
		if okThisBatch == 0 {
			break
		}
	}

	p.log.Printf("pipeline=scoring status=done scored=%d failed=%d duration=%s", scored, failed, time.Since(start))
	return nil
}

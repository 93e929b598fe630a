package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"job-authenticity/internal/domain/authenticity"
	"job-authenticity/internal/repository"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrJobNotFound    = errors.New("job not found")
	ErrResultNotFound = errors.New("authenticity result not found")
	ErrInternal       = errors.New("internal error")
)

// ResultCache is the narrow cache surface the usecase needs; the redis
// wrapper satisfies it and degrades to a no-op when unavailable.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ScoreNotifier pushes a "job scored" event to subscribed clients. The
// websocket hub satisfies it.
type ScoreNotifier interface {
	NotifyJobScored(jobID string, res authenticity.Result)
}

// JobEnricher backfills missing record fields before scoring. It is
// best-effort; implementations log their own failures.
type JobEnricher interface {
	Enrich(ctx context.Context, job *authenticity.JobRecord)
}

type ScoreUsecase interface {
	// ScoreAndStore scores one job record, persists both the record and
	// its result, and returns the result.
	ScoreAndStore(ctx context.Context, job authenticity.JobRecord) (authenticity.Result, error)
	// GetResult returns the persisted result for a job, cache first.
	GetResult(ctx context.Context, jobID string) (authenticity.Result, error)
}

type Scoring struct {
	scorer   *authenticity.Scorer
	jobs     repository.JobRepository
	results  repository.ResultRepository
	cache    ResultCache
	notifier ScoreNotifier
	enricher JobEnricher
	logger   *log.Logger
}

func NewScoreUsecase(
	scorer *authenticity.Scorer,
	jobs repository.JobRepository,
	results repository.ResultRepository,
	cache ResultCache,
	notifier ScoreNotifier,
	logger *log.Logger,
) *Scoring {
	return &Scoring{
		scorer:   scorer,
		jobs:     jobs,
		results:  results,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// WithEnricher attaches the optional pre-scoring enrichment step.
func (u *Scoring) WithEnricher(e JobEnricher) *Scoring {
	u.enricher = e
	return u
}

func resultCacheKey(jobID string) string {
	return "authenticity:result:" + jobID
}

func (u *Scoring) ScoreAndStore(ctx context.Context, job authenticity.JobRecord) (authenticity.Result, error) {
	jobID := strings.TrimSpace(job.JobID)
	if jobID == "" {
		return authenticity.Result{}, ErrInvalidInput
	}
	job.JobID = jobID

	if u.enricher != nil {
		u.enricher.Enrich(ctx, &job)
	}

	// Payloads arriving without precomputed mismatch signals get them
	// derived here; upstream-supplied signals are kept as-is.
	if job.DerivedSignals == (authenticity.DerivedSignals{}) {
		job.DerivedSignals = authenticity.DeriveSignals(job)
	}

	if u.jobs != nil {
		if err := u.jobs.Upsert(ctx, job); err != nil {
			if u.logger != nil {
				u.logger.Printf("[Scoring] job upsert failed | job_id=%s err=%v", jobID, err)
			}
			return authenticity.Result{}, ErrInternal
		}
	}

	res := u.scorer.ScoreJob(job)

	if u.results != nil {
		if err := u.results.Upsert(ctx, jobID, res); err != nil {
			if u.logger != nil {
				u.logger.Printf("[Scoring] result upsert failed | job_id=%s err=%v", jobID, err)
			}
			return authenticity.Result{}, ErrInternal
		}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, resultCacheKey(jobID), res, 0); err != nil && u.logger != nil {
			u.logger.Printf("[Scoring] result cache write failed | job_id=%s err=%v", jobID, err)
		}
	}

	if u.notifier != nil {
		u.notifier.NotifyJobScored(jobID, res)
	}

	return res, nil
}

func (u *Scoring) GetResult(ctx context.Context, jobID string) (authenticity.Result, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return authenticity.Result{}, ErrInvalidInput
	}

	if u.cache != nil {
		var cached authenticity.Result
		hit, err := u.cache.GetJSON(ctx, resultCacheKey(jobID), &cached)
		if err == nil && hit {
			return cached, nil
		}
	}

	res, err := u.results.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrResultNotFound) {
			return authenticity.Result{}, ErrResultNotFound
		}
		return authenticity.Result{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, resultCacheKey(jobID), res, 0)
	}
	return res, nil
}

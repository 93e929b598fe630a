package enrich

import (
	"context"
	"log"

	"job-authenticity/internal/config"
	"job-authenticity/internal/domain/authenticity"
)

// Enricher runs the best-effort pre-scoring lookups. Failures are logged
// and swallowed; the record is scored with whatever data it has.
type Enricher struct {
	probe    *CompanyProbe
	snapshot *PostingSnapshot
	logger   *log.Logger
}

func New(cfg config.EnrichConfig, logger *log.Logger) *Enricher {
	if !cfg.Enabled {
		return nil
	}
	e := &Enricher{
		probe:  NewCompanyProbe(cfg.Timeout),
		logger: logger,
	}
	if cfg.Headless {
		e.snapshot = NewPostingSnapshot(cfg.Timeout)
	}
	return e
}

func (e *Enricher) Enrich(ctx context.Context, job *authenticity.JobRecord) {
	if e == nil || job == nil {
		return
	}

	if e.snapshot != nil {
		if err := e.snapshot.Fetch(ctx, job); err != nil && e.logger != nil {
			e.logger.Printf("[Enrich] posting snapshot failed | job_id=%s err=%v", job.JobID, err)
		}
	}

	if e.probe != nil {
		if err := e.probe.Probe(ctx, job); err != nil && e.logger != nil {
			e.logger.Printf("[Enrich] company probe failed | job_id=%s err=%v", job.JobID, err)
		}
	}
}

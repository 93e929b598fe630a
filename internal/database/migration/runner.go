package migration

import (
	"context"
	"fmt"
	"log"

	"job-authenticity/internal/database"
)

// statements are idempotent; Run is safe to execute on every startup.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id          UUID PRIMARY KEY,
		job_id      TEXT NOT NULL UNIQUE,
		payload     JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS authenticity_results (
		job_id             TEXT PRIMARY KEY REFERENCES jobs (job_id) ON DELETE CASCADE,
		authenticity_score DOUBLE PRECISION NOT NULL,
		level              TEXT NOT NULL,
		confidence         TEXT NOT NULL,
		summary            TEXT NOT NULL,
		red_flags          JSONB NOT NULL,
		positive_signals   JSONB NOT NULL,
		activated_rules    JSONB NOT NULL,
		computed_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_authenticity_results_level
		ON authenticity_results (level)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_created_at
		ON jobs (created_at DESC)`,
}

func Run(ctx context.Context, db database.DB, logger *log.Logger) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for i, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i, err)
		}
	}
	if logger != nil {
		logger.Printf("[Migration] schema up to date | statements=%d", len(statements))
	}
	return nil
}

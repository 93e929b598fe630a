package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"job-authenticity/internal/database"
	"job-authenticity/internal/domain/authenticity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Upsert(ctx context.Context, job authenticity.JobRecord) error
	GetByJobID(ctx context.Context, jobID string) (authenticity.JobRecord, error)
	// ListUnscored returns jobs that have no authenticity result yet,
	// oldest first, up to limit.
	ListUnscored(ctx context.Context, limit int) ([]authenticity.JobRecord, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Upsert(ctx context.Context, job authenticity.JobRecord) error {
	jobID := strings.TrimSpace(job.JobID)
	if jobID == "" {
		return fmt.Errorf("empty job_id")
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO jobs (id, job_id, payload)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id) DO UPDATE SET payload = EXCLUDED.payload`,
		uuid.New(), jobID, payload,
	)
	return err
}

func (r *PostgresJobRepository) GetByJobID(ctx context.Context, jobID string) (authenticity.JobRecord, error) {
	var payload []byte
	row := r.db.QueryRow(ctx, `SELECT payload FROM jobs WHERE job_id = $1`, jobID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authenticity.JobRecord{}, ErrJobNotFound
		}
		return authenticity.JobRecord{}, err
	}

	var job authenticity.JobRecord
	if err := json.Unmarshal(payload, &job); err != nil {
		return authenticity.JobRecord{}, fmt.Errorf("unmarshal job payload: %w", err)
	}
	return job, nil
}

func (r *PostgresJobRepository) ListUnscored(ctx context.Context, limit int) ([]authenticity.JobRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT j.payload
		 FROM jobs j
		 LEFT JOIN authenticity_results r ON r.job_id = j.job_id
		 WHERE r.job_id IS NULL
		 ORDER BY j.created_at ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]authenticity.JobRecord, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var job authenticity.JobRecord
		if err := json.Unmarshal(payload, &job); err != nil {
			// A corrupt row must not starve the batch; skip it.
			continue
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

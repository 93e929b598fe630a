package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"job-authenticity/internal/database"
	"job-authenticity/internal/domain/authenticity"

	"github.com/jackc/pgx/v5"
)

var ErrResultNotFound = errors.New("authenticity result not found")

type ResultRepository interface {
	Upsert(ctx context.Context, jobID string, res authenticity.Result) error
	GetByJobID(ctx context.Context, jobID string) (authenticity.Result, error)
}

type PostgresResultRepository struct {
	db database.DB
}

func NewPostgresResultRepository(db database.DB) *PostgresResultRepository {
	return &PostgresResultRepository{db: db}
}

func (r *PostgresResultRepository) Upsert(ctx context.Context, jobID string, res authenticity.Result) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return fmt.Errorf("empty job_id")
	}

	redFlags, err := json.Marshal(res.RedFlags)
	if err != nil {
		return err
	}
	positives, err := json.Marshal(res.PositiveSignals)
	if err != nil {
		return err
	}
	activated, err := json.Marshal(res.ActivatedRules)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO authenticity_results
		 (job_id, authenticity_score, level, confidence, summary, red_flags, positive_signals, activated_rules, computed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (job_id) DO UPDATE SET
		   authenticity_score = EXCLUDED.authenticity_score,
		   level              = EXCLUDED.level,
		   confidence         = EXCLUDED.confidence,
		   summary            = EXCLUDED.summary,
		   red_flags          = EXCLUDED.red_flags,
		   positive_signals   = EXCLUDED.positive_signals,
		   activated_rules    = EXCLUDED.activated_rules,
		   computed_at        = EXCLUDED.computed_at`,
		jobID,
		res.AuthenticityScore,
		string(res.Level),
		string(res.Confidence),
		res.Summary,
		redFlags,
		positives,
		activated,
		res.ComputedAt,
	)
	return err
}

func (r *PostgresResultRepository) GetByJobID(ctx context.Context, jobID string) (authenticity.Result, error) {
	var (
		res       authenticity.Result
		level     string
		conf      string
		redFlags  []byte
		positives []byte
		activated []byte
	)

	row := r.db.QueryRow(ctx,
		`SELECT authenticity_score, level, confidence, summary, red_flags, positive_signals, activated_rules, computed_at
		 FROM authenticity_results WHERE job_id = $1`,
		jobID,
	)
	err := row.Scan(&res.AuthenticityScore, &level, &conf, &res.Summary, &redFlags, &positives, &activated, &res.ComputedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authenticity.Result{}, ErrResultNotFound
		}
		return authenticity.Result{}, err
	}

	res.Level = authenticity.Level(level)
	res.Confidence = authenticity.Confidence(conf)
	if err := json.Unmarshal(redFlags, &res.RedFlags); err != nil {
		return authenticity.Result{}, err
	}
	if err := json.Unmarshal(positives, &res.PositiveSignals); err != nil {
		return authenticity.Result{}, err
	}
	if err := json.Unmarshal(activated, &res.ActivatedRules); err != nil {
		return authenticity.Result{}, err
	}
	return res, nil
}

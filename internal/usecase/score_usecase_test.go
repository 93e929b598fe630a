package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"job-authenticity/internal/domain/authenticity"
	"job-authenticity/internal/repository"
)

func testScorer(t *testing.T) *authenticity.Scorer {
	t.Helper()
	rules, err := authenticity.ParseRuleTable([]byte(`{"rules": [
		{"id": "A1", "description": "External recruiter language", "signal": "negative",
		 "weight": 0.25, "confidence": "medium", "pattern_type": "regex",
		 "pattern_value": ["our client is looking"], "data_source": "jd_text"},
		{"id": "P6", "description": "No poster identity", "signal": "negative",
		 "weight": 0.18, "confidence": "medium", "pattern_type": "boolean",
		 "pattern_value": true, "data_source": "derived_signals.no_poster_identity"}
	]}`), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	return authenticity.NewScorer(rules, log.New(io.Discard, "", 0))
}

type mockJobRepo struct {
	upserted []authenticity.JobRecord
	err      error
}

func (m *mockJobRepo) Upsert(_ context.Context, job authenticity.JobRecord) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, job)
	return nil
}

func (m *mockJobRepo) GetByJobID(context.Context, string) (authenticity.JobRecord, error) {
	return authenticity.JobRecord{}, repository.ErrJobNotFound
}

func (m *mockJobRepo) ListUnscored(context.Context, int) ([]authenticity.JobRecord, error) {
	return nil, nil
}

type mockResultRepo struct {
	stored map[string]authenticity.Result
	err    error
}

func (m *mockResultRepo) Upsert(_ context.Context, jobID string, res authenticity.Result) error {
	if m.err != nil {
		return m.err
	}
	if m.stored == nil {
		m.stored = map[string]authenticity.Result{}
	}
	m.stored[jobID] = res
	return nil
}

func (m *mockResultRepo) GetByJobID(_ context.Context, jobID string) (authenticity.Result, error) {
	if m.err != nil {
		return authenticity.Result{}, m.err
	}
	res, ok := m.stored[jobID]
	if !ok {
		return authenticity.Result{}, repository.ErrResultNotFound
	}
	return res, nil
}

type mockCache struct {
	data map[string]authenticity.Result
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	res, ok := m.data[key]
	if !ok {
		return false, nil
	}
	*(out.(*authenticity.Result)) = res
	return true, nil
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if m.data == nil {
		m.data = map[string]authenticity.Result{}
	}
	switch v := value.(type) {
	case authenticity.Result:
		m.data[key] = v
	case *authenticity.Result:
		m.data[key] = *v
	}
	return nil
}

type mockNotifier struct {
	jobIDs []string
}

func (m *mockNotifier) NotifyJobScored(jobID string, _ authenticity.Result) {
	m.jobIDs = append(m.jobIDs, jobID)
}

func jd(s string) *string { return &s }

func TestScoreAndStore_EmptyJobID(t *testing.T) {
	uc := NewScoreUsecase(testScorer(t), &mockJobRepo{}, &mockResultRepo{}, nil, nil, nil)
	_, err := uc.ScoreAndStore(context.Background(), authenticity.JobRecord{JobID: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScoreAndStore_PersistsAndNotifies(t *testing.T) {
	jobs := &mockJobRepo{}
	results := &mockResultRepo{}
	notifier := &mockNotifier{}
	uc := NewScoreUsecase(testScorer(t), jobs, results, nil, notifier, nil)

	res, err := uc.ScoreAndStore(context.Background(), authenticity.JobRecord{
		JobID:  "j-1",
		JDText: jd("Our client is looking for engineers."),
		PosterInfo: &authenticity.PosterInfo{
			Name:  jd("Jordan Lee"),
			Title: jd("Recruiter"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.AuthenticityScore != 63.8 {
		t.Fatalf("expected 63.8, got %v", res.AuthenticityScore)
	}
	if len(jobs.upserted) != 1 {
		t.Fatalf("expected job upsert")
	}
	if _, ok := results.stored["j-1"]; !ok {
		t.Fatalf("expected result upsert")
	}
	if len(notifier.jobIDs) != 1 || notifier.jobIDs[0] != "j-1" {
		t.Fatalf("expected notification for j-1, got %v", notifier.jobIDs)
	}
}

func TestScoreAndStore_DerivesSignalsWhenAbsent(t *testing.T) {
	jobs := &mockJobRepo{}
	uc := NewScoreUsecase(testScorer(t), jobs, &mockResultRepo{}, nil, nil, nil)

	// No poster at all and no precomputed signals: the usecase derives
	// no_poster_identity, which activates the P6 rule.
	res, err := uc.ScoreAndStore(context.Background(), authenticity.JobRecord{
		JobID:  "j-2",
		JDText: jd("plain description"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.ActivatedRules) != 1 || res.ActivatedRules[0].ID != "P6" {
		t.Fatalf("expected P6 activation from derived signals, got %+v", res.ActivatedRules)
	}
	if !jobs.upserted[0].DerivedSignals.NoPosterIdentity {
		t.Fatalf("derived signals must be persisted with the job")
	}
}

func TestScoreAndStore_RepoFailure(t *testing.T) {
	uc := NewScoreUsecase(testScorer(t), &mockJobRepo{err: errors.New("db down")}, &mockResultRepo{}, nil, nil, log.New(io.Discard, "", 0))
	_, err := uc.ScoreAndStore(context.Background(), authenticity.JobRecord{JobID: "j-3", JDText: jd("x")})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestGetResult_CacheFirst(t *testing.T) {
	cached := authenticity.Result{AuthenticityScore: 42.0, Level: authenticity.LevelLikelyFake}
	cache := &mockCache{data: map[string]authenticity.Result{"authenticity:result:j-4": cached}}
	uc := NewScoreUsecase(testScorer(t), &mockJobRepo{}, &mockResultRepo{}, cache, nil, nil)

	res, err := uc.GetResult(context.Background(), "j-4")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.AuthenticityScore != 42.0 {
		t.Fatalf("expected cached result, got %+v", res)
	}
}

func TestGetResult_FallsBackToRepoAndBackfillsCache(t *testing.T) {
	results := &mockResultRepo{stored: map[string]authenticity.Result{
		"j-5": {AuthenticityScore: 63.8, Level: authenticity.LevelUncertain},
	}}
	cache := &mockCache{}
	uc := NewScoreUsecase(testScorer(t), &mockJobRepo{}, results, cache, nil, nil)

	res, err := uc.GetResult(context.Background(), "j-5")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.AuthenticityScore != 63.8 {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := cache.data["authenticity:result:j-5"]; !ok {
		t.Fatalf("expected cache backfill")
	}
}

func TestGetResult_NotFound(t *testing.T) {
	uc := NewScoreUsecase(testScorer(t), &mockJobRepo{}, &mockResultRepo{}, nil, nil, nil)
	_, err := uc.GetResult(context.Background(), "missing")
	if !errors.Is(err, ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}
}

package authenticity

import (
	"log"
	"time"
)

// Result is the immutable outcome of one scoring call. The caller owns
// persistence; the scorer produces a fresh value on every call.
type Result struct {
	AuthenticityScore float64            `json:"authenticity_score"`
	Level             Level              `json:"level"`
	Confidence        Confidence         `json:"confidence"`
	Summary           string             `json:"summary"`
	RedFlags          []string           `json:"red_flags"`
	PositiveSignals   []string           `json:"positive_signals"`
	ActivatedRules    []ActivatedRuleRef `json:"activated_rules"`
	ComputedAt        time.Time          `json:"computed_at"`
}

// ActivatedRuleRef is the audit projection kept on the result. The full
// descriptions are already surfaced through red_flags/positive_signals.
type ActivatedRuleRef struct {
	ID         string         `json:"id"`
	Weight     float64        `json:"weight"`
	Confidence RuleConfidence `json:"confidence"`
}

// Scorer wires the rule engine, score fusion and explanation engine into
// one call. It holds only the immutable rule table, so a single instance
// is safe to share across concurrent callers.
type Scorer struct {
	rules  []Rule
	logger *log.Logger
	now    func() time.Time
}

func NewScorer(rules []Rule, logger *log.Logger) *Scorer {
	return &Scorer{rules: rules, logger: logger, now: time.Now}
}

// NewScorerFromFile loads the rule table from path and builds a Scorer.
func NewScorerFromFile(path string, logger *log.Logger) (*Scorer, error) {
	rules, err := LoadRuleTable(path, logger)
	if err != nil {
		return nil, err
	}
	return NewScorer(rules, logger), nil
}

// RuleCount reports the number of loaded rules, invalid entries included.
func (s *Scorer) RuleCount() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// ScoreJob scores one job record. It never returns an error: a record
// missing its description text, or one that trips an unexpected panic,
// yields a fixed low-confidence neutral result instead — a batch pipeline
// scoring hundreds of jobs must never abort on one bad record.
func (s *Scorer) ScoreJob(job JobRecord) Result {
	if job.JDText == nil {
		return s.neutralResult()
	}

	res, ok := s.scoreJob(&job)
	if !ok {
		return s.neutralResult()
	}
	return res
}

func (s *Scorer) scoreJob(job *JobRecord) (res Result, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			if s.logger != nil {
				s.logger.Printf("[Scorer] scoring panicked, returning neutral result | job_id=%s err=%v", job.JobID, rec)
			}
		}
	}()

	activated := Evaluate(job, s.rules, s.logger)
	fused := FuseWithJob(activated, job)
	expl := Explain(fused.Score, fused.Level, activated)

	refs := make([]ActivatedRuleRef, 0, len(activated))
	for _, a := range activated {
		refs = append(refs, ActivatedRuleRef{ID: a.ID, Weight: a.Weight, Confidence: a.Confidence})
	}

	return Result{
		AuthenticityScore: fused.Score,
		Level:             fused.Level,
		Confidence:        fused.Confidence,
		Summary:           expl.Summary,
		RedFlags:          expl.RedFlags,
		PositiveSignals:   expl.PositiveSignals,
		ActivatedRules:    refs,
		ComputedAt:        s.now().UTC(),
	}, true
}

// neutralResult is the degraded-input fallback: a data-quality guard, not
// a fakeness judgment.
func (s *Scorer) neutralResult() Result {
	return Result{
		AuthenticityScore: 50,
		Level:             LevelUncertain,
		Confidence:        ConfidenceLow,
		Summary:           "Insufficient data to evaluate authenticity",
		RedFlags:          []string{"Missing job description text"},
		PositiveSignals:   []string{},
		ActivatedRules:    []ActivatedRuleRef{},
		ComputedAt:        s.now().UTC(),
	}
}

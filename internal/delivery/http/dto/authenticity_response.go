package dto

import (
	"time"

	"job-authenticity/internal/domain/authenticity"
)

type AuthenticityResponse struct {
	JobID             string                         `json:"job_id"`
	AuthenticityScore float64                        `json:"authenticity_score"`
	Level             string                         `json:"level"`
	Confidence        string                         `json:"confidence"`
	Summary           string                         `json:"summary"`
	RedFlags          []string                       `json:"red_flags"`
	PositiveSignals   []string                       `json:"positive_signals"`
	ActivatedRules    []authenticity.ActivatedRuleRef `json:"activated_rules"`
	ComputedAt        time.Time                      `json:"computed_at"`
}

func NewAuthenticityResponse(jobID string, res authenticity.Result) AuthenticityResponse {
	return AuthenticityResponse{
		JobID:             jobID,
		AuthenticityScore: res.AuthenticityScore,
		Level:             string(res.Level),
		Confidence:        string(res.Confidence),
		Summary:           res.Summary,
		RedFlags:          res.RedFlags,
		PositiveSignals:   res.PositiveSignals,
		ActivatedRules:    res.ActivatedRules,
		ComputedAt:        res.ComputedAt,
	}
}

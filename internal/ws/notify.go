package ws

import (
	"encoding/json"
	"time"

	"job-authenticity/internal/domain/authenticity"
)

type JobScoredEvent struct {
	Type              string  `json:"type"`
	JobID             string  `json:"job_id"`
	AuthenticityScore float64 `json:"authenticity_score"`
	Level             string  `json:"level"`
	Confidence        string  `json:"confidence"`
	Timestamp         string  `json:"timestamp"`
}

// Notifier adapts the hub to the scoring usecase's notifier interface.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyJobScored(jobID string, res authenticity.Result) {
	if n == nil || n.hub == nil {
		return
	}

	evt := JobScoredEvent{
		Type:              "job_scored",
		JobID:             jobID,
		AuthenticityScore: res.AuthenticityScore,
		Level:             string(res.Level),
		Confidence:        string(res.Confidence),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.Broadcast(b)
}

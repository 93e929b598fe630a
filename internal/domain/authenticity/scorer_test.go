package authenticity

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func shippedScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorerFromFile(filepath.Join("..", "..", "..", "configs", "rules.json"), discardLogger())
	if err != nil {
		t.Fatalf("load scorer: %v", err)
	}
	return s
}

func TestScoreJob_MissingDescriptionDegradedResult(t *testing.T) {
	s := shippedScorer(t)

	// Even a record dense with red flags takes the degraded path when
	// jd_text is absent entirely.
	res := s.ScoreJob(JobRecord{
		JobID:    "j-1",
		Title:    "Payment Processor $900/day",
		Platform: PlatformOther,
		URL:      "http://bit.ly/xyz",
	})

	if res.AuthenticityScore != 50 {
		t.Fatalf("expected score 50, got %v", res.AuthenticityScore)
	}
	if res.Level != LevelUncertain {
		t.Fatalf("expected uncertain, got %s", res.Level)
	}
	if res.Confidence != ConfidenceLow {
		t.Fatalf("expected Low, got %s", res.Confidence)
	}
	if res.Summary != "Insufficient data to evaluate authenticity" {
		t.Fatalf("unexpected summary %q", res.Summary)
	}
	if len(res.RedFlags) != 1 || res.RedFlags[0] != "Missing job description text" {
		t.Fatalf("unexpected red flags %v", res.RedFlags)
	}
	if len(res.PositiveSignals) != 0 || len(res.ActivatedRules) != 0 {
		t.Fatalf("degraded result must carry no signals or activations")
	}
}

func TestScoreJob_EmptyStringDescriptionIsScoredNormally(t *testing.T) {
	s := shippedScorer(t)
	res := s.ScoreJob(JobRecord{JobID: "j-2", JDText: strPtr("")})
	if res.Summary == "Insufficient data to evaluate authenticity" {
		t.Fatalf("empty string must not take the degraded path")
	}
}

func TestScoreJob_ExternalRecruiterScenario(t *testing.T) {
	s := shippedScorer(t)
	res := s.ScoreJob(JobRecord{
		JobID:       "j-3",
		Title:       "Senior Backend Engineer",
		CompanyName: "Acme",
		Platform:    PlatformLinkedIn,
		URL:         "https://linkedin.com/jobs/3",
		JDText:      strPtr("Our client is looking for a Senior Backend Engineer to join their growing team."),
	})

	if res.AuthenticityScore != 63.8 {
		t.Fatalf("expected 63.8, got %v", res.AuthenticityScore)
	}
	if res.Level != LevelUncertain {
		t.Fatalf("expected uncertain, got %s", res.Level)
	}
	if len(res.ActivatedRules) != 1 || res.ActivatedRules[0].ID != "A1" {
		t.Fatalf("expected only A1 to activate, got %+v", res.ActivatedRules)
	}
	if len(res.RedFlags) != 1 {
		t.Fatalf("expected 1 red flag, got %v", res.RedFlags)
	}
}

func TestScoreJob_CleanPostingStaysAtHundred(t *testing.T) {
	s := shippedScorer(t)
	res := s.ScoreJob(JobRecord{
		JobID:       "j-4",
		Title:       "Software Engineer",
		CompanyName: "Acme",
		Platform:    PlatformLinkedIn,
		URL:         "https://linkedin.com/jobs/4",
		JDText:      strPtr("We are hiring a software engineer for our Austin office."),
		PlatformMetadata: PlatformMetadata{
			PostedDaysAgo:  intPtr(2),
			ActivelyHiring: boolPtr(true),
		},
	})

	if res.AuthenticityScore != 100.0 {
		t.Fatalf("expected 100.0, got %v", res.AuthenticityScore)
	}
	if res.Level != LevelLikelyReal {
		t.Fatalf("expected likely_real, got %s", res.Level)
	}
	if len(res.PositiveSignals) != 2 {
		t.Fatalf("expected 2 positive signals (fresh + actively hiring), got %v", res.PositiveSignals)
	}
	if len(res.RedFlags) != 0 {
		t.Fatalf("expected no red flags, got %v", res.RedFlags)
	}
}

func TestScoreJob_Deterministic(t *testing.T) {
	s := shippedScorer(t)
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	job := JobRecord{
		JobID:  "j-5",
		Title:  "Data Entry Clerk",
		URL:    "http://bit.ly/abc",
		JDText: strPtr("Earn $400 per day!!! Contact hiring@gmail.com on Telegram. Registration fee required."),
		PosterInfo: &PosterInfo{
			AccountAgeMonths: intPtr(1),
		},
	}

	a := s.ScoreJob(job)
	b := s.ScoreJob(job)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("scoring is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestScoreJob_BoundsAndAuditInvariants(t *testing.T) {
	s := shippedScorer(t)
	table := make(map[string]bool, s.RuleCount())
	for _, r := range s.rules {
		table[r.ID] = true
	}

	jobs := []JobRecord{
		{JobID: "all-null", JDText: strPtr("")},
		{JobID: "extreme", JDText: strPtr("x"), PlatformMetadata: PlatformMetadata{PostedDaysAgo: intPtr(999999), ViewCount: intPtr(1 << 40)}},
		{
			JobID:  "everything-bad",
			Title:  "Mystery Shopper $999/hour",
			URL:    "http://1.2.3.4/job",
			JDText: strPtr("Guaranteed income!!! Pay the training fee in USDT via Telegram. Send your social security number to hr@gmail.com."),
			PosterInfo: &PosterInfo{
				AccountAgeMonths: intPtr(0),
				RecentPostCount:  intPtr(50),
			},
			CompanyInfo: &CompanyInfo{
				WebsiteDomain:  strPtr("acme-careers.com"),
				EmployeeCount:  intPtr(1),
				ExternalRating: floatPtr(1.0),
			},
			DerivedSignals: DerivedSignals{
				CompanyDomainMismatch: true,
				PosterHasNoCompany:    true,
				NoPosterIdentity:      true,
			},
		},
	}

	for _, job := range jobs {
		res := s.ScoreJob(job)
		if res.AuthenticityScore < 0 || res.AuthenticityScore > 100 {
			t.Fatalf("%s: score %v out of bounds", job.JobID, res.AuthenticityScore)
		}
		if len(res.RedFlags) > 5 {
			t.Fatalf("%s: %d red flags", job.JobID, len(res.RedFlags))
		}
		for _, ref := range res.ActivatedRules {
			if !table[ref.ID] {
				t.Fatalf("%s: activated rule %s not in table", job.JobID, ref.ID)
			}
		}
	}
}

func TestScoreJob_HeavyScamLandsLikelyFake(t *testing.T) {
	s := shippedScorer(t)
	res := s.ScoreJob(JobRecord{
		JobID:  "j-6",
		Title:  "Payment Processor",
		URL:    "https://example.com/j",
		JDText: strPtr("You will deposit the check and wire funds. A registration fee applies. Interview via Telegram."),
	})

	if res.Level != LevelLikelyFake {
		t.Fatalf("expected likely_fake, got %s (score %v)", res.Level, res.AuthenticityScore)
	}
	if res.Confidence == ConfidenceLow {
		t.Fatalf("several strong rules should not grade Low, got %s", res.Confidence)
	}
}

func TestResult_JSONRoundTrip(t *testing.T) {
	s := shippedScorer(t)
	orig := s.ScoreJob(JobRecord{
		JobID:  "j-7",
		Title:  "Engineer",
		URL:    "https://example.com",
		JDText: strPtr("Our client is looking for engineers. $100 - $120 per year... health insurance included."),
	})

	b, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Result
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.ComputedAt.Equal(orig.ComputedAt) {
		t.Fatalf("computed_at changed: %v -> %v", orig.ComputedAt, back.ComputedAt)
	}
	orig.ComputedAt = time.Time{}
	back.ComputedAt = time.Time{}
	if !reflect.DeepEqual(orig, back) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", orig, back)
	}
}

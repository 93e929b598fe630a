package authenticity

import "math"

type Level string

const (
	LevelLikelyReal Level = "likely_real"
	LevelUncertain  Level = "uncertain"
	LevelLikelyFake Level = "likely_fake"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

const (
	// penaltyFactor controls how sharply accumulated negative weight
	// suppresses the base score: base = 100 * e^(-negSum * penaltyFactor).
	penaltyFactor = 1.8

	// Positive signals boost the score by at most 15%, with diminishing
	// returns: gain = min(maxGain, (1 + posSum)^gainExponent).
	maxGain      = 1.15
	gainExponent = 0.25

	// A rule at or above this weight counts as a strong signal for the
	// confidence tier.
	strongRuleWeight = 0.18

	levelRealFloor      = 80.0
	levelUncertainFloor = 55.0
)

type FusionResult struct {
	Score             float64
	Level             Level
	Confidence        Confidence
	NegativeWeightSum float64
	PositiveWeightSum float64
}

// Fuse combines the activated rules into a bounded authenticity score
// using the strong-rule-count confidence tier.
func Fuse(activated []ActivatedRule) FusionResult {
	return fuse(activated, nil)
}

// FuseWithJob is Fuse with the data-completeness-aware confidence tier:
// the strong-rule term is blended 50/50 with the fraction of a fixed
// required-field checklist present on the job.
func FuseWithJob(activated []ActivatedRule, job *JobRecord) FusionResult {
	return fuse(activated, job)
}

func fuse(activated []ActivatedRule, job *JobRecord) FusionResult {
	var negSum, posSum float64
	strong := 0
	for _, a := range activated {
		if a.Signal == SignalNegative {
			negSum += a.Weight
		} else {
			posSum += a.Weight
		}
		if a.Weight >= strongRuleWeight {
			strong++
		}
	}

	base := 100 * math.Exp(-negSum*penaltyFactor)
	gain := math.Min(maxGain, math.Pow(1+posSum, gainExponent))
	final := clampFloat(base*gain, 0, 100)
	score := math.Round(final*10) / 10

	return FusionResult{
		Score:             score,
		Level:             levelForScore(score),
		Confidence:        confidenceTier(len(activated), strong, job),
		NegativeWeightSum: negSum,
		PositiveWeightSum: posSum,
	}
}

func levelForScore(score float64) Level {
	switch {
	case score >= levelRealFloor:
		return LevelLikelyReal
	case score >= levelUncertainFloor:
		return LevelUncertain
	default:
		return LevelLikelyFake
	}
}

// confidenceTier grades how much evidence underlies a score. With no
// activations at all the result is always Low: a score of 100 with no
// evidence means "no sign of fakeness", not "certainly real".
func confidenceTier(activatedCount, strong int, job *JobRecord) Confidence {
	if activatedCount == 0 {
		return ConfidenceLow
	}

	if job == nil {
		switch {
		case strong >= 3:
			return ConfidenceHigh
		case strong >= 1:
			return ConfidenceMedium
		default:
			return ConfidenceLow
		}
	}

	strongTerm := math.Min(float64(strong)/3, 1)
	blended := 0.5*strongTerm + 0.5*dataCompleteness(job)
	switch {
	case blended >= 0.66:
		return ConfidenceHigh
	case blended >= 0.33:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// completenessChecklist is the fixed set of fields whose presence feeds
// the completeness-aware confidence tier.
var completenessChecklist = []string{
	"jd_text",
	"poster_info.name",
	"poster_info.account_age_months",
	"company_info.website_domain",
	"company_info.employee_count",
	"platform_metadata.posted_days_ago",
	"platform_metadata.applicant_count",
	"platform_metadata.repost_count",
}

func dataCompleteness(job *JobRecord) float64 {
	present := 0
	for _, path := range completenessChecklist {
		if _, ok := resolveField(job, path); ok {
			present++
		}
	}
	return float64(present) / float64(len(completenessChecklist))
}

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

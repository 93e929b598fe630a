package authenticity

import (
	"fmt"
	"sort"
	"strconv"
)

const maxRedFlags = 5

type Explanation struct {
	Summary         string
	RedFlags        []string
	PositiveSignals []string
}

// Explain turns a fused score and its activations into a human-readable
// summary, the top red flags and the positive signals. It is a pure
// projection step and never recomputes the score.
func Explain(score float64, level Level, activated []ActivatedRule) Explanation {
	negatives := make([]ActivatedRule, 0, len(activated))
	positives := make([]string, 0, len(activated))
	for _, a := range activated {
		switch a.Signal {
		case SignalNegative:
			negatives = append(negatives, a)
		case SignalPositive:
			positives = append(positives, a.Description)
		}
	}

	// Stable sort so equal-weight flags keep their rule-table order.
	sort.SliceStable(negatives, func(i, j int) bool {
		return negatives[i].Weight > negatives[j].Weight
	})
	if len(negatives) > maxRedFlags {
		negatives = negatives[:maxRedFlags]
	}

	flags := make([]string, 0, len(negatives))
	for _, a := range negatives {
		flags = append(flags, a.Description)
	}

	return Explanation{
		Summary:         summaryForLevel(level, score),
		RedFlags:        flags,
		PositiveSignals: positives,
	}
}

func summaryForLevel(level Level, score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	switch level {
	case LevelLikelyReal:
		return fmt.Sprintf("High authenticity (%s). No significant red flags detected.", s)
	case LevelUncertain:
		return fmt.Sprintf("Moderate authenticity (%s). Some signals warrant a closer look before applying.", s)
	case LevelLikelyFake:
		return fmt.Sprintf("Low authenticity (%s). Multiple high-weight red flags detected.", s)
	}
	return fmt.Sprintf("Authenticity score %s.", s)
}

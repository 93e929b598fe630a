package authenticity

import (
	"log"
	"strconv"
	"strings"
)

// Evaluate runs every rule of the table against one job record and returns
// the rules that matched, in table order. A rule whose data source is
// absent, whose value cannot be cast, or that panics during evaluation is
// treated as non-activated; evaluation always completes.
func Evaluate(job *JobRecord, rules []Rule, logger *log.Logger) []ActivatedRule {
	out := make([]ActivatedRule, 0, 8)
	for i := range rules {
		r := &rules[i]
		if r.invalid {
			continue
		}
		if evaluateRule(job, r, logger) {
			out = append(out, ActivatedRule{
				ID:          r.ID,
				Weight:      r.Weight,
				Confidence:  r.Confidence,
				Signal:      r.Signal,
				Description: r.Description,
			})
		}
	}
	return out
}

func evaluateRule(job *JobRecord, r *Rule, logger *log.Logger) (matched bool) {
	defer func() {
		if rec := recover(); rec != nil {
			matched = false
			if logger != nil {
				logger.Printf("[RuleEngine] rule evaluation panicked | rule=%s err=%v", r.ID, rec)
			}
		}
	}()

	val, ok := resolveField(job, r.DataSource)
	if !ok {
		return false
	}

	switch r.PatternType {
	case PatternRegex:
		s := valueString(val)
		for _, re := range r.regexps {
			if re.MatchString(s) {
				return true
			}
		}
		return false

	case PatternStringContains:
		return strings.Contains(strings.ToLower(valueString(val)), r.needle)

	case PatternStringContainsAny:
		s := strings.ToLower(valueString(val))
		for _, n := range r.needles {
			if strings.Contains(s, n) {
				return true
			}
		}
		return false

	case PatternStringEqualsAny:
		s := strings.ToLower(strings.TrimSpace(valueString(val)))
		for _, n := range r.needles {
			if s == n {
				return true
			}
		}
		return false

	case PatternNumericThreshold:
		f, ok := valueFloat(val)
		return ok && f > r.threshold

	case PatternNumericLessThan:
		f, ok := valueFloat(val)
		return ok && f < r.threshold

	case PatternBoolean:
		b, ok := val.(bool)
		return ok && b == r.boolValue
	}

	return false
}

func valueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func valueFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

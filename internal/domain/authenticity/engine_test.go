package authenticity

import (
	"testing"
)

func mustRules(t *testing.T, data string) []Rule {
	t.Helper()
	rules, err := ParseRuleTable([]byte(data), discardLogger())
	if err != nil {
		t.Fatalf("parse rules: %v", err)
	}
	return rules
}

func TestEvaluate_PatternTypes(t *testing.T) {
	rules := mustRules(t, `{"rules": [
		{"id": "R1", "description": "regex hit", "signal": "negative", "weight": 0.25,
		 "confidence": "medium", "pattern_type": "regex",
		 "pattern_value": ["our client is looking"], "data_source": "jd_text"},
		{"id": "R2", "description": "contains hit", "signal": "negative", "weight": 0.4,
		 "confidence": "high", "pattern_type": "string_contains",
		 "pattern_value": "registration fee", "data_source": "jd_text"},
		{"id": "R3", "description": "contains-any hit", "signal": "negative", "weight": 0.3,
		 "confidence": "high", "pattern_type": "string_contains_any",
		 "pattern_value": ["telegram", "whatsapp"], "data_source": "jd_text"},
		{"id": "R4", "description": "equals-any hit", "signal": "negative", "weight": 0.1,
		 "confidence": "low", "pattern_type": "string_equals_any",
		 "pattern_value": ["other"], "data_source": "platform"},
		{"id": "R5", "description": "greater-than hit", "signal": "negative", "weight": 0.2,
		 "confidence": "medium", "pattern_type": "numeric_threshold",
		 "pattern_value": 45, "data_source": "platform_metadata.posted_days_ago"},
		{"id": "R6", "description": "less-than hit", "signal": "negative", "weight": 0.25,
		 "confidence": "high", "pattern_type": "numeric_less_than",
		 "pattern_value": 3, "data_source": "poster_info.account_age_months"},
		{"id": "R7", "description": "boolean hit", "signal": "positive", "weight": 0.15,
		 "confidence": "medium", "pattern_type": "boolean",
		 "pattern_value": true, "data_source": "platform_metadata.actively_hiring"}
	]}`)

	job := &JobRecord{
		Platform: PlatformOther,
		JDText:   strPtr("OUR CLIENT IS LOOKING for staff. A registration FEE applies. Reach us on Telegram."),
		PosterInfo: &PosterInfo{
			AccountAgeMonths: intPtr(1),
		},
		PlatformMetadata: PlatformMetadata{
			PostedDaysAgo:  intPtr(60),
			ActivelyHiring: boolPtr(true),
		},
	}

	activated := Evaluate(job, rules, discardLogger())
	if len(activated) != 7 {
		t.Fatalf("expected all 7 rules to activate, got %d", len(activated))
	}
	// Output preserves table order.
	for i, want := range []string{"R1", "R2", "R3", "R4", "R5", "R6", "R7"} {
		if activated[i].ID != want {
			t.Fatalf("position %d: got %s want %s", i, activated[i].ID, want)
		}
	}
}

func TestEvaluate_StrictInequalities(t *testing.T) {
	rules := mustRules(t, `{"rules": [
		{"id": "GT", "description": "gt", "signal": "negative", "weight": 0.2,
		 "confidence": "medium", "pattern_type": "numeric_threshold",
		 "pattern_value": 45, "data_source": "platform_metadata.posted_days_ago"},
		{"id": "LT", "description": "lt", "signal": "negative", "weight": 0.2,
		 "confidence": "medium", "pattern_type": "numeric_less_than",
		 "pattern_value": 45, "data_source": "platform_metadata.posted_days_ago"}
	]}`)

	job := &JobRecord{PlatformMetadata: PlatformMetadata{PostedDaysAgo: intPtr(45)}}
	if got := Evaluate(job, rules, discardLogger()); len(got) != 0 {
		t.Fatalf("boundary value must not satisfy strict inequalities, got %d activations", len(got))
	}
}

func TestEvaluate_MissingFieldsNeverActivate(t *testing.T) {
	rules := mustRules(t, `{"rules": [
		{"id": "R1", "description": "d", "signal": "negative", "weight": 0.25,
		 "confidence": "high", "pattern_type": "numeric_less_than",
		 "pattern_value": 3, "data_source": "poster_info.account_age_months"},
		{"id": "R2", "description": "d", "signal": "negative", "weight": 0.3,
		 "confidence": "high", "pattern_type": "string_contains",
		 "pattern_value": "fee", "data_source": "jd_text"},
		{"id": "R3", "description": "d", "signal": "positive", "weight": 0.15,
		 "confidence": "medium", "pattern_type": "boolean",
		 "pattern_value": true, "data_source": "platform_metadata.actively_hiring"}
	]}`)

	// Every optional field nil: evaluation must complete with no activations.
	activated := Evaluate(&JobRecord{JobID: "empty"}, rules, discardLogger())
	if len(activated) != 0 {
		t.Fatalf("expected no activations on an empty record, got %d", len(activated))
	}
}

func TestEvaluate_InvalidRuleSkipped(t *testing.T) {
	rules := mustRules(t, `{"rules": [
		{"id": "BAD", "description": "d", "signal": "negative", "weight": 0.3,
		 "confidence": "high", "pattern_type": "numeric_threshold",
		 "pattern_value": "oops", "data_source": "platform_metadata.repost_count"},
		{"id": "OK", "description": "d", "signal": "negative", "weight": 0.3,
		 "confidence": "high", "pattern_type": "numeric_threshold",
		 "pattern_value": 3, "data_source": "platform_metadata.repost_count"}
	]}`)

	job := &JobRecord{PlatformMetadata: PlatformMetadata{RepostCount: intPtr(10)}}
	activated := Evaluate(job, rules, discardLogger())
	if len(activated) != 1 || activated[0].ID != "OK" {
		t.Fatalf("expected only the valid rule to activate, got %+v", activated)
	}
}

func TestEvaluate_NumericCastFailure(t *testing.T) {
	rules := mustRules(t, `{"rules": [
		{"id": "N1", "description": "d", "signal": "negative", "weight": 0.2,
		 "confidence": "medium", "pattern_type": "numeric_threshold",
		 "pattern_value": 5, "data_source": "title"}
	]}`)

	job := &JobRecord{Title: "Backend Engineer"}
	if got := Evaluate(job, rules, discardLogger()); len(got) != 0 {
		t.Fatalf("non-numeric value must not activate a numeric rule")
	}

	// A numeric string does cast.
	job.Title = "12"
	if got := Evaluate(job, rules, discardLogger()); len(got) != 1 {
		t.Fatalf("numeric string should cast and activate")
	}
}

func TestEvaluate_ExtremeValues(t *testing.T) {
	rules := mustRules(t, `{"rules": [
		{"id": "M1", "description": "stale", "signal": "negative", "weight": 0.2,
		 "confidence": "medium", "pattern_type": "numeric_threshold",
		 "pattern_value": 45, "data_source": "platform_metadata.posted_days_ago"}
	]}`)

	job := &JobRecord{PlatformMetadata: PlatformMetadata{PostedDaysAgo: intPtr(999999)}}
	if got := Evaluate(job, rules, discardLogger()); len(got) != 1 {
		t.Fatalf("extreme value should still evaluate deterministically")
	}
}

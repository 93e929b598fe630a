package authenticity

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

type Signal string

const (
	SignalPositive Signal = "positive"
	SignalNegative Signal = "negative"
)

// RuleConfidence describes how reliable a rule itself is, independent of
// the overall confidence attached to a scoring result.
type RuleConfidence string

const (
	RuleConfidenceLow    RuleConfidence = "low"
	RuleConfidenceMedium RuleConfidence = "medium"
	RuleConfidenceHigh   RuleConfidence = "high"
)

type PatternType string

const (
	PatternRegex             PatternType = "regex"
	PatternStringContains    PatternType = "string_contains"
	PatternStringContainsAny PatternType = "string_contains_any"
	PatternStringEqualsAny   PatternType = "string_equals_any"
	PatternNumericThreshold  PatternType = "numeric_threshold"
	PatternNumericLessThan   PatternType = "numeric_less_than"
	PatternBoolean           PatternType = "boolean"
)

// Rule is one entry of the rule table. The table is read once at scorer
// construction and never mutated afterwards; the unexported fields hold
// the compiled form of pattern_value.
type Rule struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Signal       Signal          `json:"signal"`
	Weight       float64         `json:"weight"`
	Confidence   RuleConfidence  `json:"confidence"`
	PatternType  PatternType     `json:"pattern_type"`
	PatternValue json.RawMessage `json:"pattern_value"`
	DataSource   string          `json:"data_source"`
	Examples     []string        `json:"examples,omitempty"`

	regexps   []*regexp.Regexp
	needle    string
	needles   []string
	threshold float64
	boolValue bool

	// invalid marks a table entry that failed to compile; it can never
	// activate but does not abort loading of the rest of the table.
	invalid bool
}

// ActivatedRule is the projection of a Rule that matched one job record.
// It only lives within a single scoring call.
type ActivatedRule struct {
	ID          string         `json:"id"`
	Weight      float64        `json:"weight"`
	Confidence  RuleConfidence `json:"confidence"`
	Signal      Signal         `json:"signal"`
	Description string         `json:"description"`
}

// LoadRuleTable reads and compiles the on-disk rule table
// ({"rules": [...]}). Individual malformed rules are logged and marked
// invalid; only a file-level error fails the load.
func LoadRuleTable(path string, logger *log.Logger) ([]Rule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}
	return ParseRuleTable(b, logger)
}

func ParseRuleTable(data []byte, logger *log.Logger) ([]Rule, error) {
	var doc struct {
		Rules []Rule `json:"rules"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rule table: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rule table is empty")
	}

	for i := range doc.Rules {
		r := &doc.Rules[i]
		if err := compileRule(r); err != nil {
			r.invalid = true
			if logger != nil {
				logger.Printf("[RuleTable] skipping invalid rule | id=%s err=%v", r.ID, err)
			}
		}
	}
	return doc.Rules, nil
}

func compileRule(r *Rule) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("missing rule id")
	}
	if r.Signal != SignalPositive && r.Signal != SignalNegative {
		return fmt.Errorf("unknown signal %q", r.Signal)
	}
	if r.Weight < 0 || r.Weight > 1 {
		return fmt.Errorf("weight %v out of range [0,1]", r.Weight)
	}
	if strings.TrimSpace(r.DataSource) == "" {
		return fmt.Errorf("missing data source")
	}

	switch r.PatternType {
	case PatternRegex:
		var pats []string
		if err := json.Unmarshal(r.PatternValue, &pats); err != nil {
			return fmt.Errorf("regex pattern_value must be a string list: %w", err)
		}
		if len(pats) == 0 {
			return fmt.Errorf("empty regex pattern list")
		}
		for _, p := range pats {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return fmt.Errorf("compile regex %q: %w", p, err)
			}
			r.regexps = append(r.regexps, re)
		}

	case PatternStringContains:
		var s string
		if err := json.Unmarshal(r.PatternValue, &s); err != nil {
			return fmt.Errorf("string_contains pattern_value must be a string: %w", err)
		}
		if s == "" {
			return fmt.Errorf("empty string_contains pattern")
		}
		r.needle = strings.ToLower(s)

	case PatternStringContainsAny, PatternStringEqualsAny:
		var list []string
		if err := json.Unmarshal(r.PatternValue, &list); err != nil {
			return fmt.Errorf("%s pattern_value must be a string list: %w", r.PatternType, err)
		}
		if len(list) == 0 {
			return fmt.Errorf("empty %s pattern list", r.PatternType)
		}
		r.needles = make([]string, 0, len(list))
		for _, s := range list {
			r.needles = append(r.needles, strings.ToLower(s))
		}

	case PatternNumericThreshold, PatternNumericLessThan:
		var f float64
		if err := json.Unmarshal(r.PatternValue, &f); err != nil {
			return fmt.Errorf("%s pattern_value must be a number: %w", r.PatternType, err)
		}
		r.threshold = f

	case PatternBoolean:
		var b bool
		if err := json.Unmarshal(r.PatternValue, &b); err != nil {
			return fmt.Errorf("boolean pattern_value must be a bool: %w", err)
		}
		r.boolValue = b

	default:
		return fmt.Errorf("unknown pattern type %q", r.PatternType)
	}

	return nil
}

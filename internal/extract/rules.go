package extract

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ppiankov/claimroute/internal/model"
	"gopkg.in/yaml.v3"
)

// ruleFlags makes every rule case-insensitive with ^ and $ matching at line boundaries
const ruleFlags = "(?im)"

// Rule is a compiled extraction rule
type Rule struct {
	Field   string
	Pattern string
	regex   *regexp.Regexp
}

// CompileRules compiles a rule table, rejecting empty or duplicate field
// names and patterns without a capture group
func CompileRules(rules []model.ExtractionRule) ([]Rule, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no extraction rules configured")
	}

	seen := make(map[string]bool, len(rules))
	compiled := make([]Rule, 0, len(rules))

	for i, r := range rules {
		field := strings.TrimSpace(r.Field)
		if field == "" {
			return nil, fmt.Errorf("rule %d: empty field name", i)
		}
		if seen[field] {
			return nil, fmt.Errorf("rule %d: duplicate field %q", i, field)
		}
		seen[field] = true

		re, err := regexp.Compile(ruleFlags + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: compile pattern: %w", field, err)
		}
		if re.NumSubexp() < 1 {
			return nil, fmt.Errorf("rule %q: pattern has no capture group", field)
		}

		compiled = append(compiled, Rule{
			Field:   field,
			Pattern: r.Pattern,
			regex:   re,
		})
	}

	return compiled, nil
}

type rulesFile struct {
	Rules []model.ExtractionRule `yaml:"rules"`
}

// LoadRules reads an extraction rule table from a YAML file of the form
//
//	rules:
//	  - field: policy_number
//	    pattern: '(?:Policy Number|POL)[:\s]+([A-Z0-9]+)'
func LoadRules(path string) ([]model.ExtractionRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s defines no rules", path)
	}

	return f.Rules, nil
}

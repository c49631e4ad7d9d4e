package usecase

import (
	"fmt"

	"github.com/renalplate/backend/internal/domain"
)

// Evaluate applies rules in order. A rule fires only when the record holds
// a value for its nutrient and that value is strictly greater than the
// threshold; unreported nutrients never fire. An empty comparison means
// greater-than. Rules with any other comparison never fire, so tables from
// outside NewAdvisoryEngine should pass AdvisoryRule.Validate first.
func Evaluate(record domain.NutrientRecord, rules []domain.AdvisoryRule) domain.Assessment {
	advisories := make([]string, 0, len(rules))
	for _, rule := range rules {
		value, ok := record.Value(rule.NutrientKey)
		if !ok {
			continue
		}
		comparison := rule.Comparison
		if comparison == "" {
			comparison = domain.ComparisonGreaterThan
		}
		if comparison == domain.ComparisonGreaterThan && value > rule.Threshold {
			advisories = append(advisories, rule.Message)
		}
	}

	if len(advisories) == 0 {
		return domain.Assessment{Status: domain.AssessmentAllClear, Advisories: advisories}
	}
	return domain.Assessment{Status: domain.AssessmentAdvisories, Advisories: advisories}
}

// AdvisoryEngine holds a validated rule table loaded once at start-up
type AdvisoryEngine struct {
	rules []domain.AdvisoryRule
}

// NewAdvisoryEngine validates and copies rules
func NewAdvisoryEngine(rules []domain.AdvisoryRule) (*AdvisoryEngine, error) {
	copied := make([]domain.AdvisoryRule, len(rules))
	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		copied[i] = rule
	}
	return &AdvisoryEngine{rules: copied}, nil
}

// Evaluate applies the engine's rule table to record
func (e *AdvisoryEngine) Evaluate(record domain.NutrientRecord) domain.Assessment {
	return Evaluate(record, e.rules)
}

// Rules returns a copy of the rule table
func (e *AdvisoryEngine) Rules() []domain.AdvisoryRule {
	out := make([]domain.AdvisoryRule, len(e.rules))
	copy(out, e.rules)
	return out
}

package domain

import (
	"fmt"
	"strings"
)

// Comparison is the direction in which a rule compares a value to its threshold
type Comparison string

// ComparisonGreaterThan fires when the value is strictly greater than the threshold.
const ComparisonGreaterThan Comparison = "greater-than"

// AdvisoryRule is one row of the advisory table
type AdvisoryRule struct {
	NutrientKey NutrientKey `json:"nutrient"`
	Threshold   float64     `json:"threshold"`
	Comparison  Comparison  `json:"comparison"`
	Message     string      `json:"message"`
}

// Validate reports whether the rule can be evaluated.
func (r AdvisoryRule) Validate() error {
	if !r.NutrientKey.IsCanonical() {
		return fmt.Errorf("%w: unknown nutrient %q", ErrInvalidRule, r.NutrientKey)
	}
	if r.Comparison != ComparisonGreaterThan {
		return fmt.Errorf("%w: unsupported comparison %q", ErrInvalidRule, r.Comparison)
	}
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("%w: empty message for %s", ErrInvalidRule, r.NutrientKey)
	}
	return nil
}

// DefaultAdvisoryRules returns the kidney-diet rule table used when no
// rules are configured. A fresh slice is returned on every call.
func DefaultAdvisoryRules() []AdvisoryRule {
	return []AdvisoryRule{
		{KeyPotassium, 300, ComparisonGreaterThan, "Consider lower-potassium alternatives (e.g., berries, apples)."},
		{KeyPhosphorus, 150, ComparisonGreaterThan, "Limit phosphorus-rich foods (e.g., reduce dairy, beans)."},
		{KeySodium, 140, ComparisonGreaterThan, "Choose low-sodium or fresh versions."},
		{KeyProtein, 20, ComparisonGreaterThan, "Monitor protein intake; large portions add kidney workload."},
		{KeyCarbohydrates, 25, ComparisonGreaterThan, "Watch carbohydrate load and monitor insulin response."},
		{KeyTotalFat, 15, ComparisonGreaterThan, "Balance fat intake with leaner choices."},
	}
}

// AssessmentStatus distinguishes "nothing fired" from "never evaluated".
type AssessmentStatus string

const (
	AssessmentNotEvaluated AssessmentStatus = ""
	AssessmentAllClear     AssessmentStatus = "all_clear"
	AssessmentAdvisories   AssessmentStatus = "advisories"
)

// AllClearLabel is how renderers show an all-clear assessment
const AllClearLabel = "OK"

// Assessment is the outcome of evaluating the rule table against one record
type Assessment struct {
	Status     AssessmentStatus `json:"status"`
	Advisories []string         `json:"advisories"`
}

// AllClear reports whether the record was evaluated and no rule fired
func (a Assessment) AllClear() bool {
	return a.Status == AssessmentAllClear
}

// Summary joins advisories for single-cell display.
func (a Assessment) Summary() string {
	switch a.Status {
	case AssessmentAllClear:
		return AllClearLabel
	case AssessmentAdvisories:
		return strings.Join(a.Advisories, "; ")
	default:
		return ""
	}
}

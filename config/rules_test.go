package config

import (
	"testing"

	"github.com/renalplate/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRules(t *testing.T) {
	rules, err := BuildRules([]RuleConfig{
		{Nutrient: "Sodium (mg)", Threshold: 140, Comparison: "greater-than", Message: "Salty."},
		{Nutrient: "PHOSPHORUS", Threshold: 150, Message: "Limit phosphorus."},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.AdvisoryRule{
		{NutrientKey: domain.KeySodium, Threshold: 140, Comparison: domain.ComparisonGreaterThan, Message: "Salty."},
		{NutrientKey: domain.KeyPhosphorus, Threshold: 150, Comparison: domain.ComparisonGreaterThan, Message: "Limit phosphorus."},
	}, rules)
}

func TestBuildRules_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rule RuleConfig
	}{
		{"unknown nutrient", RuleConfig{Nutrient: "iron", Threshold: 1, Message: "m"}},
		{"unsupported comparison", RuleConfig{Nutrient: "sodium", Threshold: 1, Comparison: "less-than", Message: "m"}},
		{"blank message", RuleConfig{Nutrient: "sodium", Threshold: 1, Message: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRules([]RuleConfig{tt.rule})
			assert.ErrorIs(t, err, domain.ErrInvalidRule)
		})
	}
}

func TestLoadRulesFile(t *testing.T) {
	path := writeRulesFile(t, `
rules:
  - nutrient: Potassium (mg)
    threshold: 250
    comparison: greater-than
    message: Watch potassium.
  - nutrient: water
    threshold: 500
    message: Count fluids.
`)

	rules, err := LoadRulesFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, domain.KeyPotassium, rules[0].NutrientKey)
	assert.Equal(t, 250.0, rules[0].Threshold)
	assert.Equal(t, domain.KeyWater, rules[1].NutrientKey)
	assert.Equal(t, "Count fluids.", rules[1].Message)
}

func TestLoadRulesFile_Errors(t *testing.T) {
	_, err := LoadRulesFile("/nonexistent/rules.yaml")
	assert.Error(t, err)

	empty := writeRulesFile(t, "rules: []")
	_, err = LoadRulesFile(empty)
	assert.ErrorIs(t, err, domain.ErrInvalidRule)
}

package config

import (
	"fmt"

	"github.com/renalplate/backend/internal/domain"
	"github.com/spf13/viper"
)

// RuleConfig is the file form of an advisory rule. Nutrient accepts the
// canonical key or a short alias such as "potassium"; an empty comparison
// means greater-than.
type RuleConfig struct {
	Nutrient   string  `mapstructure:"nutrient"`
	Threshold  float64 `mapstructure:"threshold"`
	Comparison string  `mapstructure:"comparison"`
	Message    string  `mapstructure:"message"`
}

type rulesDocument struct {
	Rules []RuleConfig `mapstructure:"rules"`
}

// BuildRules converts and validates configured rules in order
func BuildRules(configs []RuleConfig) ([]domain.AdvisoryRule, error) {
	rules := make([]domain.AdvisoryRule, 0, len(configs))
	for i, rc := range configs {
		key, err := domain.ParseNutrientKey(rc.Nutrient)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w: %v", i, domain.ErrInvalidRule, err)
		}

		comparison := domain.Comparison(rc.Comparison)
		if comparison == "" {
			comparison = domain.ComparisonGreaterThan
		}

		rule := domain.AdvisoryRule{
			NutrientKey: key,
			Threshold:   rc.Threshold,
			Comparison:  comparison,
			Message:     rc.Message,
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// LoadRulesFile reads a YAML, JSON or TOML document with a top-level
// "rules" list. The format follows the file extension.
func LoadRulesFile(path string) ([]domain.AdvisoryRule, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var doc rulesDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode rules file: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s: %w: no rules defined", path, domain.ErrInvalidRule)
	}
	return BuildRules(doc.Rules)
}

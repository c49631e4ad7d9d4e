package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/renalplate/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RENALPLATE_ADVISORY_RULES_FILE", "")
	t.Setenv("RENALPLATE_LOG_FORMAT", "")
	t.Setenv("RENALPLATE_LOOKUP_MAX_RESULTS", "")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestLookupCmd_Table(t *testing.T) {
	out, err := runCmd(t, "lookup", "--provider", "builtin", "Banana, apple", "durian")
	require.NoError(t, err)

	assert.Contains(t, out, "Potassium (mg)")
	assert.Contains(t, out, "Banana (1 medium)")
	assert.Contains(t, out, "Consider lower-potassium alternatives")
	assert.Contains(t, out, "Apple (1 medium)")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "durian")
	assert.Contains(t, out, "no results")
}

func TestLookupCmd_JSON(t *testing.T) {
	out, err := runCmd(t, "lookup", "--provider", "builtin", "--json", "milk")
	require.NoError(t, err)

	var reports []domain.IntakeReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "milk", reports[0].Query)
	require.Len(t, reports[0].Results, 1)
	assert.Equal(t, domain.ResultFound, reports[0].Results[0].Kind)
	assert.Equal(t, "Milk (1 cup)", reports[0].Results[0].Name)
	require.NotNil(t, reports[0].Results[0].Assessment)
	assert.Len(t, reports[0].Results[0].Assessment.Advisories, 2)
}

func TestLookupCmd_MaxFlag(t *testing.T) {
	out, err := runCmd(t, "lookup", "--provider", "builtin", "--json", "--max", "1", "(1 cup")
	require.NoError(t, err)

	var reports []domain.IntakeReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Len(t, reports[0].Results, 1)
}

func TestLookupCmd_RequiresItems(t *testing.T) {
	_, err := runCmd(t, "lookup", "--provider", "builtin")
	assert.Error(t, err)

	_, err = runCmd(t, "lookup", "--provider", "builtin", " , ")
	assert.EqualError(t, err, "no food items given")
}

func TestLookupCmd_InvalidProvider(t *testing.T) {
	_, err := runCmd(t, "lookup", "--provider", "nope", "egg")
	assert.ErrorContains(t, err, "provider type")
}

func TestRulesCmd(t *testing.T) {
	out, err := runCmd(t, "rules", "--provider", "builtin")
	require.NoError(t, err)

	for _, rule := range domain.DefaultAdvisoryRules() {
		assert.Contains(t, out, rule.Message)
	}
	assert.Contains(t, out, "> 300")
}

func TestRulesCmd_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "rules:\n  - nutrient: sodium\n    threshold: 100\n    message: Go easy on salt.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := runCmd(t, "rules", "--provider", "builtin", "--rules", path, "--json")
	require.NoError(t, err)

	var rules []domain.AdvisoryRule
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.Equal(t, []domain.AdvisoryRule{{
		NutrientKey: domain.KeySodium,
		Threshold:   100,
		Comparison:  domain.ComparisonGreaterThan,
		Message:     "Go easy on salt.",
	}}, rules)
}

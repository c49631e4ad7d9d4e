package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/renalplate/backend/internal/domain"
)

const absentValue = "-"

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// renderReports prints one table row per result: the query, food name,
// portion, every canonical nutrient and the joined advisories.
func renderReports(w io.Writer, reports []domain.IntakeReport) error {
	tw := newTabWriter(w)

	header := []string{"Query", "Food", domain.PortionSizeKey}
	for _, key := range domain.NutrientKeys {
		header = append(header, string(key))
	}
	header = append(header, "Suggestions")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, report := range reports {
		for _, result := range report.Results {
			fmt.Fprintln(tw, strings.Join(resultRow(report.Query, result), "\t"))
		}
	}
	return tw.Flush()
}

func resultRow(query string, result domain.FoodQueryResult) []string {
	row := []string{query}

	switch result.Kind {
	case domain.ResultFound:
		row = append(row, result.Name, result.Nutrients.PortionSize())
		for _, key := range domain.NutrientKeys {
			row = append(row, formatValue(result.Nutrients, key))
		}
		return append(row, result.Assessment.Summary())
	case domain.ResultFailed:
		row = append(row, result.Name, absentValue)
	default:
		row = append(row, absentValue, absentValue)
	}

	for range domain.NutrientKeys {
		row = append(row, absentValue)
	}
	return append(row, result.Reason)
}

func formatValue(record *domain.NutrientRecord, key domain.NutrientKey) string {
	v, ok := record.Value(key)
	if !ok {
		return absentValue
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func renderRules(w io.Writer, rules []domain.AdvisoryRule) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "Nutrient\tThreshold\tMessage")
	for _, rule := range rules {
		fmt.Fprintf(tw, "%s\t> %s\t%s\n",
			rule.NutrientKey,
			strconv.FormatFloat(rule.Threshold, 'f', -1, 64),
			rule.Message)
	}
	return tw.Flush()
}

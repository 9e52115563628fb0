package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV.
type CSVFormatter struct{}

// Format generates CSV output for comparison results.
func (cf *CSVFormatter) Format(set *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total Income",
		"Taxable Income",
		"Tax Liability",
		"Effective Rate %",
		"Tax Diff from Base",
		"Tax % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(set.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range set.AlternativeResults {
		if err := writer.Write(cf.formatRow(&set.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TotalIncome.Decimal().StringFixed(2),
		result.TaxableIncome.Decimal().StringFixed(2),
		result.TaxLiability.Decimal().StringFixed(2),
		result.EffectiveRate.StringFixed(2),
		result.TaxDiffFromBase.Decimal().StringFixed(2),
		result.TaxPctFromBase.StringFixed(1),
	}
}

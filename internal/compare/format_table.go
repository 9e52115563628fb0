package compare

import (
	"fmt"
	"strings"

	"github.com/itrgo/itrgo/internal/domain"
)

// TableFormatter formats comparison results as a console table.
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios.
func (tf *TableFormatter) Format(set *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Employee: %s\n", set.EmployeeID))
	sb.WriteString(fmt.Sprintf("Tax Year: %s\n", set.TaxYear))
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", set.BaseScenarioName))
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Total Income",
		numWidth, "Taxable",
		numWidth, "Liability",
		numWidth, "Eff. Rate"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(set.BaseResult, nameWidth, numWidth))
	if len(set.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range set.AlternativeResults {
			sb.WriteString(tf.formatRow(&set.AlternativeResults[i], nameWidth, numWidth))
		}
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(set.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range set.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			symbol := tf.deltaSymbol(alt.TaxDiffFromBase)
			sb.WriteString(fmt.Sprintf("  Tax Impact:  %s₹%s (%s%%)\n",
				symbol,
				alt.TaxDiffFromBase.Decimal().Abs().StringFixed(2),
				alt.TaxPctFromBase.StringFixed(1)))
		}
		sb.WriteString("\n")
	}

	if len(set.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range set.Recommendations {
			sb.WriteString(fmt.Sprintf("  - %s\n", rec))
		}
	}
	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int) string {
	name := result.ScenarioName
	if len(name) > nameWidth {
		name = name[:nameWidth-3] + "..."
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, name,
		numWidth, tf.formatMoney(result.TotalIncome),
		numWidth, tf.formatMoney(result.TaxableIncome),
		numWidth, tf.formatMoney(result.TaxLiability),
		numWidth, result.EffectiveRate.StringFixed(2)+"%")
}

func (tf *TableFormatter) formatMoney(m domain.Money) string {
	return "₹" + m.Decimal().StringFixed(0)
}

// deltaSymbol reports the direction of a tax delta; a lower liability gets
// the minus sign the reader expects.
func (tf *TableFormatter) deltaSymbol(diff domain.Money) string {
	if diff.IsNegative() {
		return "-"
	}
	if diff.IsPositive() {
		return "+"
	}
	return ""
}

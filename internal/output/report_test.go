package output

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itrgo/itrgo/internal/calculation"
	"github.com/itrgo/itrgo/internal/config"
	"github.com/itrgo/itrgo/internal/domain"
)

func calculatedResult(t *testing.T) *domain.TaxCalculationResult {
	t.Helper()
	rules, err := config.NewRulesLoader().ForYear("2024-25")
	require.NoError(t, err)
	engine, err := calculation.NewEngine(rules)
	require.NoError(t, err)
	year, err := domain.ParseTaxYear("2024-25")
	require.NoError(t, err)

	result, err := engine.CalculateWithComparison(calculation.TaxCalculationInput{
		Regime:  domain.RegimeNew,
		TaxYear: year,
		Age:     35,
		SalaryIncomes: []domain.SalaryIncome{
			{BasicSalary: domain.FromInt(1_200_000)},
		},
		ProfessionalTaxPaid: domain.FromInt(2_400),
	})
	require.NoError(t, err)
	return result
}

func TestGenerateConsoleReport(t *testing.T) {
	result := calculatedResult(t)
	var buf bytes.Buffer

	require.NoError(t, NewReportGenerator(&buf).GenerateReport(result, "console"))
	out := buf.String()

	assert.Contains(t, out, "INCOME TAX COMPUTATION  2024-25  (new regime)")
	assert.Contains(t, out, "INCOME")
	assert.Contains(t, out, "EXEMPTIONS AND DEDUCTIONS")
	assert.Contains(t, out, "Deduction: standard_deduction")
	assert.Contains(t, out, "TOTAL TAX LIABILITY")
	assert.Contains(t, out, "₹71500.00")
	assert.Contains(t, out, "Professional Tax (paid separately)")
	assert.Contains(t, out, "REGIME COMPARISON")
}

func TestGenerateJSONReport(t *testing.T) {
	result := calculatedResult(t)
	var buf bytes.Buffer

	require.NoError(t, NewReportGenerator(&buf).GenerateReport(result, "json"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.InDelta(t, 71500.0, decoded["tax_liability"], 0.001)
}

func TestGenerateCSVReport(t *testing.T) {
	result := calculatedResult(t)
	var buf bytes.Buffer

	require.NoError(t, NewReportGenerator(&buf).GenerateReport(result, "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "TaxLiability")
	assert.Contains(t, lines[1], "2024-25")
	assert.Contains(t, lines[1], "71500")
}

func TestGenerateReportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewReportGenerator(&buf).GenerateReport(calculatedResult(t), "pdf")
	assert.ErrorContains(t, err, "unsupported format")
}

// Package output renders tax calculation results for the console and for
// machine consumers.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/itrgo/itrgo/internal/domain"
)

// ReportGenerator handles result rendering in various formats.
type ReportGenerator struct {
	Out io.Writer
}

// NewReportGenerator creates a report generator writing to out.
func NewReportGenerator(out io.Writer) *ReportGenerator {
	return &ReportGenerator{Out: out}
}

// GenerateReport renders a result in the named format.
func (rg *ReportGenerator) GenerateReport(result *domain.TaxCalculationResult, format string) error {
	switch format {
	case "console", "":
		return rg.GenerateConsoleReport(result)
	case "json":
		return rg.GenerateJSONReport(result)
	case "csv":
		return rg.GenerateCSVReport(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateConsoleReport renders a detailed human-readable report.
func (rg *ReportGenerator) GenerateConsoleReport(result *domain.TaxCalculationResult) error {
	w := rg.Out

	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintf(w, "INCOME TAX COMPUTATION  %s  (%s regime)\n", result.TaxYear.Label, result.Regime)
	fmt.Fprintln(w, strings.Repeat("=", 72))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "INCOME")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	rg.line(w, "Gross Salary", result.Breakdown.GrossSalary)
	rg.line(w, "Perquisite Value", result.Breakdown.PerquisiteValue)
	rg.line(w, "House Property", result.Breakdown.HousePropertyIncome)
	rg.line(w, "Capital Gains", result.Breakdown.CapitalGainsIncome)
	rg.line(w, "Retirement Benefits", result.Breakdown.RetirementTaxable)
	rg.line(w, "Other Income", result.Breakdown.OtherIncome)
	rg.line(w, "Total Income", result.TotalIncome)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "EXEMPTIONS AND DEDUCTIONS")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	rg.line(w, "Standard Deduction", result.Breakdown.StandardDeduction)
	rg.line(w, "HRA Exemption", result.Breakdown.HRAExemption)
	for _, code := range domain.AllowanceCodes {
		if amount, ok := result.Breakdown.AllowanceExemptions[code]; ok && !amount.IsZero() {
			rg.line(w, "Allowance: "+string(code), amount)
		}
	}
	for _, name := range sortedKeys(result.Breakdown.Deductions) {
		if amount := result.Breakdown.Deductions[name]; !amount.IsZero() {
			rg.line(w, "Deduction: "+name, amount)
		}
	}
	rg.line(w, "Total Exemptions", result.TotalExemptions)
	rg.line(w, "Total Deductions", result.TotalDeductions)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TAX")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	rg.line(w, "Taxable Income", result.TaxableIncome)
	for _, slab := range result.Breakdown.Slabs {
		if slab.Income.IsZero() {
			continue
		}
		label := fmt.Sprintf("Slab %s to %s @ %s",
			slab.From.Decimal().StringFixed(0), slab.To.Decimal().StringFixed(0), slab.Rate)
		rg.line(w, label, slab.Tax)
	}
	rg.line(w, "Slab Tax", result.TaxAmount)
	rg.line(w, "Capital Gains Tax", result.CapitalGainsTax)
	rg.line(w, "Rebate (87A)", result.Rebate.Neg())
	rg.line(w, "Surcharge", result.Surcharge)
	rg.line(w, "Health & Education Cess", result.Cess)
	rg.line(w, "TOTAL TAX LIABILITY", result.TaxLiability)
	fmt.Fprintln(w)

	if !result.ProfessionalTax.IsZero() {
		rg.line(w, "Professional Tax (paid separately)", result.ProfessionalTax)
		fmt.Fprintln(w)
	}

	if cmp := result.RegimeComparison; cmp != nil && cmp.Old != nil && cmp.New != nil {
		fmt.Fprintln(w, "REGIME COMPARISON")
		fmt.Fprintln(w, strings.Repeat("-", 40))
		rg.line(w, "Old Regime Liability", cmp.Old.TaxLiability)
		rg.line(w, "New Regime Liability", cmp.New.TaxLiability)
		fmt.Fprintf(w, "%-36s %s\n", "Recommended", cmp.Recommended)
		rg.line(w, "Savings", cmp.Savings)
		fmt.Fprintln(w)
	}
	return nil
}

// GenerateJSONReport marshals the full result with its breakdown.
func (rg *ReportGenerator) GenerateJSONReport(result *domain.TaxCalculationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(rg.Out, string(data))
	return err
}

func (rg *ReportGenerator) line(w io.Writer, label string, amount domain.Money) {
	fmt.Fprintf(w, "%-36s ₹%s\n", label, amount.Decimal().StringFixed(2))
}

func sortedKeys(m map[string]domain.Money) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

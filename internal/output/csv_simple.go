package output

import (
	"encoding/csv"
	"fmt"

	"github.com/itrgo/itrgo/internal/domain"
)

// GenerateCSVReport writes a one-row summary of the liability, suitable for
// collating many employees into one sheet.
func (rg *ReportGenerator) GenerateCSVReport(result *domain.TaxCalculationResult) error {
	w := csv.NewWriter(rg.Out)

	header := []string{
		"TaxYear", "Regime",
		"TotalIncome", "TotalExemptions", "TotalDeductions", "TaxableIncome",
		"SlabTax", "CapitalGainsTax", "Rebate", "Surcharge", "Cess",
		"TaxLiability",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := []string{
		result.TaxYear.Label,
		string(result.Regime),
		fixed(result.TotalIncome),
		fixed(result.TotalExemptions),
		fixed(result.TotalDeductions),
		fixed(result.TaxableIncome),
		fixed(result.TaxAmount),
		fixed(result.CapitalGainsTax),
		fixed(result.Rebate),
		fixed(result.Surcharge),
		fixed(result.Cess),
		fixed(result.TaxLiability),
	}
	if err := w.Write(row); err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	return nil
}

func fixed(m domain.Money) string {
	return m.Decimal().StringFixed(2)
}

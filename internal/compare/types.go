package compare

import (
	"github.com/shopspring/decimal"

	"github.com/itrgo/itrgo/internal/domain"
)

// ComparisonResult is one scenario's calculation with its key metrics.
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`
	Result       *domain.TaxCalculationResult `json:"result"`

	// Key metrics.
	TotalIncome   domain.Money    `json:"totalIncome"`
	TaxableIncome domain.Money    `json:"taxableIncome"`
	TaxLiability  domain.Money    `json:"taxLiability"`
	EffectiveRate decimal.Decimal `json:"effectiveRatePct"`

	// Deltas against the base scenario. Negative means the scenario pays
	// less tax than the base.
	TaxDiffFromBase domain.Money    `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
}

// ComparisonSet is a base scenario with its alternatives.
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	EmployeeID         string             `json:"employeeId"`
	TaxYear            string             `json:"taxYear"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts metrics from calculation results.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator.
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the standalone metrics for one scenario.
func (mc *MetricsCalculator) CalculateMetrics(name, description string, result *domain.TaxCalculationResult) ComparisonResult {
	out := ComparisonResult{
		ScenarioName:  name,
		Description:   description,
		Result:        result,
		TotalIncome:   result.TotalIncome,
		TaxableIncome: result.TaxableIncome,
		TaxLiability:  result.TaxLiability,
	}
	if result.TotalIncome.IsPositive() {
		out.EffectiveRate = result.TaxLiability.Decimal().
			Div(result.TotalIncome.Decimal()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return out
}

// CalculateComparison fills the delta metrics of a scenario against a base.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.TaxLiability.Sub(base.TaxLiability)
	if base.TaxLiability.IsPositive() {
		scenario.TaxPctFromBase = scenario.TaxDiffFromBase.Decimal().
			Div(base.TaxLiability.Decimal()).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	return scenario
}

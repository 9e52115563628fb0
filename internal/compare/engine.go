// Package compare runs what-if scenarios over a salary package and reports
// them side by side in table, CSV, or JSON form.
package compare

import (
	"context"
	"fmt"

	"github.com/itrgo/itrgo/internal/calculation"
	"github.com/itrgo/itrgo/internal/domain"
	"github.com/itrgo/itrgo/internal/transform"
)

// CompareEngine orchestrates scenario comparison over one base record.
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.Registry
}

// NewCompareEngine creates a comparison engine around a calculation engine.
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior.
type CompareOptions struct {
	BaseScenarioName string   // Display name for the unmodified record
	Templates        []string // Template names to apply as alternatives
}

// Compare calculates the base record and every requested template scenario.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	record *domain.SalaryPackageRecord,
	options CompareOptions,
) (*ComparisonSet, error) {
	if record == nil {
		return nil, fmt.Errorf("record is required for comparison")
	}
	ce.TemplateRegistry = transform.BuiltInTemplates(record, ce.CalcEngine.Rules)

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "current"
	}

	baseResult, err := ce.CalcEngine.Calculate(calculation.InputFromRecord(record))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	base := ce.MetricsCalculator.CalculateMetrics(baseName, "Package as recorded", baseResult)

	alternatives := make([]ComparisonResult, 0, len(options.Templates))
	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found, available: %v",
				templateName, ce.TemplateRegistry.Names())
		}

		modified, err := transform.ApplyTransforms(record, template.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		result, err := ce.CalcEngine.Calculate(calculation.InputFromRecord(modified))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}

		metrics := ce.MetricsCalculator.CalculateMetrics(template.Name, template.Description, result)
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(metrics, base))
	}

	set := &ComparisonSet{
		BaseScenarioName:   baseName,
		EmployeeID:         record.EmployeeID,
		TaxYear:            record.TaxYear.Label,
		BaseResult:         &base,
		AlternativeResults: alternatives,
	}
	set.Recommendations = ce.recommendations(set)
	return set, nil
}

// recommendations derives plain-language guidance from the deltas.
func (ce *CompareEngine) recommendations(set *ComparisonSet) []string {
	var out []string
	bestIdx := -1
	bestSaving := domain.Zero()
	for i, alt := range set.AlternativeResults {
		saving := alt.TaxDiffFromBase.Neg()
		if saving.GreaterThan(bestSaving) {
			bestSaving = saving
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		best := set.AlternativeResults[bestIdx]
		out = append(out, fmt.Sprintf("%s saves %s against the current package",
			best.ScenarioName, bestSaving))
	} else if len(set.AlternativeResults) > 0 {
		out = append(out, "No alternative scenario lowers the liability; the current package already wins")
	}
	return out
}

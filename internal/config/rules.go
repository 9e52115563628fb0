package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/itrgo/itrgo/internal/domain"
)

// RulesLoader loads and validates tax-year rule files.
type RulesLoader struct{}

// NewRulesLoader creates a new loader.
func NewRulesLoader() *RulesLoader {
	return &RulesLoader{}
}

// LoadFromFile reads a YAML rules file and validates it. A rules file that
// fails validation is fatal: silently defaulting would silently miscompute
// every affected taxpayer's liability.
func (rl *RulesLoader) LoadFromFile(filename string) (*domain.TaxYearRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}

	var rules domain.TaxYearRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	if err := rl.Validate(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// Validate checks structural soundness of a rule set.
func (rl *RulesLoader) Validate(rules *domain.TaxYearRules) error {
	if rules.Metadata.TaxYear.IsZero() {
		return fmt.Errorf("metadata.tax_year is required")
	}
	for _, regime := range []domain.TaxRegime{domain.RegimeOld, domain.RegimeNew} {
		regimeRules, ok := rules.Regimes[regime]
		if !ok {
			return fmt.Errorf("missing rules for %s regime", regime)
		}
		if err := validateSlabs(regime, regimeRules.Slabs); err != nil {
			return err
		}
		if !sort.SliceIsSorted(regimeRules.SurchargeSteps, func(i, j int) bool {
			return regimeRules.SurchargeSteps[i].Threshold.LessThan(regimeRules.SurchargeSteps[j].Threshold)
		}) {
			return fmt.Errorf("%s regime surcharge steps must be sorted by threshold", regime)
		}
	}
	if rules.CessRate.IsNegative() {
		return fmt.Errorf("cess rate cannot be negative")
	}
	if rules.Deductions.SeniorAge <= 0 {
		return fmt.Errorf("deductions.senior_age must be positive")
	}
	if !rules.Deductions.Section80CCeiling.IsPositive() {
		return fmt.Errorf("deductions.section_80c_ceiling must be positive")
	}
	if rules.Retirement.GratuityMonthDays <= 0 {
		return fmt.Errorf("retirement.gratuity_month_days must be positive")
	}
	if rules.HouseProperty.PreConstructionYears <= 0 {
		return fmt.Errorf("house_property.pre_construction_years must be positive")
	}
	return nil
}

func validateSlabs(regime domain.TaxRegime, slabs []domain.TaxSlab) error {
	if len(slabs) == 0 {
		return fmt.Errorf("%s regime has no slabs", regime)
	}
	if !slabs[0].Min.IsZero() {
		return fmt.Errorf("%s regime slabs must start at zero", regime)
	}
	for i, slab := range slabs {
		if slab.Rate.IsNegative() {
			return fmt.Errorf("%s regime slab %d has a negative rate", regime, i)
		}
		if slab.Max.LessThanOrEqual(slab.Min) {
			return fmt.Errorf("%s regime slab %d max must exceed min", regime, i)
		}
		if i > 0 && !slab.Min.Equal(slabs[i-1].Max) {
			return fmt.Errorf("%s regime slab %d does not continue from the previous slab", regime, i)
		}
	}
	return nil
}

// ForYear returns the rules for a tax year: a built-in default set. Years
// without built-in rules are a hard error; the caller then has to supply a
// rules file.
func (rl *RulesLoader) ForYear(label string) (*domain.TaxYearRules, error) {
	year, err := domain.ParseTaxYear(label)
	if err != nil {
		return nil, err
	}
	builder, ok := builtinRules[year.Label]
	if !ok {
		return nil, fmt.Errorf("no built-in rules for tax year %s; provide a rules file", year.Label)
	}
	rules := builder()
	if err := rl.Validate(rules); err != nil {
		return nil, fmt.Errorf("built-in rules for %s failed validation: %w", year.Label, err)
	}
	return rules, nil
}

var builtinRules = map[string]func() *domain.TaxYearRules{
	"2024-25": rules2024_25,
	"2025-26": rules2025_26,
}

// BuiltinYears lists the tax years with built-in rules, sorted.
func BuiltinYears() []string {
	years := make([]string, 0, len(builtinRules))
	for label := range builtinRules {
		years = append(years, label)
	}
	sort.Strings(years)
	return years
}

package transform

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/itrgo/itrgo/internal/domain"
)

// SwitchRegime produces the same package under the other tax regime. It is a
// what-if, so the record's regime-change gate does not apply to the copy.
type SwitchRegime struct {
	Target domain.TaxRegime
}

func (t SwitchRegime) Name() string { return "switch_regime" }

func (t SwitchRegime) Description() string {
	return fmt.Sprintf("Recompute the package under the %s regime", t.Target)
}

func (t SwitchRegime) Validate(base *domain.SalaryPackageRecord) error {
	if !t.Target.Valid() {
		return fmt.Errorf("invalid target regime %q", t.Target)
	}
	return nil
}

func (t SwitchRegime) Apply(base *domain.SalaryPackageRecord) (*domain.SalaryPackageRecord, error) {
	modified := base.DeepCopy()
	modified.Regime = t.Target
	modified.CalculationResult = nil
	return modified, nil
}

// SalaryRevision appends a mid-year revision that scales the latest
// revision's cash components by a raise percentage from a given date.
type SalaryRevision struct {
	EffectiveFrom time.Time
	RaisePercent  decimal.Decimal
}

func (t SalaryRevision) Name() string { return "salary_revision" }

func (t SalaryRevision) Description() string {
	return fmt.Sprintf("Apply a %s%% raise effective %s",
		t.RaisePercent.StringFixed(1), t.EffectiveFrom.Format("2006-01-02"))
}

func (t SalaryRevision) Validate(base *domain.SalaryPackageRecord) error {
	if t.EffectiveFrom.IsZero() {
		return fmt.Errorf("revision effective date is required")
	}
	if t.EffectiveFrom.Before(base.TaxYear.Start) || t.EffectiveFrom.After(base.TaxYear.End) {
		return fmt.Errorf("revision date %s falls outside tax year %s",
			t.EffectiveFrom.Format("2006-01-02"), base.TaxYear.Label)
	}
	if t.RaisePercent.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return fmt.Errorf("raise percent %s would eliminate the salary", t.RaisePercent)
	}
	return nil
}

func (t SalaryRevision) Apply(base *domain.SalaryPackageRecord) (*domain.SalaryPackageRecord, error) {
	modified := base.DeepCopy()

	latest := modified.LatestSalaryIncome()
	factor := decimal.NewFromInt(1).Add(t.RaisePercent.Div(decimal.NewFromInt(100)))

	revised := latest.Clone()
	revised.EffectiveFrom = t.EffectiveFrom
	revised.EffectiveTill = modified.TaxYear.End
	revised.BasicSalary = latest.BasicSalary.Mul(factor)
	revised.DearnessAllowance = latest.DearnessAllowance.Mul(factor)
	revised.HRAProvided = latest.HRAProvided.Mul(factor)
	revised.SpecialAllowance = latest.SpecialAllowance.Mul(factor)

	latestFrom := latest.EffectiveFrom
	if latestFrom.IsZero() {
		latestFrom = modified.TaxYear.Start
	}

	// A raise landing on or before the latest revision's first day leaves no
	// prior period to close; the revision is replaced outright.
	if len(modified.SalaryIncomes) == 0 || !t.EffectiveFrom.After(latestFrom) {
		if err := modified.UpdateLatestSalaryIncome(revised); err != nil {
			return nil, err
		}
		return modified, nil
	}

	// Otherwise close the latest revision the day before the raise lands.
	modified.SalaryIncomes[len(modified.SalaryIncomes)-1].EffectiveTill = t.EffectiveFrom.AddDate(0, 0, -1)
	if err := modified.AddSalaryIncome(revised); err != nil {
		return nil, err
	}
	return modified, nil
}

// TopUp80C raises the ELSS investment by a fixed amount, a common year-end
// tax-saving move. The statutory ceiling still caps the deduction downstream.
type TopUp80C struct {
	Amount domain.Money
}

func (t TopUp80C) Name() string { return "top_up_80c" }

func (t TopUp80C) Description() string {
	return fmt.Sprintf("Invest an additional %s under section 80C", t.Amount)
}

func (t TopUp80C) Validate(base *domain.SalaryPackageRecord) error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("top-up amount cannot be negative, got %s", t.Amount)
	}
	return nil
}

// Apply adds the top-up. A zero amount is a no-op so that a template computed
// from remaining 80C headroom still yields a comparable scenario when the
// ceiling is already reached.
func (t TopUp80C) Apply(base *domain.SalaryPackageRecord) (*domain.SalaryPackageRecord, error) {
	modified := base.DeepCopy()
	deductions := modified.Deductions
	deductions.Section80C.ELSSInvestment = deductions.Section80C.ELSSInvestment.Add(t.Amount)
	if err := modified.UpdateDeductions(deductions); err != nil {
		return nil, err
	}
	return modified, nil
}

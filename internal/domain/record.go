package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SalaryPackageRecord is the aggregate root binding one employee and tax year
// to every income and deduction component, the selected regime, and the
// cached calculation result. Salary revisions are append-only; every other
// component is replaced wholesale on update.
type SalaryPackageRecord struct {
	ID                 uuid.UUID `json:"id"`
	EmployeeID         string    `json:"employee_id"`
	OrganizationID     string    `json:"organization_id"`
	TaxYear            TaxYear   `json:"tax_year"`
	Age                int       `json:"age"`
	GovernmentEmployee bool      `json:"government_employee"`

	Regime              TaxRegime `json:"regime"`
	RegimeUpdateAllowed bool      `json:"regime_update_allowed"`

	SalaryIncomes []SalaryIncome      `json:"salary_incomes"`
	Deductions    TaxDeductions       `json:"deductions"`
	Perquisites   *Perquisites        `json:"perquisites,omitempty"`
	Retirement    *RetirementBenefits `json:"retirement,omitempty"`
	OtherIncome   *OtherIncome        `json:"other_income,omitempty"`

	ProfessionalTaxPaid Money `json:"professional_tax_paid"`

	CalculationResult *TaxCalculationResult `json:"calculation_result,omitempty"`
	LastCalculatedAt  *time.Time            `json:"last_calculated_at,omitempty"`

	Final       bool       `json:"is_final"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// NewSalaryPackageRecord creates a draft record with all-zero defaults for an
// (employee, tax year) pair.
func NewSalaryPackageRecord(employeeID, organizationID string, taxYear TaxYear, regime TaxRegime) (*SalaryPackageRecord, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("employee id is required")
	}
	if taxYear.IsZero() {
		return nil, fmt.Errorf("tax year is required")
	}
	if !regime.Valid() {
		return nil, fmt.Errorf("unknown tax regime %q", regime)
	}
	now := time.Now().UTC()
	return &SalaryPackageRecord{
		ID:                  uuid.New(),
		EmployeeID:          employeeID,
		OrganizationID:      organizationID,
		TaxYear:             taxYear,
		Regime:              regime,
		RegimeUpdateAllowed: true,
		SalaryIncomes:       []SalaryIncome{defaultSalaryIncome(taxYear)},
		CreatedAt:           now,
		UpdatedAt:           now,
		Version:             1,
	}, nil
}

func defaultSalaryIncome(taxYear TaxYear) SalaryIncome {
	return SalaryIncome{EffectiveFrom: taxYear.Start, EffectiveTill: taxYear.End}
}

func (r *SalaryPackageRecord) touch() {
	r.UpdatedAt = time.Now().UTC()
	r.CalculationResult = nil
	r.LastCalculatedAt = nil
}

// AddSalaryIncome appends a new revision, preserving insertion order.
func (r *SalaryPackageRecord) AddSalaryIncome(revision SalaryIncome) error {
	if err := revision.Validate(); err != nil {
		return err
	}
	r.SalaryIncomes = append(r.SalaryIncomes, revision)
	r.touch()
	return nil
}

// UpdateLatestSalaryIncome replaces the last revision; on an empty list it is
// equivalent to AddSalaryIncome.
func (r *SalaryPackageRecord) UpdateLatestSalaryIncome(revision SalaryIncome) error {
	if err := revision.Validate(); err != nil {
		return err
	}
	if len(r.SalaryIncomes) == 0 {
		r.SalaryIncomes = []SalaryIncome{revision}
	} else {
		r.SalaryIncomes[len(r.SalaryIncomes)-1] = revision
	}
	r.touch()
	return nil
}

// LatestSalaryIncome returns the last revision, synthesizing a zero-valued
// default when none exists. The revision list is never empty after any
// update operation.
func (r *SalaryPackageRecord) LatestSalaryIncome() SalaryIncome {
	if len(r.SalaryIncomes) == 0 {
		return defaultSalaryIncome(r.TaxYear)
	}
	return r.SalaryIncomes[len(r.SalaryIncomes)-1]
}

// UpdateDeductions replaces the deductions aggregate wholesale.
func (r *SalaryPackageRecord) UpdateDeductions(deductions TaxDeductions) error {
	if err := deductions.Validate(); err != nil {
		return err
	}
	r.Deductions = deductions
	r.touch()
	return nil
}

// UpdatePerquisites replaces the perquisites aggregate wholesale.
func (r *SalaryPackageRecord) UpdatePerquisites(perquisites *Perquisites) {
	r.Perquisites = perquisites
	r.touch()
}

// UpdateRetirementBenefits replaces the retirement aggregate wholesale.
func (r *SalaryPackageRecord) UpdateRetirementBenefits(benefits *RetirementBenefits) error {
	if err := benefits.Validate(); err != nil {
		return err
	}
	r.Retirement = benefits
	r.touch()
	return nil
}

// UpdateOtherIncome replaces the other-income aggregate wholesale.
func (r *SalaryPackageRecord) UpdateOtherIncome(income *OtherIncome) {
	r.OtherIncome = income
	r.touch()
}

// UpdateRegime switches the regime. The switch is gated by the record's
// regime-update flag; rejecting updates on finalized records is the calling
// service's policy, not the aggregate's.
func (r *SalaryPackageRecord) UpdateRegime(regime TaxRegime) error {
	if !regime.Valid() {
		return fmt.Errorf("unknown tax regime %q", regime)
	}
	if !r.RegimeUpdateAllowed {
		return fmt.Errorf("regime update is not allowed for this record")
	}
	r.Regime = regime
	r.touch()
	return nil
}

// Finalize freezes the record for the tax year.
func (r *SalaryPackageRecord) Finalize() {
	now := time.Now().UTC()
	r.Final = true
	r.SubmittedAt = &now
	r.RegimeUpdateAllowed = false
	r.UpdatedAt = now
}

// StoreResult caches a calculation result on the record.
func (r *SalaryPackageRecord) StoreResult(result *TaxCalculationResult) {
	now := time.Now().UTC()
	r.CalculationResult = result
	r.LastCalculatedAt = &now
	r.UpdatedAt = now
}

// DeepCopy returns an independent copy of the record, for what-if transforms
// that must not alias the original.
func (r *SalaryPackageRecord) DeepCopy() *SalaryPackageRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.SalaryIncomes = make([]SalaryIncome, len(r.SalaryIncomes))
	for i, revision := range r.SalaryIncomes {
		out.SalaryIncomes[i] = revision.Clone()
	}
	out.Deductions = r.Deductions.Clone()
	out.Perquisites = r.Perquisites.Clone()
	out.Retirement = r.Retirement.Clone()
	out.OtherIncome = r.OtherIncome.Clone()
	if r.LastCalculatedAt != nil {
		t := *r.LastCalculatedAt
		out.LastCalculatedAt = &t
	}
	if r.SubmittedAt != nil {
		t := *r.SubmittedAt
		out.SubmittedAt = &t
	}
	if r.CalculationResult != nil {
		result := *r.CalculationResult
		out.CalculationResult = &result
	}
	return &out
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AllowanceCode names a statutory salary allowance. Allowances are carried as
// a code->amount map so that adding a new allowance is a rules-data change,
// not a code change; the exemption cap for each code lives in TaxYearRules.
type AllowanceCode string

const (
	AllowanceHillsArea         AllowanceCode = "hills_area"
	AllowanceBorderArea        AllowanceCode = "border_area"
	AllowanceRemoteArea        AllowanceCode = "remote_area"
	AllowanceCounterInsurgency AllowanceCode = "counter_insurgency"
	AllowanceFieldArea         AllowanceCode = "field_area"
	AllowanceModifiedFieldArea AllowanceCode = "modified_field_area"
	AllowanceHighAltitude      AllowanceCode = "high_altitude"
	AllowanceIslandDuty        AllowanceCode = "island_duty"
	AllowanceTribalArea        AllowanceCode = "tribal_area"
	AllowanceUndergroundMines  AllowanceCode = "underground_mines"
	AllowanceTransportDisabled AllowanceCode = "transport_disabled"
	AllowanceTransportGeneral  AllowanceCode = "transport_general"
	AllowanceConveyance        AllowanceCode = "conveyance"
	AllowanceChildrenEducation AllowanceCode = "children_education"
	AllowanceHostel            AllowanceCode = "hostel"
	AllowanceEntertainment     AllowanceCode = "entertainment"
	AllowanceJudicial          AllowanceCode = "judicial"
	AllowanceTourTravel        AllowanceCode = "tour_travel"
	AllowanceDaily             AllowanceCode = "daily"
	AllowanceUniform           AllowanceCode = "uniform"
	AllowanceHelper            AllowanceCode = "helper"
	AllowanceAcademicResearch  AllowanceCode = "academic_research"
	AllowanceCityCompensatory  AllowanceCode = "city_compensatory"
	AllowanceOvertime          AllowanceCode = "overtime"
	AllowanceTiffinLunch       AllowanceCode = "tiffin_lunch"
	AllowanceServant           AllowanceCode = "servant"
	AllowanceWarden            AllowanceCode = "warden"
	AllowanceNonPracticing     AllowanceCode = "non_practicing"
	AllowanceProject           AllowanceCode = "project"
	AllowanceOther             AllowanceCode = "other"
)

// AllowanceCodes lists every known code in a stable order, for reporting.
var AllowanceCodes = []AllowanceCode{
	AllowanceHillsArea, AllowanceBorderArea, AllowanceRemoteArea,
	AllowanceCounterInsurgency, AllowanceFieldArea, AllowanceModifiedFieldArea,
	AllowanceHighAltitude, AllowanceIslandDuty, AllowanceTribalArea,
	AllowanceUndergroundMines, AllowanceTransportDisabled, AllowanceTransportGeneral,
	AllowanceConveyance, AllowanceChildrenEducation, AllowanceHostel,
	AllowanceEntertainment, AllowanceJudicial, AllowanceTourTravel,
	AllowanceDaily, AllowanceUniform, AllowanceHelper, AllowanceAcademicResearch,
	AllowanceCityCompensatory, AllowanceOvertime, AllowanceTiffinLunch,
	AllowanceServant, AllowanceWarden, AllowanceNonPracticing,
	AllowanceProject, AllowanceOther,
}

// SpecificAllowances maps allowance codes to the annual amount received.
// Absent codes mean the allowance was not paid.
type SpecificAllowances map[AllowanceCode]Money

// Total sums every allowance received.
func (sa SpecificAllowances) Total() Money {
	total := Zero()
	for _, amount := range sa {
		total = total.Add(amount)
	}
	return total
}

// ExemptTotal computes the exempt portion of each allowance under the active
// regime. The new regime keeps only the codes its rules flag as allowed.
func (sa SpecificAllowances) ExemptTotal(ctx CalcContext) Money {
	total := Zero()
	for code, amount := range sa {
		total = total.Add(sa.exemptFor(code, amount, ctx))
	}
	return total
}

// ExemptBreakdown reports the exempt portion per allowance code, omitting
// codes with nothing exempt.
func (sa SpecificAllowances) ExemptBreakdown(ctx CalcContext) map[AllowanceCode]Money {
	out := make(map[AllowanceCode]Money)
	for code, amount := range sa {
		exempt := sa.exemptFor(code, amount, ctx)
		if !exempt.IsZero() {
			out[code] = exempt
		}
	}
	return out
}

func (sa SpecificAllowances) exemptFor(code AllowanceCode, amount Money, ctx CalcContext) Money {
	rule, ok := ctx.Rules.Allowances[code]
	if !ok || amount.IsZero() {
		return Zero()
	}
	if !ctx.Regime.Allows(CategoryAllowanceExemption) && !rule.AllowedInNewRegime {
		return Zero()
	}
	if rule.FullyExempt {
		return amount
	}
	return amount.Min(rule.ExemptionCap)
}

// Clone returns an independent copy of the map.
func (sa SpecificAllowances) Clone() SpecificAllowances {
	if sa == nil {
		return nil
	}
	out := make(SpecificAllowances, len(sa))
	for code, amount := range sa {
		out[code] = amount
	}
	return out
}

// SalaryIncome is one revision of cash salary effective over a date range.
// A SalaryPackageRecord holds revisions in chronological insertion order.
type SalaryIncome struct {
	EffectiveFrom time.Time `json:"effective_from"`
	EffectiveTill time.Time `json:"effective_till"`

	BasicSalary        Money `json:"basic_salary"`
	DearnessAllowance  Money `json:"dearness_allowance"`
	HRAProvided        Money `json:"hra_provided"`
	SpecialAllowance   Money `json:"special_allowance"`
	Bonus              Money `json:"bonus"`
	Commission         Money `json:"commission"`
	Arrears            Money `json:"arrears"`

	EmployerPFContribution      Money `json:"employer_pf_contribution"`
	EmployeePFContribution      Money `json:"employee_pf_contribution"`
	EmployerPensionContribution Money `json:"employer_pension_contribution"`
	EmployeePensionContribution Money `json:"employee_pension_contribution"`

	SpecificAllowances SpecificAllowances `json:"specific_allowances"`
}

// Validate rejects a revision whose date range is inverted. That is a caller
// bug, not recoverable input noise.
func (s SalaryIncome) Validate() error {
	if s.EffectiveFrom.IsZero() || s.EffectiveTill.IsZero() {
		return nil
	}
	if s.EffectiveTill.Before(s.EffectiveFrom) {
		return fmt.Errorf("salary revision effective_till %s before effective_from %s",
			s.EffectiveTill.Format("2006-01-02"), s.EffectiveFrom.Format("2006-01-02"))
	}
	return nil
}

// BasicPlusDA is the salary base used by HRA, accommodation and gratuity
// formulas.
func (s SalaryIncome) BasicPlusDA() Money {
	return s.BasicSalary.Add(s.DearnessAllowance)
}

// CashTotal is the gross cash salary for the revision's full period:
// everything paid to the employee, excluding employer-side contributions.
func (s SalaryIncome) CashTotal() Money {
	return SumMoney(
		s.BasicSalary, s.DearnessAllowance, s.HRAProvided, s.SpecialAllowance,
		s.Bonus, s.Commission, s.Arrears, s.SpecificAllowances.Total(),
	)
}

// OverlapFraction returns the fraction of the tax year this revision covers,
// by day count. A revision with zero dates is treated as covering the whole
// year.
func (s SalaryIncome) OverlapFraction(year TaxYear) decimal.Decimal {
	if s.EffectiveFrom.IsZero() && s.EffectiveTill.IsZero() {
		return decimal.NewFromInt(1)
	}
	from := s.EffectiveFrom
	till := s.EffectiveTill
	if from.IsZero() || from.Before(year.Start) {
		from = year.Start
	}
	if till.IsZero() || till.After(year.End) {
		till = year.End
	}
	if till.Before(from) {
		return decimal.Zero
	}
	overlapDays := int(till.Sub(from).Hours()/24) + 1
	return decimal.NewFromInt(int64(overlapDays)).Div(decimal.NewFromInt(int64(year.Days())))
}

// ProratedCashTotal scales the revision's cash salary by its overlap with the
// tax year.
func (s SalaryIncome) ProratedCashTotal(year TaxYear) Money {
	return s.CashTotal().Mul(s.OverlapFraction(year))
}

// Clone returns an independent copy of the revision.
func (s SalaryIncome) Clone() SalaryIncome {
	out := s
	out.SpecificAllowances = s.SpecificAllowances.Clone()
	return out
}

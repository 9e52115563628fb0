package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccommodationType distinguishes how employer housing is provided.
type AccommodationType string

const (
	AccommodationOwned  AccommodationType = "owned"
	AccommodationLeased AccommodationType = "leased"
	AccommodationHotel  AccommodationType = "hotel"
)

// ParseAccommodationType maps a boundary string onto an accommodation type.
func ParseAccommodationType(s string) (AccommodationType, error) {
	switch AccommodationType(s) {
	case AccommodationOwned, AccommodationLeased, AccommodationHotel:
		return AccommodationType(s), nil
	default:
		return "", fmt.Errorf("unknown accommodation type %q", s)
	}
}

// CarUseType distinguishes car perquisite treatments.
type CarUseType string

const (
	CarUsePersonal CarUseType = "personal"
	CarUseOfficial CarUseType = "official"
	CarUseMixed    CarUseType = "mixed"
)

// AssetType classifies movable assets for usage and transfer valuation.
type AssetType string

const (
	AssetComputer AssetType = "computer"
	AssetCar      AssetType = "car"
	AssetOther    AssetType = "other"
)

// AccommodationPerquisite values employer-provided housing. Owned housing is
// a percentage of salary banded by city population; leased housing and hotel
// stays are the lower of actual cost and a salary fraction.
type AccommodationPerquisite struct {
	Type               AccommodationType `json:"type"`
	CityPopulation     int64             `json:"city_population"`
	RentPaidByEmployer Money             `json:"rent_paid_by_employer"`
	LicenseFees        Money             `json:"license_fees"`
	HotelCharges       Money             `json:"hotel_charges"`
	FurnitureCost      Money             `json:"furniture_cost"`
	FurnitureRent      Money             `json:"furniture_rent"`
	EmployeeRecovery   Money             `json:"employee_recovery"`
}

func (a *AccommodationPerquisite) value(ctx CalcContext, salaryBase Money) Money {
	if a == nil {
		return Zero()
	}
	rules := ctx.Rules.Perquisites.Accommodation

	var base Money
	switch {
	case ctx.GovernmentEmployee:
		// Government accommodation is valued at the license fee.
		base = a.LicenseFees
	case a.Type == AccommodationHotel:
		base = a.HotelCharges.Min(salaryBase.Mul(rules.HotelPct))
	case a.Type == AccommodationLeased:
		base = a.RentPaidByEmployer.Add(a.LicenseFees).Min(salaryBase.Mul(rules.LeasedPct))
	default:
		base = salaryBase.Mul(a.ownedPct(rules))
	}

	furniture := a.FurnitureCost.Mul(rules.FurniturePct).Add(a.FurnitureRent)
	return base.Add(furniture).SubFloor(a.EmployeeRecovery)
}

func (a *AccommodationPerquisite) ownedPct(rules AccommodationRules) decimal.Decimal {
	switch {
	case a.CityPopulation > rules.LargeCityPopulation:
		return rules.OwnedPctLargeCity
	case a.CityPopulation > rules.MidCityPopulation:
		return rules.OwnedPctMidCity
	default:
		return rules.OwnedPctSmallCity
	}
}

// CarPerquisite values an employer-provided car by use type and engine
// capacity.
type CarPerquisite struct {
	UseType          CarUseType `json:"use_type"`
	EngineCC         int        `json:"engine_cc"`
	Months           int        `json:"months"`
	ActualCost       Money      `json:"actual_cost"`
	DriverProvided   bool       `json:"driver_provided"`
	EmployeeRecovery Money      `json:"employee_recovery"`
}

func (c *CarPerquisite) value(ctx CalcContext) Money {
	if c == nil {
		return Zero()
	}
	rules := ctx.Rules.Perquisites.Car

	switch c.UseType {
	case CarUseOfficial:
		return Zero()
	case CarUsePersonal:
		return c.ActualCost.SubFloor(c.EmployeeRecovery)
	default:
		monthly := rules.SmallCarMonthly
		if c.EngineCC > rules.EngineCCThreshold {
			monthly = rules.LargeCarMonthly
		}
		value := monthly.MulInt(int64(c.Months))
		if c.DriverProvided {
			value = value.Add(rules.DriverMonthly.MulInt(int64(c.Months)))
		}
		return value.SubFloor(c.EmployeeRecovery)
	}
}

// MedicalReimbursement is employer reimbursement of medical expenses.
type MedicalReimbursement struct {
	AmountReimbursed Money `json:"amount_reimbursed"`
}

func (m *MedicalReimbursement) valuation(ctx CalcContext) (taxable, exempt Money) {
	if m == nil {
		return Zero(), Zero()
	}
	if ctx.Regime.Allows(CategoryAllowanceExemption) {
		exempt = m.AmountReimbursed.Min(ctx.Rules.Perquisites.MedicalReimbursementExemption)
	}
	return m.AmountReimbursed.Sub(exempt), exempt
}

// LTAPerquisite is leave travel assistance; exempt to the extent of actual
// travel cost under the old regime only.
type LTAPerquisite struct {
	AmountProvided   Money `json:"amount_provided"`
	ActualTravelCost Money `json:"actual_travel_cost"`
}

func (l *LTAPerquisite) valuation(ctx CalcContext) (taxable, exempt Money) {
	if l == nil {
		return Zero(), Zero()
	}
	if ctx.Regime.Allows(CategoryAllowanceExemption) {
		exempt = l.AmountProvided.Min(l.ActualTravelCost)
	}
	return l.AmountProvided.Sub(exempt), exempt
}

// InterestFreeLoan values an interest-free or concessional loan as the rate
// spread against the SBI benchmark over the outstanding principal.
type InterestFreeLoan struct {
	LoanAmount           Money           `json:"loan_amount"`
	OutstandingPrincipal Money           `json:"outstanding_principal"`
	CompanyRate          decimal.Decimal `json:"company_rate"`
	SBIRate              decimal.Decimal `json:"sbi_rate"`
	Months               int             `json:"months"`
}

func (l *InterestFreeLoan) value(ctx CalcContext) Money {
	if l == nil {
		return Zero()
	}
	// Small loans are not a perquisite at all.
	if l.LoanAmount.LessThanOrEqual(ctx.Rules.Perquisites.LoanExemptionThreshold) {
		return Zero()
	}
	spread := l.SBIRate.Sub(l.CompanyRate)
	if spread.IsNegative() {
		return Zero()
	}
	fraction := decimal.NewFromInt(int64(l.Months)).Div(decimal.NewFromInt(12))
	return l.OutstandingPrincipal.Mul(spread).Mul(fraction)
}

// ESOPPerquisite is the spread on exercised stock options.
type ESOPPerquisite struct {
	SharesExercised int64 `json:"shares_exercised"`
	ExercisePrice   Money `json:"exercise_price"`
	FairMarketValue Money `json:"fair_market_value"`
}

func (e *ESOPPerquisite) value() Money {
	if e == nil {
		return Zero()
	}
	perShare := e.FairMarketValue.SubFloor(e.ExercisePrice)
	return perShare.MulInt(e.SharesExercised)
}

// UtilitiesPerquisite is employer-paid gas, electricity, and water. When the
// supply comes from the employer's own resources, the measure is the
// employer's manufacturing cost rather than the billed amounts.
type UtilitiesPerquisite struct {
	GasAmount              Money `json:"gas_amount"`
	ElectricityAmount      Money `json:"electricity_amount"`
	WaterAmount            Money `json:"water_amount"`
	ManufacturingCost      Money `json:"manufacturing_cost"`
	EmployeeRecovery       Money `json:"employee_recovery"`
	ManufacturedByEmployer bool  `json:"manufactured_by_employer"`
}

func (u *UtilitiesPerquisite) value() Money {
	if u == nil {
		return Zero()
	}
	base := SumMoney(u.GasAmount, u.ElectricityAmount, u.WaterAmount)
	if u.ManufacturedByEmployer && u.ManufacturingCost.IsPositive() {
		base = u.ManufacturingCost
	}
	return base.SubFloor(u.EmployeeRecovery)
}

// FreeEducationPerquisite is schooling provided to the employee's children.
type FreeEducationPerquisite struct {
	CostPerChildMonthly Money `json:"cost_per_child_monthly"`
	Months              int   `json:"months"`
	Children            int   `json:"children"`
	EmployerMaintained  bool  `json:"employer_maintained"`
	EmployeeRecovery    Money `json:"employee_recovery"`
}

func (f *FreeEducationPerquisite) valuation(ctx CalcContext) (taxable, exempt Money) {
	if f == nil {
		return Zero(), Zero()
	}
	months := int64(f.Months)
	children := int64(f.Children)
	gross := f.CostPerChildMonthly.MulInt(months).MulInt(children)
	if f.EmployerMaintained {
		perChildCap := ctx.Rules.Perquisites.EducationExemptionPerChildMonthly
		exempt = f.CostPerChildMonthly.Min(perChildCap).MulInt(months).MulInt(children)
	}
	return gross.Sub(exempt).SubFloor(f.EmployeeRecovery), exempt
}

// MovableAssetUsage is personal use of an employer-owned movable asset.
type MovableAssetUsage struct {
	AssetType        AssetType `json:"asset_type"`
	AssetValue       Money     `json:"asset_value"`
	Months           int       `json:"months"`
	EmployeeRecovery Money     `json:"employee_recovery"`
}

func (m *MovableAssetUsage) value(ctx CalcContext) Money {
	if m == nil {
		return Zero()
	}
	// Computer and laptop use is exempt.
	if m.AssetType == AssetComputer {
		return Zero()
	}
	fraction := decimal.NewFromInt(int64(m.Months)).Div(decimal.NewFromInt(12))
	annual := m.AssetValue.Mul(ctx.Rules.Perquisites.MovableAssetUsagePct)
	return annual.Mul(fraction).SubFloor(m.EmployeeRecovery)
}

// MovableAssetTransfer is the transfer of an employer asset to the employee
// at a price below its depreciated value.
type MovableAssetTransfer struct {
	AssetType    AssetType `json:"asset_type"`
	OriginalCost Money     `json:"original_cost"`
	YearsOfUse   int       `json:"years_of_use"`
	AmountPaid   Money     `json:"amount_paid"`
}

func (m *MovableAssetTransfer) value(ctx CalcContext) Money {
	if m == nil {
		return Zero()
	}
	rule, ok := ctx.Rules.Perquisites.AssetDepreciation[m.AssetType]
	if !ok {
		rule = ctx.Rules.Perquisites.AssetDepreciation[AssetOther]
	}

	depreciated := m.OriginalCost
	switch rule.Method {
	case "wdv":
		factor := decimal.NewFromInt(1).Sub(rule.Rate).Pow(decimal.NewFromInt(int64(m.YearsOfUse)))
		depreciated = m.OriginalCost.Mul(factor)
	default:
		straightLine := m.OriginalCost.Mul(rule.Rate).MulInt(int64(m.YearsOfUse))
		depreciated = m.OriginalCost.SubFloor(straightLine)
	}
	return depreciated.SubFloor(m.AmountPaid)
}

// LunchRefreshment is employer-provided meals.
type LunchRefreshment struct {
	CostPaidByEmployer Money `json:"cost_paid_by_employer"`
	EmployeeRecovery   Money `json:"employee_recovery"`
}

func (l *LunchRefreshment) value() Money {
	if l == nil {
		return Zero()
	}
	return l.CostPaidByEmployer.SubFloor(l.EmployeeRecovery)
}

// GiftVoucherPerquisite is gifts and vouchers; a fixed slice is exempt.
type GiftVoucherPerquisite struct {
	Amount Money `json:"amount"`
}

func (g *GiftVoucherPerquisite) valuation(ctx CalcContext) (taxable, exempt Money) {
	if g == nil {
		return Zero(), Zero()
	}
	exempt = g.Amount.Min(ctx.Rules.Perquisites.GiftVoucherExemption)
	return g.Amount.Sub(exempt), exempt
}

// MonetaryBenefitsPerquisite is any other monetary benefit, fully taxable.
type MonetaryBenefitsPerquisite struct {
	Amount      Money  `json:"amount"`
	Description string `json:"description"`
}

func (m *MonetaryBenefitsPerquisite) value() Money {
	if m == nil {
		return Zero()
	}
	return m.Amount
}

// ClubExpensesPerquisite is employer-paid club membership and expenses.
type ClubExpensesPerquisite struct {
	Amount           Money `json:"amount"`
	EmployeeRecovery Money `json:"employee_recovery"`
}

func (c *ClubExpensesPerquisite) value() Money {
	if c == nil {
		return Zero()
	}
	return c.Amount.SubFloor(c.EmployeeRecovery)
}

// DomesticHelpPerquisite is employer-paid domestic staff wages.
type DomesticHelpPerquisite struct {
	Wages            Money `json:"wages"`
	EmployeeRecovery Money `json:"employee_recovery"`
}

func (d *DomesticHelpPerquisite) value() Money {
	if d == nil {
		return Zero()
	}
	return d.Wages.SubFloor(d.EmployeeRecovery)
}

// Perquisites aggregates every benefit in kind. A nil sub-entity means the
// benefit was not provided this period; for calculation that collapses to a
// zero contribution.
type Perquisites struct {
	Accommodation        *AccommodationPerquisite    `json:"accommodation,omitempty"`
	Car                  *CarPerquisite              `json:"car,omitempty"`
	MedicalReimbursement *MedicalReimbursement       `json:"medical_reimbursement,omitempty"`
	LTA                  *LTAPerquisite              `json:"lta,omitempty"`
	InterestFreeLoan     *InterestFreeLoan           `json:"interest_free_loan,omitempty"`
	ESOP                 *ESOPPerquisite             `json:"esop,omitempty"`
	Utilities            *UtilitiesPerquisite        `json:"utilities,omitempty"`
	FreeEducation        *FreeEducationPerquisite    `json:"free_education,omitempty"`
	MovableAssetUsage    *MovableAssetUsage          `json:"movable_asset_usage,omitempty"`
	MovableAssetTransfer *MovableAssetTransfer       `json:"movable_asset_transfer,omitempty"`
	LunchRefreshment     *LunchRefreshment           `json:"lunch_refreshment,omitempty"`
	GiftVoucher          *GiftVoucherPerquisite      `json:"gift_voucher,omitempty"`
	MonetaryBenefits     *MonetaryBenefitsPerquisite `json:"monetary_benefits,omitempty"`
	ClubExpenses         *ClubExpensesPerquisite     `json:"club_expenses,omitempty"`
	DomesticHelp         *DomesticHelpPerquisite     `json:"domestic_help,omitempty"`
}

// TaxableTotal sums the taxable value of every provided perquisite.
// salaryBase is basic plus DA, used by the accommodation formula.
func (p *Perquisites) TaxableTotal(ctx CalcContext, salaryBase Money) Money {
	taxable, _ := p.totals(ctx, salaryBase)
	return taxable
}

// ExemptTotal sums the exempt slices (LTA, gift voucher, medical, education).
func (p *Perquisites) ExemptTotal(ctx CalcContext, salaryBase Money) Money {
	_, exempt := p.totals(ctx, salaryBase)
	return exempt
}

func (p *Perquisites) totals(ctx CalcContext, salaryBase Money) (taxable, exempt Money) {
	if p == nil {
		return Zero(), Zero()
	}
	breakdown := p.Breakdown(ctx, salaryBase)
	taxable, exempt = Zero(), Zero()
	for _, line := range breakdown {
		taxable = taxable.Add(line.Taxable)
		exempt = exempt.Add(line.Exempt)
	}
	return taxable, exempt
}

// Clone returns an independent copy of the aggregate and its sub-entities.
func (p *Perquisites) Clone() *Perquisites {
	if p == nil {
		return nil
	}
	out := &Perquisites{}
	if p.Accommodation != nil {
		v := *p.Accommodation
		out.Accommodation = &v
	}
	if p.Car != nil {
		v := *p.Car
		out.Car = &v
	}
	if p.MedicalReimbursement != nil {
		v := *p.MedicalReimbursement
		out.MedicalReimbursement = &v
	}
	if p.LTA != nil {
		v := *p.LTA
		out.LTA = &v
	}
	if p.InterestFreeLoan != nil {
		v := *p.InterestFreeLoan
		out.InterestFreeLoan = &v
	}
	if p.ESOP != nil {
		v := *p.ESOP
		out.ESOP = &v
	}
	if p.Utilities != nil {
		v := *p.Utilities
		out.Utilities = &v
	}
	if p.FreeEducation != nil {
		v := *p.FreeEducation
		out.FreeEducation = &v
	}
	if p.MovableAssetUsage != nil {
		v := *p.MovableAssetUsage
		out.MovableAssetUsage = &v
	}
	if p.MovableAssetTransfer != nil {
		v := *p.MovableAssetTransfer
		out.MovableAssetTransfer = &v
	}
	if p.LunchRefreshment != nil {
		v := *p.LunchRefreshment
		out.LunchRefreshment = &v
	}
	if p.GiftVoucher != nil {
		v := *p.GiftVoucher
		out.GiftVoucher = &v
	}
	if p.MonetaryBenefits != nil {
		v := *p.MonetaryBenefits
		out.MonetaryBenefits = &v
	}
	if p.ClubExpenses != nil {
		v := *p.ClubExpenses
		out.ClubExpenses = &v
	}
	if p.DomesticHelp != nil {
		v := *p.DomesticHelp
		out.DomesticHelp = &v
	}
	return out
}

// PerquisiteLine is one benefit's taxable and exempt value for reporting.
type PerquisiteLine struct {
	Taxable Money `json:"taxable"`
	Exempt  Money `json:"exempt"`
}

// Breakdown reports per-benefit taxable and exempt values, omitting benefits
// that were not provided.
func (p *Perquisites) Breakdown(ctx CalcContext, salaryBase Money) map[string]PerquisiteLine {
	out := make(map[string]PerquisiteLine)
	if p == nil {
		return out
	}
	add := func(name string, taxable, exempt Money, provided bool) {
		if provided {
			out[name] = PerquisiteLine{Taxable: taxable, Exempt: exempt}
		}
	}

	add("accommodation", p.Accommodation.value(ctx, salaryBase), Zero(), p.Accommodation != nil)
	add("car", p.Car.value(ctx), Zero(), p.Car != nil)

	medTaxable, medExempt := p.MedicalReimbursement.valuation(ctx)
	add("medical_reimbursement", medTaxable, medExempt, p.MedicalReimbursement != nil)

	ltaTaxable, ltaExempt := p.LTA.valuation(ctx)
	add("lta", ltaTaxable, ltaExempt, p.LTA != nil)

	add("interest_free_loan", p.InterestFreeLoan.value(ctx), Zero(), p.InterestFreeLoan != nil)
	add("esop", p.ESOP.value(), Zero(), p.ESOP != nil)
	add("utilities", p.Utilities.value(), Zero(), p.Utilities != nil)

	eduTaxable, eduExempt := p.FreeEducation.valuation(ctx)
	add("free_education", eduTaxable, eduExempt, p.FreeEducation != nil)

	add("movable_asset_usage", p.MovableAssetUsage.value(ctx), Zero(), p.MovableAssetUsage != nil)
	add("movable_asset_transfer", p.MovableAssetTransfer.value(ctx), Zero(), p.MovableAssetTransfer != nil)
	add("lunch_refreshment", p.LunchRefreshment.value(), Zero(), p.LunchRefreshment != nil)

	giftTaxable, giftExempt := p.GiftVoucher.valuation(ctx)
	add("gift_voucher", giftTaxable, giftExempt, p.GiftVoucher != nil)

	add("monetary_benefits", p.MonetaryBenefits.value(), Zero(), p.MonetaryBenefits != nil)
	add("club_expenses", p.ClubExpenses.value(), Zero(), p.ClubExpenses != nil)
	add("domestic_help", p.DomesticHelp.value(), Zero(), p.DomesticHelp != nil)

	return out
}

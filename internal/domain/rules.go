package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TaxYearRules carries every statutory rate, slab, and rupee limit for one
// tax year. It is loaded from YAML (or built-in defaults) and injected into
// the calculation engine so that historical years stay computable after the
// current year's rules change. Nothing in the calculators hard-codes a limit.
type TaxYearRules struct {
	Metadata      RulesMetadata              `yaml:"metadata" json:"metadata"`
	Regimes       map[TaxRegime]RegimeRules  `yaml:"regimes" json:"regimes"`
	CessRate      decimal.Decimal            `yaml:"cess_rate" json:"cess_rate"`
	Deductions    DeductionLimits            `yaml:"deductions" json:"deductions"`
	Allowances    map[AllowanceCode]AllowanceRule `yaml:"allowances" json:"allowances"`
	Perquisites   PerquisiteRules            `yaml:"perquisites" json:"perquisites"`
	CapitalGains  CapitalGainsRules          `yaml:"capital_gains" json:"capital_gains"`
	Retirement    RetirementLimits           `yaml:"retirement" json:"retirement"`
	HouseProperty HousePropertyRules         `yaml:"house_property" json:"house_property"`
	OtherIncome   OtherIncomeRules           `yaml:"other_income" json:"other_income"`
}

// RulesMetadata describes the provenance of a rule set.
type RulesMetadata struct {
	TaxYear     TaxYear `yaml:"tax_year" json:"tax_year"`
	LastUpdated string  `yaml:"last_updated" json:"last_updated"`
	Description string  `yaml:"description" json:"description"`
}

// RegimeRules holds the slab table and regime-specific figures for one
// regime.
type RegimeRules struct {
	Slabs             []TaxSlab       `yaml:"slabs" json:"slabs"`
	StandardDeduction Money           `yaml:"standard_deduction" json:"standard_deduction"`
	RebateThreshold   Money           `yaml:"rebate_threshold" json:"rebate_threshold"`
	RebateCap         Money           `yaml:"rebate_cap" json:"rebate_cap"`
	SurchargeSteps    []SurchargeStep `yaml:"surcharge_steps" json:"surcharge_steps"`
}

// TaxSlab is one progressive bracket. Max is exclusive of the next slab's
// income; the top slab uses a large sentinel Max.
type TaxSlab struct {
	Min  Money           `yaml:"min" json:"min"`
	Max  Money           `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// SurchargeStep applies Rate to tax when total income exceeds Threshold.
// Steps must be sorted by ascending Threshold.
type SurchargeStep struct {
	Threshold Money           `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// DeductionLimits holds Chapter VI-A ceilings and related figures.
type DeductionLimits struct {
	// Single authoritative ceiling shared across 80C, 80CCC and 80CCD(1).
	Section80CCeiling     Money `yaml:"section_80c_ceiling" json:"section_80c_ceiling"`
	Section80CCD1BLimit   Money `yaml:"section_80ccd_1b_limit" json:"section_80ccd_1b_limit"`
	// Employer NPS contribution deduction as a fraction of basic + DA.
	Section80CCD2Pct     decimal.Decimal `yaml:"section_80ccd_2_pct" json:"section_80ccd_2_pct"`
	Section80CCD2PctGovt decimal.Decimal `yaml:"section_80ccd_2_pct_govt" json:"section_80ccd_2_pct_govt"`

	Section80D Section80DLimits `yaml:"section_80d" json:"section_80d"`

	Section80DDNormal     Money           `yaml:"section_80dd_normal" json:"section_80dd_normal"`
	Section80DDSevere     Money           `yaml:"section_80dd_severe" json:"section_80dd_severe"`
	SevereDisabilityPct   decimal.Decimal `yaml:"severe_disability_pct" json:"severe_disability_pct"`
	Section80DDBLimit       Money `yaml:"section_80ddb_limit" json:"section_80ddb_limit"`
	Section80DDBSeniorLimit Money `yaml:"section_80ddb_senior_limit" json:"section_80ddb_senior_limit"`

	Section80EEBLimit       Money     `yaml:"section_80eeb_limit" json:"section_80eeb_limit"`
	Section80EEBWindowStart time.Time `yaml:"section_80eeb_window_start" json:"section_80eeb_window_start"`
	Section80EEBWindowEnd   time.Time `yaml:"section_80eeb_window_end" json:"section_80eeb_window_end"`

	// Qualifying-limit 80G buckets are capped at this fraction of adjusted
	// gross total income.
	Section80GQualifyingPct decimal.Decimal `yaml:"section_80g_qualifying_pct" json:"section_80g_qualifying_pct"`

	Section80TTALimit Money `yaml:"section_80tta_limit" json:"section_80tta_limit"`
	Section80TTBLimit Money `yaml:"section_80ttb_limit" json:"section_80ttb_limit"`

	HRAMetroPct    decimal.Decimal `yaml:"hra_metro_pct" json:"hra_metro_pct"`
	HRANonMetroPct decimal.Decimal `yaml:"hra_non_metro_pct" json:"hra_non_metro_pct"`
	HRARentExcessPct decimal.Decimal `yaml:"hra_rent_excess_pct" json:"hra_rent_excess_pct"`

	// Age at and above which senior-citizen limits apply.
	SeniorAge int `yaml:"senior_age" json:"senior_age"`

	ProfessionalTaxCap Money `yaml:"professional_tax_cap" json:"professional_tax_cap"`
}

// Section80DLimits holds health-insurance premium ceilings by band.
type Section80DLimits struct {
	SelfLimit            Money `yaml:"self_limit" json:"self_limit"`
	SelfSeniorLimit      Money `yaml:"self_senior_limit" json:"self_senior_limit"`
	ParentLimit          Money `yaml:"parent_limit" json:"parent_limit"`
	ParentSeniorLimit    Money `yaml:"parent_senior_limit" json:"parent_senior_limit"`
	PreventiveCheckupCap Money `yaml:"preventive_checkup_cap" json:"preventive_checkup_cap"`
}

// AllowanceRule describes how one named allowance is exempted.
type AllowanceRule struct {
	// Annual exemption cap. Ignored when FullyExempt is set.
	ExemptionCap Money `yaml:"exemption_cap" json:"exemption_cap"`
	// Exempt to the full extent received (expense-linked allowances).
	FullyExempt bool `yaml:"fully_exempt" json:"fully_exempt"`
	// A handful of allowances stay exempt under the new regime.
	AllowedInNewRegime bool `yaml:"allowed_in_new_regime" json:"allowed_in_new_regime"`
}

// PerquisiteRules holds the statutory valuation tables for benefits in kind.
type PerquisiteRules struct {
	Accommodation AccommodationRules `yaml:"accommodation" json:"accommodation"`
	Car           CarRules           `yaml:"car" json:"car"`

	// Loans at or under this principal are not a perquisite.
	LoanExemptionThreshold Money `yaml:"loan_exemption_threshold" json:"loan_exemption_threshold"`

	EducationExemptionPerChildMonthly Money `yaml:"education_exemption_per_child_monthly" json:"education_exemption_per_child_monthly"`
	GiftVoucherExemption              Money `yaml:"gift_voucher_exemption" json:"gift_voucher_exemption"`
	MedicalReimbursementExemption     Money `yaml:"medical_reimbursement_exemption" json:"medical_reimbursement_exemption"`

	// Annual usage value of employer-owned movable assets as a fraction of
	// original cost.
	MovableAssetUsagePct decimal.Decimal `yaml:"movable_asset_usage_pct" json:"movable_asset_usage_pct"`

	AssetDepreciation map[AssetType]AssetDepreciationRule `yaml:"asset_depreciation" json:"asset_depreciation"`
}

// AccommodationRules values employer-provided housing. Owned-accommodation
// percentages are banded by the city's population.
type AccommodationRules struct {
	LargeCityPopulation int64 `yaml:"large_city_population" json:"large_city_population"`
	MidCityPopulation   int64 `yaml:"mid_city_population" json:"mid_city_population"`

	OwnedPctLargeCity decimal.Decimal `yaml:"owned_pct_large_city" json:"owned_pct_large_city"`
	OwnedPctMidCity   decimal.Decimal `yaml:"owned_pct_mid_city" json:"owned_pct_mid_city"`
	OwnedPctSmallCity decimal.Decimal `yaml:"owned_pct_small_city" json:"owned_pct_small_city"`

	// Leased housing: lower of actual rent and this fraction of salary.
	LeasedPct decimal.Decimal `yaml:"leased_pct" json:"leased_pct"`
	// Hotel stays: lower of actual charges and this fraction of salary.
	HotelPct decimal.Decimal `yaml:"hotel_pct" json:"hotel_pct"`
	// Employer-owned furniture: this fraction of original cost per year.
	FurniturePct decimal.Decimal `yaml:"furniture_pct" json:"furniture_pct"`
}

// CarRules values employer-provided cars for mixed use with fixed monthly
// figures banded by engine capacity.
type CarRules struct {
	EngineCCThreshold int   `yaml:"engine_cc_threshold" json:"engine_cc_threshold"`
	SmallCarMonthly   Money `yaml:"small_car_monthly" json:"small_car_monthly"`
	LargeCarMonthly   Money `yaml:"large_car_monthly" json:"large_car_monthly"`
	DriverMonthly     Money `yaml:"driver_monthly" json:"driver_monthly"`
}

// AssetDepreciationRule describes how a transferred movable asset is
// depreciated before the balance is taxed.
type AssetDepreciationRule struct {
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
	// "wdv" (written-down value) or "slm" (straight line).
	Method string `yaml:"method" json:"method"`
}

// CapitalGainsRules holds the flat rates applied per bucket. Capital gains
// never enter the slab computation.
type CapitalGainsRules struct {
	STCG111ARate     decimal.Decimal `yaml:"stcg_111a_rate" json:"stcg_111a_rate"`
	STCGOtherRate    decimal.Decimal `yaml:"stcg_other_rate" json:"stcg_other_rate"`
	STCGDebtMFRate   decimal.Decimal `yaml:"stcg_debt_mf_rate" json:"stcg_debt_mf_rate"`
	LTCG112ARate     decimal.Decimal `yaml:"ltcg_112a_rate" json:"ltcg_112a_rate"`
	LTCG112AExemption Money          `yaml:"ltcg_112a_exemption" json:"ltcg_112a_exemption"`
	LTCGOtherRate    decimal.Decimal `yaml:"ltcg_other_rate" json:"ltcg_other_rate"`
	LTCGDebtMFRate   decimal.Decimal `yaml:"ltcg_debt_mf_rate" json:"ltcg_debt_mf_rate"`
}

// RetirementLimits holds retirement-benefit exemption caps and fractions.
type RetirementLimits struct {
	GratuityExemptionCap Money `yaml:"gratuity_exemption_cap" json:"gratuity_exemption_cap"`
	// Gratuity formula: GratuityDays/GratuityMonthDays of last drawn salary
	// per completed year of service.
	GratuityDays      int `yaml:"gratuity_days" json:"gratuity_days"`
	GratuityMonthDays int `yaml:"gratuity_month_days" json:"gratuity_month_days"`

	LeaveEncashmentCap       Money `yaml:"leave_encashment_cap" json:"leave_encashment_cap"`
	LeaveEncashmentMonthsCap int   `yaml:"leave_encashment_months_cap" json:"leave_encashment_months_cap"`

	VRSExemptionCap Money `yaml:"vrs_exemption_cap" json:"vrs_exemption_cap"`
	RetrenchmentCap Money `yaml:"retrenchment_cap" json:"retrenchment_cap"`

	CommutedExemptWithGratuity    decimal.Decimal `yaml:"commuted_exempt_with_gratuity" json:"commuted_exempt_with_gratuity"`
	CommutedExemptWithoutGratuity decimal.Decimal `yaml:"commuted_exempt_without_gratuity" json:"commuted_exempt_without_gratuity"`
}

// HousePropertyRules holds house-property deduction figures.
type HousePropertyRules struct {
	StandardDeductionPct   decimal.Decimal `yaml:"standard_deduction_pct" json:"standard_deduction_pct"`
	SelfOccupiedInterestCap Money          `yaml:"self_occupied_interest_cap" json:"self_occupied_interest_cap"`
	LossSetOffCap           Money          `yaml:"loss_set_off_cap" json:"loss_set_off_cap"`
	PreConstructionYears    int            `yaml:"pre_construction_years" json:"pre_construction_years"`
}

// OtherIncomeRules holds miscellaneous-income figures.
type OtherIncomeRules struct {
	// Gifts above this threshold are taxable in full.
	GiftExemptionThreshold Money `yaml:"gift_exemption_threshold" json:"gift_exemption_threshold"`
}

// ForRegime returns the regime's rule block. A missing regime block is a
// configuration error, never silently defaulted.
func (r *TaxYearRules) ForRegime(regime TaxRegime) (RegimeRules, error) {
	if !regime.Valid() {
		return RegimeRules{}, fmt.Errorf("unknown tax regime %q", regime)
	}
	rules, ok := r.Regimes[regime]
	if !ok {
		return RegimeRules{}, fmt.Errorf("tax year %s has no rules for regime %q", r.Metadata.TaxYear, regime)
	}
	return rules, nil
}

// IsSenior reports whether the age falls in the senior-citizen band.
// The boundary age itself is senior.
func (d DeductionLimits) IsSenior(age int) bool {
	return age >= d.SeniorAge
}

// CalcContext bundles the per-calculation parameters every component
// calculator needs: the regime gate, the taxpayer's age and category, and the
// injected rule tables. It is plain data; calculators stay pure functions of
// their receiver plus this context.
type CalcContext struct {
	Regime             TaxRegime
	Age                int
	GovernmentEmployee bool
	Rules              *TaxYearRules
}

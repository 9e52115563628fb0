package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Section80C holds the thirteen eligible investment instruments. The
// combined ceiling is shared with 80CCC and 80CCD(1); see
// TaxDeductions.Section80CCombined.
type Section80C struct {
	LifeInsurancePremium Money `json:"life_insurance_premium"`
	EPFContribution      Money `json:"epf_contribution"`
	PPFContribution      Money `json:"ppf_contribution"`
	ELSSInvestment       Money `json:"elss_investment"`
	NSCInvestment        Money `json:"nsc_investment"`
	TaxSavingFD          Money `json:"tax_saving_fd"`
	HomeLoanPrincipal    Money `json:"home_loan_principal"`
	TuitionFees          Money `json:"tuition_fees"`
	SukanyaSamriddhi     Money `json:"sukanya_samriddhi"`
	ULIPPremium          Money `json:"ulip_premium"`
	SeniorCitizenSavings Money `json:"senior_citizen_savings"`
	PostOfficeDeposit    Money `json:"post_office_deposit"`
	StampDutyPaid        Money `json:"stamp_duty_paid"`
}

// ContributionSum is the raw, uncapped sum of every instrument.
func (s Section80C) ContributionSum() Money {
	return SumMoney(
		s.LifeInsurancePremium, s.EPFContribution, s.PPFContribution,
		s.ELSSInvestment, s.NSCInvestment, s.TaxSavingFD, s.HomeLoanPrincipal,
		s.TuitionFees, s.SukanyaSamriddhi, s.ULIPPremium,
		s.SeniorCitizenSavings, s.PostOfficeDeposit, s.StampDutyPaid,
	)
}

// Section80D holds health-insurance premiums for self plus family and for
// parents. Limits band on age; the boundary age is senior.
type Section80D struct {
	SelfFamilyPremium Money `json:"self_family_premium"`
	ParentPremium     Money `json:"parent_premium"`
	PreventiveCheckup Money `json:"preventive_checkup"`
	ParentAge         int   `json:"parent_age"`
}

// EligibleDeduction clamps each bucket at its banded limit. The preventive
// checkup rides inside the self bucket up to its own cap.
func (s Section80D) EligibleDeduction(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategorySection80D) {
		return Zero()
	}
	limits := ctx.Rules.Deductions

	selfLimit := limits.Section80D.SelfLimit
	if limits.IsSenior(ctx.Age) {
		selfLimit = limits.Section80D.SelfSeniorLimit
	}
	parentLimit := limits.Section80D.ParentLimit
	if limits.IsSenior(s.ParentAge) {
		parentLimit = limits.Section80D.ParentSeniorLimit
	}

	checkup := s.PreventiveCheckup.Min(limits.Section80D.PreventiveCheckupCap)
	selfEligible := s.SelfFamilyPremium.Add(checkup).Min(selfLimit)
	parentEligible := s.ParentPremium.Min(parentLimit)
	return selfEligible.Add(parentEligible)
}

// Section80DD is the flat deduction for maintenance of a disabled dependant,
// banded on the disability percentage.
type Section80DD struct {
	DisabilityPercent decimal.Decimal `json:"disability_percent"`
}

func (s Section80DD) eligible(ctx CalcContext, category DeductionCategory) Money {
	if !ctx.Regime.Allows(category) {
		return Zero()
	}
	limits := ctx.Rules.Deductions
	switch {
	case s.DisabilityPercent.GreaterThanOrEqual(limits.SevereDisabilityPct):
		return limits.Section80DDSevere
	case s.DisabilityPercent.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return limits.Section80DDNormal
	default:
		return Zero()
	}
}

func (s Section80DD) EligibleDeduction(ctx CalcContext) Money {
	return s.eligible(ctx, CategorySection80DD)
}

// Section80U is the self-disability deduction; the same percentage bands as
// 80DD apply.
type Section80U struct {
	DisabilityPercent decimal.Decimal `json:"disability_percent"`
}

func (s Section80U) EligibleDeduction(ctx CalcContext) Money {
	return Section80DD(s).eligible(ctx, CategorySection80U)
}

// Section80DDB is the medical-treatment deduction, banded on the patient's
// age.
type Section80DDB struct {
	AmountSpent Money `json:"amount_spent"`
	PatientAge  int   `json:"patient_age"`
}

func (s Section80DDB) EligibleDeduction(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategorySection80DDB) {
		return Zero()
	}
	limits := ctx.Rules.Deductions
	limit := limits.Section80DDBLimit
	if limits.IsSenior(s.PatientAge) {
		limit = limits.Section80DDBSeniorLimit
	}
	return s.AmountSpent.Min(limit)
}

// Section80E is education-loan interest: uncapped, but only for loans taken
// for self, spouse, or children.
type Section80E struct {
	InterestPaid     Money `json:"interest_paid"`
	RelationEligible bool  `json:"relation_eligible"`
}

func (s Section80E) EligibleDeduction(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategorySection80E) || !s.RelationEligible {
		return Zero()
	}
	return s.InterestPaid
}

// Section80EEB is electric-vehicle loan interest, gated on the loan sanction
// date falling inside the statutory window.
type Section80EEB struct {
	InterestPaid     Money     `json:"interest_paid"`
	LoanSanctionDate time.Time `json:"loan_sanction_date"`
}

func (s Section80EEB) EligibleDeduction(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategorySection80EEB) {
		return Zero()
	}
	limits := ctx.Rules.Deductions
	if s.LoanSanctionDate.IsZero() ||
		s.LoanSanctionDate.Before(limits.Section80EEBWindowStart) ||
		s.LoanSanctionDate.After(limits.Section80EEBWindowEnd) {
		return Zero()
	}
	return s.InterestPaid.Min(limits.Section80EEBLimit)
}

// DonationCategory is one of the four statutory 80G buckets.
type DonationCategory string

const (
	Donation100NoLimit   DonationCategory = "100_pct_no_limit"
	Donation50NoLimit    DonationCategory = "50_pct_no_limit"
	Donation100WithLimit DonationCategory = "100_pct_with_limit"
	Donation50WithLimit  DonationCategory = "50_pct_with_limit"
)

// DonationFund names a notified 80G fund.
type DonationFund string

const (
	FundPMNationalRelief        DonationFund = "pm_national_relief"
	FundPMCares                 DonationFund = "pm_cares"
	FundNationalDefence         DonationFund = "national_defence"
	FundCommunalHarmony         DonationFund = "communal_harmony"
	FundNationalIllness         DonationFund = "national_illness_assistance"
	FundZilaSaksharta           DonationFund = "zila_saksharta_samiti"
	FundBloodTransfusion        DonationFund = "blood_transfusion_council"
	FundNationalTrustAutism     DonationFund = "national_trust_autism"
	FundNationalSports          DonationFund = "national_sports"
	FundNationalCultural        DonationFund = "national_cultural"
	FundTechnologyDevelopment   DonationFund = "technology_development"
	FundNationalChildrens       DonationFund = "national_childrens"
	FundSwachhBharatKosh        DonationFund = "swachh_bharat_kosh"
	FundCleanGanga              DonationFund = "clean_ganga"
	FundDrugAbuseControl        DonationFund = "drug_abuse_control"
	FundArmyCentralWelfare      DonationFund = "army_central_welfare"
	FundChiefMinisterRelief     DonationFund = "chief_minister_relief"
	FundJNMemorial              DonationFund = "jn_memorial"
	FundPMDroughtRelief         DonationFund = "pm_drought_relief"
	FundIndiraGandhiMemorial    DonationFund = "indira_gandhi_memorial"
	FundRajivGandhiFoundation   DonationFund = "rajiv_gandhi_foundation"
	FundFamilyPlanning          DonationFund = "govt_family_planning"
	FundOlympicAssociation      DonationFund = "indian_olympic_association"
	FundGovtCharitable          DonationFund = "govt_charitable_purpose"
	FundCharitableInstitution   DonationFund = "charitable_institution"
	FundReligiousPlaceRepair    DonationFund = "religious_place_repair"
	FundMinorityDevelopment     DonationFund = "minority_development"
	FundHousingAuthority        DonationFund = "housing_authority"
)

// donationFundCategory maps each notified fund onto its statutory bucket.
var donationFundCategory = map[DonationFund]DonationCategory{
	FundPMNationalRelief:      Donation100NoLimit,
	FundPMCares:               Donation100NoLimit,
	FundNationalDefence:       Donation100NoLimit,
	FundCommunalHarmony:       Donation100NoLimit,
	FundNationalIllness:       Donation100NoLimit,
	FundZilaSaksharta:         Donation100NoLimit,
	FundBloodTransfusion:      Donation100NoLimit,
	FundNationalTrustAutism:   Donation100NoLimit,
	FundNationalSports:        Donation100NoLimit,
	FundNationalCultural:      Donation100NoLimit,
	FundTechnologyDevelopment: Donation100NoLimit,
	FundNationalChildrens:     Donation100NoLimit,
	FundSwachhBharatKosh:      Donation100NoLimit,
	FundCleanGanga:            Donation100NoLimit,
	FundDrugAbuseControl:      Donation100NoLimit,
	FundArmyCentralWelfare:    Donation100NoLimit,
	FundChiefMinisterRelief:   Donation100NoLimit,
	FundJNMemorial:            Donation50NoLimit,
	FundPMDroughtRelief:       Donation50NoLimit,
	FundIndiraGandhiMemorial:  Donation50NoLimit,
	FundRajivGandhiFoundation: Donation50NoLimit,
	FundFamilyPlanning:        Donation100WithLimit,
	FundOlympicAssociation:    Donation100WithLimit,
	FundGovtCharitable:        Donation50WithLimit,
	FundCharitableInstitution: Donation50WithLimit,
	FundReligiousPlaceRepair:  Donation50WithLimit,
	FundMinorityDevelopment:   Donation50WithLimit,
	FundHousingAuthority:      Donation50WithLimit,
}

// FundCategory returns the bucket a fund belongs to. Unknown funds fall into
// the most restrictive bucket.
func FundCategory(fund DonationFund) DonationCategory {
	if cat, ok := donationFundCategory[fund]; ok {
		return cat
	}
	return Donation50WithLimit
}

// Section80G holds donations keyed by notified fund.
type Section80G struct {
	Donations map[DonationFund]Money `json:"donations"`
}

// bucketTotals sums donations per category.
func (s Section80G) bucketTotals() map[DonationCategory]Money {
	out := map[DonationCategory]Money{
		Donation100NoLimit:   Zero(),
		Donation50NoLimit:    Zero(),
		Donation100WithLimit: Zero(),
		Donation50WithLimit:  Zero(),
	}
	for fund, amount := range s.Donations {
		cat := FundCategory(fund)
		out[cat] = out[cat].Add(amount)
	}
	return out
}

// EligibleDeduction applies the four-bucket rule. The with-qualifying-limit
// buckets share a ceiling of a fraction of adjusted gross total income, with
// the 100% bucket absorbing the ceiling first.
func (s Section80G) EligibleDeduction(ctx CalcContext, adjustedGrossIncome Money) Money {
	if !ctx.Regime.Allows(CategorySection80G) {
		return Zero()
	}
	half := decimal.NewFromFloat(0.5)
	buckets := s.bucketTotals()

	eligible := buckets[Donation100NoLimit].
		Add(buckets[Donation50NoLimit].Mul(half))

	qualifyingLimit := adjustedGrossIncome.Mul(ctx.Rules.Deductions.Section80GQualifyingPct).ClampZero()
	hundredWithin := buckets[Donation100WithLimit].Min(qualifyingLimit)
	remaining := qualifyingLimit.Sub(hundredWithin)
	fiftyWithin := buckets[Donation50WithLimit].Min(remaining)

	return eligible.Add(hundredWithin).Add(fiftyWithin.Mul(half))
}

// Section80GGC is political contributions; cash payments are ineligible.
type Section80GGC struct {
	Amount     Money `json:"amount"`
	PaidInCash bool  `json:"paid_in_cash"`
}

func (s Section80GGC) EligibleDeduction(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategorySection80GGC) || s.PaidInCash {
		return Zero()
	}
	return s.Amount
}

// Section80TTATTB is the interest exemption: 80TTA (savings interest only)
// below the senior age, 80TTB (all deposit interest) at and above it.
type Section80TTATTB struct {
	SavingsInterest   Money `json:"savings_interest"`
	FDInterest        Money `json:"fd_interest"`
	RDInterest        Money `json:"rd_interest"`
	PostOfficeInterest Money `json:"post_office_interest"`
}

func (s Section80TTATTB) EligibleDeduction(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategorySection80TTA) {
		return Zero()
	}
	limits := ctx.Rules.Deductions
	if limits.IsSenior(ctx.Age) {
		all := SumMoney(s.SavingsInterest, s.FDInterest, s.RDInterest, s.PostOfficeInterest)
		return all.Min(limits.Section80TTBLimit)
	}
	return s.SavingsInterest.Min(limits.Section80TTALimit)
}

// Breakdown reports which section applied, its limit, and the eligible
// amount.
func (s Section80TTATTB) Breakdown(ctx CalcContext) map[string]any {
	limits := ctx.Rules.Deductions
	section := "80TTA"
	limit := limits.Section80TTALimit
	if limits.IsSenior(ctx.Age) {
		section = "80TTB"
		limit = limits.Section80TTBLimit
	}
	return map[string]any{
		"applicable_section": section,
		"exemption_limit":    limit,
		"eligible":           s.EligibleDeduction(ctx),
	}
}

// CityType classifies the rented city for HRA purposes.
type CityType string

const (
	CityMetro    CityType = "metro"
	CityNonMetro CityType = "non_metro"
)

// HRAExemption holds rent details for the HRA least-of-three computation.
type HRAExemption struct {
	ActualRentPaid Money    `json:"actual_rent_paid"`
	CityType       CityType `json:"city_type"`
}

// Exempt computes the exempt HRA: the least of the HRA received, rent paid
// less a tenth of salary, and the city-banded fraction of salary.
func (h HRAExemption) Exempt(ctx CalcContext, basicPlusDA, hraReceived Money) Money {
	if !ctx.Regime.Allows(CategoryHRAExemption) {
		return Zero()
	}
	if h.ActualRentPaid.IsZero() || hraReceived.IsZero() {
		return Zero()
	}
	limits := ctx.Rules.Deductions

	cityPct := limits.HRANonMetroPct
	if h.CityType == CityMetro {
		cityPct = limits.HRAMetroPct
	}
	rentExcess := h.ActualRentPaid.SubFloor(basicPlusDA.Mul(limits.HRARentExcessPct))
	return hraReceived.Min(rentExcess).Min(basicPlusDA.Mul(cityPct))
}

// OtherDeductions is a catch-all for miscellaneous deductible amounts.
type OtherDeductions struct {
	Amount      Money  `json:"amount"`
	Description string `json:"description"`
}

func (o OtherDeductions) EligibleDeduction(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategoryOtherDeductions) {
		return Zero()
	}
	return o.Amount
}

// TaxDeductions aggregates every Chapter VI-A section plus the HRA exemption
// input. Every amount defaults to zero when not supplied.
type TaxDeductions struct {
	Section80C Section80C `json:"section_80c"`
	// 80CCC pension-fund premium; shares the 80C ceiling.
	PensionFundContribution Money `json:"pension_fund_contribution"`
	// 80CCD(1) employee NPS contribution; shares the 80C ceiling.
	NPSEmployeeContribution Money `json:"nps_employee_contribution"`
	// 80CCD(1B) additional NPS contribution, separate ceiling.
	NPSAdditionalContribution Money `json:"nps_additional_contribution"`

	Section80D   Section80D      `json:"section_80d"`
	Section80DD  Section80DD     `json:"section_80dd"`
	Section80DDB Section80DDB    `json:"section_80ddb"`
	Section80E   Section80E      `json:"section_80e"`
	Section80EEB Section80EEB    `json:"section_80eeb"`
	Section80G   Section80G      `json:"section_80g"`
	Section80GGC Section80GGC    `json:"section_80ggc"`
	Section80U   Section80U      `json:"section_80u"`
	InterestExemption Section80TTATTB `json:"interest_exemption"`
	HRA          HRAExemption    `json:"hra"`
	Other        OtherDeductions `json:"other"`
}

// Section80CCombined applies the single authoritative ceiling shared across
// 80C, 80CCC, and 80CCD(1).
func (t TaxDeductions) Section80CCombined(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategorySection80C) {
		return Zero()
	}
	raw := t.Section80C.ContributionSum().
		Add(t.PensionFundContribution).
		Add(t.NPSEmployeeContribution)
	return raw.Min(ctx.Rules.Deductions.Section80CCeiling)
}

// section80CCD1B is the additional NPS deduction over its own ceiling.
func (t TaxDeductions) section80CCD1B(ctx CalcContext) Money {
	if !ctx.Regime.Allows(CategorySection80CCD1B) {
		return Zero()
	}
	return t.NPSAdditionalContribution.Min(ctx.Rules.Deductions.Section80CCD1BLimit)
}

// TotalDeductions sums every eligible Chapter VI-A deduction under the
// regime. adjustedGrossIncome feeds the 80G qualifying limit.
func (t TaxDeductions) TotalDeductions(ctx CalcContext, adjustedGrossIncome Money) Money {
	total := Zero()
	for _, amount := range t.Breakdown(ctx, adjustedGrossIncome) {
		total = total.Add(amount)
	}
	return total
}

// Breakdown reports the eligible deduction per section.
func (t TaxDeductions) Breakdown(ctx CalcContext, adjustedGrossIncome Money) map[string]Money {
	return map[string]Money{
		"section_80c_combined": t.Section80CCombined(ctx),
		"section_80ccd_1b":     t.section80CCD1B(ctx),
		"section_80d":          t.Section80D.EligibleDeduction(ctx),
		"section_80dd":         t.Section80DD.EligibleDeduction(ctx),
		"section_80ddb":        t.Section80DDB.EligibleDeduction(ctx),
		"section_80e":          t.Section80E.EligibleDeduction(ctx),
		"section_80eeb":        t.Section80EEB.EligibleDeduction(ctx),
		"section_80g":          t.Section80G.EligibleDeduction(ctx, adjustedGrossIncome),
		"section_80ggc":        t.Section80GGC.EligibleDeduction(ctx),
		"section_80u":          t.Section80U.EligibleDeduction(ctx),
		"section_80tta_ttb":    t.InterestExemption.EligibleDeduction(ctx),
		"other":                t.Other.EligibleDeduction(ctx),
	}
}

// Clone returns an independent copy.
func (t TaxDeductions) Clone() TaxDeductions {
	out := t
	if t.Section80G.Donations != nil {
		donations := make(map[DonationFund]Money, len(t.Section80G.Donations))
		for fund, amount := range t.Section80G.Donations {
			donations[fund] = amount
		}
		out.Section80G.Donations = donations
	}
	return out
}

// Validate rejects structurally impossible inputs.
func (t TaxDeductions) Validate() error {
	if t.Section80D.ParentAge < 0 {
		return fmt.Errorf("section 80d: negative parent age %d", t.Section80D.ParentAge)
	}
	if t.Section80DDB.PatientAge < 0 {
		return fmt.Errorf("section 80ddb: negative patient age %d", t.Section80DDB.PatientAge)
	}
	return nil
}

package config

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/itrgo/itrgo/internal/domain"
)

// Built-in rule sets reproduce the published figures for recent tax years.
// They are data, not logic: a new year is a new builder (or a YAML file),
// never a change to the calculators.

func m(n int64) domain.Money {
	return domain.FromInt(n)
}

func rate(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// slabTop is the sentinel upper bound of the last slab.
var slabTop = m(9_999_999_999)

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func commonDeductionLimits() domain.DeductionLimits {
	return domain.DeductionLimits{
		Section80CCeiling:    m(150_000),
		Section80CCD1BLimit:  m(50_000),
		Section80CCD2Pct:     rate(0.10),
		Section80CCD2PctGovt: rate(0.14),
		Section80D: domain.Section80DLimits{
			SelfLimit:            m(25_000),
			SelfSeniorLimit:      m(50_000),
			ParentLimit:          m(25_000),
			ParentSeniorLimit:    m(50_000),
			PreventiveCheckupCap: m(5_000),
		},
		Section80DDNormal:       m(75_000),
		Section80DDSevere:       m(125_000),
		SevereDisabilityPct:     rate(80),
		Section80DDBLimit:       m(40_000),
		Section80DDBSeniorLimit: m(100_000),
		Section80EEBLimit:       m(150_000),
		Section80EEBWindowStart: date(2019, time.April, 1),
		Section80EEBWindowEnd:   date(2023, time.March, 31),
		Section80GQualifyingPct: rate(0.10),
		Section80TTALimit:       m(10_000),
		Section80TTBLimit:       m(50_000),
		HRAMetroPct:             rate(0.50),
		HRANonMetroPct:          rate(0.40),
		HRARentExcessPct:        rate(0.10),
		SeniorAge:               60,
		ProfessionalTaxCap:      m(2_500),
	}
}

func commonAllowances() map[domain.AllowanceCode]domain.AllowanceRule {
	capped := func(annual int64) domain.AllowanceRule {
		return domain.AllowanceRule{ExemptionCap: m(annual)}
	}
	expenseLinked := domain.AllowanceRule{FullyExempt: true}
	expenseLinkedNewRegime := domain.AllowanceRule{FullyExempt: true, AllowedInNewRegime: true}
	taxable := domain.AllowanceRule{}

	return map[domain.AllowanceCode]domain.AllowanceRule{
		domain.AllowanceHillsArea:         capped(3_600),
		domain.AllowanceBorderArea:        capped(3_900),
		domain.AllowanceRemoteArea:        capped(12_600),
		domain.AllowanceCounterInsurgency: capped(46_800),
		domain.AllowanceFieldArea:         capped(31_200),
		domain.AllowanceModifiedFieldArea: capped(12_000),
		domain.AllowanceHighAltitude:      capped(12_720),
		domain.AllowanceIslandDuty:        capped(39_000),
		domain.AllowanceTribalArea:        capped(2_400),
		domain.AllowanceUndergroundMines:  capped(9_600),
		domain.AllowanceTransportDisabled: {ExemptionCap: m(38_400), AllowedInNewRegime: true},
		domain.AllowanceTransportGeneral:  capped(19_200),
		domain.AllowanceConveyance:        expenseLinkedNewRegime,
		domain.AllowanceChildrenEducation: capped(2_400),
		domain.AllowanceHostel:            capped(7_200),
		domain.AllowanceEntertainment:     capped(5_000),
		domain.AllowanceJudicial:          expenseLinked,
		domain.AllowanceTourTravel:        expenseLinkedNewRegime,
		domain.AllowanceDaily:             expenseLinkedNewRegime,
		domain.AllowanceUniform:           expenseLinked,
		domain.AllowanceHelper:            expenseLinked,
		domain.AllowanceAcademicResearch:  expenseLinked,
		domain.AllowanceCityCompensatory:  taxable,
		domain.AllowanceOvertime:          taxable,
		domain.AllowanceTiffinLunch:       taxable,
		domain.AllowanceServant:           taxable,
		domain.AllowanceWarden:            taxable,
		domain.AllowanceNonPracticing:     taxable,
		domain.AllowanceProject:           taxable,
		domain.AllowanceOther:             taxable,
	}
}

func commonPerquisiteRules() domain.PerquisiteRules {
	return domain.PerquisiteRules{
		Accommodation: domain.AccommodationRules{
			LargeCityPopulation: 4_000_000,
			MidCityPopulation:   1_500_000,
			OwnedPctLargeCity:   rate(0.10),
			OwnedPctMidCity:     rate(0.075),
			OwnedPctSmallCity:   rate(0.05),
			LeasedPct:           rate(0.10),
			HotelPct:            rate(0.24),
			FurniturePct:        rate(0.10),
		},
		Car: domain.CarRules{
			EngineCCThreshold: 1600,
			SmallCarMonthly:   m(1_800),
			LargeCarMonthly:   m(2_400),
			DriverMonthly:     m(900),
		},
		LoanExemptionThreshold:            m(20_000),
		EducationExemptionPerChildMonthly: m(1_000),
		GiftVoucherExemption:              m(5_000),
		MedicalReimbursementExemption:     m(15_000),
		MovableAssetUsagePct:              rate(0.10),
		AssetDepreciation: map[domain.AssetType]domain.AssetDepreciationRule{
			domain.AssetComputer: {Rate: rate(0.50), Method: "wdv"},
			domain.AssetCar:      {Rate: rate(0.20), Method: "wdv"},
			domain.AssetOther:    {Rate: rate(0.10), Method: "slm"},
		},
	}
}

func commonCapitalGains() domain.CapitalGainsRules {
	return domain.CapitalGainsRules{
		STCG111ARate:      rate(0.15),
		STCGOtherRate:     rate(0.30),
		STCGDebtMFRate:    rate(0.30),
		LTCG112ARate:      rate(0.10),
		LTCG112AExemption: m(100_000),
		LTCGOtherRate:     rate(0.20),
		LTCGDebtMFRate:    rate(0.20),
	}
}

func commonRetirement() domain.RetirementLimits {
	return domain.RetirementLimits{
		GratuityExemptionCap:          m(2_000_000),
		GratuityDays:                  15,
		GratuityMonthDays:             26,
		LeaveEncashmentCap:            m(2_500_000),
		LeaveEncashmentMonthsCap:      10,
		VRSExemptionCap:               m(500_000),
		RetrenchmentCap:               m(500_000),
		CommutedExemptWithGratuity:    decimal.NewFromInt(1).Div(decimal.NewFromInt(3)),
		CommutedExemptWithoutGratuity: rate(0.5),
	}
}

func commonHouseProperty() domain.HousePropertyRules {
	return domain.HousePropertyRules{
		StandardDeductionPct:    rate(0.30),
		SelfOccupiedInterestCap: m(200_000),
		LossSetOffCap:           m(200_000),
		PreConstructionYears:    5,
	}
}

func oldRegimeRules() domain.RegimeRules {
	return domain.RegimeRules{
		Slabs: []domain.TaxSlab{
			{Min: m(0), Max: m(250_000), Rate: rate(0)},
			{Min: m(250_000), Max: m(500_000), Rate: rate(0.05)},
			{Min: m(500_000), Max: m(1_000_000), Rate: rate(0.20)},
			{Min: m(1_000_000), Max: slabTop, Rate: rate(0.30)},
		},
		StandardDeduction: m(50_000),
		RebateThreshold:   m(500_000),
		RebateCap:         m(12_500),
		SurchargeSteps: []domain.SurchargeStep{
			{Threshold: m(5_000_000), Rate: rate(0.10)},
			{Threshold: m(10_000_000), Rate: rate(0.15)},
			{Threshold: m(20_000_000), Rate: rate(0.25)},
			{Threshold: m(50_000_000), Rate: rate(0.37)},
		},
	}
}

func newRegimeSurcharge() []domain.SurchargeStep {
	// The new regime caps the surcharge at 25%.
	return []domain.SurchargeStep{
		{Threshold: m(5_000_000), Rate: rate(0.10)},
		{Threshold: m(10_000_000), Rate: rate(0.15)},
		{Threshold: m(20_000_000), Rate: rate(0.25)},
	}
}

func rules2024_25() *domain.TaxYearRules {
	return &domain.TaxYearRules{
		Metadata: domain.RulesMetadata{
			TaxYear:     domain.MustTaxYear("2024-25"),
			LastUpdated: "2024-07-23",
			Description: "FY 2024-25 (AY 2025-26) statutory figures",
		},
		Regimes: map[domain.TaxRegime]domain.RegimeRules{
			domain.RegimeOld: oldRegimeRules(),
			domain.RegimeNew: {
				Slabs: []domain.TaxSlab{
					{Min: m(0), Max: m(300_000), Rate: rate(0)},
					{Min: m(300_000), Max: m(700_000), Rate: rate(0.05)},
					{Min: m(700_000), Max: m(1_000_000), Rate: rate(0.10)},
					{Min: m(1_000_000), Max: m(1_200_000), Rate: rate(0.15)},
					{Min: m(1_200_000), Max: m(1_500_000), Rate: rate(0.20)},
					{Min: m(1_500_000), Max: slabTop, Rate: rate(0.30)},
				},
				StandardDeduction: m(75_000),
				RebateThreshold:   m(700_000),
				RebateCap:         m(25_000),
				SurchargeSteps:    newRegimeSurcharge(),
			},
		},
		CessRate:      rate(0.04),
		Deductions:    commonDeductionLimits(),
		Allowances:    commonAllowances(),
		Perquisites:   commonPerquisiteRules(),
		CapitalGains:  commonCapitalGains(),
		Retirement:    commonRetirement(),
		HouseProperty: commonHouseProperty(),
		OtherIncome:   domain.OtherIncomeRules{GiftExemptionThreshold: m(50_000)},
	}
}

func rules2025_26() *domain.TaxYearRules {
	return &domain.TaxYearRules{
		Metadata: domain.RulesMetadata{
			TaxYear:     domain.MustTaxYear("2025-26"),
			LastUpdated: "2025-02-01",
			Description: "FY 2025-26 (AY 2026-27) statutory figures",
		},
		Regimes: map[domain.TaxRegime]domain.RegimeRules{
			domain.RegimeOld: oldRegimeRules(),
			domain.RegimeNew: {
				Slabs: []domain.TaxSlab{
					{Min: m(0), Max: m(400_000), Rate: rate(0)},
					{Min: m(400_000), Max: m(800_000), Rate: rate(0.05)},
					{Min: m(800_000), Max: m(1_200_000), Rate: rate(0.10)},
					{Min: m(1_200_000), Max: m(1_600_000), Rate: rate(0.15)},
					{Min: m(1_600_000), Max: m(2_000_000), Rate: rate(0.20)},
					{Min: m(2_000_000), Max: m(2_400_000), Rate: rate(0.25)},
					{Min: m(2_400_000), Max: slabTop, Rate: rate(0.30)},
				},
				StandardDeduction: m(75_000),
				RebateThreshold:   m(1_200_000),
				RebateCap:         m(60_000),
				SurchargeSteps:    newRegimeSurcharge(),
			},
		},
		CessRate:      rate(0.04),
		Deductions:    commonDeductionLimits(),
		Allowances:    commonAllowances(),
		Perquisites:   commonPerquisiteRules(),
		CapitalGains:  commonCapitalGains(),
		Retirement:    commonRetirement(),
		HouseProperty: commonHouseProperty(),
		OtherIncome:   domain.OtherIncomeRules{GiftExemptionThreshold: m(50_000)},
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func deductionTestRules() *TaxYearRules {
	pct := func(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
	return &TaxYearRules{
		Deductions: DeductionLimits{
			Section80CCeiling:    FromInt(150_000),
			Section80CCD1BLimit:  FromInt(50_000),
			Section80CCD2Pct:     pct(0.10),
			Section80CCD2PctGovt: pct(0.14),
			Section80D: Section80DLimits{
				SelfLimit:            FromInt(25_000),
				SelfSeniorLimit:      FromInt(50_000),
				ParentLimit:          FromInt(25_000),
				ParentSeniorLimit:    FromInt(50_000),
				PreventiveCheckupCap: FromInt(5_000),
			},
			Section80DDNormal:       FromInt(75_000),
			Section80DDSevere:       FromInt(125_000),
			SevereDisabilityPct:     decimal.NewFromInt(80),
			Section80DDBLimit:       FromInt(40_000),
			Section80DDBSeniorLimit: FromInt(100_000),
			Section80EEBLimit:       FromInt(150_000),
			Section80EEBWindowStart: time.Date(2019, time.April, 1, 0, 0, 0, 0, time.UTC),
			Section80EEBWindowEnd:   time.Date(2023, time.March, 31, 0, 0, 0, 0, time.UTC),
			Section80GQualifyingPct: pct(0.10),
			Section80TTALimit:       FromInt(10_000),
			Section80TTBLimit:       FromInt(50_000),
			HRAMetroPct:             pct(0.50),
			HRANonMetroPct:          pct(0.40),
			HRARentExcessPct:        pct(0.10),
			SeniorAge:               60,
			ProfessionalTaxCap:      FromInt(2_500),
		},
	}
}

func TestSection80CCombinedCeiling(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: deductionTestRules()}

	deductions := TaxDeductions{
		Section80C: Section80C{
			PPFContribution: FromInt(100_000),
			ELSSInvestment:  FromInt(80_000),
		},
		PensionFundContribution: FromInt(30_000),
	}

	// 210000 invested, ceiling holds at 150000.
	assert.True(t, deductions.Section80CCombined(ctx).Equal(FromInt(150_000)))

	under := TaxDeductions{
		Section80C: Section80C{PPFContribution: FromInt(90_000)},
	}
	assert.True(t, under.Section80CCombined(ctx).Equal(FromInt(90_000)))
}

func TestSection80CNewRegimeGated(t *testing.T) {
	ctx := CalcContext{Regime: RegimeNew, Rules: deductionTestRules()}
	deductions := TaxDeductions{
		Section80C: Section80C{PPFContribution: FromInt(150_000)},
	}
	assert.True(t, deductions.Section80CCombined(ctx).IsZero())
}

func TestSection80DBanding(t *testing.T) {
	rules := deductionTestRules()

	tests := []struct {
		name     string
		age      int
		section  Section80D
		expected Money
	}{
		{
			name:     "non-senior capped at 25000",
			age:      40,
			section:  Section80D{SelfFamilyPremium: FromInt(40_000)},
			expected: FromInt(25_000),
		},
		{
			name:     "senior self limit is 50000",
			age:      62,
			section:  Section80D{SelfFamilyPremium: FromInt(40_000)},
			expected: FromInt(40_000),
		},
		{
			name: "senior parents get their own 50000",
			age:  40,
			section: Section80D{
				SelfFamilyPremium: FromInt(25_000),
				ParentPremium:     FromInt(48_000),
				ParentAge:         70,
			},
			expected: FromInt(73_000),
		},
		{
			name: "preventive checkup rides inside the self bucket",
			age:  40,
			section: Section80D{
				SelfFamilyPremium: FromInt(18_000),
				PreventiveCheckup: FromInt(9_000),
			},
			// Checkup capped at 5000, total under the self limit.
			expected: FromInt(23_000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := CalcContext{Regime: RegimeOld, Age: tt.age, Rules: rules}
			got := tt.section.EligibleDeduction(ctx)
			assert.True(t, got.Equal(tt.expected), "got %s want %s", got, tt.expected)
		})
	}
}

func TestSection80DDDisabilityBands(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: deductionTestRules()}

	mild := Section80DD{DisabilityPercent: decimal.NewFromInt(30)}
	assert.True(t, mild.EligibleDeduction(ctx).IsZero())

	normal := Section80DD{DisabilityPercent: decimal.NewFromInt(50)}
	assert.True(t, normal.EligibleDeduction(ctx).Equal(FromInt(75_000)))

	severe := Section80DD{DisabilityPercent: decimal.NewFromInt(85)}
	assert.True(t, severe.EligibleDeduction(ctx).Equal(FromInt(125_000)))
}

func TestSection80DDBPatientAgeBand(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: deductionTestRules()}

	young := Section80DDB{AmountSpent: FromInt(120_000), PatientAge: 45}
	assert.True(t, young.EligibleDeduction(ctx).Equal(FromInt(40_000)))

	senior := Section80DDB{AmountSpent: FromInt(120_000), PatientAge: 65}
	assert.True(t, senior.EligibleDeduction(ctx).Equal(FromInt(100_000)))
}

func TestSection80ERelationGate(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: deductionTestRules()}

	eligible := Section80E{InterestPaid: FromInt(240_000), RelationEligible: true}
	// Education loan interest is uncapped.
	assert.True(t, eligible.EligibleDeduction(ctx).Equal(FromInt(240_000)))

	sibling := Section80E{InterestPaid: FromInt(240_000), RelationEligible: false}
	assert.True(t, sibling.EligibleDeduction(ctx).IsZero())
}

func TestSection80EEBSanctionWindow(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: deductionTestRules()}

	inside := Section80EEB{
		InterestPaid:     FromInt(180_000),
		LoanSanctionDate: time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, inside.EligibleDeduction(ctx).Equal(FromInt(150_000)))

	outside := Section80EEB{
		InterestPaid:     FromInt(180_000),
		LoanSanctionDate: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, outside.EligibleDeduction(ctx).IsZero())

	unset := Section80EEB{InterestPaid: FromInt(180_000)}
	assert.True(t, unset.EligibleDeduction(ctx).IsZero())
}

func TestSection80GBuckets(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: deductionTestRules()}
	agi := FromInt(1_000_000) // qualifying limit 100000

	t.Run("100 pct no limit", func(t *testing.T) {
		g := Section80G{Donations: map[DonationFund]Money{
			FundPMNationalRelief: FromInt(80_000),
		}}
		assert.True(t, g.EligibleDeduction(ctx, agi).Equal(FromInt(80_000)))
	})

	t.Run("50 pct no limit", func(t *testing.T) {
		g := Section80G{Donations: map[DonationFund]Money{
			FundJNMemorial: FromInt(80_000),
		}}
		assert.True(t, g.EligibleDeduction(ctx, agi).Equal(FromInt(40_000)))
	})

	t.Run("100 pct bucket absorbs the qualifying limit first", func(t *testing.T) {
		g := Section80G{Donations: map[DonationFund]Money{
			FundFamilyPlanning:        FromInt(80_000),  // 100% with limit
			FundCharitableInstitution: FromInt(60_000),  // 50% with limit
		}}
		// Limit 100000: 80000 fully, then 20000 of the 50% bucket at half.
		assert.True(t, g.EligibleDeduction(ctx, agi).Equal(FromInt(90_000)))
	})

	t.Run("unknown fund lands in the most restrictive bucket", func(t *testing.T) {
		assert.Equal(t, Donation50WithLimit, FundCategory(DonationFund("mystery_fund")))
	})
}

func TestSection80GGCCashGate(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: deductionTestRules()}

	banked := Section80GGC{Amount: FromInt(25_000)}
	assert.True(t, banked.EligibleDeduction(ctx).Equal(FromInt(25_000)))

	cash := Section80GGC{Amount: FromInt(25_000), PaidInCash: true}
	assert.True(t, cash.EligibleDeduction(ctx).IsZero())
}

func TestInterestExemptionAgeBoundary(t *testing.T) {
	rules := deductionTestRules()
	interest := Section80TTATTB{
		SavingsInterest: FromInt(18_000),
		FDInterest:      FromInt(40_000),
	}

	t.Run("age 59 gets 80TTA on savings only", func(t *testing.T) {
		ctx := CalcContext{Regime: RegimeOld, Age: 59, Rules: rules}
		assert.True(t, interest.EligibleDeduction(ctx).Equal(FromInt(10_000)))
		assert.Equal(t, "80TTA", interest.Breakdown(ctx)["applicable_section"])
	})

	t.Run("age 60 gets 80TTB on all deposit interest", func(t *testing.T) {
		ctx := CalcContext{Regime: RegimeOld, Age: 60, Rules: rules}
		assert.True(t, interest.EligibleDeduction(ctx).Equal(FromInt(50_000)))
		assert.Equal(t, "80TTB", interest.Breakdown(ctx)["applicable_section"])
	})
}

func TestHRAExemptionLeastOfThree(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: deductionTestRules()}
	basicPlusDA := FromInt(600_000)
	hraReceived := FromInt(240_000)

	t.Run("metro rent excess wins", func(t *testing.T) {
		hra := HRAExemption{ActualRentPaid: FromInt(180_000), CityType: CityMetro}
		// Least of 240000, 180000-60000=120000, 300000.
		assert.True(t, hra.Exempt(ctx, basicPlusDA, hraReceived).Equal(FromInt(120_000)))
	})

	t.Run("non-metro city fraction wins", func(t *testing.T) {
		hra := HRAExemption{ActualRentPaid: FromInt(400_000), CityType: CityNonMetro}
		// Least of 240000, 340000, 40% of salary = 240000.
		assert.True(t, hra.Exempt(ctx, basicPlusDA, hraReceived).Equal(FromInt(240_000)))
	})

	t.Run("no rent means no exemption", func(t *testing.T) {
		hra := HRAExemption{CityType: CityMetro}
		assert.True(t, hra.Exempt(ctx, basicPlusDA, hraReceived).IsZero())
	})

	t.Run("new regime has no HRA exemption", func(t *testing.T) {
		newCtx := CalcContext{Regime: RegimeNew, Rules: deductionTestRules()}
		hra := HRAExemption{ActualRentPaid: FromInt(180_000), CityType: CityMetro}
		assert.True(t, hra.Exempt(newCtx, basicPlusDA, hraReceived).IsZero())
	})
}

func TestTaxDeductionsNewRegimeTotal(t *testing.T) {
	ctx := CalcContext{Regime: RegimeNew, Rules: deductionTestRules()}

	deductions := TaxDeductions{
		Section80C:              Section80C{PPFContribution: FromInt(150_000)},
		NPSAdditionalContribution: FromInt(50_000),
		Section80D:              Section80D{SelfFamilyPremium: FromInt(25_000)},
		Section80GGC:            Section80GGC{Amount: FromInt(10_000)},
	}

	// Everything Chapter VI-A is gated off under the new regime.
	assert.True(t, deductions.TotalDeductions(ctx, FromInt(1_000_000)).IsZero())
}

func TestTaxDeductionsValidate(t *testing.T) {
	bad := TaxDeductions{Section80D: Section80D{ParentAge: -1}}
	assert.Error(t, bad.Validate())
	assert.NoError(t, TaxDeductions{}.Validate())
}

package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryIncomeCashTotal(t *testing.T) {
	income := SalaryIncome{
		BasicSalary:       FromInt(600_000),
		DearnessAllowance: FromInt(60_000),
		HRAProvided:       FromInt(240_000),
		SpecialAllowance:  FromInt(100_000),
		Bonus:             FromInt(50_000),

		// Employer-side contributions are not cash in hand.
		EmployerPFContribution:      FromInt(72_000),
		EmployerPensionContribution: FromInt(60_000),

		SpecificAllowances: SpecificAllowances{
			AllowanceConveyance: FromInt(19_200),
		},
	}

	assert.True(t, income.CashTotal().Equal(FromInt(1_069_200)))
	assert.True(t, income.BasicPlusDA().Equal(FromInt(660_000)))
}

func TestSalaryIncomeValidate(t *testing.T) {
	valid := SalaryIncome{
		EffectiveFrom: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTill: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, valid.Validate())

	inverted := SalaryIncome{
		EffectiveFrom: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTill: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Error(t, inverted.Validate())

	// Zero dates mean the revision covers the whole year.
	assert.NoError(t, SalaryIncome{}.Validate())
}

func TestOverlapFraction(t *testing.T) {
	year := MustTaxYear("2024-25")

	tests := []struct {
		name     string
		from     time.Time
		till     time.Time
		expected decimal.Decimal
	}{
		{
			name:     "full year",
			from:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			till:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			expected: decimal.NewFromInt(1),
		},
		{
			name:     "zero dates cover whole year",
			expected: decimal.NewFromInt(1),
		},
		{
			name:     "outside the year",
			from:     time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
			till:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			expected: decimal.Zero,
		},
		{
			name: "spills over both ends",
			from: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			till: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			// Clamped to the year boundaries.
			expected: decimal.NewFromInt(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			income := SalaryIncome{EffectiveFrom: tt.from, EffectiveTill: tt.till}
			assert.True(t, income.OverlapFraction(year).Equal(tt.expected),
				"got %s", income.OverlapFraction(year))
		})
	}
}

func TestOverlapFractionMidYearRevision(t *testing.T) {
	year := MustTaxYear("2024-25")

	first := SalaryIncome{
		EffectiveFrom: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTill: time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
	}
	second := SalaryIncome{
		EffectiveFrom: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTill: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	sum := first.OverlapFraction(year).Add(second.OverlapFraction(year))
	assert.True(t, sum.Equal(decimal.NewFromInt(1)),
		"adjacent revisions must cover the year exactly, got %s", sum)
}

func TestProratedCashTotal(t *testing.T) {
	year := MustTaxYear("2024-25")
	require.Equal(t, 365, year.Days())

	// Exactly 73 days is a fifth of the year.
	income := SalaryIncome{
		EffectiveFrom: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTill: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		BasicSalary:   FromInt(500_000),
	}
	assert.True(t, income.ProratedCashTotal(year).Equal(FromInt(100_000)))
}

func TestSpecificAllowancesExemption(t *testing.T) {
	rules := testRulesWithAllowances()
	oldCtx := CalcContext{Regime: RegimeOld, Rules: rules}
	newCtx := CalcContext{Regime: RegimeNew, Rules: rules}

	allowances := SpecificAllowances{
		AllowanceChildrenEducation: FromInt(5_000),
		AllowanceJudicial:          FromInt(100_000),
		AllowanceOvertime:          FromInt(30_000),
	}

	t.Run("old regime", func(t *testing.T) {
		exempt := allowances.ExemptTotal(oldCtx)
		// Children education capped at 2400, judicial fully exempt,
		// overtime fully taxable.
		assert.True(t, exempt.Equal(FromInt(102_400)), "got %s", exempt)
	})

	t.Run("new regime drops the exemptions", func(t *testing.T) {
		assert.True(t, allowances.ExemptTotal(newCtx).IsZero())
	})
}

// testRulesWithAllowances builds the minimal rules the allowance tests need.
func testRulesWithAllowances() *TaxYearRules {
	return &TaxYearRules{
		Allowances: map[AllowanceCode]AllowanceRule{
			AllowanceChildrenEducation: {ExemptionCap: FromInt(2_400)},
			AllowanceJudicial:          {FullyExempt: true},
		},
	}
}

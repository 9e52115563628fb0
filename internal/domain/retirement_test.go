package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func retirementTestRules() *TaxYearRules {
	return &TaxYearRules{
		Retirement: RetirementLimits{
			GratuityExemptionCap:          FromInt(2_000_000),
			GratuityDays:                  15,
			GratuityMonthDays:             26,
			LeaveEncashmentCap:            FromInt(2_500_000),
			LeaveEncashmentMonthsCap:      10,
			VRSExemptionCap:               FromInt(500_000),
			RetrenchmentCap:               FromInt(500_000),
			CommutedExemptWithGratuity:    decimal.NewFromInt(1).Div(decimal.NewFromInt(3)),
			CommutedExemptWithoutGratuity: decimal.NewFromFloat(0.5),
		},
	}
}

func TestGratuityExemption(t *testing.T) {
	rules := retirementTestRules()

	t.Run("government employee fully exempt", func(t *testing.T) {
		ctx := CalcContext{Regime: RegimeOld, GovernmentEmployee: true, Rules: rules}
		g := &Gratuity{
			AmountReceived:  FromInt(3_000_000),
			LastDrawnSalary: FromInt(100_000),
			ServiceYears:    30,
		}
		assert.True(t, g.ExemptAmount(ctx).Equal(FromInt(3_000_000)))
		assert.True(t, g.TaxableAmount(ctx).IsZero())
	})

	t.Run("formula wins for a short service", func(t *testing.T) {
		ctx := CalcContext{Regime: RegimeOld, Rules: rules}
		g := &Gratuity{
			AmountReceived:  FromInt(1_000_000),
			LastDrawnSalary: FromInt(52_000),
			ServiceYears:    10,
		}
		// 52000 * 15/26 * 10 = 300000.
		assert.True(t, g.ExemptAmount(ctx).Equal(FromInt(300_000)))
		assert.True(t, g.TaxableAmount(ctx).Equal(FromInt(700_000)))
	})

	t.Run("statutory cap wins for a long service", func(t *testing.T) {
		ctx := CalcContext{Regime: RegimeOld, Rules: rules}
		g := &Gratuity{
			AmountReceived:  FromInt(3_000_000),
			LastDrawnSalary: FromInt(200_000),
			ServiceYears:    30,
		}
		// Formula gives 3461538+, cap holds at 2000000.
		assert.True(t, g.ExemptAmount(ctx).Equal(FromInt(2_000_000)))
	})

	t.Run("negative service years is an error", func(t *testing.T) {
		g := &Gratuity{ServiceYears: -1}
		assert.Error(t, g.Validate())
	})
}

func TestLeaveEncashmentExemption(t *testing.T) {
	rules := retirementTestRules()
	ctx := CalcContext{Regime: RegimeOld, Rules: rules}

	l := &LeaveEncashment{
		AmountReceived:       FromInt(900_000),
		AverageMonthlySalary: FromInt(60_000),
		LeaveBalanceMonths:   8,
		ServiceYears:         20,
	}
	// Least of 900000, 2500000, 10 months (600000), 8 months (480000).
	assert.True(t, l.ExemptAmount(ctx).Equal(FromInt(480_000)))
	assert.True(t, l.TaxableAmount(ctx).Equal(FromInt(420_000)))

	govCtx := CalcContext{Regime: RegimeOld, GovernmentEmployee: true, Rules: rules}
	assert.True(t, l.TaxableAmount(govCtx).IsZero())
}

func TestVRSExemptionCap(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: retirementTestRules()}

	v := &VRSCompensation{AmountReceived: FromInt(800_000)}
	assert.True(t, v.ExemptAmount(ctx).Equal(FromInt(500_000)))
	assert.True(t, v.TaxableAmount(ctx).Equal(FromInt(300_000)))
}

func TestCommutedPensionFractions(t *testing.T) {
	rules := retirementTestRules()
	ctx := CalcContext{Regime: RegimeOld, Rules: rules}

	t.Run("with gratuity one third exempt", func(t *testing.T) {
		p := &Pension{CommutedPension: FromInt(900_000), GratuityReceived: true}
		assert.True(t, p.ExemptAmount(ctx).Equal(FromInt(300_000)))
		assert.True(t, p.TaxableAmount(ctx).Equal(FromInt(600_000)))
	})

	t.Run("without gratuity half exempt", func(t *testing.T) {
		p := &Pension{CommutedPension: FromInt(900_000)}
		assert.True(t, p.ExemptAmount(ctx).Equal(FromInt(450_000)))
	})

	t.Run("regular pension fully taxable", func(t *testing.T) {
		p := &Pension{RegularPension: FromInt(360_000)}
		assert.True(t, p.TaxableAmount(ctx).Equal(FromInt(360_000)))
	})

	t.Run("government commuted pension fully exempt", func(t *testing.T) {
		govCtx := CalcContext{Regime: RegimeOld, GovernmentEmployee: true, Rules: rules}
		p := &Pension{CommutedPension: FromInt(900_000)}
		assert.True(t, p.ExemptAmount(govCtx).Equal(FromInt(900_000)))
	})
}

func TestRetirementBenefitsAggregate(t *testing.T) {
	rules := retirementTestRules()
	ctx := CalcContext{Regime: RegimeOld, Rules: rules}

	t.Run("nil aggregate is zero", func(t *testing.T) {
		var r *RetirementBenefits
		assert.True(t, r.TaxableTotal(ctx).IsZero())
		assert.True(t, r.ExemptTotal(ctx).IsZero())
		assert.NoError(t, r.Validate())
	})

	t.Run("totals and breakdown", func(t *testing.T) {
		r := &RetirementBenefits{
			VRS:     &VRSCompensation{AmountReceived: FromInt(800_000)},
			Pension: &Pension{RegularPension: FromInt(100_000)},
		}
		assert.True(t, r.TaxableTotal(ctx).Equal(FromInt(400_000)))
		assert.True(t, r.ExemptTotal(ctx).Equal(FromInt(500_000)))

		breakdown := r.Breakdown(ctx)
		assert.Contains(t, breakdown, "vrs")
		assert.Contains(t, breakdown, "pension")
		assert.NotContains(t, breakdown, "gratuity")
	})

	t.Run("validate surfaces sub-entity errors", func(t *testing.T) {
		r := &RetirementBenefits{
			Retrenchment: &RetrenchmentCompensation{ServiceYears: -2},
		}
		assert.Error(t, r.Validate())
	})
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func otherIncomeTestContext() CalcContext {
	return CalcContext{
		Regime: RegimeOld,
		Rules: &TaxYearRules{
			OtherIncome: OtherIncomeRules{GiftExemptionThreshold: FromInt(50_000)},
		},
	}
}

func TestGiftThresholdIsAllOrNothing(t *testing.T) {
	rules := OtherIncomeRules{GiftExemptionThreshold: FromInt(50_000)}

	tests := []struct {
		name  string
		gifts Money
		want  Money
	}{
		{"under the threshold", FromInt(30_000), Zero()},
		{"exactly at the threshold", FromInt(50_000), Zero()},
		{"one rupee over taxes the whole amount", FromInt(50_001), FromInt(50_001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &OtherIncome{Gifts: tt.gifts}
			assert.True(t, o.TaxableGifts(rules).Equal(tt.want))
		})
	}
}

func TestOtherIncomeSlabTotal(t *testing.T) {
	ctx := otherIncomeTestContext()
	o := &OtherIncome{
		Interest: InterestIncome{
			SavingsAccount: FromInt(12_000),
			FixedDeposit:   FromInt(40_000),
		},
		Dividend:      FromInt(8_000),
		Gifts:         FromInt(60_000),
		Miscellaneous: FromInt(5_000),
		CapitalGains:  &CapitalGainsIncome{LTCGOtherAssets: FromInt(200_000)},
	}

	// Capital gains stay out of the slab total.
	assert.True(t, o.SlabTotal(ctx).Equal(FromInt(125_000)))
}

func TestNilOtherIncomeIsZero(t *testing.T) {
	ctx := otherIncomeTestContext()
	var o *OtherIncome
	assert.True(t, o.SlabTotal(ctx).IsZero())
	assert.Empty(t, o.Breakdown(ctx))
}

func TestOtherIncomeCloneIsIndependent(t *testing.T) {
	o := &OtherIncome{
		Gifts:         FromInt(10_000),
		HouseProperty: &HousePropertyIncome{RentReceived: FromInt(300_000)},
		CapitalGains:  &CapitalGainsIncome{STCGDebtMF: FromInt(20_000)},
	}

	clone := o.Clone()
	clone.HouseProperty.RentReceived = FromInt(1)
	clone.CapitalGains.STCGDebtMF = FromInt(2)

	assert.True(t, o.HouseProperty.RentReceived.Equal(FromInt(300_000)))
	assert.True(t, o.CapitalGains.STCGDebtMF.Equal(FromInt(20_000)))
}

package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func housePropertyTestRules() *TaxYearRules {
	return &TaxYearRules{
		HouseProperty: HousePropertyRules{
			StandardDeductionPct:    decimal.NewFromFloat(0.30),
			SelfOccupiedInterestCap: FromInt(200_000),
			LossSetOffCap:           FromInt(200_000),
			PreConstructionYears:    5,
		},
	}
}

func TestLetOutPropertyNetIncome(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: housePropertyTestRules()}

	h := &HousePropertyIncome{
		PropertyType:       PropertyLetOut,
		RentReceived:       FromInt(480_000),
		MunicipalTaxesPaid: FromInt(30_000),
		HomeLoanInterest:   FromInt(100_000),
	}
	// NAV 450000, less 30% standard deduction (135000), less interest.
	assert.True(t, h.NetIncome(ctx).Equal(FromInt(215_000)))
}

func TestLetOutLossClampedAtSetOffCap(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: housePropertyTestRules()}

	h := &HousePropertyIncome{
		PropertyType:     PropertyLetOut,
		RentReceived:     FromInt(120_000),
		HomeLoanInterest: FromInt(500_000),
	}
	// NAV 120000 - 36000 - 500000 = -416000, clamped to -200000.
	assert.True(t, h.NetIncome(ctx).Equal(FromInt(-200_000)))
}

func TestSelfOccupiedInterestDeduction(t *testing.T) {
	rules := housePropertyTestRules()

	t.Run("old regime capped loss", func(t *testing.T) {
		ctx := CalcContext{Regime: RegimeOld, Rules: rules}
		h := &HousePropertyIncome{
			PropertyType:     PropertySelfOccupied,
			HomeLoanInterest: FromInt(350_000),
		}
		assert.True(t, h.NetIncome(ctx).Equal(FromInt(-200_000)))
	})

	t.Run("new regime gives nothing", func(t *testing.T) {
		ctx := CalcContext{Regime: RegimeNew, Rules: rules}
		h := &HousePropertyIncome{
			PropertyType:     PropertySelfOccupied,
			HomeLoanInterest: FromInt(350_000),
		}
		assert.True(t, h.NetIncome(ctx).IsZero())
	})
}

func TestPreConstructionInterestSpread(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: housePropertyTestRules()}

	h := &HousePropertyIncome{
		PropertyType:            PropertySelfOccupied,
		HomeLoanInterest:        FromInt(100_000),
		PreConstructionInterest: FromInt(250_000),
	}
	// One fifth of the pre-construction interest joins this year's claim.
	assert.True(t, h.NetIncome(ctx).Equal(FromInt(-150_000)))
}

func TestNilHousePropertyIsZero(t *testing.T) {
	ctx := CalcContext{Regime: RegimeOld, Rules: housePropertyTestRules()}
	var h *HousePropertyIncome
	assert.True(t, h.NetIncome(ctx).IsZero())
	assert.Empty(t, h.Breakdown(ctx))
}

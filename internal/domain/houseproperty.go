package domain

import (
	"fmt"
)

// PropertyType distinguishes the two house-property treatments.
type PropertyType string

const (
	PropertySelfOccupied PropertyType = "self_occupied"
	PropertyLetOut       PropertyType = "let_out"
)

// ParsePropertyType maps a boundary string onto a property type.
func ParsePropertyType(s string) (PropertyType, error) {
	switch PropertyType(s) {
	case PropertySelfOccupied, PropertyLetOut:
		return PropertyType(s), nil
	default:
		return "", fmt.Errorf("unknown property type %q", s)
	}
}

// HousePropertyIncome is income (or loss) from one house property.
type HousePropertyIncome struct {
	PropertyType            PropertyType `json:"property_type"`
	RentReceived            Money        `json:"rent_received"`
	MunicipalTaxesPaid      Money        `json:"municipal_taxes_paid"`
	HomeLoanInterest        Money        `json:"home_loan_interest"`
	PreConstructionInterest Money        `json:"pre_construction_interest"`
}

// NetIncome computes income from house property. Let-out: rent less municipal
// taxes, less the standard deduction on the balance, less loan interest
// (including the spread pre-construction instalment). Self-occupied: only the
// interest deduction, capped under the old regime and unavailable under the
// new. A loss is clamped at the set-off cap.
func (h *HousePropertyIncome) NetIncome(ctx CalcContext) Money {
	if h == nil {
		return Zero()
	}
	rules := ctx.Rules.HouseProperty

	interest := h.HomeLoanInterest
	if rules.PreConstructionYears > 0 {
		instalment := h.PreConstructionInterest.Div(intToDecimal(rules.PreConstructionYears))
		interest = interest.Add(instalment)
	}

	switch h.PropertyType {
	case PropertyLetOut:
		netAnnualValue := h.RentReceived.SubFloor(h.MunicipalTaxesPaid)
		standardDeduction := netAnnualValue.Mul(rules.StandardDeductionPct)
		net := netAnnualValue.Sub(standardDeduction).Sub(interest)
		return clampLoss(net, rules.LossSetOffCap)
	default:
		// Self-occupied has no annual value; only interest gives a loss,
		// and only the old regime allows it.
		if !ctx.Regime.Allows(CategoryHomeLoanInterest) {
			return Zero()
		}
		loss := interest.Min(rules.SelfOccupiedInterestCap)
		return clampLoss(loss.Neg(), rules.LossSetOffCap)
	}
}

// Breakdown reports the components of the house-property computation.
func (h *HousePropertyIncome) Breakdown(ctx CalcContext) map[string]Money {
	if h == nil {
		return map[string]Money{}
	}
	return map[string]Money{
		"rent_received":             h.RentReceived,
		"municipal_taxes_paid":      h.MunicipalTaxesPaid,
		"home_loan_interest":        h.HomeLoanInterest,
		"pre_construction_interest": h.PreConstructionInterest,
		"net_income":                h.NetIncome(ctx),
	}
}

// clampLoss limits a negative amount to at most cap of loss.
func clampLoss(amount, cap Money) Money {
	if amount.IsNegative() && amount.Neg().GreaterThan(cap) {
		return cap.Neg()
	}
	return amount
}

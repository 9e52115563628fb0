package domain

// InterestIncome itemizes interest by source; the split matters because
// 80TTA covers only savings interest while 80TTB covers all of it.
type InterestIncome struct {
	SavingsAccount   Money `json:"savings_account"`
	FixedDeposit     Money `json:"fixed_deposit"`
	RecurringDeposit Money `json:"recurring_deposit"`
	PostOffice       Money `json:"post_office"`
}

// Total sums all interest received.
func (i InterestIncome) Total() Money {
	return SumMoney(i.SavingsAccount, i.FixedDeposit, i.RecurringDeposit, i.PostOffice)
}

// OtherIncome aggregates non-salary income. House property and capital gains
// may be embedded here for aggregation convenience; the engine reads them
// from this aggregate.
type OtherIncome struct {
	Interest      InterestIncome `json:"interest"`
	Dividend      Money          `json:"dividend"`
	Gifts         Money          `json:"gifts"`
	Business      Money          `json:"business"`
	Miscellaneous Money          `json:"miscellaneous"`

	HouseProperty *HousePropertyIncome `json:"house_property,omitempty"`
	CapitalGains  *CapitalGainsIncome  `json:"capital_gains,omitempty"`
}

// TaxableGifts applies the gift threshold: at or under it gifts are exempt,
// above it the whole amount is taxable.
func (o *OtherIncome) TaxableGifts(rules OtherIncomeRules) Money {
	if o == nil || o.Gifts.LessThanOrEqual(rules.GiftExemptionThreshold) {
		return Zero()
	}
	return o.Gifts
}

// SlabTotal is the other-income contribution that is slab-taxed: everything
// here except capital gains and house property, which the engine aggregates
// separately.
func (o *OtherIncome) SlabTotal(ctx CalcContext) Money {
	if o == nil {
		return Zero()
	}
	return SumMoney(
		o.Interest.Total(), o.Dividend, o.Business, o.Miscellaneous,
		o.TaxableGifts(ctx.Rules.OtherIncome),
	)
}

// Breakdown reports other income by source.
func (o *OtherIncome) Breakdown(ctx CalcContext) map[string]Money {
	if o == nil {
		return map[string]Money{}
	}
	return map[string]Money{
		"interest_savings":   o.Interest.SavingsAccount,
		"interest_fd":        o.Interest.FixedDeposit,
		"interest_rd":        o.Interest.RecurringDeposit,
		"interest_post_office": o.Interest.PostOffice,
		"dividend":           o.Dividend,
		"taxable_gifts":      o.TaxableGifts(ctx.Rules.OtherIncome),
		"business":           o.Business,
		"miscellaneous":      o.Miscellaneous,
	}
}

// Clone returns an independent copy.
func (o *OtherIncome) Clone() *OtherIncome {
	if o == nil {
		return nil
	}
	out := *o
	if o.HouseProperty != nil {
		hp := *o.HouseProperty
		out.HouseProperty = &hp
	}
	if o.CapitalGains != nil {
		cg := *o.CapitalGains
		out.CapitalGains = &cg
	}
	return &out
}

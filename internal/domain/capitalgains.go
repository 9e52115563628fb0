package domain

// CapitalGainsBucket names one of the six statutory capital-gains buckets.
type CapitalGainsBucket string

const (
	BucketSTCG111AEquitySTT CapitalGainsBucket = "stcg_111a_equity_stt"
	BucketSTCGOtherAssets   CapitalGainsBucket = "stcg_other_assets"
	BucketSTCGDebtMF        CapitalGainsBucket = "stcg_debt_mf"
	BucketLTCG112AEquitySTT CapitalGainsBucket = "ltcg_112a_equity_stt"
	BucketLTCGOtherAssets   CapitalGainsBucket = "ltcg_other_assets"
	BucketLTCGDebtMF        CapitalGainsBucket = "ltcg_debt_mf"
)

// CapitalGainsBuckets lists every bucket in reporting order.
var CapitalGainsBuckets = []CapitalGainsBucket{
	BucketSTCG111AEquitySTT, BucketSTCGOtherAssets, BucketSTCGDebtMF,
	BucketLTCG112AEquitySTT, BucketLTCGOtherAssets, BucketLTCGDebtMF,
}

// CapitalGainsIncome carries gains per bucket. Each bucket is taxed at its
// own statutory rate by the calculation engine; none of them enter the slab
// computation.
type CapitalGainsIncome struct {
	STCG111AEquitySTT Money `json:"stcg_111a_equity_stt"`
	STCGOtherAssets   Money `json:"stcg_other_assets"`
	STCGDebtMF        Money `json:"stcg_debt_mf"`
	LTCG112AEquitySTT Money `json:"ltcg_112a_equity_stt"`
	LTCGOtherAssets   Money `json:"ltcg_other_assets"`
	LTCGDebtMF        Money `json:"ltcg_debt_mf"`
}

// Amount returns the gain recorded in a bucket.
func (c *CapitalGainsIncome) Amount(bucket CapitalGainsBucket) Money {
	if c == nil {
		return Zero()
	}
	switch bucket {
	case BucketSTCG111AEquitySTT:
		return c.STCG111AEquitySTT
	case BucketSTCGOtherAssets:
		return c.STCGOtherAssets
	case BucketSTCGDebtMF:
		return c.STCGDebtMF
	case BucketLTCG112AEquitySTT:
		return c.LTCG112AEquitySTT
	case BucketLTCGOtherAssets:
		return c.LTCGOtherAssets
	case BucketLTCGDebtMF:
		return c.LTCGDebtMF
	default:
		return Zero()
	}
}

// Total sums the gains across all buckets.
func (c *CapitalGainsIncome) Total() Money {
	if c == nil {
		return Zero()
	}
	total := Zero()
	for _, bucket := range CapitalGainsBuckets {
		total = total.Add(c.Amount(bucket))
	}
	return total
}

// TaxableAmount applies any bucket-level exemption before the flat rate.
// Only the 112A equity bucket carries an exemption threshold.
func (c *CapitalGainsIncome) TaxableAmount(bucket CapitalGainsBucket, rules CapitalGainsRules) Money {
	amount := c.Amount(bucket).ClampZero()
	if bucket == BucketLTCG112AEquitySTT {
		return amount.SubFloor(rules.LTCG112AExemption)
	}
	return amount
}

// Tax computes the tax for one bucket at its statutory rate.
func (c *CapitalGainsIncome) Tax(bucket CapitalGainsBucket, rules CapitalGainsRules) Money {
	taxable := c.TaxableAmount(bucket, rules)
	if taxable.IsZero() {
		return Zero()
	}
	switch bucket {
	case BucketSTCG111AEquitySTT:
		return taxable.Mul(rules.STCG111ARate)
	case BucketSTCGOtherAssets:
		return taxable.Mul(rules.STCGOtherRate)
	case BucketSTCGDebtMF:
		return taxable.Mul(rules.STCGDebtMFRate)
	case BucketLTCG112AEquitySTT:
		return taxable.Mul(rules.LTCG112ARate)
	case BucketLTCGOtherAssets:
		return taxable.Mul(rules.LTCGOtherRate)
	case BucketLTCGDebtMF:
		return taxable.Mul(rules.LTCGDebtMFRate)
	default:
		return Zero()
	}
}

// TotalTax sums the per-bucket taxes.
func (c *CapitalGainsIncome) TotalTax(rules CapitalGainsRules) Money {
	if c == nil {
		return Zero()
	}
	total := Zero()
	for _, bucket := range CapitalGainsBuckets {
		total = total.Add(c.Tax(bucket, rules))
	}
	return total
}

// TaxBreakdown reports the tax per bucket, omitting empty buckets.
func (c *CapitalGainsIncome) TaxBreakdown(rules CapitalGainsRules) map[CapitalGainsBucket]Money {
	out := make(map[CapitalGainsBucket]Money)
	if c == nil {
		return out
	}
	for _, bucket := range CapitalGainsBuckets {
		tax := c.Tax(bucket, rules)
		if !tax.IsZero() {
			out[bucket] = tax
		}
	}
	return out
}

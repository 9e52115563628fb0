package domain

// TaxCalculationResult is the full outcome of one calculation run.
type TaxCalculationResult struct {
	Regime  TaxRegime `json:"regime"`
	TaxYear TaxYear   `json:"tax_year"`

	TotalIncome     Money `json:"total_income"`
	TotalExemptions Money `json:"total_exemptions"`
	TotalDeductions Money `json:"total_deductions"`
	TaxableIncome   Money `json:"taxable_income"`

	// Slab tax before rebate, surcharge and cess.
	TaxAmount       Money `json:"tax_amount"`
	CapitalGainsTax Money `json:"capital_gains_tax"`
	Rebate          Money `json:"rebate"`
	Surcharge       Money `json:"surcharge"`
	Cess            Money `json:"cess"`
	TaxLiability    Money `json:"tax_liability"`

	// Tracked alongside but not part of the slab computation.
	ProfessionalTax Money `json:"professional_tax"`

	Breakdown TaxBreakdown `json:"tax_breakdown"`

	RegimeComparison *RegimeComparison `json:"regime_comparison,omitempty"`
}

// TaxBreakdown carries the per-component transparency maps.
type TaxBreakdown struct {
	GrossSalary        Money                          `json:"gross_salary"`
	PerquisiteValue    Money                          `json:"perquisite_value"`
	HousePropertyIncome Money                         `json:"house_property_income"`
	CapitalGainsIncome Money                          `json:"capital_gains_income"`
	RetirementTaxable  Money                          `json:"retirement_taxable"`
	OtherIncome        Money                          `json:"other_income"`
	StandardDeduction  Money                          `json:"standard_deduction"`
	HRAExemption       Money                          `json:"hra_exemption"`
	AllowanceExemptions map[AllowanceCode]Money       `json:"allowance_exemptions"`
	Perquisites        map[string]PerquisiteLine      `json:"perquisites"`
	Retirement         map[string]PerquisiteLine      `json:"retirement"`
	Deductions         map[string]Money               `json:"deductions"`
	InterestExemption  map[string]any                 `json:"interest_exemption"`
	CapitalGainsTax    map[CapitalGainsBucket]Money   `json:"capital_gains_tax"`
	Slabs              []SlabTaxLine                  `json:"slabs"`
}

// SlabTaxLine is one slab's contribution to the progressive tax.
type SlabTaxLine struct {
	From   Money  `json:"from"`
	To     Money  `json:"to"`
	Rate   string `json:"rate"`
	Income Money  `json:"income"`
	Tax    Money  `json:"tax"`
}

// RegimeComparison shows liability side by side under both regimes.
type RegimeComparison struct {
	Old *TaxCalculationResult `json:"old"`
	New *TaxCalculationResult `json:"new"`
	// Recommended is the regime with the lower final liability.
	Recommended TaxRegime `json:"recommended"`
	// Savings is the liability difference the recommendation captures.
	Savings Money `json:"savings"`
}

package domain

import (
	"fmt"
	"strings"
)

// TaxRegime selects which statutory rule set applies. It gates exemptions and
// deductions and selects the slab table.
type TaxRegime string

const (
	RegimeOld TaxRegime = "old"
	RegimeNew TaxRegime = "new"
)

// ParseRegime maps a boundary string onto a regime. An unrecognized regime is
// a hard error: defaulting silently would silently change tax liability.
func ParseRegime(s string) (TaxRegime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old":
		return RegimeOld, nil
	case "new":
		return RegimeNew, nil
	default:
		return "", fmt.Errorf("unknown tax regime %q (want old or new)", s)
	}
}

func (r TaxRegime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// Other returns the opposite regime, used for side-by-side comparison.
func (r TaxRegime) Other() TaxRegime {
	if r == RegimeOld {
		return RegimeNew
	}
	return RegimeOld
}

func (r TaxRegime) String() string {
	return string(r)
}

// DeductionCategory names a class of exemption or deduction whose
// availability depends on the regime.
type DeductionCategory string

const (
	CategorySection80C         DeductionCategory = "section_80c"
	CategorySection80CCD1B     DeductionCategory = "section_80ccd_1b"
	CategorySection80CCD2      DeductionCategory = "section_80ccd_2"
	CategorySection80D         DeductionCategory = "section_80d"
	CategorySection80DD        DeductionCategory = "section_80dd"
	CategorySection80DDB       DeductionCategory = "section_80ddb"
	CategorySection80E         DeductionCategory = "section_80e"
	CategorySection80EEB       DeductionCategory = "section_80eeb"
	CategorySection80G         DeductionCategory = "section_80g"
	CategorySection80GGC       DeductionCategory = "section_80ggc"
	CategorySection80U         DeductionCategory = "section_80u"
	CategorySection80TTA       DeductionCategory = "section_80tta_ttb"
	CategoryHRAExemption       DeductionCategory = "hra_exemption"
	CategoryAllowanceExemption DeductionCategory = "allowance_exemption"
	CategoryHomeLoanInterest   DeductionCategory = "home_loan_interest"
	CategoryOtherDeductions    DeductionCategory = "other_deductions"
)

// regimePolicy is the single place that answers "is this category allowed
// under this regime". Calculators consult it instead of branching on the
// regime themselves.
var regimePolicy = map[TaxRegime]map[DeductionCategory]bool{
	RegimeOld: {
		CategorySection80C:         true,
		CategorySection80CCD1B:     true,
		CategorySection80CCD2:      true,
		CategorySection80D:         true,
		CategorySection80DD:        true,
		CategorySection80DDB:       true,
		CategorySection80E:         true,
		CategorySection80EEB:       true,
		CategorySection80G:         true,
		CategorySection80GGC:       true,
		CategorySection80U:         true,
		CategorySection80TTA:       true,
		CategoryHRAExemption:       true,
		CategoryAllowanceExemption: true,
		CategoryHomeLoanInterest:   true,
		CategoryOtherDeductions:    true,
	},
	// The new regime keeps only employer NPS contributions under 80CCD(2).
	RegimeNew: {
		CategorySection80CCD2: true,
	},
}

// Allows reports whether a deduction/exemption category applies under the
// regime.
func (r TaxRegime) Allows(category DeductionCategory) bool {
	return regimePolicy[r][category]
}

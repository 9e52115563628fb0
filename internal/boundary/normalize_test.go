package boundary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itrgo/itrgo/internal/domain"
)

func TestMoneyCoercion(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		want     domain.Money
		wantWarn bool
	}{
		{"nil is zero without warning", nil, domain.Zero(), false},
		{"float", float64(12345.67), domain.FromFloat(12345.67), false},
		{"int", 50000, domain.FromInt(50_000), false},
		{"numeric string", "75000", domain.FromInt(75_000), false},
		{"json number", json.Number("125000"), domain.FromInt(125_000), false},
		{"empty string coerces to zero", "", domain.Zero(), true},
		{"null string coerces to zero", "null", domain.Zero(), true},
		{"NaN coerces to zero", "NaN", domain.Zero(), true},
		{"none coerces to zero", "none", domain.Zero(), true},
		{"garbage string coerces to zero", "twelve lakh", domain.Zero(), true},
		{"unexpected type coerces to zero", []any{1}, domain.Zero(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer()
			got := n.Money("basic_salary", tt.value)
			assert.True(t, got.Equal(tt.want), "got %s", got)
			if tt.wantWarn {
				assert.NotEmpty(t, n.Warnings())
			} else {
				assert.Empty(t, n.Warnings())
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	m, err := ParseJSON([]byte(`{"tax_year": "2024-25", "age": 40}`))
	require.NoError(t, err)
	assert.Equal(t, "2024-25", m["tax_year"])

	_, err = ParseJSON([]byte(`{"tax_year": `))
	assert.Error(t, err)
}

func TestRecordFromPayloadTaxYearRequired(t *testing.T) {
	n := NewNormalizer()
	_, err := n.RecordFromPayload(map[string]any{"employee_id": "emp-1"})
	assert.ErrorContains(t, err, "tax_year")

	n = NewNormalizer()
	_, err = n.RecordFromPayload(map[string]any{"tax_year": "2024-26"})
	assert.Error(t, err)
}

func TestRecordFromPayloadInvalidRegimeIsFatal(t *testing.T) {
	n := NewNormalizer()
	_, err := n.RecordFromPayload(map[string]any{
		"tax_year": "2024-25",
		"regime":   "flat",
	})
	assert.Error(t, err)
}

func TestRecordFromPayloadMissingRegimeDefaultsToOld(t *testing.T) {
	n := NewNormalizer()
	record, err := n.RecordFromPayload(map[string]any{
		"tax_year":    "2024-25",
		"employee_id": "emp-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeOld, record.Regime)
	require.NotEmpty(t, n.Warnings())
	assert.Contains(t, n.Warnings()[0], "regime not specified")
}

func TestRecordFromPayloadFlatSalarySection(t *testing.T) {
	n := NewNormalizer()
	record, err := n.RecordFromPayload(map[string]any{
		"tax_year":    "2024-25",
		"regime":      "new",
		"employee_id": "emp-42",
		"age":         float64(31),
		"salary": map[string]any{
			"basic": float64(600_000),
			"hra":   float64(240_000),
			"da":    "60000",
			"specific_allowances": map[string]any{
				"conveyance": float64(19_200),
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeNew, record.Regime)
	assert.Equal(t, 31, record.Age)
	require.Len(t, record.SalaryIncomes, 1)

	rev := record.SalaryIncomes[0]
	assert.True(t, rev.BasicSalary.Equal(domain.FromInt(600_000)))
	assert.True(t, rev.HRAProvided.Equal(domain.FromInt(240_000)))
	assert.True(t, rev.DearnessAllowance.Equal(domain.FromInt(60_000)))
	// Unspecified dates fill in the tax-year bounds.
	assert.Equal(t, record.TaxYear.Start, rev.EffectiveFrom)
	assert.Equal(t, record.TaxYear.End, rev.EffectiveTill)
	assert.True(t, rev.SpecificAllowances["conveyance"].Equal(domain.FromInt(19_200)))
}

func TestRecordFromPayloadRevisionList(t *testing.T) {
	n := NewNormalizer()
	record, err := n.RecordFromPayload(map[string]any{
		"tax_year": "2024-25",
		"regime":   "old",
		"salary_incomes": []any{
			map[string]any{
				"effective_from": "2024-04-01",
				"effective_till": "2024-09-30",
				"basic":          float64(500_000),
			},
			map[string]any{
				"effective_from": "2024-10-01",
				"basic":          float64(550_000),
			},
			"not an object",
		},
	})
	require.NoError(t, err)

	require.Len(t, record.SalaryIncomes, 2)
	assert.True(t, record.SalaryIncomes[1].BasicSalary.Equal(domain.FromInt(550_000)))
	assert.Equal(t, record.TaxYear.End, record.SalaryIncomes[1].EffectiveTill)
	assert.NotEmpty(t, n.Warnings())
}

func TestRecordFromPayloadDeductionsAndBenefits(t *testing.T) {
	n := NewNormalizer()
	record, err := n.RecordFromPayload(map[string]any{
		"tax_year": "2024-25",
		"regime":   "old",
		"deductions": map[string]any{
			"section_80c": map[string]any{
				"ppf_contribution": float64(120_000),
			},
			"section_80d": map[string]any{
				"self_family_premium": float64(22_000),
			},
		},
		"perquisites": map[string]any{
			"car": map[string]any{
				"use_type":  "mixed",
				"engine_cc": float64(1800),
				"months":    float64(14),
			},
		},
		"other_income": map[string]any{
			"interest": map[string]any{
				"savings_account": float64(9_000),
			},
		},
	})
	require.NoError(t, err)

	assert.True(t, record.Deductions.Section80C.PPFContribution.Equal(domain.FromInt(120_000)))
	assert.True(t, record.Deductions.Section80D.SelfFamilyPremium.Equal(domain.FromInt(22_000)))
	require.NotNil(t, record.Perquisites)
	require.NotNil(t, record.Perquisites.Car)
	// Months past twelve clamp with a warning.
	assert.Equal(t, 12, record.Perquisites.Car.Months)
	assert.NotEmpty(t, n.Warnings())
	require.NotNil(t, record.OtherIncome)
	assert.True(t, record.OtherIncome.Interest.SavingsAccount.Equal(domain.FromInt(9_000)))
}

func TestEnumFallbacksWarn(t *testing.T) {
	n := NewNormalizer()
	record, err := n.RecordFromPayload(map[string]any{
		"tax_year": "2024-25",
		"regime":   "old",
		"perquisites": map[string]any{
			"accommodation": map[string]any{
				"type": "penthouse",
			},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, record.Perquisites.Accommodation)
	assert.Equal(t, domain.AccommodationLeased, record.Perquisites.Accommodation.Type)
	assert.NotEmpty(t, n.Warnings())
}

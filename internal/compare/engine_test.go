package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itrgo/itrgo/internal/calculation"
	"github.com/itrgo/itrgo/internal/config"
	"github.com/itrgo/itrgo/internal/domain"
)

func newCompareFixture(t *testing.T) (*CompareEngine, *domain.SalaryPackageRecord) {
	t.Helper()
	rules, err := config.NewRulesLoader().ForYear("2024-25")
	require.NoError(t, err)
	calcEngine, err := calculation.NewEngine(rules)
	require.NoError(t, err)

	year, err := domain.ParseTaxYear("2024-25")
	require.NoError(t, err)
	record, err := domain.NewSalaryPackageRecord("emp-1", "org-1", year, domain.RegimeOld)
	require.NoError(t, err)

	income := record.SalaryIncomes[0]
	income.BasicSalary = domain.FromInt(1_500_000)
	require.NoError(t, record.UpdateLatestSalaryIncome(income))

	return NewCompareEngine(calcEngine), record
}

func TestCompareProducesBaseAndAlternatives(t *testing.T) {
	engine, record := newCompareFixture(t)

	set, err := engine.Compare(context.Background(), record, CompareOptions{
		Templates: []string{"switch_regime", "max_80c"},
	})
	require.NoError(t, err)

	assert.Equal(t, "current", set.BaseScenarioName)
	assert.Equal(t, "emp-1", set.EmployeeID)
	assert.Equal(t, "2024-25", set.TaxYear)
	require.NotNil(t, set.BaseResult)
	require.Len(t, set.AlternativeResults, 2)

	// A plain 1.5M salary is cheaper under the new regime, and an 80C top-up
	// lowers the old-regime bill, so both deltas are negative.
	for _, alt := range set.AlternativeResults {
		assert.True(t, alt.TaxDiffFromBase.IsNegative(), "%s diff %s", alt.ScenarioName, alt.TaxDiffFromBase)
	}
	require.NotEmpty(t, set.Recommendations)
	assert.Contains(t, set.Recommendations[0], "saves")
}

func TestCompareMax80CAtCeiling(t *testing.T) {
	engine, record := newCompareFixture(t)
	deductions := record.Deductions
	deductions.Section80C.PPFContribution = domain.FromInt(150_000)
	require.NoError(t, record.UpdateDeductions(deductions))

	// Already at the 80C ceiling: the top-up scenario still runs and simply
	// changes nothing.
	set, err := engine.Compare(context.Background(), record, CompareOptions{
		Templates: []string{"max_80c"},
	})
	require.NoError(t, err)

	require.Len(t, set.AlternativeResults, 1)
	assert.True(t, set.AlternativeResults[0].TaxDiffFromBase.IsZero())
	require.NotEmpty(t, set.Recommendations)
	assert.Contains(t, set.Recommendations[0], "current package already wins")
}

func TestCompareUnknownTemplate(t *testing.T) {
	engine, record := newCompareFixture(t)

	_, err := engine.Compare(context.Background(), record, CompareOptions{
		Templates: []string{"pay_in_gold"},
	})
	assert.ErrorContains(t, err, "not found")
}

func TestCompareNilRecord(t *testing.T) {
	engine, _ := newCompareFixture(t)
	_, err := engine.Compare(context.Background(), nil, CompareOptions{})
	assert.Error(t, err)
}

func TestCompareCancelledContext(t *testing.T) {
	engine, record := newCompareFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Compare(ctx, record, CompareOptions{Templates: []string{"switch_regime"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareWithoutAlternatives(t *testing.T) {
	engine, record := newCompareFixture(t)

	set, err := engine.Compare(context.Background(), record, CompareOptions{
		BaseScenarioName: "as filed",
	})
	require.NoError(t, err)
	assert.Equal(t, "as filed", set.BaseScenarioName)
	assert.Empty(t, set.AlternativeResults)
	assert.Empty(t, set.Recommendations)
}

func TestCompareLeavesRecordUntouched(t *testing.T) {
	engine, record := newCompareFixture(t)

	_, err := engine.Compare(context.Background(), record, CompareOptions{
		Templates: []string{"switch_regime", "mid_year_raise_10"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeOld, record.Regime)
	assert.Len(t, record.SalaryIncomes, 1)
}

func TestFormatters(t *testing.T) {
	engine, record := newCompareFixture(t)
	set, err := engine.Compare(context.Background(), record, CompareOptions{
		Templates: []string{"switch_regime"},
	})
	require.NoError(t, err)

	t.Run("table", func(t *testing.T) {
		out := (&TableFormatter{}).Format(set)
		assert.Contains(t, out, "TAX SCENARIO COMPARISON")
		assert.Contains(t, out, "current")
		assert.Contains(t, out, "switch_regime")
	})

	t.Run("csv", func(t *testing.T) {
		out, err := (&CSVFormatter{}).Format(set)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		// Header plus one row per scenario.
		assert.Len(t, lines, 3)
		assert.Contains(t, lines[0], "Scenario")
		assert.Contains(t, lines[1], "base")
		assert.Contains(t, lines[2], "alternative")
	})

	t.Run("json", func(t *testing.T) {
		out, err := (&JSONFormatter{Pretty: true}).Format(set)
		require.NoError(t, err)
		assert.Contains(t, out, `"baseScenarioName"`)
	})
}

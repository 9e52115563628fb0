package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/itrgo/itrgo/internal/domain"
)

// TaxCalculationInput bundles everything one calculation run needs. Missing
// components compute against zero-valued defaults; the caller decides whether
// a record is complete enough to calculate.
type TaxCalculationInput struct {
	Regime             domain.TaxRegime
	TaxYear            domain.TaxYear
	Age                int
	GovernmentEmployee bool

	SalaryIncomes []domain.SalaryIncome
	Deductions    domain.TaxDeductions
	Perquisites   *domain.Perquisites
	Retirement    *domain.RetirementBenefits
	OtherIncome   *domain.OtherIncome

	ProfessionalTaxPaid domain.Money
}

// InputFromRecord projects a SalaryPackageRecord into a calculation input.
func InputFromRecord(record *domain.SalaryPackageRecord) TaxCalculationInput {
	return TaxCalculationInput{
		Regime:              record.Regime,
		TaxYear:             record.TaxYear,
		Age:                 record.Age,
		GovernmentEmployee:  record.GovernmentEmployee,
		SalaryIncomes:       record.SalaryIncomes,
		Deductions:          record.Deductions,
		Perquisites:         record.Perquisites,
		Retirement:          record.Retirement,
		OtherIncome:         record.OtherIncome,
		ProfessionalTaxPaid: record.ProfessionalTaxPaid,
	}
}

// Engine orchestrates the full liability computation: gross aggregation with
// revision proration, exemptions, Chapter VI-A deductions, slab tax, bucketed
// capital-gains tax, rebate, surcharge with marginal relief, and cess. Every
// statutory figure comes from the injected TaxYearRules.
type Engine struct {
	Rules  *domain.TaxYearRules
	Logger Logger
}

// NewEngine creates an engine for one tax year's rules. Missing rules are a
// configuration error.
func NewEngine(rules *domain.TaxYearRules) (*Engine, error) {
	if rules == nil {
		return nil, fmt.Errorf("tax year rules are required")
	}
	return &Engine{Rules: rules, Logger: NopLogger{}}, nil
}

// SetLogger installs a logger; nil restores the no-op logger.
func (e *Engine) SetLogger(logger Logger) {
	if logger == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = logger
}

// Calculate runs the full computation for one regime. It either succeeds for
// whatever data is present or fails outright on a configuration or invariant
// error; it never partially fails.
func (e *Engine) Calculate(input TaxCalculationInput) (*domain.TaxCalculationResult, error) {
	regimeRules, err := e.Rules.ForRegime(input.Regime)
	if err != nil {
		return nil, err
	}
	if err := e.validate(input); err != nil {
		return nil, err
	}

	ctx := domain.CalcContext{
		Regime:             input.Regime,
		Age:                input.Age,
		GovernmentEmployee: input.GovernmentEmployee,
		Rules:              e.Rules,
	}
	year := input.TaxYear

	// Step 1: gross income, with cash salary prorated by effective-date
	// overlap with the tax year.
	grossSalary := domain.Zero()
	hraReceived := domain.Zero()
	salaryBase := domain.Zero()
	employerNPS := domain.Zero()
	mergedAllowances := domain.SpecificAllowances{}
	for _, revision := range input.SalaryIncomes {
		fraction := revision.OverlapFraction(year)
		grossSalary = grossSalary.Add(revision.CashTotal().Mul(fraction))
		hraReceived = hraReceived.Add(revision.HRAProvided.Mul(fraction))
		salaryBase = salaryBase.Add(revision.BasicPlusDA().Mul(fraction))
		employerNPS = employerNPS.Add(revision.EmployerPensionContribution.Mul(fraction))
		for code, amount := range revision.SpecificAllowances {
			mergedAllowances[code] = mergedAllowances[code].Add(amount.Mul(fraction))
		}
	}
	// Employer NPS contributions are salary first; 80CCD(2) gives them back.
	grossSalary = grossSalary.Add(employerNPS)

	perqBreakdown := input.Perquisites.Breakdown(ctx, salaryBase)
	perqTaxable := input.Perquisites.TaxableTotal(ctx, salaryBase)
	perqExempt := input.Perquisites.ExemptTotal(ctx, salaryBase)

	var houseProperty *domain.HousePropertyIncome
	var capitalGains *domain.CapitalGainsIncome
	if input.OtherIncome != nil {
		houseProperty = input.OtherIncome.HouseProperty
		capitalGains = input.OtherIncome.CapitalGains
	}
	housePropertyNet := houseProperty.NetIncome(ctx)
	capitalGainsTotal := capitalGains.Total()
	retirementTaxable := input.Retirement.TaxableTotal(ctx)
	retirementExempt := input.Retirement.ExemptTotal(ctx)
	otherIncome := input.OtherIncome.SlabTotal(ctx)

	grossIncome := domain.SumMoney(
		grossSalary, perqTaxable, perqExempt, housePropertyNet,
		capitalGainsTotal, retirementTaxable, retirementExempt, otherIncome,
	)

	// Step 2: exemptions under the regime's gating rules.
	allowanceExempt := mergedAllowances.ExemptTotal(ctx)
	hraExempt := input.Deductions.HRA.Exempt(ctx, salaryBase, hraReceived)
	totalExemptions := domain.SumMoney(allowanceExempt, hraExempt, perqExempt, retirementExempt)

	// Step 3: deductions. The standard deduction applies to salary income in
	// both regimes at the regime's own figure; 80CCD(2) applies in both.
	standardDeduction := regimeRules.StandardDeduction.Min(grossSalary)
	ccd2Pct := e.Rules.Deductions.Section80CCD2Pct
	if input.GovernmentEmployee {
		ccd2Pct = e.Rules.Deductions.Section80CCD2PctGovt
	}
	ccd2 := employerNPS.Min(salaryBase.Mul(ccd2Pct))

	adjustedGross := grossIncome.Sub(totalExemptions).Sub(standardDeduction).Sub(capitalGainsTotal).ClampZero()
	deductionBreakdown := input.Deductions.Breakdown(ctx, adjustedGross)
	deductionBreakdown["standard_deduction"] = standardDeduction
	deductionBreakdown["section_80ccd_2"] = ccd2
	totalDeductions := domain.Zero()
	for _, amount := range deductionBreakdown {
		totalDeductions = totalDeductions.Add(amount)
	}

	// Step 4: taxable income, floored at zero.
	taxableIncome := grossIncome.Sub(totalExemptions).Sub(totalDeductions).ClampZero()

	// Steps 5-6: slab tax on everything but capital gains; capital gains
	// taxed per bucket at flat rates.
	cgTaxBreakdown := capitalGains.TaxBreakdown(e.Rules.CapitalGains)
	cgTax := capitalGains.TotalTax(e.Rules.CapitalGains)
	slabIncome := taxableIncome.Sub(capitalGainsTotal).ClampZero()
	slabTax, slabLines := slabTaxAmount(regimeRules.Slabs, slabIncome)

	// Step 7: rebate under the regime's threshold and cap.
	rebate := domain.Zero()
	if !regimeRules.RebateThreshold.IsZero() && taxableIncome.LessThanOrEqual(regimeRules.RebateThreshold) {
		rebate = slabTax.Min(regimeRules.RebateCap)
	}
	taxAfterRebate := slabTax.Sub(rebate).Add(cgTax)

	// Step 8: surcharge with marginal-relief smoothing.
	surcharge := surchargeAmount(regimeRules, taxableIncome, taxAfterRebate)

	// Step 9: cess on tax plus surcharge.
	cess := taxAfterRebate.Add(surcharge).Mul(e.Rules.CessRate)

	// Step 10: professional tax tracked alongside, never slab-taxed.
	professionalTax := input.ProfessionalTaxPaid.Min(e.Rules.Deductions.ProfessionalTaxCap)

	liability := taxAfterRebate.Add(surcharge).Add(cess).Round(0)

	e.Logger.Debugf("calculated %s regime liability %s on taxable income %s",
		input.Regime, liability, taxableIncome)

	return &domain.TaxCalculationResult{
		Regime:          input.Regime,
		TaxYear:         year,
		TotalIncome:     grossIncome.Round(2),
		TotalExemptions: totalExemptions.Round(2),
		TotalDeductions: totalDeductions.Round(2),
		TaxableIncome:   taxableIncome.Round(2),
		TaxAmount:       slabTax.Sub(rebate).Round(2),
		CapitalGainsTax: cgTax.Round(2),
		Rebate:          rebate.Round(2),
		Surcharge:       surcharge.Round(2),
		Cess:            cess.Round(2),
		TaxLiability:    liability,
		ProfessionalTax: professionalTax.Round(2),
		Breakdown: domain.TaxBreakdown{
			GrossSalary:         grossSalary.Round(2),
			PerquisiteValue:     perqTaxable.Round(2),
			HousePropertyIncome: housePropertyNet.Round(2),
			CapitalGainsIncome:  capitalGainsTotal.Round(2),
			RetirementTaxable:   retirementTaxable.Round(2),
			OtherIncome:         otherIncome.Round(2),
			StandardDeduction:   standardDeduction.Round(2),
			HRAExemption:        hraExempt.Round(2),
			AllowanceExemptions: mergedAllowances.ExemptBreakdown(ctx),
			Perquisites:         perqBreakdown,
			Retirement:          input.Retirement.Breakdown(ctx),
			Deductions:          deductionBreakdown,
			InterestExemption:   input.Deductions.InterestExemption.Breakdown(ctx),
			CapitalGainsTax:     cgTaxBreakdown,
			Slabs:               slabLines,
		},
	}, nil
}

// CalculateWithComparison runs the calculation for the selected regime and
// attaches a side-by-side result for the other one.
func (e *Engine) CalculateWithComparison(input TaxCalculationInput) (*domain.TaxCalculationResult, error) {
	result, err := e.Calculate(input)
	if err != nil {
		return nil, err
	}

	otherInput := input
	otherInput.Regime = input.Regime.Other()
	other, err := e.Calculate(otherInput)
	if err != nil {
		return nil, err
	}

	comparison := &domain.RegimeComparison{}
	if input.Regime == domain.RegimeOld {
		comparison.Old, comparison.New = result, other
	} else {
		comparison.Old, comparison.New = other, result
	}
	if comparison.Old.TaxLiability.LessThanOrEqual(comparison.New.TaxLiability) {
		comparison.Recommended = domain.RegimeOld
		comparison.Savings = comparison.New.TaxLiability.Sub(comparison.Old.TaxLiability)
	} else {
		comparison.Recommended = domain.RegimeNew
		comparison.Savings = comparison.Old.TaxLiability.Sub(comparison.New.TaxLiability)
	}
	result.RegimeComparison = comparison
	return result, nil
}

// validate rejects invariant violations loudly before any arithmetic; a
// wrong tax number is worse than a visible failure.
func (e *Engine) validate(input TaxCalculationInput) error {
	if input.TaxYear.IsZero() {
		return fmt.Errorf("tax year is required")
	}
	if input.Age < 0 {
		return fmt.Errorf("negative age %d", input.Age)
	}
	for i, revision := range input.SalaryIncomes {
		if err := revision.Validate(); err != nil {
			return fmt.Errorf("salary revision %d: %w", i, err)
		}
	}
	if err := input.Deductions.Validate(); err != nil {
		return err
	}
	return input.Retirement.Validate()
}

// slabTaxAmount applies progressive marginal rates over the slab table.
func slabTaxAmount(slabs []domain.TaxSlab, taxableIncome domain.Money) (domain.Money, []domain.SlabTaxLine) {
	tax := domain.Zero()
	var lines []domain.SlabTaxLine
	for _, slab := range slabs {
		if taxableIncome.LessThanOrEqual(slab.Min) {
			break
		}
		incomeInSlab := taxableIncome.Min(slab.Max).Sub(slab.Min)
		if !incomeInSlab.IsPositive() {
			continue
		}
		slabTax := incomeInSlab.Mul(slab.Rate)
		tax = tax.Add(slabTax)
		lines = append(lines, domain.SlabTaxLine{
			From:   slab.Min,
			To:     slab.Max,
			Rate:   slab.Rate.String(),
			Income: incomeInSlab.Round(2),
			Tax:    slabTax.Round(2),
		})
	}
	return tax, lines
}

// surchargeAmount applies the stepped surcharge with marginal relief: the
// jump in tax plus surcharge at a threshold never exceeds the income that
// crossed it.
func surchargeAmount(regime domain.RegimeRules, taxableIncome, baseTax domain.Money) domain.Money {
	rate := decimal.Zero
	lowerRate := decimal.Zero
	threshold := domain.Zero()
	for _, step := range regime.SurchargeSteps {
		if taxableIncome.GreaterThan(step.Threshold) {
			lowerRate = rate
			rate = step.Rate
			threshold = step.Threshold
		}
	}
	if rate.IsZero() {
		return domain.Zero()
	}

	surcharge := baseTax.Mul(rate)

	// Marginal relief: cap total tax at what it would have been exactly at
	// the threshold, plus the income above it.
	taxAtThreshold, _ := slabTaxAmount(regime.Slabs, threshold)
	cap := taxAtThreshold.
		Add(taxAtThreshold.Mul(lowerRate)).
		Add(taxableIncome.Sub(threshold))
	if baseTax.Add(surcharge).GreaterThan(cap) {
		surcharge = cap.Sub(baseTax).ClampZero()
	}
	return surcharge
}

package boundary

import (
	"fmt"

	"github.com/itrgo/itrgo/internal/domain"
)

// RecordFromPayload builds a typed SalaryPackageRecord from a generic
// payload. Missing or malformed amounts normalize to zero with warnings.
// Only two things are hard errors: an unusable tax year and an explicitly
// invalid regime value, because both silently change the liability.
func (n *Normalizer) RecordFromPayload(payload map[string]any) (*domain.SalaryPackageRecord, error) {
	yearLabel := n.stringField(payload, "tax_year", "taxYear", "financial_year", "financialYear")
	if yearLabel == "" {
		return nil, fmt.Errorf("payload is missing tax_year")
	}
	taxYear, err := domain.ParseTaxYear(yearLabel)
	if err != nil {
		return nil, err
	}

	regime := domain.RegimeOld
	if raw := n.stringField(payload, "regime", "tax_regime", "taxRegime"); raw != "" {
		regime, err = domain.ParseRegime(raw)
		if err != nil {
			return nil, err
		}
	} else {
		n.warnf("regime not specified, defaulting to %s", regime)
	}

	employeeID := n.stringField(payload, "employee_id", "employeeId")
	orgID := n.stringField(payload, "organization_id", "organizationId", "org_id")

	record, err := domain.NewSalaryPackageRecord(employeeID, orgID, taxYear, regime)
	if err != nil {
		return nil, err
	}

	record.Age = n.intField(payload, "age", "employee_age", "employeeAge")
	record.GovernmentEmployee = n.boolField(payload, "government_employee", "governmentEmployee", "is_government_employee")
	record.ProfessionalTaxPaid = n.moneyField(payload, "professional_tax_paid", "professionalTaxPaid", "professional_tax")

	if revisions := n.salaryIncomes(payload, taxYear); len(revisions) > 0 {
		record.SalaryIncomes = record.SalaryIncomes[:0]
		for _, rev := range revisions {
			if err := record.AddSalaryIncome(rev); err != nil {
				return nil, err
			}
		}
	}

	if deductions, ok := n.section(payload, "deductions", "tax_deductions"); ok {
		if err := record.UpdateDeductions(n.deductions(deductions)); err != nil {
			return nil, err
		}
	}
	if perqs, ok := n.section(payload, "perquisites", "perks"); ok {
		record.UpdatePerquisites(n.perquisites(perqs))
	}
	if ret, ok := n.section(payload, "retirement", "retirement_benefits"); ok {
		if err := record.UpdateRetirementBenefits(n.retirement(ret)); err != nil {
			return nil, err
		}
	}
	if other, ok := n.section(payload, "other_income", "otherIncome"); ok {
		record.UpdateOtherIncome(n.otherIncome(other))
	}

	return record, nil
}

// salaryIncomes reads either a salary_incomes list of revisions or a single
// flat salary object (nested under "salary" or spread over the payload root).
func (n *Normalizer) salaryIncomes(payload map[string]any, year domain.TaxYear) []domain.SalaryIncome {
	if raw, ok := n.get(payload, "salary_incomes", "salaryIncomes", "salary_revisions"); ok {
		list, isList := raw.([]any)
		if !isList {
			n.warnf("salary_incomes is not a list; ignoring")
			return nil
		}
		out := make([]domain.SalaryIncome, 0, len(list))
		for i, item := range list {
			entry, isMap := item.(map[string]any)
			if !isMap {
				n.warnf("salary_incomes[%d] is not an object; skipping", i)
				continue
			}
			out = append(out, n.salaryIncome(entry, year))
		}
		return out
	}
	if salary, ok := n.section(payload, "salary", "salary_income", "salaryIncome"); ok {
		return []domain.SalaryIncome{n.salaryIncome(salary, year)}
	}
	return nil
}

func (n *Normalizer) salaryIncome(m map[string]any, year domain.TaxYear) domain.SalaryIncome {
	income := domain.SalaryIncome{
		EffectiveFrom:     n.dateField(m, "effective_from", "effectiveFrom", "from"),
		EffectiveTill:     n.dateField(m, "effective_till", "effectiveTill", "till", "to"),
		BasicSalary:       n.moneyField(m, "basic_salary", "basicSalary", "basic"),
		DearnessAllowance: n.moneyField(m, "dearness_allowance", "dearnessAllowance", "da"),
		HRAProvided:       n.moneyField(m, "hra_provided", "hraProvided", "hra"),
		SpecialAllowance:  n.moneyField(m, "special_allowance", "specialAllowance"),
		Bonus:             n.moneyField(m, "bonus"),
		Commission:        n.moneyField(m, "commission"),
		Arrears:           n.moneyField(m, "arrears"),

		EmployerPFContribution:      n.moneyField(m, "employer_pf_contribution", "employerPfContribution", "employer_pf"),
		EmployeePFContribution:      n.moneyField(m, "employee_pf_contribution", "employeePfContribution", "employee_pf"),
		EmployerPensionContribution: n.moneyField(m, "employer_pension_contribution", "employerPensionContribution", "employer_nps"),
		EmployeePensionContribution: n.moneyField(m, "employee_pension_contribution", "employeePensionContribution", "employee_nps"),
	}
	if income.EffectiveFrom.IsZero() {
		income.EffectiveFrom = year.Start
	}
	if income.EffectiveTill.IsZero() {
		income.EffectiveTill = year.End
	}

	if raw, ok := n.get(m, "specific_allowances", "specificAllowances", "allowances"); ok {
		if entries, isMap := raw.(map[string]any); isMap {
			income.SpecificAllowances = make(domain.SpecificAllowances, len(entries))
			for code, amount := range entries {
				income.SpecificAllowances[domain.AllowanceCode(code)] = n.Money("specific_allowances."+code, amount)
			}
		} else {
			n.warnf("specific_allowances is not an object; ignoring")
		}
	}
	return income
}

func (n *Normalizer) deductions(m map[string]any) domain.TaxDeductions {
	d := domain.TaxDeductions{
		PensionFundContribution:   n.moneyField(m, "pension_fund_contribution", "section_80ccc"),
		NPSEmployeeContribution:   n.moneyField(m, "nps_employee_contribution", "section_80ccd1"),
		NPSAdditionalContribution: n.moneyField(m, "nps_additional_contribution", "section_80ccd1b"),
	}

	if sec, ok := n.section(m, "section_80c", "80c"); ok {
		d.Section80C = domain.Section80C{
			LifeInsurancePremium: n.moneyField(sec, "life_insurance_premium", "lic"),
			EPFContribution:      n.moneyField(sec, "epf_contribution", "epf"),
			PPFContribution:      n.moneyField(sec, "ppf_contribution", "ppf"),
			ELSSInvestment:       n.moneyField(sec, "elss_investment", "elss"),
			NSCInvestment:        n.moneyField(sec, "nsc_investment", "nsc"),
			TaxSavingFD:          n.moneyField(sec, "tax_saving_fd"),
			HomeLoanPrincipal:    n.moneyField(sec, "home_loan_principal"),
			TuitionFees:          n.moneyField(sec, "tuition_fees"),
			SukanyaSamriddhi:     n.moneyField(sec, "sukanya_samriddhi"),
			ULIPPremium:          n.moneyField(sec, "ulip_premium", "ulip"),
			SeniorCitizenSavings: n.moneyField(sec, "senior_citizen_savings", "scss"),
			PostOfficeDeposit:    n.moneyField(sec, "post_office_deposit"),
			StampDutyPaid:        n.moneyField(sec, "stamp_duty_paid"),
		}
	}
	if sec, ok := n.section(m, "section_80d", "80d"); ok {
		d.Section80D = domain.Section80D{
			SelfFamilyPremium: n.moneyField(sec, "self_family_premium", "self_premium"),
			ParentPremium:     n.moneyField(sec, "parent_premium", "parents_premium"),
			PreventiveCheckup: n.moneyField(sec, "preventive_checkup"),
			ParentAge:         n.intField(sec, "parent_age"),
		}
	}
	if sec, ok := n.section(m, "section_80dd", "80dd"); ok {
		d.Section80DD = domain.Section80DD{DisabilityPercent: n.rateField(sec, "disability_percent")}
	}
	if sec, ok := n.section(m, "section_80u", "80u"); ok {
		d.Section80U = domain.Section80U{DisabilityPercent: n.rateField(sec, "disability_percent")}
	}
	if sec, ok := n.section(m, "section_80ddb", "80ddb"); ok {
		d.Section80DDB = domain.Section80DDB{
			AmountSpent: n.moneyField(sec, "amount_spent", "amount"),
			PatientAge:  n.intField(sec, "patient_age"),
		}
	}
	if sec, ok := n.section(m, "section_80e", "80e"); ok {
		d.Section80E = domain.Section80E{
			InterestPaid:     n.moneyField(sec, "interest_paid", "amount"),
			RelationEligible: n.boolField(sec, "relation_eligible"),
		}
	}
	if sec, ok := n.section(m, "section_80eeb", "80eeb"); ok {
		d.Section80EEB = domain.Section80EEB{
			InterestPaid:     n.moneyField(sec, "interest_paid", "amount"),
			LoanSanctionDate: n.dateField(sec, "loan_sanction_date"),
		}
	}
	if sec, ok := n.section(m, "section_80g", "80g"); ok {
		if raw, present := n.get(sec, "donations"); present {
			if entries, isMap := raw.(map[string]any); isMap {
				d.Section80G.Donations = make(map[domain.DonationFund]domain.Money, len(entries))
				for fund, amount := range entries {
					d.Section80G.Donations[domain.DonationFund(fund)] = n.Money("donations."+fund, amount)
				}
			} else {
				n.warnf("section_80g.donations is not an object; ignoring")
			}
		}
	}
	if sec, ok := n.section(m, "section_80ggc", "80ggc"); ok {
		d.Section80GGC = domain.Section80GGC{
			Amount:     n.moneyField(sec, "amount"),
			PaidInCash: n.boolField(sec, "paid_in_cash"),
		}
	}
	if sec, ok := n.section(m, "interest_exemption", "section_80tta", "section_80ttb"); ok {
		d.InterestExemption = domain.Section80TTATTB{
			SavingsInterest:    n.moneyField(sec, "savings_interest"),
			FDInterest:         n.moneyField(sec, "fd_interest"),
			RDInterest:         n.moneyField(sec, "rd_interest"),
			PostOfficeInterest: n.moneyField(sec, "post_office_interest"),
		}
	}
	if sec, ok := n.section(m, "hra", "hra_exemption"); ok {
		d.HRA = domain.HRAExemption{
			ActualRentPaid: n.moneyField(sec, "actual_rent_paid", "rent_paid"),
			CityType:       n.cityType(sec),
		}
	}
	if sec, ok := n.section(m, "other", "other_deductions"); ok {
		d.Other = domain.OtherDeductions{
			Amount:      n.moneyField(sec, "amount"),
			Description: n.stringField(sec, "description"),
		}
	}
	return d
}

func (n *Normalizer) cityType(m map[string]any) domain.CityType {
	raw := n.stringField(m, "city_type", "city")
	switch domain.CityType(raw) {
	case domain.CityMetro, domain.CityNonMetro:
		return domain.CityType(raw)
	case "":
		return domain.CityNonMetro
	default:
		n.warnf("unknown city type %q, treating as non-metro", raw)
		return domain.CityNonMetro
	}
}

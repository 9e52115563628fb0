package boundary

import (
	"github.com/itrgo/itrgo/internal/domain"
)

// perquisites maps the perquisite section. Each sub-entity is built only when
// its key is present; absent benefits stay nil.
func (n *Normalizer) perquisites(m map[string]any) *domain.Perquisites {
	p := &domain.Perquisites{}

	if sec, ok := n.section(m, "accommodation"); ok {
		p.Accommodation = &domain.AccommodationPerquisite{
			Type:               n.accommodationType(sec),
			CityPopulation:     int64(n.intField(sec, "city_population", "cityPopulation")),
			RentPaidByEmployer: n.moneyField(sec, "rent_paid_by_employer", "rent_paid"),
			LicenseFees:        n.moneyField(sec, "license_fees"),
			HotelCharges:       n.moneyField(sec, "hotel_charges"),
			FurnitureCost:      n.moneyField(sec, "furniture_cost"),
			FurnitureRent:      n.moneyField(sec, "furniture_rent"),
			EmployeeRecovery:   n.moneyField(sec, "employee_recovery"),
		}
	}
	if sec, ok := n.section(m, "car"); ok {
		p.Car = &domain.CarPerquisite{
			UseType:          n.carUseType(sec),
			EngineCC:         n.intField(sec, "engine_cc", "engineCc"),
			Months:           n.months(sec),
			ActualCost:       n.moneyField(sec, "actual_cost"),
			DriverProvided:   n.boolField(sec, "driver_provided"),
			EmployeeRecovery: n.moneyField(sec, "employee_recovery"),
		}
	}
	if sec, ok := n.section(m, "medical_reimbursement", "medical"); ok {
		p.MedicalReimbursement = &domain.MedicalReimbursement{
			AmountReimbursed: n.moneyField(sec, "amount_reimbursed", "amount"),
		}
	}
	if sec, ok := n.section(m, "lta", "leave_travel"); ok {
		p.LTA = &domain.LTAPerquisite{
			AmountProvided:   n.moneyField(sec, "amount_provided", "amount"),
			ActualTravelCost: n.moneyField(sec, "actual_travel_cost"),
		}
	}
	if sec, ok := n.section(m, "interest_free_loan", "loan"); ok {
		p.InterestFreeLoan = &domain.InterestFreeLoan{
			LoanAmount:           n.moneyField(sec, "loan_amount", "amount"),
			OutstandingPrincipal: n.moneyField(sec, "outstanding_principal"),
			CompanyRate:          n.rateField(sec, "company_rate"),
			SBIRate:              n.rateField(sec, "sbi_rate"),
			Months:               n.months(sec),
		}
	}
	if sec, ok := n.section(m, "esop", "stock_options"); ok {
		p.ESOP = &domain.ESOPPerquisite{
			SharesExercised: int64(n.intField(sec, "shares_exercised", "shares")),
			ExercisePrice:   n.moneyField(sec, "exercise_price"),
			FairMarketValue: n.moneyField(sec, "fair_market_value", "fmv"),
		}
	}
	if sec, ok := n.section(m, "utilities"); ok {
		p.Utilities = &domain.UtilitiesPerquisite{
			GasAmount:              n.moneyField(sec, "gas_amount", "gas"),
			ElectricityAmount:      n.moneyField(sec, "electricity_amount", "electricity"),
			WaterAmount:            n.moneyField(sec, "water_amount", "water"),
			ManufacturingCost:      n.moneyField(sec, "manufacturing_cost"),
			EmployeeRecovery:       n.moneyField(sec, "employee_recovery"),
			ManufacturedByEmployer: n.boolField(sec, "manufactured_by_employer"),
		}
	}
	if sec, ok := n.section(m, "free_education", "education"); ok {
		p.FreeEducation = &domain.FreeEducationPerquisite{
			CostPerChildMonthly: n.moneyField(sec, "cost_per_child_monthly"),
			Months:              n.months(sec),
			Children:            n.intField(sec, "children"),
			EmployerMaintained:  n.boolField(sec, "employer_maintained"),
			EmployeeRecovery:    n.moneyField(sec, "employee_recovery"),
		}
	}
	if sec, ok := n.section(m, "movable_asset_usage", "asset_usage"); ok {
		p.MovableAssetUsage = &domain.MovableAssetUsage{
			AssetType:        n.assetType(sec),
			AssetValue:       n.moneyField(sec, "asset_value"),
			Months:           n.months(sec),
			EmployeeRecovery: n.moneyField(sec, "employee_recovery"),
		}
	}
	if sec, ok := n.section(m, "movable_asset_transfer", "asset_transfer"); ok {
		p.MovableAssetTransfer = &domain.MovableAssetTransfer{
			AssetType:    n.assetType(sec),
			OriginalCost: n.moneyField(sec, "original_cost"),
			YearsOfUse:   n.intField(sec, "years_of_use"),
			AmountPaid:   n.moneyField(sec, "amount_paid"),
		}
	}
	if sec, ok := n.section(m, "lunch_refreshment", "meals"); ok {
		p.LunchRefreshment = &domain.LunchRefreshment{
			CostPaidByEmployer: n.moneyField(sec, "cost_paid_by_employer", "cost"),
			EmployeeRecovery:   n.moneyField(sec, "employee_recovery"),
		}
	}
	if sec, ok := n.section(m, "gift_voucher", "gifts"); ok {
		p.GiftVoucher = &domain.GiftVoucherPerquisite{
			Amount: n.moneyField(sec, "amount"),
		}
	}
	if sec, ok := n.section(m, "monetary_benefits"); ok {
		p.MonetaryBenefits = &domain.MonetaryBenefitsPerquisite{
			Amount:      n.moneyField(sec, "amount"),
			Description: n.stringField(sec, "description"),
		}
	}
	if sec, ok := n.section(m, "club_expenses", "club"); ok {
		p.ClubExpenses = &domain.ClubExpensesPerquisite{
			Amount:           n.moneyField(sec, "amount"),
			EmployeeRecovery: n.moneyField(sec, "employee_recovery"),
		}
	}
	if sec, ok := n.section(m, "domestic_help"); ok {
		p.DomesticHelp = &domain.DomesticHelpPerquisite{
			Wages:            n.moneyField(sec, "wages", "amount"),
			EmployeeRecovery: n.moneyField(sec, "employee_recovery"),
		}
	}
	return p
}

// months defaults to a full year when the field is absent or zero.
func (n *Normalizer) months(m map[string]any) int {
	months := n.intField(m, "months")
	if months <= 0 {
		return 12
	}
	if months > 12 {
		n.warnf("months value %d exceeds 12, clamping", months)
		return 12
	}
	return months
}

func (n *Normalizer) accommodationType(m map[string]any) domain.AccommodationType {
	raw := n.stringField(m, "type", "accommodation_type")
	if raw == "" {
		return domain.AccommodationLeased
	}
	parsed, err := domain.ParseAccommodationType(raw)
	if err != nil {
		n.warnf("%v, treating as leased", err)
		return domain.AccommodationLeased
	}
	return parsed
}

func (n *Normalizer) carUseType(m map[string]any) domain.CarUseType {
	raw := domain.CarUseType(n.stringField(m, "use_type", "use"))
	switch raw {
	case domain.CarUsePersonal, domain.CarUseOfficial, domain.CarUseMixed:
		return raw
	case "":
		return domain.CarUseMixed
	default:
		n.warnf("unknown car use type %q, treating as mixed", raw)
		return domain.CarUseMixed
	}
}

func (n *Normalizer) assetType(m map[string]any) domain.AssetType {
	raw := domain.AssetType(n.stringField(m, "asset_type", "type"))
	switch raw {
	case domain.AssetComputer, domain.AssetCar, domain.AssetOther:
		return raw
	case "":
		return domain.AssetOther
	default:
		n.warnf("unknown asset type %q, treating as other", raw)
		return domain.AssetOther
	}
}

func (n *Normalizer) retirement(m map[string]any) *domain.RetirementBenefits {
	r := &domain.RetirementBenefits{}

	if sec, ok := n.section(m, "leave_encashment"); ok {
		r.LeaveEncashment = &domain.LeaveEncashment{
			AmountReceived:       n.moneyField(sec, "amount_received", "amount"),
			AverageMonthlySalary: n.moneyField(sec, "average_monthly_salary"),
			LeaveBalanceMonths:   n.intField(sec, "leave_balance_months"),
			ServiceYears:         n.intField(sec, "service_years"),
		}
	}
	if sec, ok := n.section(m, "gratuity"); ok {
		r.Gratuity = &domain.Gratuity{
			AmountReceived:  n.moneyField(sec, "amount_received", "amount"),
			LastDrawnSalary: n.moneyField(sec, "last_drawn_salary"),
			ServiceYears:    n.intField(sec, "service_years"),
		}
	}
	if sec, ok := n.section(m, "vrs"); ok {
		r.VRS = &domain.VRSCompensation{
			AmountReceived: n.moneyField(sec, "amount_received", "amount"),
		}
	}
	if sec, ok := n.section(m, "pension"); ok {
		r.Pension = &domain.Pension{
			RegularPension:   n.moneyField(sec, "regular_pension"),
			CommutedPension:  n.moneyField(sec, "commuted_pension"),
			GratuityReceived: n.boolField(sec, "gratuity_received"),
		}
	}
	if sec, ok := n.section(m, "retrenchment"); ok {
		r.Retrenchment = &domain.RetrenchmentCompensation{
			AmountReceived:       n.moneyField(sec, "amount_received", "amount"),
			AverageMonthlySalary: n.moneyField(sec, "average_monthly_salary"),
			ServiceYears:         n.intField(sec, "service_years"),
		}
	}
	return r
}

func (n *Normalizer) otherIncome(m map[string]any) *domain.OtherIncome {
	o := &domain.OtherIncome{
		Dividend:      n.moneyField(m, "dividend"),
		Gifts:         n.moneyField(m, "gifts"),
		Business:      n.moneyField(m, "business"),
		Miscellaneous: n.moneyField(m, "miscellaneous", "misc"),
	}
	if sec, ok := n.section(m, "interest"); ok {
		o.Interest = domain.InterestIncome{
			SavingsAccount:   n.moneyField(sec, "savings_account", "savings"),
			FixedDeposit:     n.moneyField(sec, "fixed_deposit", "fd"),
			RecurringDeposit: n.moneyField(sec, "recurring_deposit", "rd"),
			PostOffice:       n.moneyField(sec, "post_office"),
		}
	}
	if sec, ok := n.section(m, "house_property", "houseProperty"); ok {
		o.HouseProperty = &domain.HousePropertyIncome{
			PropertyType:            n.propertyType(sec),
			RentReceived:            n.moneyField(sec, "rent_received", "rent"),
			MunicipalTaxesPaid:      n.moneyField(sec, "municipal_taxes_paid"),
			HomeLoanInterest:        n.moneyField(sec, "home_loan_interest"),
			PreConstructionInterest: n.moneyField(sec, "pre_construction_interest"),
		}
	}
	if sec, ok := n.section(m, "capital_gains", "capitalGains"); ok {
		o.CapitalGains = &domain.CapitalGainsIncome{
			STCG111AEquitySTT: n.moneyField(sec, "stcg_111a_equity_stt", "stcg_equity"),
			STCGOtherAssets:   n.moneyField(sec, "stcg_other_assets", "stcg_other"),
			STCGDebtMF:        n.moneyField(sec, "stcg_debt_mf", "stcg_debt"),
			LTCG112AEquitySTT: n.moneyField(sec, "ltcg_112a_equity_stt", "ltcg_equity"),
			LTCGOtherAssets:   n.moneyField(sec, "ltcg_other_assets", "ltcg_other"),
			LTCGDebtMF:        n.moneyField(sec, "ltcg_debt_mf", "ltcg_debt"),
		}
	}
	return o
}

func (n *Normalizer) propertyType(m map[string]any) domain.PropertyType {
	raw := n.stringField(m, "property_type", "type")
	if raw == "" {
		return domain.PropertySelfOccupied
	}
	parsed, err := domain.ParsePropertyType(raw)
	if err != nil {
		n.warnf("%v, treating as self-occupied", err)
		return domain.PropertySelfOccupied
	}
	return parsed
}

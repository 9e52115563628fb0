package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LeaveEncashment is leave salary received at retirement.
type LeaveEncashment struct {
	AmountReceived      Money `json:"amount_received"`
	AverageMonthlySalary Money `json:"average_monthly_salary"`
	LeaveBalanceMonths  int   `json:"leave_balance_months"`
	ServiceYears        int   `json:"service_years"`
}

func (l *LeaveEncashment) Validate() error {
	if l == nil {
		return nil
	}
	if l.ServiceYears < 0 {
		return fmt.Errorf("leave encashment: negative service years %d", l.ServiceYears)
	}
	if l.LeaveBalanceMonths < 0 {
		return fmt.Errorf("leave encashment: negative leave balance %d", l.LeaveBalanceMonths)
	}
	return nil
}

// ExemptAmount applies the statutory least-of rule. Government employees are
// fully exempt.
func (l *LeaveEncashment) ExemptAmount(ctx CalcContext) Money {
	if l == nil {
		return Zero()
	}
	if ctx.GovernmentEmployee {
		return l.AmountReceived
	}
	limits := ctx.Rules.Retirement
	return l.AmountReceived.
		Min(limits.LeaveEncashmentCap).
		Min(l.AverageMonthlySalary.MulInt(int64(limits.LeaveEncashmentMonthsCap))).
		Min(l.AverageMonthlySalary.MulInt(int64(l.LeaveBalanceMonths)))
}

func (l *LeaveEncashment) TaxableAmount(ctx CalcContext) Money {
	if l == nil {
		return Zero()
	}
	return l.AmountReceived.SubFloor(l.ExemptAmount(ctx))
}

// Gratuity is the lump sum received at retirement.
type Gratuity struct {
	AmountReceived  Money `json:"amount_received"`
	LastDrawnSalary Money `json:"last_drawn_salary"`
	ServiceYears    int   `json:"service_years"`
}

func (g *Gratuity) Validate() error {
	if g == nil {
		return nil
	}
	if g.ServiceYears < 0 {
		return fmt.Errorf("gratuity: negative service years %d", g.ServiceYears)
	}
	return nil
}

// ExemptAmount is the least of the amount received, the statutory cap, and
// the days-per-year formula on the last drawn salary. Government employees
// are fully exempt.
func (g *Gratuity) ExemptAmount(ctx CalcContext) Money {
	if g == nil {
		return Zero()
	}
	if ctx.GovernmentEmployee {
		return g.AmountReceived
	}
	limits := ctx.Rules.Retirement
	fraction := decimal.NewFromInt(int64(limits.GratuityDays)).Div(decimal.NewFromInt(int64(limits.GratuityMonthDays)))
	formula := g.LastDrawnSalary.Mul(fraction).MulInt(int64(g.ServiceYears))
	return g.AmountReceived.Min(limits.GratuityExemptionCap).Min(formula)
}

func (g *Gratuity) TaxableAmount(ctx CalcContext) Money {
	if g == nil {
		return Zero()
	}
	return g.AmountReceived.SubFloor(g.ExemptAmount(ctx))
}

// VRSCompensation is voluntary retirement scheme compensation.
type VRSCompensation struct {
	AmountReceived Money `json:"amount_received"`
}

func (v *VRSCompensation) ExemptAmount(ctx CalcContext) Money {
	if v == nil {
		return Zero()
	}
	return v.AmountReceived.Min(ctx.Rules.Retirement.VRSExemptionCap)
}

func (v *VRSCompensation) TaxableAmount(ctx CalcContext) Money {
	if v == nil {
		return Zero()
	}
	return v.AmountReceived.SubFloor(v.ExemptAmount(ctx))
}

// Pension carries regular pension (fully taxable as salary) and commuted
// pension, whose exempt fraction depends on whether gratuity was also
// received.
type Pension struct {
	RegularPension   Money `json:"regular_pension"`
	CommutedPension  Money `json:"commuted_pension"`
	GratuityReceived bool  `json:"gratuity_received"`
}

func (p *Pension) ExemptAmount(ctx CalcContext) Money {
	if p == nil {
		return Zero()
	}
	if ctx.GovernmentEmployee {
		return p.CommutedPension
	}
	limits := ctx.Rules.Retirement
	fraction := limits.CommutedExemptWithoutGratuity
	if p.GratuityReceived {
		fraction = limits.CommutedExemptWithGratuity
	}
	return p.CommutedPension.Mul(fraction)
}

func (p *Pension) TaxableAmount(ctx CalcContext) Money {
	if p == nil {
		return Zero()
	}
	return p.RegularPension.Add(p.CommutedPension.SubFloor(p.ExemptAmount(ctx)))
}

// RetrenchmentCompensation is compensation on retrenchment.
type RetrenchmentCompensation struct {
	AmountReceived       Money `json:"amount_received"`
	AverageMonthlySalary Money `json:"average_monthly_salary"`
	ServiceYears         int   `json:"service_years"`
}

func (r *RetrenchmentCompensation) Validate() error {
	if r == nil {
		return nil
	}
	if r.ServiceYears < 0 {
		return fmt.Errorf("retrenchment compensation: negative service years %d", r.ServiceYears)
	}
	return nil
}

func (r *RetrenchmentCompensation) ExemptAmount(ctx CalcContext) Money {
	if r == nil {
		return Zero()
	}
	limits := ctx.Rules.Retirement
	fraction := decimal.NewFromInt(int64(limits.GratuityDays)).Div(decimal.NewFromInt(int64(limits.GratuityMonthDays)))
	formula := r.AverageMonthlySalary.Mul(fraction).MulInt(int64(r.ServiceYears))
	return r.AmountReceived.Min(limits.RetrenchmentCap).Min(formula)
}

func (r *RetrenchmentCompensation) TaxableAmount(ctx CalcContext) Money {
	if r == nil {
		return Zero()
	}
	return r.AmountReceived.SubFloor(r.ExemptAmount(ctx))
}

// RetirementBenefits aggregates the optional retirement sub-entities. A nil
// sub-entity means the benefit was not received.
type RetirementBenefits struct {
	LeaveEncashment *LeaveEncashment          `json:"leave_encashment,omitempty"`
	Gratuity        *Gratuity                 `json:"gratuity,omitempty"`
	VRS             *VRSCompensation          `json:"vrs,omitempty"`
	Pension         *Pension                  `json:"pension,omitempty"`
	Retrenchment    *RetrenchmentCompensation `json:"retrenchment,omitempty"`
}

// Validate surfaces invariant violations in any sub-entity.
func (r *RetirementBenefits) Validate() error {
	if r == nil {
		return nil
	}
	if err := r.LeaveEncashment.Validate(); err != nil {
		return err
	}
	if err := r.Gratuity.Validate(); err != nil {
		return err
	}
	return r.Retrenchment.Validate()
}

// TaxableTotal is the residue of every benefit after exemptions.
func (r *RetirementBenefits) TaxableTotal(ctx CalcContext) Money {
	if r == nil {
		return Zero()
	}
	return SumMoney(
		r.LeaveEncashment.TaxableAmount(ctx),
		r.Gratuity.TaxableAmount(ctx),
		r.VRS.TaxableAmount(ctx),
		r.Pension.TaxableAmount(ctx),
		r.Retrenchment.TaxableAmount(ctx),
	)
}

// ExemptTotal sums the exempt portions across benefits.
func (r *RetirementBenefits) ExemptTotal(ctx CalcContext) Money {
	if r == nil {
		return Zero()
	}
	return SumMoney(
		r.LeaveEncashment.ExemptAmount(ctx),
		r.Gratuity.ExemptAmount(ctx),
		r.VRS.ExemptAmount(ctx),
		r.Pension.ExemptAmount(ctx),
		r.Retrenchment.ExemptAmount(ctx),
	)
}

// Breakdown reports taxable and exempt amounts per benefit.
func (r *RetirementBenefits) Breakdown(ctx CalcContext) map[string]PerquisiteLine {
	out := make(map[string]PerquisiteLine)
	if r == nil {
		return out
	}
	if r.LeaveEncashment != nil {
		out["leave_encashment"] = PerquisiteLine{Taxable: r.LeaveEncashment.TaxableAmount(ctx), Exempt: r.LeaveEncashment.ExemptAmount(ctx)}
	}
	if r.Gratuity != nil {
		out["gratuity"] = PerquisiteLine{Taxable: r.Gratuity.TaxableAmount(ctx), Exempt: r.Gratuity.ExemptAmount(ctx)}
	}
	if r.VRS != nil {
		out["vrs"] = PerquisiteLine{Taxable: r.VRS.TaxableAmount(ctx), Exempt: r.VRS.ExemptAmount(ctx)}
	}
	if r.Pension != nil {
		out["pension"] = PerquisiteLine{Taxable: r.Pension.TaxableAmount(ctx), Exempt: r.Pension.ExemptAmount(ctx)}
	}
	if r.Retrenchment != nil {
		out["retrenchment"] = PerquisiteLine{Taxable: r.Retrenchment.TaxableAmount(ctx), Exempt: r.Retrenchment.ExemptAmount(ctx)}
	}
	return out
}

// Clone returns an independent copy.
func (r *RetirementBenefits) Clone() *RetirementBenefits {
	if r == nil {
		return nil
	}
	out := &RetirementBenefits{}
	if r.LeaveEncashment != nil {
		v := *r.LeaveEncashment
		out.LeaveEncashment = &v
	}
	if r.Gratuity != nil {
		v := *r.Gratuity
		out.Gratuity = &v
	}
	if r.VRS != nil {
		v := *r.VRS
		out.VRS = &v
	}
	if r.Pension != nil {
		v := *r.Pension
		out.Pension = &v
	}
	if r.Retrenchment != nil {
		v := *r.Retrenchment
		out.Retrenchment = &v
	}
	return out
}

package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/paycheck/budget-planner/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Engine computes pay results from pay state against a tax schedule. It is
// stateless apart from its configuration: CalculatePay is pure and
// idempotent, so recomputing from unchanged state yields identical figures.
type Engine struct {
	Schedule *domain.TaxSchedule
	Logger   Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine(schedule *domain.TaxSchedule) *Engine {
	return &Engine{Schedule: schedule, Logger: NopLogger{}}
}

// percentOf converts a stored percentage (6.2 = 6.2%) to a fraction.
func percentOf(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// CalculatePay derives the full per-paycheck breakdown: gross, pretax
// deductions, taxable income, federal/state/payroll taxes, post-tax
// deductions, additional income and net pay, each expressed per pay
// period, per month and per year.
func (e *Engine) CalculatePay(state *domain.PayState) domain.PayResult {
	periods := state.Periods()

	// 1. Gross per pay period. Sanitize already folded any annual salary
	// into the canonical per-pay field.
	grossPerPay := state.SalaryPerPay.Decimal

	// 2. Pretax deductions: 401k as a percent of gross, the rest as flat
	// per-pay amounts.
	pretax := grossPerPay.Mul(percentOf(state.K401Percent.Decimal)).
		Add(state.HSAPerPay.Decimal).
		Add(state.DentalPerPay.Decimal).
		Add(state.MedicalPerPay.Decimal).
		Add(state.OtherPretaxPerPay.Decimal)

	// 3. Taxable income, clamped at zero after the standard deduction's
	// per-period share.
	standardPerPay := state.StandardDeductionAnnual.Decimal.Div(periods)
	taxablePerPay := grossPerPay.Sub(pretax).Sub(standardPerPay)
	if taxablePerPay.LessThan(decimal.Zero) {
		taxablePerPay = decimal.Zero
	}
	taxableAnnual := taxablePerPay.Mul(periods)

	// 4. Federal: bracket tax on annualized taxable income (or flat
	// override), plus the extra percent of per-period taxable income, plus
	// flat extra withholding.
	federalCalc := NewFederalTaxCalculator(e.Schedule.Federal, percentOf(state.FederalRate.Decimal))
	federalPerPay := federalCalc.AnnualTax(taxableAnnual).Div(periods).
		Add(taxablePerPay.Mul(percentOf(state.FederalExtraPercent.Decimal))).
		Add(state.W4ExtraPerPay.Decimal)

	// 5. State: bracket tax by filing status (or flat override), surtax
	// above its threshold, plus the extra percent.
	stateCalc := NewStateTaxCalculator(e.Schedule, state.FilingStatus, percentOf(state.StateRate.Decimal))
	statePerPay := stateCalc.AnnualTax(taxableAnnual).Div(periods).
		Add(taxablePerPay.Mul(percentOf(state.StateExtraPercent.Decimal)))

	// 6. Payroll taxes.
	ficaCalc := NewFICACalculator(e.Schedule.FICA,
		percentOf(state.SocialSecurityRate.Decimal),
		percentOf(state.MedicareRate.Decimal),
		percentOf(state.SDIRate.Decimal))

	detail := domain.TaxDetail{
		Federal:            federalPerPay,
		State:              statePerPay,
		SocialSecurity:     ficaCalc.SocialSecurityTax(taxableAnnual).Div(periods),
		Medicare:           ficaCalc.MedicareTax(taxableAnnual).Div(periods),
		AdditionalMedicare: ficaCalc.AdditionalMedicareTax(taxableAnnual).Div(periods),
		SDI:                ficaCalc.SDITax(taxablePerPay),
	}
	taxesPerPay := detail.Total()

	// 7. Post-tax deductions: ESPP as a percent of gross plus the after-tax
	// line items.
	postTaxPerPay := grossPerPay.Mul(percentOf(state.EsppPercent.Decimal))
	for _, item := range state.AfterTaxDeductions {
		postTaxPerPay = postTaxPerPay.Add(item.PerPay.Decimal)
	}

	// 8. Additional income line items.
	additionalPerPay := decimal.Zero
	for _, item := range state.AdditionalIncome {
		additionalPerPay = additionalPerPay.Add(item.PerPay.Decimal)
	}

	// 9. Net.
	netPerPay := grossPerPay.Sub(pretax).Sub(taxesPerPay).Sub(postTaxPerPay).Add(additionalPerPay)

	e.Logger.Debugf("calculated pay: gross=%s taxable=%s taxes=%s net=%s",
		grossPerPay, taxablePerPay, taxesPerPay, netPerPay)

	// 10. Headline triples.
	return domain.PayResult{
		Gross:            domain.NewFigures(grossPerPay, periods),
		Pretax:           domain.NewFigures(pretax, periods),
		Taxable:          domain.NewFigures(taxablePerPay, periods),
		Taxes:            domain.NewFigures(taxesPerPay, periods),
		PostTax:          domain.NewFigures(postTaxPerPay, periods),
		AdditionalIncome: domain.NewFigures(additionalPerPay, periods),
		Net:              domain.NewFigures(netPerPay, periods),
		TaxDetail:        detail,
		EffectiveTaxRate: EffectiveRate(taxesPerPay.Mul(periods), taxableAnnual),
	}
}

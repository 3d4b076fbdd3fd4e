package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/paycheck/budget-planner/internal/domain"
)

// TaxBracket is one segment of a progressive schedule. Upper is the
// bracket's upper bound; a non-positive Upper marks the final, unbounded
// bracket. Rate is a fraction.
type TaxBracket struct {
	Upper decimal.Decimal
	Rate  decimal.Decimal
}

// Bracket is the segment an income falls into, with both bounds resolved,
// as reported by FindBracket.
type Bracket struct {
	Lower decimal.Decimal
	Upper decimal.Decimal
	Rate  decimal.Decimal
}

// unboundedUpper stands in for infinity on the last bracket.
var unboundedUpper = decimal.NewFromInt(999999999999)

// bracketsFromConfig converts schedule rows, normalizing the final bound.
func bracketsFromConfig(rows []domain.TaxBracketConfig) []TaxBracket {
	brackets := make([]TaxBracket, 0, len(rows))
	for _, row := range rows {
		upper := row.Upper.Decimal
		if upper.LessThanOrEqual(decimal.Zero) {
			upper = unboundedUpper
		}
		brackets = append(brackets, TaxBracket{Upper: upper, Rate: row.Rate.Decimal})
	}
	return brackets
}

// BracketTax walks the schedule from the lowest bracket up, taxing each
// slice of income at its own marginal rate: rate * (min(income, upper) -
// lower) per bracket, stopping once income <= upper. Each dollar is taxed
// only at the rate of the bracket it falls in. Income at or below zero owes
// nothing.
func BracketTax(brackets []TaxBracket, income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		slice := decimal.Min(income, b.Upper).Sub(lower)
		if slice.GreaterThan(decimal.Zero) {
			tax = tax.Add(slice.Mul(b.Rate))
		}
		if income.LessThanOrEqual(b.Upper) {
			break
		}
		lower = b.Upper
	}
	return tax
}

// FindBracket reports which bracket the income falls into, using the same
// table and the same walk-until-income<=upper rule as BracketTax, so the
// displayed marginal rate always matches the one the computation applies.
func FindBracket(brackets []TaxBracket, income decimal.Decimal) Bracket {
	lower := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Upper) {
			return Bracket{Lower: lower, Upper: b.Upper, Rate: b.Rate}
		}
		lower = b.Upper
	}
	if len(brackets) == 0 {
		return Bracket{Upper: unboundedUpper}
	}
	last := brackets[len(brackets)-1]
	return Bracket{Lower: lower, Upper: last.Upper, Rate: last.Rate}
}

// EffectiveRate is total tax over taxable income, zero when income is not
// positive.
func EffectiveRate(tax, income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return tax.Div(income)
}

// FederalTaxCalculator computes annual federal income tax.
type FederalTaxCalculator struct {
	Brackets []TaxBracket
	// FlatRate, when positive, bypasses the bracket walk entirely.
	FlatRate decimal.Decimal
}

// NewFederalTaxCalculator builds a calculator from the schedule with an
// optional flat-rate override (fraction).
func NewFederalTaxCalculator(config domain.FederalTaxConfig, flatRate decimal.Decimal) *FederalTaxCalculator {
	return &FederalTaxCalculator{
		Brackets: bracketsFromConfig(config.Brackets),
		FlatRate: flatRate,
	}
}

// AnnualTax computes federal tax on annual taxable income.
func (ftc *FederalTaxCalculator) AnnualTax(income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if ftc.FlatRate.GreaterThan(decimal.Zero) {
		return income.Mul(ftc.FlatRate)
	}
	return BracketTax(ftc.Brackets, income)
}

// MarginalBracket reports the bracket the income falls into.
func (ftc *FederalTaxCalculator) MarginalBracket(income decimal.Decimal) Bracket {
	return FindBracket(ftc.Brackets, income)
}

// StateTaxCalculator computes annual state income tax: a per-filing-status
// bracket table (or flat override), plus a surtax on annual income above a
// threshold. The surtax applies on top of either computation path.
type StateTaxCalculator struct {
	Brackets        []TaxBracket
	FlatRate        decimal.Decimal
	SurtaxThreshold decimal.Decimal
	SurtaxRate      decimal.Decimal
}

// NewStateTaxCalculator builds a calculator for one filing status; an
// unrecognized status falls back to single.
func NewStateTaxCalculator(schedule *domain.TaxSchedule, status domain.FilingStatus, flatRate decimal.Decimal) *StateTaxCalculator {
	return &StateTaxCalculator{
		Brackets:        bracketsFromConfig(schedule.StateBrackets(status)),
		FlatRate:        flatRate,
		SurtaxThreshold: schedule.State.SurtaxThreshold.Decimal,
		SurtaxRate:      schedule.State.SurtaxRate.Decimal,
	}
}

// AnnualTax computes state tax on annual taxable income.
func (stc *StateTaxCalculator) AnnualTax(income decimal.Decimal) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var tax decimal.Decimal
	if stc.FlatRate.GreaterThan(decimal.Zero) {
		tax = income.Mul(stc.FlatRate)
	} else {
		tax = BracketTax(stc.Brackets, income)
	}

	if stc.SurtaxRate.GreaterThan(decimal.Zero) && stc.SurtaxThreshold.GreaterThan(decimal.Zero) {
		excess := income.Sub(stc.SurtaxThreshold)
		if excess.GreaterThan(decimal.Zero) {
			tax = tax.Add(excess.Mul(stc.SurtaxRate))
		}
	}
	return tax
}

// MarginalBracket reports the bracket the income falls into.
func (stc *StateTaxCalculator) MarginalBracket(income decimal.Decimal) Bracket {
	return FindBracket(stc.Brackets, income)
}

// FICACalculator computes payroll taxes. Social Security is capped at the
// wage base; Medicare applies to the full amount with an additional rate
// above the high-income threshold; SDI applies to per-period taxable
// income.
type FICACalculator struct {
	SSRate              decimal.Decimal
	SSWageBase          decimal.Decimal
	MedicareRate        decimal.Decimal
	AdditionalRate      decimal.Decimal
	HighIncomeThreshold decimal.Decimal
	SDIRate             decimal.Decimal
}

// NewFICACalculator builds a calculator from the schedule. Positive rate
// overrides (fractions) replace the schedule's SS, Medicare and SDI rates.
func NewFICACalculator(config domain.FICATaxConfig, ssRate, medicareRate, sdiRate decimal.Decimal) *FICACalculator {
	fc := &FICACalculator{
		SSRate:              config.SocialSecurityRate.Decimal,
		SSWageBase:          config.SocialSecurityWageBase.Decimal,
		MedicareRate:        config.MedicareRate.Decimal,
		AdditionalRate:      config.AdditionalMedicareRate.Decimal,
		HighIncomeThreshold: config.AdditionalMedicareThreshold.Decimal,
		SDIRate:             config.SDIRate.Decimal,
	}
	if ssRate.GreaterThan(decimal.Zero) {
		fc.SSRate = ssRate
	}
	if medicareRate.GreaterThan(decimal.Zero) {
		fc.MedicareRate = medicareRate
	}
	if sdiRate.GreaterThan(decimal.Zero) {
		fc.SDIRate = sdiRate
	}
	return fc
}

// SocialSecurityTax computes annual Social Security tax, capped at the wage
// base: income above it owes nothing more.
func (fc *FICACalculator) SocialSecurityTax(annualIncome decimal.Decimal) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	capped := annualIncome
	if fc.SSWageBase.GreaterThan(decimal.Zero) {
		capped = decimal.Min(annualIncome, fc.SSWageBase)
	}
	return capped.Mul(fc.SSRate)
}

// MedicareTax computes annual Medicare tax on the full amount, no cap.
func (fc *FICACalculator) MedicareTax(annualIncome decimal.Decimal) decimal.Decimal {
	if annualIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return annualIncome.Mul(fc.MedicareRate)
}

// AdditionalMedicareTax computes the surtax on annual income above the
// high-income threshold. Independent of the bracket system.
func (fc *FICACalculator) AdditionalMedicareTax(annualIncome decimal.Decimal) decimal.Decimal {
	if fc.HighIncomeThreshold.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	excess := annualIncome.Sub(fc.HighIncomeThreshold)
	if excess.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return excess.Mul(fc.AdditionalRate)
}

// SDITax computes state disability tax on per-period taxable income.
func (fc *FICACalculator) SDITax(perPeriodIncome decimal.Decimal) decimal.Decimal {
	if perPeriodIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return perPeriodIncome.Mul(fc.SDIRate)
}

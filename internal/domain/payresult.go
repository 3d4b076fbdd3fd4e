package domain

import (
	"github.com/shopspring/decimal"
)

var (
	twelve = decimal.NewFromInt(12)
)

// Figures expresses one headline amount across the three reporting
// horizons: per pay period, per month and per year. Month and year are
// derived views of the per-pay value.
type Figures struct {
	PerPay   decimal.Decimal `json:"pay"`
	PerMonth decimal.Decimal `json:"month"`
	PerYear  decimal.Decimal `json:"year"`
}

// NewFigures derives the monthly and annual views from a per-pay amount:
// perYear = perPay * periods, perMonth = perYear / 12.
func NewFigures(perPay, periods decimal.Decimal) Figures {
	year := perPay.Mul(periods)
	return Figures{
		PerPay:   perPay,
		PerMonth: year.Div(twelve),
		PerYear:  year,
	}
}

// TaxDetail breaks total taxes down per pay period for display.
type TaxDetail struct {
	Federal            decimal.Decimal `json:"federal"`
	State              decimal.Decimal `json:"state"`
	SocialSecurity     decimal.Decimal `json:"socialSecurity"`
	Medicare           decimal.Decimal `json:"medicare"`
	AdditionalMedicare decimal.Decimal `json:"additionalMedicare"`
	SDI                decimal.Decimal `json:"sdi"`
}

// Total sums the breakdown.
func (td TaxDetail) Total() decimal.Decimal {
	return td.Federal.
		Add(td.State).
		Add(td.SocialSecurity).
		Add(td.Medicare).
		Add(td.AdditionalMedicare).
		Add(td.SDI)
}

// PayResult is the computed output of the paycheck engine. It is a plain
// value: computing it has no side effects and recomputing from unchanged
// state yields identical figures.
type PayResult struct {
	Gross            Figures `json:"gross"`
	Pretax           Figures `json:"pretax"`
	Taxable          Figures `json:"taxable"`
	Taxes            Figures `json:"taxes"`
	PostTax          Figures `json:"posttax"`
	AdditionalIncome Figures `json:"additionalIncome"`
	Net              Figures `json:"net"`

	TaxDetail TaxDetail `json:"taxDetail"`

	// EffectiveTaxRate is total annual tax over annual taxable income as a
	// fraction, zero when there is no taxable income.
	EffectiveTaxRate decimal.Decimal `json:"effectiveTaxRate"`
}

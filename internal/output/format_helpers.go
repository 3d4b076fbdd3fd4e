package output

import "github.com/shopspring/decimal"

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in
// isolation.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercent formats a decimal percentage with 1 decimal.
func FormatPercent(amount decimal.Decimal) string { return amount.StringFixed(1) + "%" }

// FormatRate formats a fractional rate as a percentage with 2 decimals.
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// Package domain defines the data model shared by the calculation engine,
// the persistence layer and the CLI: pay inputs, computed pay results, and
// tax schedule configuration.
package domain

import (
	"github.com/paycheck/budget-planner/pkg/numeric"
)

// FilingStatus selects among parallel state bracket tables.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarried         FilingStatus = "married"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// Normalize maps an unrecognized status to single.
func (fs FilingStatus) Normalize() FilingStatus {
	switch fs {
	case FilingSingle, FilingMarried, FilingHeadOfHousehold:
		return fs
	default:
		return FilingSingle
	}
}

// TaxBracketConfig is one row of a progressive schedule: the bracket's
// upper bound and the marginal rate applied within it. An upper bound of
// zero on the last row means unbounded. Rates are fractions (0.22 = 22%).
type TaxBracketConfig struct {
	Upper numeric.Flex `yaml:"upper" json:"upper"`
	Rate  numeric.Flex `yaml:"rate" json:"rate"`
}

// FederalTaxConfig configures the federal schedule.
type FederalTaxConfig struct {
	Brackets                []TaxBracketConfig `yaml:"brackets" json:"brackets"`
	StandardDeductionAnnual numeric.Flex       `yaml:"standard_deduction_annual" json:"standard_deduction_annual"`
}

// StateTaxConfig configures the state schedule: one bracket table per
// filing status plus a surtax applied to annual taxable income above a
// threshold (on top of either the bracket tax or a flat override).
type StateTaxConfig struct {
	Brackets        map[FilingStatus][]TaxBracketConfig `yaml:"brackets" json:"brackets"`
	SurtaxThreshold numeric.Flex                        `yaml:"surtax_threshold" json:"surtax_threshold"`
	SurtaxRate      numeric.Flex                        `yaml:"surtax_rate" json:"surtax_rate"`
}

// FICATaxConfig configures payroll taxes. All rates are fractions.
type FICATaxConfig struct {
	SocialSecurityRate          numeric.Flex `yaml:"social_security_rate" json:"social_security_rate"`
	SocialSecurityWageBase      numeric.Flex `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	MedicareRate                numeric.Flex `yaml:"medicare_rate" json:"medicare_rate"`
	AdditionalMedicareRate      numeric.Flex `yaml:"additional_medicare_rate" json:"additional_medicare_rate"`
	AdditionalMedicareThreshold numeric.Flex `yaml:"additional_medicare_threshold" json:"additional_medicare_threshold"`
	SDIRate                     numeric.Flex `yaml:"sdi_rate" json:"sdi_rate"`
}

// TaxSchedule bundles every bracket table and payroll rate the paycheck
// engine needs for one tax year.
type TaxSchedule struct {
	Year    int              `yaml:"year" json:"year"`
	Federal FederalTaxConfig `yaml:"federal" json:"federal"`
	State   StateTaxConfig   `yaml:"state" json:"state"`
	FICA    FICATaxConfig    `yaml:"fica" json:"fica"`
}

// StateBrackets returns the bracket table for a filing status, falling back
// to single for unrecognized statuses.
func (ts *TaxSchedule) StateBrackets(status FilingStatus) []TaxBracketConfig {
	if rows, ok := ts.State.Brackets[status.Normalize()]; ok {
		return rows
	}
	return ts.State.Brackets[FilingSingle]
}

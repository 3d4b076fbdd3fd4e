// Package config loads tax schedules from YAML files and application
// settings from the user's TOML config, with built-in defaults for both.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/paycheck/budget-planner/internal/domain"
	"github.com/paycheck/budget-planner/pkg/numeric"
)

func bracket(upper int64, rate float64) domain.TaxBracketConfig {
	return domain.TaxBracketConfig{
		Upper: numeric.FlexFromInt(upper),
		Rate:  numeric.FlexFromFloat(rate),
	}
}

// DefaultTaxSchedule returns the built-in 2024 schedule: federal single
// brackets plus California state tables (the SDI and mental-health surtax
// knobs are Californian).
func DefaultTaxSchedule() *domain.TaxSchedule {
	return &domain.TaxSchedule{
		Year: 2024,
		Federal: domain.FederalTaxConfig{
			StandardDeductionAnnual: numeric.FlexFromInt(14600),
			Brackets: []domain.TaxBracketConfig{
				bracket(11600, 0.10),
				bracket(47150, 0.12),
				bracket(100525, 0.22),
				bracket(191950, 0.24),
				bracket(243725, 0.32),
				bracket(609350, 0.35),
				bracket(0, 0.37),
			},
		},
		State: domain.StateTaxConfig{
			SurtaxThreshold: numeric.FlexFromInt(1000000),
			SurtaxRate:      numeric.FlexFromFloat(0.01),
			Brackets: map[domain.FilingStatus][]domain.TaxBracketConfig{
				domain.FilingSingle: {
					bracket(10412, 0.01),
					bracket(24684, 0.02),
					bracket(38959, 0.04),
					bracket(54081, 0.06),
					bracket(68350, 0.08),
					bracket(349137, 0.093),
					bracket(418961, 0.103),
					bracket(698271, 0.113),
					bracket(0, 0.123),
				},
				domain.FilingMarried: {
					bracket(20824, 0.01),
					bracket(49368, 0.02),
					bracket(77918, 0.04),
					bracket(108162, 0.06),
					bracket(136700, 0.08),
					bracket(698274, 0.093),
					bracket(837922, 0.103),
					bracket(1396542, 0.113),
					bracket(0, 0.123),
				},
				domain.FilingHeadOfHousehold: {
					bracket(20839, 0.01),
					bracket(49371, 0.02),
					bracket(63644, 0.04),
					bracket(78765, 0.06),
					bracket(93037, 0.08),
					bracket(474824, 0.093),
					bracket(569790, 0.103),
					bracket(949649, 0.113),
					bracket(0, 0.123),
				},
			},
		},
		FICA: domain.FICATaxConfig{
			SocialSecurityRate:          numeric.FlexFromFloat(0.062),
			SocialSecurityWageBase:      numeric.FlexFromInt(168600),
			MedicareRate:                numeric.FlexFromFloat(0.0145),
			AdditionalMedicareRate:      numeric.FlexFromFloat(0.009),
			AdditionalMedicareThreshold: numeric.FlexFromInt(200000),
			SDIRate:                     numeric.FlexFromFloat(0.011),
		},
	}
}

// LoadTaxSchedule parses and validates a YAML schedule file.
func LoadTaxSchedule(filename string) (*domain.TaxSchedule, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var schedule domain.TaxSchedule
	if err := yaml.Unmarshal(data, &schedule); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ValidateTaxSchedule(&schedule); err != nil {
		return nil, fmt.Errorf("schedule validation failed: %w", err)
	}

	return &schedule, nil
}

// ValidateTaxSchedule checks that every bracket table is usable: rates in
// [0,1], strictly ascending upper bounds, and only the final bracket
// unbounded. The upper-bound representation is gapless by construction, so
// a valid table always covers [0, inf).
func ValidateTaxSchedule(schedule *domain.TaxSchedule) error {
	if len(schedule.Federal.Brackets) == 0 {
		return fmt.Errorf("federal brackets are required")
	}
	if err := validateBrackets("federal", schedule.Federal.Brackets); err != nil {
		return err
	}
	if schedule.Federal.StandardDeductionAnnual.IsNegative() {
		return fmt.Errorf("federal standard deduction cannot be negative")
	}

	if len(schedule.State.Brackets) == 0 {
		return fmt.Errorf("state brackets are required")
	}
	if _, ok := schedule.State.Brackets[domain.FilingSingle]; !ok {
		return fmt.Errorf("state brackets must include the single filing status")
	}
	for status, rows := range schedule.State.Brackets {
		if err := validateBrackets(fmt.Sprintf("state %s", status), rows); err != nil {
			return err
		}
	}
	if schedule.State.SurtaxRate.IsNegative() || schedule.State.SurtaxThreshold.IsNegative() {
		return fmt.Errorf("state surtax rate and threshold cannot be negative")
	}

	fica := schedule.FICA
	for name, rate := range map[string]decimal.Decimal{
		"social security rate":     fica.SocialSecurityRate.Decimal,
		"medicare rate":            fica.MedicareRate.Decimal,
		"additional medicare rate": fica.AdditionalMedicareRate.Decimal,
		"sdi rate":                 fica.SDIRate.Decimal,
	} {
		if err := validateRate(name, rate); err != nil {
			return err
		}
	}
	if fica.SocialSecurityWageBase.IsNegative() {
		return fmt.Errorf("social security wage base cannot be negative")
	}
	if fica.AdditionalMedicareThreshold.IsNegative() {
		return fmt.Errorf("additional medicare threshold cannot be negative")
	}

	return nil
}

func validateBrackets(name string, rows []domain.TaxBracketConfig) error {
	if len(rows) == 0 {
		return fmt.Errorf("%s brackets cannot be empty", name)
	}
	prev := decimal.Zero
	for i, row := range rows {
		if err := validateRate(fmt.Sprintf("%s bracket %d rate", name, i), row.Rate.Decimal); err != nil {
			return err
		}
		upper := row.Upper.Decimal
		if upper.LessThanOrEqual(decimal.Zero) {
			if i != len(rows)-1 {
				return fmt.Errorf("%s bracket %d: only the final bracket may be unbounded", name, i)
			}
			continue
		}
		if i > 0 && upper.LessThanOrEqual(prev) {
			return fmt.Errorf("%s bracket %d: upper bound %s is not ascending", name, i, upper)
		}
		prev = upper
	}
	return nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be a fraction between 0 and 1, got %s", name, rate)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycheck/budget-planner/internal/domain"
	"github.com/paycheck/budget-planner/pkg/numeric"
)

func TestDefaultTaxScheduleIsValid(t *testing.T) {
	schedule := DefaultTaxSchedule()

	require.NoError(t, ValidateTaxSchedule(schedule))
	assert.Equal(t, 2024, schedule.Year)

	// All three filing statuses carry a table and fall back correctly.
	for _, status := range []domain.FilingStatus{
		domain.FilingSingle, domain.FilingMarried, domain.FilingHeadOfHousehold,
	} {
		assert.NotEmpty(t, schedule.StateBrackets(status), "status %s", status)
	}
	assert.Equal(t, schedule.StateBrackets(domain.FilingSingle),
		schedule.StateBrackets(domain.FilingStatus("bogus")))
}

func TestValidateTaxScheduleRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TaxSchedule)
	}{
		{"no federal brackets", func(s *domain.TaxSchedule) {
			s.Federal.Brackets = nil
		}},
		{"negative standard deduction", func(s *domain.TaxSchedule) {
			s.Federal.StandardDeductionAnnual = numeric.FlexFromInt(-1)
		}},
		{"rate above one", func(s *domain.TaxSchedule) {
			s.Federal.Brackets[0].Rate = numeric.FlexFromFloat(1.5)
		}},
		{"negative rate", func(s *domain.TaxSchedule) {
			s.Federal.Brackets[0].Rate = numeric.FlexFromFloat(-0.1)
		}},
		{"unbounded bracket before the last", func(s *domain.TaxSchedule) {
			s.Federal.Brackets[2].Upper = numeric.Flex{}
		}},
		{"non-ascending bounds", func(s *domain.TaxSchedule) {
			s.Federal.Brackets[1].Upper = numeric.FlexFromInt(5)
		}},
		{"missing single state table", func(s *domain.TaxSchedule) {
			delete(s.State.Brackets, domain.FilingSingle)
		}},
		{"no state brackets at all", func(s *domain.TaxSchedule) {
			s.State.Brackets = nil
		}},
		{"negative surtax rate", func(s *domain.TaxSchedule) {
			s.State.SurtaxRate = numeric.FlexFromFloat(-0.01)
		}},
		{"fica rate above one", func(s *domain.TaxSchedule) {
			s.FICA.MedicareRate = numeric.FlexFromFloat(2)
		}},
		{"negative wage base", func(s *domain.TaxSchedule) {
			s.FICA.SocialSecurityWageBase = numeric.FlexFromInt(-100)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := DefaultTaxSchedule()
			tt.mutate(schedule)
			assert.Error(t, ValidateTaxSchedule(schedule))
		})
	}
}

func TestLoadTaxSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.yaml")
	yaml := `
year: 2025
federal:
  standard_deduction_annual: 15000
  brackets:
    - {upper: 12000, rate: 0.10}
    - {upper: 0, rate: 0.22}
state:
  surtax_threshold: 1000000
  surtax_rate: 0.01
  brackets:
    single:
      - {upper: 10000, rate: 0.01}
      - {upper: 0, rate: 0.05}
fica:
  social_security_rate: 0.062
  social_security_wage_base: 170000
  medicare_rate: 0.0145
  additional_medicare_rate: 0.009
  additional_medicare_threshold: 200000
  sdi_rate: 0.011
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	schedule, err := LoadTaxSchedule(path)
	require.NoError(t, err)

	assert.Equal(t, 2025, schedule.Year)
	require.Len(t, schedule.Federal.Brackets, 2)
	assert.True(t, schedule.Federal.Brackets[0].Upper.Equal(decimal.NewFromInt(12000)))
	assert.True(t, schedule.FICA.SocialSecurityWageBase.Equal(decimal.NewFromInt(170000)))
	require.Len(t, schedule.StateBrackets(domain.FilingSingle), 2)
}

func TestLoadTaxScheduleErrors(t *testing.T) {
	_, err := LoadTaxSchedule(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("federal: [not a map"), 0o600))
	_, err = LoadTaxSchedule(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("year: 2025\n"), 0o600))
	_, err = LoadTaxSchedule(invalid)
	assert.Error(t, err, "parseable but invalid schedules are rejected")
}

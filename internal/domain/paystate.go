package domain

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paycheck/budget-planner/internal/budget"
	"github.com/paycheck/budget-planner/pkg/numeric"
)

// StateKey is the versioned key the persisted state blob lives under.
const StateKey = "budget-planner-state-v1"

// LineItem is one flat row of the after-tax deduction or additional income
// lists. Amounts are per pay period.
type LineItem struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	PerPay numeric.Flex `json:"perPay"`
	Note   string       `json:"note"`
}

// NewLineItem creates a line item with a fresh id.
func NewLineItem(title string, perPay decimal.Decimal) LineItem {
	return LineItem{ID: uuid.NewString(), Title: title, PerPay: numeric.NewFlex(perPay)}
}

// PayState holds every user-editable input. Monetary fields are canonically
// per pay period; the *Annual companions are accepted on load and folded
// into the per-pay value by Sanitize (a positive annual value wins and the
// per-pay figure is recomputed from it), so there is never a second source
// of truth after loading. All numeric fields are lenient: blank or invalid
// persisted values coerce to zero.
//
// Rate fields ending in Percent or Rate are percentages (6.2 = 6.2%).
// FederalRate and StateRate are flat-rate overrides: when positive they
// bypass the bracket schedules entirely.
type PayState struct {
	SalaryPerPay            numeric.Flex `json:"salaryPerPay"`
	SalaryAnnual            numeric.Flex `json:"salaryAnnual"`
	PeriodsPerYear          numeric.Flex `json:"periodsPerYear"`
	StandardDeductionAnnual numeric.Flex `json:"standardDeductionAnnual"`

	// Pretax deductions.
	K401Percent       numeric.Flex `json:"k401Percent"`
	HSAPerPay         numeric.Flex `json:"hsaPerPay"`
	HSAAnnual         numeric.Flex `json:"hsaAnnual"`
	DentalPerPay      numeric.Flex `json:"dentalPerPay"`
	DentalAnnual      numeric.Flex `json:"dentalAnnual"`
	MedicalPerPay     numeric.Flex `json:"medicalPerPay"`
	MedicalAnnual     numeric.Flex `json:"medicalAnnual"`
	OtherPretaxPerPay numeric.Flex `json:"otherPretaxPerPay"`
	OtherPretaxAnnual numeric.Flex `json:"otherPretaxAnnual"`

	// Federal withholding.
	FederalRate         numeric.Flex `json:"federalRate"`
	FederalExtraPercent numeric.Flex `json:"federalExtraPercent"`
	W4ExtraPerPay       numeric.Flex `json:"w4ExtraPerPay"`

	// State withholding.
	FilingStatus      FilingStatus `json:"filingStatus"`
	StateRate         numeric.Flex `json:"stateRate"`
	StateExtraPercent numeric.Flex `json:"stateExtraPercent"`

	// Payroll tax knobs. Positive values override the schedule's rates.
	SocialSecurityRate numeric.Flex `json:"socialSecurityRate"`
	MedicareRate       numeric.Flex `json:"medicareRate"`
	SDIRate            numeric.Flex `json:"sdiRate"`

	// Post-tax.
	EsppPercent numeric.Flex `json:"esppPercent"`

	AfterTaxDeductions []LineItem `json:"afterTaxDeductions"`
	AdditionalIncome   []LineItem `json:"additionalIncome"`

	Budget []*budget.Node `json:"budgetTree"`

	// LegacyBudget is the pre-tree flat row list; consumed by Sanitize when
	// no tree is present, never written back.
	LegacyBudget []budget.LegacyRow `json:"budget,omitempty"`
}

// DefaultState returns the schema defaults a persisted blob is merged over.
func DefaultState() *PayState {
	return &PayState{
		PeriodsPerYear:          numeric.FlexFromInt(26),
		StandardDeductionAnnual: numeric.FlexFromInt(14600),
		FilingStatus:            FilingSingle,
		SocialSecurityRate:      numeric.FlexFromFloat(6.2),
		MedicareRate:            numeric.FlexFromFloat(1.45),
		SDIRate:                 numeric.FlexFromFloat(1),
		EsppPercent:             numeric.FlexFromFloat(5),
		AfterTaxDeductions: []LineItem{
			NewLineItem("Long-term disability", decimal.Zero),
		},
		AdditionalIncome: []LineItem{
			NewLineItem("Rental income", decimal.Zero),
			NewLineItem("Gym reimbursement", decimal.Zero),
			NewLineItem("Phone stipend", decimal.Zero),
		},
		Budget: budget.DefaultTree(),
	}
}

// LoadState merges persisted JSON over the schema defaults. Unparsable
// input yields the defaults; fields missing from the blob keep their
// default values; the budget tree is sanitized, migrated from the legacy
// flat format when the tree is absent, or replaced with the default tree
// when neither survives. LoadState never fails.
func LoadState(raw []byte) *PayState {
	state := DefaultState()
	if len(raw) == 0 {
		return state
	}

	// Clear slice defaults so "present but different" replaces instead of
	// keeping defaults, while "absent" is detectable below.
	state.Budget = nil
	state.AfterTaxDeductions = nil
	state.AdditionalIncome = nil

	if err := json.Unmarshal(raw, state); err != nil {
		return DefaultState()
	}

	defaults := DefaultState()
	if state.AfterTaxDeductions == nil {
		state.AfterTaxDeductions = defaults.AfterTaxDeductions
	}
	if state.AdditionalIncome == nil {
		state.AdditionalIncome = defaults.AdditionalIncome
	}

	state.Sanitize()
	return state
}

// Sanitize repairs the state in place: annual pair values are folded into
// the canonical per-pay fields, the filing status is normalized, line items
// get missing ids assigned, and the budget tree is repaired or rebuilt.
func (s *PayState) Sanitize() {
	periods := s.Periods()

	s.SalaryPerPay = foldAnnual(s.SalaryAnnual, s.SalaryPerPay, periods)
	s.SalaryAnnual = numeric.Flex{}
	s.HSAPerPay = foldAnnual(s.HSAAnnual, s.HSAPerPay, periods)
	s.HSAAnnual = numeric.Flex{}
	s.DentalPerPay = foldAnnual(s.DentalAnnual, s.DentalPerPay, periods)
	s.DentalAnnual = numeric.Flex{}
	s.MedicalPerPay = foldAnnual(s.MedicalAnnual, s.MedicalPerPay, periods)
	s.MedicalAnnual = numeric.Flex{}
	s.OtherPretaxPerPay = foldAnnual(s.OtherPretaxAnnual, s.OtherPretaxPerPay, periods)
	s.OtherPretaxAnnual = numeric.Flex{}

	s.FilingStatus = s.FilingStatus.Normalize()

	for i := range s.AfterTaxDeductions {
		if s.AfterTaxDeductions[i].ID == "" {
			s.AfterTaxDeductions[i].ID = uuid.NewString()
		}
	}
	for i := range s.AdditionalIncome {
		if s.AdditionalIncome[i].ID == "" {
			s.AdditionalIncome[i].ID = uuid.NewString()
		}
	}

	s.Budget = budget.Sanitize(s.Budget)
	if s.Budget == nil {
		if len(s.LegacyBudget) > 0 {
			s.Budget = budget.MigrateLegacy(s.LegacyBudget)
		} else {
			s.Budget = budget.DefaultTree()
		}
	}
	s.LegacyBudget = nil
}

// Periods returns the pay period count clamped to at least one.
func (s *PayState) Periods() decimal.Decimal {
	p := s.PeriodsPerYear.Decimal
	if p.LessThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return p
}

// ResolvePerPay resolves an annual/per-pay field pair to the canonical
// per-pay value: a positive annual value takes precedence and the per-pay
// figure is derived from it, otherwise the per-pay value is authoritative.
func ResolvePerPay(annual, perPay, periods decimal.Decimal) decimal.Decimal {
	if annual.GreaterThan(decimal.Zero) {
		return annual.Div(periods)
	}
	return perPay
}

func foldAnnual(annual, perPay numeric.Flex, periods decimal.Decimal) numeric.Flex {
	return numeric.NewFlex(ResolvePerPay(annual.Decimal, perPay.Decimal, periods))
}

// Marshal serializes the state to the persisted JSON shape.
func (s *PayState) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

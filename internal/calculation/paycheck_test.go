package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/paycheck/budget-planner/internal/domain"
	"github.com/paycheck/budget-planner/pkg/numeric"
)

var tolerance = decimal.NewFromFloat(0.0001)

func assertNear(t *testing.T, expected, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, got.Sub(expected).Abs().LessThan(tolerance),
		"want %s, got %s (%v)", expected, got, msgAndArgs)
}

// engineSchedule is a small schedule with round numbers so expectations can
// be computed by hand.
func engineSchedule() *domain.TaxSchedule {
	return &domain.TaxSchedule{
		Federal: domain.FederalTaxConfig{
			Brackets: []domain.TaxBracketConfig{
				{Upper: numeric.FlexFromInt(10000), Rate: numeric.FlexFromFloat(0.10)},
				{Upper: numeric.Flex{}, Rate: numeric.FlexFromFloat(0.20)},
			},
		},
		State: domain.StateTaxConfig{
			SurtaxThreshold: numeric.FlexFromInt(100000),
			SurtaxRate:      numeric.FlexFromFloat(0.01),
			Brackets: map[domain.FilingStatus][]domain.TaxBracketConfig{
				domain.FilingSingle: {
					{Upper: numeric.Flex{}, Rate: numeric.FlexFromFloat(0.05)},
				},
			},
		},
		FICA: domain.FICATaxConfig{
			SocialSecurityRate:          numeric.FlexFromFloat(0.062),
			SocialSecurityWageBase:      numeric.FlexFromInt(168600),
			MedicareRate:                numeric.FlexFromFloat(0.0145),
			AdditionalMedicareRate:      numeric.FlexFromFloat(0.009),
			AdditionalMedicareThreshold: numeric.FlexFromInt(200000),
			SDIRate:                     numeric.FlexFromFloat(0.01),
		},
	}
}

func TestCalculatePayFullPipeline(t *testing.T) {
	engine := NewEngine(engineSchedule())
	state := &domain.PayState{
		SalaryPerPay:   numeric.FlexFromInt(10000),
		PeriodsPerYear: numeric.FlexFromInt(12),
		FilingStatus:   domain.FilingSingle,
	}

	result := engine.CalculatePay(state)

	// Annual taxable income 120000:
	// federal 10000*0.10 + 110000*0.20 = 23000
	// state   120000*0.05 + 20000*0.01 = 6200
	// SS      120000*0.062             = 7440
	// medicare 120000*0.0145           = 1740
	// SDI      10000*0.01 per period
	assertNear(t, decimal.NewFromFloat(23000.0/12), result.TaxDetail.Federal, "federal")
	assertNear(t, decimal.NewFromFloat(6200.0/12), result.TaxDetail.State, "state")
	assertNear(t, decimal.NewFromInt(620), result.TaxDetail.SocialSecurity, "ss")
	assertNear(t, decimal.NewFromInt(145), result.TaxDetail.Medicare, "medicare")
	assert.True(t, result.TaxDetail.AdditionalMedicare.IsZero())
	assertNear(t, decimal.NewFromInt(100), result.TaxDetail.SDI, "sdi")

	taxesPerPay := decimal.NewFromFloat(39580.0 / 12)
	assertNear(t, taxesPerPay, result.Taxes.PerPay)
	assertNear(t, decimal.NewFromInt(10000).Sub(taxesPerPay), result.Net.PerPay)
	assertNear(t, decimal.NewFromFloat(39580.0/120000.0), result.EffectiveTaxRate)
}

func TestCalculatePayPretaxAndStandardDeduction(t *testing.T) {
	engine := NewEngine(engineSchedule())
	state := &domain.PayState{
		SalaryPerPay:            numeric.FlexFromInt(5000),
		PeriodsPerYear:          numeric.FlexFromInt(26),
		StandardDeductionAnnual: numeric.FlexFromInt(13000),
		K401Percent:             numeric.FlexFromInt(10),
		HSAPerPay:               numeric.FlexFromInt(100),
	}

	result := engine.CalculatePay(state)

	// Pretax: 500 (401k) + 100 (HSA) = 600 per pay.
	assertNear(t, decimal.NewFromInt(600), result.Pretax.PerPay)
	// Taxable: 5000 - 600 - 13000/26 = 3900 per pay.
	assertNear(t, decimal.NewFromInt(3900), result.Taxable.PerPay)
	assertNear(t, decimal.NewFromInt(3900*26), result.Taxable.PerYear)
}

func TestCalculatePayTaxableClampedAtZero(t *testing.T) {
	engine := NewEngine(engineSchedule())
	state := &domain.PayState{
		SalaryPerPay:            numeric.FlexFromInt(500),
		PeriodsPerYear:          numeric.FlexFromInt(26),
		StandardDeductionAnnual: numeric.FlexFromInt(200000),
	}

	result := engine.CalculatePay(state)

	assert.True(t, result.Taxable.PerPay.IsZero(), "taxable never goes negative")
	assert.True(t, result.Taxes.PerPay.IsZero())
	assertNear(t, result.Gross.PerPay, result.Net.PerPay,
		"with no taxable income and no deductions, net equals gross")
}

func TestCalculatePayExtraWithholding(t *testing.T) {
	engine := NewEngine(engineSchedule())
	base := &domain.PayState{
		SalaryPerPay:   numeric.FlexFromInt(10000),
		PeriodsPerYear: numeric.FlexFromInt(12),
	}
	withExtra := &domain.PayState{
		SalaryPerPay:        numeric.FlexFromInt(10000),
		PeriodsPerYear:      numeric.FlexFromInt(12),
		FederalExtraPercent: numeric.FlexFromInt(1),
		W4ExtraPerPay:       numeric.FlexFromInt(50),
		StateExtraPercent:   numeric.FlexFromInt(2),
	}

	baseResult := engine.CalculatePay(base)
	extraResult := engine.CalculatePay(withExtra)

	// Extra federal: 1% of 10000 taxable + 50 flat = 150.
	assertNear(t, baseResult.TaxDetail.Federal.Add(decimal.NewFromInt(150)),
		extraResult.TaxDetail.Federal)
	// Extra state: 2% of 10000 = 200.
	assertNear(t, baseResult.TaxDetail.State.Add(decimal.NewFromInt(200)),
		extraResult.TaxDetail.State)
}

func TestCalculatePayFlatOverrides(t *testing.T) {
	engine := NewEngine(engineSchedule())
	state := &domain.PayState{
		SalaryPerPay:   numeric.FlexFromInt(10000),
		PeriodsPerYear: numeric.FlexFromInt(12),
		FederalRate:    numeric.FlexFromInt(22),
		StateRate:      numeric.FlexFromInt(6),
	}

	result := engine.CalculatePay(state)

	assertNear(t, decimal.NewFromInt(2200), result.TaxDetail.Federal,
		"flat 22% on 10000 per-pay taxable")
	// Flat 6% plus surtax: 120000*0.06 + 20000*0.01 = 7400 annually.
	assertNear(t, decimal.NewFromFloat(7400.0/12), result.TaxDetail.State)
}

func TestCalculatePayPostTaxAndAdditionalIncome(t *testing.T) {
	engine := NewEngine(engineSchedule())
	state := &domain.PayState{
		SalaryPerPay:   numeric.FlexFromInt(2000),
		PeriodsPerYear: numeric.FlexFromInt(26),
		EsppPercent:    numeric.FlexFromInt(5),
		AfterTaxDeductions: []domain.LineItem{
			domain.NewLineItem("LTD", decimal.NewFromInt(25)),
		},
		AdditionalIncome: []domain.LineItem{
			domain.NewLineItem("Rental", decimal.NewFromInt(300)),
			domain.NewLineItem("Stipend", decimal.NewFromInt(45)),
		},
	}

	result := engine.CalculatePay(state)

	// ESPP 5% of 2000 = 100, plus 25 LTD.
	assertNear(t, decimal.NewFromInt(125), result.PostTax.PerPay)
	assertNear(t, decimal.NewFromInt(345), result.AdditionalIncome.PerPay)
}

func TestCalculatePayNetNeverExceedsGrossPlusAdditional(t *testing.T) {
	engine := NewEngine(engineSchedule())

	states := []*domain.PayState{
		{SalaryPerPay: numeric.FlexFromInt(10000), PeriodsPerYear: numeric.FlexFromInt(12)},
		{
			SalaryPerPay:   numeric.FlexFromInt(3000),
			PeriodsPerYear: numeric.FlexFromInt(26),
			K401Percent:    numeric.FlexFromInt(15),
			EsppPercent:    numeric.FlexFromInt(10),
		},
		{
			SalaryPerPay:     numeric.FlexFromInt(1500),
			PeriodsPerYear:   numeric.FlexFromInt(52),
			AdditionalIncome: []domain.LineItem{domain.NewLineItem("Side", decimal.NewFromInt(200))},
		},
	}

	for _, state := range states {
		result := engine.CalculatePay(state)
		ceiling := result.Gross.PerPay.Add(result.AdditionalIncome.PerPay)
		assert.True(t, result.Net.PerPay.LessThanOrEqual(ceiling),
			"net %s exceeds gross+additional %s", result.Net.PerPay, ceiling)
	}
}

func TestCalculatePayIdempotent(t *testing.T) {
	engine := NewEngine(engineSchedule())
	state := &domain.PayState{
		SalaryPerPay:   numeric.FlexFromInt(4321),
		PeriodsPerYear: numeric.FlexFromInt(26),
		K401Percent:    numeric.FlexFromFloat(7.5),
	}

	first := engine.CalculatePay(state)
	second := engine.CalculatePay(state)

	assert.True(t, first.Net.PerPay.Equal(second.Net.PerPay))
	assert.True(t, first.Taxes.PerYear.Equal(second.Taxes.PerYear))
	assert.True(t, first.EffectiveTaxRate.Equal(second.EffectiveTaxRate))
}

func TestCalculatePayTripleConsistency(t *testing.T) {
	engine := NewEngine(engineSchedule())
	state := &domain.PayState{
		SalaryPerPay:   numeric.FlexFromInt(5000),
		PeriodsPerYear: numeric.FlexFromInt(26),
	}

	result := engine.CalculatePay(state)
	periods := decimal.NewFromInt(26)

	for name, f := range map[string]domain.Figures{
		"gross": result.Gross, "taxable": result.Taxable,
		"taxes": result.Taxes, "net": result.Net,
	} {
		assert.True(t, f.PerYear.Equal(f.PerPay.Mul(periods)), "%s year", name)
		assertNear(t, f.PerYear.Div(decimal.NewFromInt(12)), f.PerMonth, name)
	}
}

func TestCalculatePayPeriodsClampedToOne(t *testing.T) {
	engine := NewEngine(engineSchedule())
	state := &domain.PayState{
		SalaryPerPay: numeric.FlexFromInt(1000),
		// PeriodsPerYear left blank, coerces to zero, clamps to one.
	}

	result := engine.CalculatePay(state)
	assert.True(t, result.Gross.PerYear.Equal(decimal.NewFromInt(1000)))
}

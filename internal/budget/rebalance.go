package budget

import (
	"github.com/shopspring/decimal"

	"github.com/paycheck/budget-planner/pkg/numeric"
)

// Rebalance proportionally renormalizes all leaf percentages so they sum to
// 100. Relative weighting between items is preserved, only the absolute
// scale changes. Section percentages are untouched: they are rollups and
// recompute automatically from the rescaled leaves. When every leaf is zero
// there is nothing to scale, so the tree resets to the built-in default
// layout instead.
func Rebalance(tree *[]*Node) {
	leaves := Leaves(*tree)

	total := decimal.Zero
	for _, item := range leaves {
		total = total.Add(item.Percent.Decimal)
	}

	if total.IsZero() {
		*tree = DefaultTree()
		return
	}

	scale := hundred.Div(total)
	for _, item := range leaves {
		item.Percent = numeric.NewFlex(item.Percent.Mul(scale))
	}
}

// Package output renders computed pay results and the budget tree as
// terminal tables. Formatters are pure: they return bytes and never touch
// the state they are given.
package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paycheck/budget-planner/internal/budget"
	"github.com/paycheck/budget-planner/internal/domain"
)

// figuresRow builds one summary table row: the label followed by the
// per-pay, per-month and per-year amounts formatted as currency.
func figuresRow(label string, f domain.Figures) []string {
	return []string{
		label,
		FormatCurrency(f.PerPay),
		FormatCurrency(f.PerMonth),
		FormatCurrency(f.PerYear),
	}
}

// FormatSummary renders the headline pay figures and the per-tax
// breakdown.
func FormatSummary(result *domain.PayResult) []byte {
	rows := [][]string{
		figuresRow("Gross pay", result.Gross),
		figuresRow("Pretax deductions", result.Pretax),
		figuresRow("Taxable income", result.Taxable),
		figuresRow("Taxes", result.Taxes),
		figuresRow("Post-tax deductions", result.PostTax),
		figuresRow("Additional income", result.AdditionalIncome),
		{"---"},
		figuresRow("Net pay", result.Net),
	}

	summary := Table{
		Title:   "Paycheck summary",
		Headers: []string{"", "Per pay", "Per month", "Per year"},
		Rows:    rows,
	}

	detail := result.TaxDetail
	taxes := Table{
		Title:   "Tax breakdown (per pay)",
		Headers: []string{"Tax", "Amount"},
		Rows: [][]string{
			{"Federal", FormatCurrency(detail.Federal)},
			{"State", FormatCurrency(detail.State)},
			{"Social Security", FormatCurrency(detail.SocialSecurity)},
			{"Medicare", FormatCurrency(detail.Medicare)},
			{"Additional Medicare", FormatCurrency(detail.AdditionalMedicare)},
			{"SDI", FormatCurrency(detail.SDI)},
			{"---"},
			{"Total", FormatCurrency(detail.Total())},
		},
	}

	var b strings.Builder
	b.WriteString(summary.Render())
	b.WriteString("\n")
	b.WriteString(taxes.Render())
	b.WriteString(mutedStyle.Render(
		fmt.Sprintf("  Effective tax rate: %s", FormatRate(result.EffectiveTaxRate))))
	b.WriteString("\n")
	return []byte(b.String())
}

// FormatBudget renders the budget tree with per-node rollups against net
// monthly pay, a totals row, and the unused-money line. Collapsed sections
// hide their children but still show their rollup.
func FormatBudget(tree []*budget.Node, netMonthly decimal.Decimal) []byte {
	var rows [][]string
	appendBudgetRows(&rows, tree, netMonthly, 0)

	totals := budget.TreeTotals(tree, netMonthly)
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Total", "", FormatPercent(totals.Percent), FormatCurrency(totals.Amount), "",
	})

	table := Table{
		Title:   "Monthly budget",
		Headers: []string{"", "ID", "Percent", "Amount", "Note"},
		Rows:    rows,
	}

	var b strings.Builder
	b.WriteString(table.Render())

	if netMonthly.GreaterThan(decimal.Zero) {
		unused := netMonthly.Sub(totals.Amount)
		label := "Unused"
		if unused.IsNegative() {
			label = "Over budget"
		}
		b.WriteString(mutedStyle.Render(
			fmt.Sprintf("  %s: %s", label, FormatCurrency(unused))))
	} else {
		b.WriteString(mutedStyle.Render("  Enter pay details to see unused amounts."))
	}
	b.WriteString("\n")
	return []byte(b.String())
}

func appendBudgetRows(rows *[][]string, nodes []*budget.Node, netMonthly decimal.Decimal, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		totals := budget.NodeTotals(n, netMonthly)
		title := indent + n.Title
		if n.IsSection() {
			marker := "▾ "
			if n.Collapsed {
				marker = "▸ "
			}
			title = indent + marker + n.Title
		}
		*rows = append(*rows, []string{
			title,
			shortID(n.ID),
			FormatPercent(totals.Percent),
			FormatCurrency(totals.Amount),
			n.Note,
		})
		if n.IsSection() && !n.Collapsed {
			appendBudgetRows(rows, n.Children, netMonthly, depth+1)
		}
	}
}

// shortID truncates uuids for display; ops accept the prefix via the CLI.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

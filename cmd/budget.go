package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/paycheck/budget-planner/internal/budget"
	"github.com/paycheck/budget-planner/internal/output"
	"github.com/paycheck/budget-planner/pkg/numeric"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Edit the budget tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()
		result := e.engine.CalculatePay(e.state)
		os.Stdout.Write(output.FormatBudget(e.state.Budget, result.Net.PerMonth))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(budgetCmd)

	ops := []struct {
		use   string
		short string
		op    func(*[]*budget.Node, string) bool
	}{
		{"add-item <section-id>", "Append a new item to a section", budget.AddItem},
		{"add-section <section-id>", "Append a new subsection to a section", budget.AddSection},
		{"delete <id>", "Delete a node", budget.Delete},
		{"toggle <section-id>", "Collapse or expand a section", budget.Toggle},
		{"move-up <id>", "Swap a node with its preceding sibling", budget.MoveUp},
		{"move-down <id>", "Swap a node with its following sibling", budget.MoveDown},
		{"indent <id>", "Move a node into the section above it", budget.Indent},
		{"outdent <id>", "Promote a node one level up", budget.Outdent},
	}
	for _, o := range ops {
		op := o.op
		budgetCmd.AddCommand(&cobra.Command{
			Use:   o.use,
			Short: o.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBudgetOp(args[0], op)
			},
		})
	}

	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(rebalanceCmd)
}

// resolveID expands a short id prefix to the full node id. Ambiguous or
// unknown prefixes resolve to the input unchanged, which the operation then
// reports as a no-op.
func resolveID(tree []*budget.Node, prefix string) string {
	if prefix == "" {
		return prefix
	}
	match := prefix
	count := 0
	budget.Walk(tree, func(n *budget.Node) {
		if strings.HasPrefix(n.ID, prefix) {
			match = n.ID
			count++
		}
	})
	if count == 1 {
		return match
	}
	return prefix
}

func runBudgetOp(id string, op func(*[]*budget.Node, string) bool) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.close()

	full := resolveID(e.state.Budget, id)
	if !op(&e.state.Budget, full) {
		fmt.Println("No change.")
		return nil
	}

	if err := e.save(); err != nil {
		return err
	}
	result := e.engine.CalculatePay(e.state)
	os.Stdout.Write(output.FormatBudget(e.state.Budget, result.Net.PerMonth))
	return nil
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <id> <field> <value>",
	Short: "Edit a node's title, note, percent, target or amount",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		ctx, ok := budget.FindContext(&e.state.Budget, resolveID(e.state.Budget, args[0]))
		if !ok {
			fmt.Println("No change.")
			return nil
		}

		node := ctx.Node
		value := args[2]
		switch strings.ToLower(args[1]) {
		case "title":
			node.Title = value
		case "note":
			node.Note = value
		case "percent":
			if node.IsSection() {
				fmt.Println("No change.")
				return nil
			}
			node.Percent = numeric.NewFlex(numeric.CoerceString(value))
		case "target":
			if !node.IsSection() {
				fmt.Println("No change.")
				return nil
			}
			node.TargetPercent = numeric.NewFlex(numeric.CoerceString(value))
		case "amount":
			// Editing the monthly amount back-derives the percent from net
			// monthly pay, as long as net pay is positive.
			if node.IsSection() {
				fmt.Println("No change.")
				return nil
			}
			result := e.engine.CalculatePay(e.state)
			netMonthly := result.Net.PerMonth
			percent := decimal.Zero
			if netMonthly.GreaterThan(decimal.Zero) {
				percent = numeric.CoerceString(value).Div(netMonthly).Mul(decimal.NewFromInt(100))
			}
			node.Percent = numeric.NewFlex(percent)
		default:
			return fmt.Errorf("unknown field %q (title, note, percent, target, amount)", args[1])
		}

		if err := e.save(); err != nil {
			return err
		}
		result := e.engine.CalculatePay(e.state)
		os.Stdout.Write(output.FormatBudget(e.state.Budget, result.Net.PerMonth))
		return nil
	},
}

var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Scale all item percentages proportionally so they sum to 100",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		budget.Rebalance(&e.state.Budget)
		if err := e.save(); err != nil {
			return err
		}
		result := e.engine.CalculatePay(e.state)
		os.Stdout.Write(output.FormatBudget(e.state.Budget, result.Net.PerMonth))
		return nil
	},
}

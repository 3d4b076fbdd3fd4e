package budget

import (
	"github.com/shopspring/decimal"
)

// Context locates a node within the tree: the node itself, its immediate
// parent (nil for top-level nodes), its index within its sibling
// collection, and that collection. The parent reference is a transient
// lookup result; nodes never store back-pointers.
type Context struct {
	Node     *Node
	Parent   *Node
	Index    int
	Siblings *[]*Node
}

// FindContext locates a node by id with a depth-first walk. This is the
// single addressing mechanism every mutation uses; nothing addresses nodes
// by path.
func FindContext(tree *[]*Node, id string) (Context, bool) {
	return findIn(tree, nil, id)
}

func findIn(siblings *[]*Node, parent *Node, id string) (Context, bool) {
	for i, n := range *siblings {
		if n.ID == id {
			return Context{Node: n, Parent: parent, Index: i, Siblings: siblings}, true
		}
		if n.IsSection() {
			if ctx, ok := findIn(&n.Children, n, id); ok {
				return ctx, true
			}
		}
	}
	return Context{}, false
}

// Totals is the rollup of a node or tree: the summed percent share of net
// pay and the corresponding monthly amount.
type Totals struct {
	Percent decimal.Decimal
	Amount  decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NodeTotals computes the rollup for one node. An item contributes its
// stored percent and netMonthly*percent/100; the amount is zero when net
// monthly pay is not positive, so meaningless figures never propagate. A
// section contributes the recursive sum of its children; this rollup is the
// only way a section's percent or amount is ever derived.
func NodeTotals(n *Node, netMonthly decimal.Decimal) Totals {
	if !n.IsSection() {
		percent := n.Percent.Decimal
		amount := decimal.Zero
		if netMonthly.GreaterThan(decimal.Zero) {
			amount = netMonthly.Mul(percent).Div(hundred)
		}
		return Totals{Percent: percent, Amount: amount}
	}

	var totals Totals
	for _, child := range n.Children {
		ct := NodeTotals(child, netMonthly)
		totals.Percent = totals.Percent.Add(ct.Percent)
		totals.Amount = totals.Amount.Add(ct.Amount)
	}
	return totals
}

// TreeTotals computes the rollup across the whole top-level sequence.
func TreeTotals(tree []*Node, netMonthly decimal.Decimal) Totals {
	var totals Totals
	for _, n := range tree {
		nt := NodeTotals(n, netMonthly)
		totals.Percent = totals.Percent.Add(nt.Percent)
		totals.Amount = totals.Amount.Add(nt.Amount)
	}
	return totals
}

// Walk visits every node depth-first, parents before children.
func Walk(tree []*Node, visit func(*Node)) {
	for _, n := range tree {
		visit(n)
		if n.IsSection() {
			Walk(n.Children, visit)
		}
	}
}

// Leaves returns all items depth-first across the whole tree.
func Leaves(tree []*Node) []*Node {
	var items []*Node
	Walk(tree, func(n *Node) {
		if !n.IsSection() {
			items = append(items, n)
		}
	})
	return items
}

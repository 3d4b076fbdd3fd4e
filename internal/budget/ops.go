package budget

import (
	"github.com/shopspring/decimal"
)

// Structural operations. Each takes the top-level sequence and a target
// node id, mutates in place, and reports whether anything changed. A false
// return (id not found, wrong node kind, boundary move) is a silent no-op;
// callers skip persistence and re-render on false.

// Toggle flips a section's collapsed flag. Presentation-only; items cannot
// collapse.
func Toggle(tree *[]*Node, id string) bool {
	ctx, ok := FindContext(tree, id)
	if !ok || !ctx.Node.IsSection() {
		return false
	}
	ctx.Node.Collapsed = !ctx.Node.Collapsed
	return true
}

// Delete removes the node from its sibling collection. If that empties the
// top-level sequence a fresh default section is inserted, so the tree is
// never empty.
func Delete(tree *[]*Node, id string) bool {
	ctx, ok := FindContext(tree, id)
	if !ok {
		return false
	}
	removeAt(ctx.Siblings, ctx.Index)
	if len(*tree) == 0 {
		*tree = append(*tree, DefaultSection())
	}
	return true
}

// AddItem appends a new default item to the target section's children and
// expands the section so the new child is visible.
func AddItem(tree *[]*Node, id string) bool {
	return addChild(tree, id, NewItem("New item", decimal.Zero))
}

// AddSection appends a new default section to the target section's children
// and expands the target.
func AddSection(tree *[]*Node, id string) bool {
	return addChild(tree, id, NewSection("New section"))
}

func addChild(tree *[]*Node, id string, child *Node) bool {
	ctx, ok := FindContext(tree, id)
	if !ok || !ctx.Node.IsSection() {
		return false
	}
	ctx.Node.Children = append(ctx.Node.Children, child)
	ctx.Node.Collapsed = false
	return true
}

// MoveUp swaps the node with its preceding sibling. No-op at the top of the
// collection.
func MoveUp(tree *[]*Node, id string) bool {
	ctx, ok := FindContext(tree, id)
	if !ok || ctx.Index == 0 {
		return false
	}
	sibs := *ctx.Siblings
	sibs[ctx.Index-1], sibs[ctx.Index] = sibs[ctx.Index], sibs[ctx.Index-1]
	return true
}

// MoveDown swaps the node with its following sibling. No-op at the bottom.
func MoveDown(tree *[]*Node, id string) bool {
	ctx, ok := FindContext(tree, id)
	if !ok || ctx.Index >= len(*ctx.Siblings)-1 {
		return false
	}
	sibs := *ctx.Siblings
	sibs[ctx.Index], sibs[ctx.Index+1] = sibs[ctx.Index+1], sibs[ctx.Index]
	return true
}

// Indent moves the node into the section immediately above it, appended as
// that section's last child, and expands the new parent. No-op unless the
// preceding sibling is a section.
func Indent(tree *[]*Node, id string) bool {
	ctx, ok := FindContext(tree, id)
	if !ok || ctx.Index == 0 {
		return false
	}
	target := (*ctx.Siblings)[ctx.Index-1]
	if !target.IsSection() {
		return false
	}
	removeAt(ctx.Siblings, ctx.Index)
	target.Children = append(target.Children, ctx.Node)
	target.Collapsed = false
	return true
}

// Outdent promotes the node one level: removed from its parent's children
// and re-inserted immediately after the parent in the parent's own sibling
// collection. No-op for top-level nodes.
func Outdent(tree *[]*Node, id string) bool {
	ctx, ok := FindContext(tree, id)
	if !ok || ctx.Parent == nil {
		return false
	}
	parentCtx, ok := FindContext(tree, ctx.Parent.ID)
	if !ok {
		return false
	}
	removeAt(ctx.Siblings, ctx.Index)
	insertAt(parentCtx.Siblings, parentCtx.Index+1, ctx.Node)
	return true
}

func removeAt(siblings *[]*Node, i int) {
	s := *siblings
	*siblings = append(s[:i], s[i+1:]...)
}

func insertAt(siblings *[]*Node, i int, n *Node) {
	s := *siblings
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = n
	*siblings = s
}

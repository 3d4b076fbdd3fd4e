// Package budget implements the hierarchical budget model: a forest of
// sections and items holding percentage allocations of net pay, with
// structural edit operations, rollup totals and proportional rebalancing.
package budget

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paycheck/budget-planner/pkg/numeric"
)

// Kind discriminates the two node variants.
type Kind string

const (
	KindSection Kind = "section"
	KindItem    Kind = "item"
)

// Node is one entry in the budget tree. A node is exactly one of section or
// item: only sections carry Children, TargetPercent and Collapsed; only
// items carry Percent. A section's effective percent is never stored, it is
// always the rollup of its descendant items (see NodeTotals).
type Node struct {
	ID    string `json:"id"`
	Kind  Kind   `json:"type"`
	Title string `json:"title"`
	Note  string `json:"note"`

	// Section fields.
	Collapsed     bool         `json:"collapsed,omitempty"`
	TargetPercent numeric.Flex `json:"targetPercent,omitempty"`
	Children      []*Node      `json:"children,omitempty"`

	// Item field. Not clamped: negative and >100 values are allowed.
	Percent numeric.Flex `json:"percent,omitempty"`
}

// IsSection reports whether the node is a section.
func (n *Node) IsSection() bool { return n.Kind == KindSection }

// NewItem creates an item with a fresh id.
func NewItem(title string, percent decimal.Decimal) *Node {
	return &Node{
		ID:      uuid.NewString(),
		Kind:    KindItem,
		Title:   title,
		Percent: numeric.NewFlex(percent),
	}
}

// NewSection creates an empty, expanded section with a fresh id.
func NewSection(title string) *Node {
	return &Node{
		ID:    uuid.NewString(),
		Kind:  KindSection,
		Title: title,
	}
}

// defaultRow is one seed row of the built-in budget.
type defaultRow struct {
	title   string
	percent float64
	note    string
}

var defaultRows = []defaultRow{
	{"Home - primary", 28.1, "Mortgage/rent, HOA, water, taxes"},
	{"California housing", 29.4, "Rent + utilities"},
	{"Transportation", 13.5, "Gas, car payment, insurance, parking"},
	{"Debt", 3.6, "Cards and student loans"},
	{"Additional expenses", 7, "Subscriptions, memberships, misc"},
	{"Charitable donations", 1, "Monthly giving"},
	{"Savings", 17.4, "Reserve, vacations, long-term"},
}

// DefaultTree returns the built-in fallback budget: the seed rows as items
// under a single section. Used on first run, on reset, and when rebalancing
// an all-zero tree.
func DefaultTree() []*Node {
	section := NewSection("Monthly budget")
	for _, row := range defaultRows {
		item := NewItem(row.title, decimal.NewFromFloat(row.percent))
		item.Note = row.note
		section.Children = append(section.Children, item)
	}
	return []*Node{section}
}

// DefaultSection returns the section inserted when deletion empties the
// tree, so the forest is never empty.
func DefaultSection() *Node {
	section := NewSection("New section")
	section.Children = []*Node{NewItem("New item", decimal.Zero)}
	return section
}

package budget

import (
	"github.com/google/uuid"

	"github.com/paycheck/budget-planner/pkg/numeric"
)

// LegacyRow is the flat budget row format from before the tree existed:
// a label, a percent of net pay, and a note.
type LegacyRow struct {
	Label   string       `json:"label"`
	Percent numeric.Flex `json:"percent"`
	Note    string       `json:"note"`
}

// MigrateLegacy wraps a flat list of legacy rows into a single section so
// older saved state loads into the tree format.
func MigrateLegacy(rows []LegacyRow) []*Node {
	section := NewSection("Monthly budget")
	for _, row := range rows {
		item := NewItem(row.Label, row.Percent.Decimal)
		item.Note = row.Note
		section.Children = append(section.Children, item)
	}
	return []*Node{section}
}

// Sanitize repairs a tree loaded from persisted state: assigns missing ids,
// normalizes the node kind, and strips variant fields that do not belong to
// the node's kind. Nothing is dropped; malformed nodes are repaired in
// place. Returns nil for an empty input so callers can fall back to the
// default tree.
func Sanitize(tree []*Node) []*Node {
	if len(tree) == 0 {
		return nil
	}
	for _, n := range tree {
		sanitizeNode(n)
	}
	return tree
}

func sanitizeNode(n *Node) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	// A node claiming to be an item while carrying children is a section;
	// anything unrecognized without children is an item.
	switch n.Kind {
	case KindSection, KindItem:
		if len(n.Children) > 0 {
			n.Kind = KindSection
		}
	default:
		if len(n.Children) > 0 {
			n.Kind = KindSection
		} else {
			n.Kind = KindItem
		}
	}

	if n.IsSection() {
		n.Percent = numeric.Flex{}
		for _, child := range n.Children {
			sanitizeNode(child)
		}
	} else {
		n.Collapsed = false
		n.TargetPercent = numeric.Flex{}
		n.Children = nil
	}
}

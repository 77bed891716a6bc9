// Package formatter renders forest snapshots for non-interactive output.
// The tree formatter is a plain render layer over the core model: it walks a
// snapshot, honors the visibility and opened flags the operations computed,
// and never feeds anything back into the model.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/treeview/pkg/tree"
)

// TreeOptions controls tree output formatting.
type TreeOptions struct {
	// Config supplies the style table for icons and the checkbox/sort
	// settings. The zero value renders without icons or checkboxes.
	Config tree.Config
	// ShowHidden renders nodes whose visible flag is false instead of
	// skipping them.
	ShowHidden bool
	// MaxTitleLen is the max display width before truncating titles.
	// 0 or negative = no truncation.
	MaxTitleLen int
}

const (
	checkedGlyph   = "[x]"
	uncheckedGlyph = "[ ]"
	collapsedHint  = "…"
)

// FormatForest renders a forest snapshot as an ASCII tree. Collapsed
// subtrees are summarized with an ellipsis node, hidden nodes are skipped
// unless ShowHidden is set, and sibling order follows the configured sort
// order (sorting is a render concern; the snapshot itself is never
// reordered).
func FormatForest(f tree.Forest, opts TreeOptions) string {
	root := treeprint.New()
	root.SetValue(".")
	addNodes(root, sortNodes(f, opts.Config.Sort), opts)
	return root.String()
}

func addNodes(branch treeprint.Tree, nodes []tree.Node, opts TreeOptions) {
	for _, n := range nodes {
		if !n.Visible && !opts.ShowHidden {
			continue
		}
		label := nodeLabel(n, opts)
		if n.Leaf() {
			branch.AddNode(label)
			continue
		}
		child := branch.AddBranch(label)
		if !n.Opened {
			if len(n.Children) > 0 {
				child.AddNode(collapsedHint)
			}
			continue
		}
		addNodes(child, sortNodes(n.Children, opts.Config.Sort), opts)
	}
}

// nodeLabel assembles "[x] icon title" from the node state and style table.
func nodeLabel(n tree.Node, opts TreeOptions) string {
	var parts []string
	if opts.Config.Checkbox.Enable {
		if n.Checked {
			parts = append(parts, checkedGlyph)
		} else {
			parts = append(parts, uncheckedGlyph)
		}
	}
	style := opts.Config.Look.StyleFor(n.Style)
	icon := style.ClosedIcon
	if n.Opened {
		icon = style.OpenedIcon
	}
	if icon != "" {
		parts = append(parts, icon)
	}
	title := n.Title
	if opts.MaxTitleLen > 0 && runewidth.StringWidth(title) > opts.MaxTitleLen {
		title = runewidth.Truncate(title, opts.MaxTitleLen, "…")
	}
	parts = append(parts, title)
	return strings.Join(parts, " ")
}

func sortNodes(nodes []tree.Node, order tree.SortOrder) []tree.Node {
	if order == tree.SortNone || len(nodes) < 2 {
		return nodes
	}
	out := make([]tree.Node, len(nodes))
	copy(out, nodes)
	sort.SliceStable(out, func(i, j int) bool {
		less := strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		if order == tree.SortDescending {
			return !less
		}
		return less
	})
	return out
}

// Summarize returns a one-line description of a snapshot for status output,
// e.g. "5 nodes, 3 visible, 2 checked".
func Summarize(f tree.Forest) string {
	total, visible, checked := 0, 0, 0
	tree.Walk(f, func(n tree.Node, _ int) bool {
		total++
		if n.Visible {
			visible++
		}
		if n.Checked {
			checked++
		}
		return true
	})
	return fmt.Sprintf("%d nodes, %d visible, %d checked", total, visible, checked)
}

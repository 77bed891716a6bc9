// Package tree implements the hierarchical selection model behind the
// treeview widget: an immutable forest of labeled, typed nodes plus the pure
// update operations (expand/collapse, search visibility, checkbox selection)
// that produce the next snapshot from a user intent. The package renders
// nothing and knows nothing about terminals; the render layers in
// internal/formatter and internal/ui consume the snapshots it produces.
package tree

// Node is one element of the tree. Nodes are values: every operation in this
// package returns modified copies and never mutates a node in place, so a
// Forest held by a caller is stable until the caller replaces it wholesale.
//
// Children distinguishes two shapes that render differently: a nil slice is a
// leaf that can never be expanded, while a non-nil empty slice is an
// expandable group that currently has zero children. Operations preserve the
// shape they were given.
type Node struct {
	Key        string
	Title      string
	Style      string
	Selectable bool
	Opened     bool
	Disabled   bool
	Visible    bool
	Checked    bool
	Children   []Node
}

// Forest is an ordered sequence of root nodes forming the whole tree-view
// state. Order is significant and preserved by every operation.
type Forest []Node

// NewNode builds a node with the default flags: opened, enabled, visible,
// unchecked. Key uniqueness across the forest is a caller contract; nothing
// here validates it (see DuplicateKeys for a debug-side check).
func NewNode(key, title, style string, selectable bool, children []Node) Node {
	return Node{
		Key:        key,
		Title:      title,
		Style:      style,
		Selectable: selectable,
		Opened:     true,
		Visible:    true,
		Children:   children,
	}
}

// Leaf reports whether the node can never be expanded. An empty-but-present
// child list is not a leaf; it is an expandable group with zero children.
func (n Node) Leaf() bool {
	return n.Children == nil
}

// WithChildren returns a copy of the node with the given child list.
func (n Node) WithChildren(children []Node) Node {
	n.Children = children
	return n
}

// WithVisible returns a copy of the node with the visibility flag set.
func (n Node) WithVisible(visible bool) Node {
	n.Visible = visible
	return n
}

// WithToggledOpened returns a copy of the node with the opened flag flipped.
func (n Node) WithToggledOpened() Node {
	n.Opened = !n.Opened
	return n
}

// Walk visits every node of the forest in pre-order, depth-first, calling fn
// with the node and its depth (roots are depth 0). Returning false from fn
// stops the walk early.
func Walk(f Forest, fn func(n Node, depth int) bool) {
	walk(f, 0, fn)
}

func walk(nodes []Node, depth int, fn func(n Node, depth int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if !walk(n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the total number of nodes in the forest at every depth.
func Count(f Forest) int {
	total := 0
	Walk(f, func(Node, int) bool {
		total++
		return true
	})
	return total
}

// DuplicateKeys returns the keys that appear on more than one node, in the
// order they are first revisited. Key-targeted operations silently affect
// only the first pre-order match, so duplicates are a modeling bug on the
// caller's side; this helper exists for debug assertions and tests and is
// never consulted by the operations themselves.
func DuplicateKeys(f Forest) []string {
	seen := make(map[string]int)
	var dups []string
	Walk(f, func(n Node, _ int) bool {
		seen[n.Key]++
		if seen[n.Key] == 2 {
			dups = append(dups, n.Key)
		}
		return true
	})
	return dups
}

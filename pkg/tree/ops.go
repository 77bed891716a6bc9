package tree

import "strings"

// Toggle flips the opened flag on the first node, in pre-order depth-first
// order, whose key equals key. Every other node is returned unchanged. An
// unknown key is a no-op, not an error.
func Toggle(key string, f Forest) Forest {
	out, _ := toggleNodes(key, f)
	return out
}

func toggleNodes(key string, nodes []Node) ([]Node, bool) {
	if nodes == nil {
		return nil, false
	}
	out := make([]Node, len(nodes))
	copy(out, nodes)
	for i, n := range out {
		if n.Key == key {
			out[i] = n.WithToggledOpened()
			return out, true
		}
		children, found := toggleNodes(key, n.Children)
		if found {
			out[i] = n.WithChildren(children)
			return out, true
		}
	}
	return out, false
}

// ToggleAll flips the opened flag on every node at every depth, leaves
// included. Applying it twice restores the original forest.
func ToggleAll(f Forest) Forest {
	return Forest(toggleAllNodes(f))
}

func toggleAllNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n = n.WithToggledOpened()
		n = n.WithChildren(toggleAllNodes(n.Children))
		out[i] = n
	}
	return out
}

// Search recomputes the visible flag on every node from a case-insensitive
// substring match of pattern against leaf titles. Visibility propagates
// bottom-up: a leaf is visible when its title matches, and a node with
// children is visible exactly when at least one of its children came out
// visible; its own title is not consulted. A present-but-empty child list
// therefore always yields an invisible node for a non-empty pattern.
//
// An empty pattern restores full visibility on every node, empty groups
// included.
func Search(pattern string, f Forest) Forest {
	if pattern == "" {
		return Forest(showAll(f))
	}
	needle := strings.ToLower(pattern)
	return Forest(searchNodes(needle, f))
}

func showAll(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n = n.WithVisible(true)
		n = n.WithChildren(showAll(n.Children))
		out[i] = n
	}
	return out
}

func searchNodes(needle string, nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.Leaf() {
			matched := strings.Contains(strings.ToLower(n.Title), needle)
			out[i] = n.WithVisible(matched)
			continue
		}
		children := searchNodes(needle, n.Children)
		anyVisible := false
		for _, c := range children {
			if c.Visible {
				anyVisible = true
				break
			}
		}
		n = n.WithChildren(children)
		out[i] = n.WithVisible(anyVisible)
	}
	return out
}

// SetChecked applies a checkbox transition to the first node, in pre-order
// depth-first order, whose key equals key. The node's new checked value is
// the negation of current, which callers must pass as the value they last
// rendered for that node.
//
// With multiple false the whole forest is first reset to unchecked, always
// without cascading so that single selection holds regardless of the cascade
// flag, and the single-node set is applied afterwards. With cascade true
// the new value is additionally forced onto every descendant of the matched
// node, overriding whatever they held. An unknown key skips the set phase;
// with multiple false the reset has already run by then.
func SetChecked(multiple, cascade bool, key string, current bool, f Forest) Forest {
	if !multiple {
		f = Forest(clearChecked(f))
	}
	out, _ := setCheckedNodes(cascade, key, !current, f)
	return Forest(out)
}

func clearChecked(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Checked = false
		n.Children = clearChecked(n.Children)
		out[i] = n
	}
	return out
}

func setCheckedNodes(cascade bool, key string, value bool, nodes []Node) ([]Node, bool) {
	if nodes == nil {
		return nil, false
	}
	out := make([]Node, len(nodes))
	copy(out, nodes)
	for i, n := range out {
		if n.Key == key {
			n.Checked = value
			if cascade {
				n.Children = forceChecked(value, n.Children)
			}
			out[i] = n
			return out, true
		}
		children, found := setCheckedNodes(cascade, key, value, n.Children)
		if found {
			out[i] = n.WithChildren(children)
			return out, true
		}
	}
	return out, false
}

func forceChecked(value bool, nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Checked = value
		n.Children = forceChecked(value, n.Children)
		out[i] = n
	}
	return out
}

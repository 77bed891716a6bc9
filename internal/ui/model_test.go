package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/treeview/pkg/tree"
)

func uiForest() tree.Forest {
	return tree.Forest{
		tree.NewNode("A", "Folder A", "folder", false, []tree.Node{
			tree.NewNode("A1", "doc1", "file", true, nil),
			tree.NewNode("A2", "doc2", "file", true, nil),
		}),
		tree.NewNode("B", "readme", "file", true, nil),
	}
}

func uiConfig() tree.Config {
	cfg := tree.DefaultConfig([]tree.Style{
		{Name: "folder", ClosedIcon: "▸", OpenedIcon: "▾"},
		{Name: "file", ClosedIcon: "·", OpenedIcon: "·"},
	})
	cfg.Checkbox = tree.CheckboxConfig{Enable: true, Multiple: true, Cascade: true}
	cfg.Search.Enable = true
	return cfg
}

func viewText(b *Browser) string {
	return fmt.Sprint(b.View().Content)
}

func press(b *Browser, msg tea.Msg) {
	b.Update(msg)
}

func TestBrowserInitialRows(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	b.SetNoColor(true)

	v := viewText(b)
	for _, title := range []string{"Folder A", "doc1", "doc2", "readme"} {
		if !strings.Contains(v, title) {
			t.Fatalf("expected %q in initial view:\n%s", title, v)
		}
	}
	if b.CursorKey() != "A" {
		t.Fatalf("expected cursor on first row, got %q", b.CursorKey())
	}
}

func TestBrowserCursorMovement(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())

	press(b, tea.KeyPressMsg{Code: tea.KeyDown})
	if b.CursorKey() != "A1" {
		t.Fatalf("expected cursor on A1, got %q", b.CursorKey())
	}
	press(b, tea.KeyPressMsg{Text: "j"})
	press(b, tea.KeyPressMsg{Text: "j"})
	if b.CursorKey() != "B" {
		t.Fatalf("expected cursor on B, got %q", b.CursorKey())
	}
	// Clamped at the bottom.
	press(b, tea.KeyPressMsg{Text: "j"})
	if b.CursorKey() != "B" {
		t.Fatalf("expected cursor clamped on B, got %q", b.CursorKey())
	}
	press(b, tea.KeyPressMsg{Text: "k"})
	if b.CursorKey() != "A2" {
		t.Fatalf("expected cursor on A2, got %q", b.CursorKey())
	}
}

func TestBrowserToggleCollapsesSubtree(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	b.SetNoColor(true)

	press(b, tea.KeyPressMsg{Code: tea.KeyEnter})
	v := viewText(b)
	if strings.Contains(v, "doc1") {
		t.Fatalf("expected collapsed folder to hide children:\n%s", v)
	}
	if !strings.Contains(v, "Folder A …") {
		t.Fatalf("expected collapse hint on folder row:\n%s", v)
	}

	press(b, tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(viewText(b), "doc1") {
		t.Fatalf("expected re-expanded folder to show children")
	}
}

func TestBrowserToggleOnLeafIsIgnored(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	before := b.Forest()

	press(b, tea.KeyPressMsg{Code: tea.KeyDown}) // A1, a leaf
	press(b, tea.KeyPressMsg{Code: tea.KeyEnter})
	if tree.Count(b.Forest()) != tree.Count(before) || b.Forest()[0].Children[0].Opened != before[0].Children[0].Opened {
		t.Fatalf("expected toggle on a leaf to change nothing")
	}
}

func TestBrowserToggleAll(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	b.SetNoColor(true)

	press(b, tea.KeyPressMsg{Text: "E"})
	v := viewText(b)
	if strings.Contains(v, "doc1") {
		t.Fatalf("expected toggle-all to collapse the folder:\n%s", v)
	}
	press(b, tea.KeyPressMsg{Text: "E"})
	if !strings.Contains(viewText(b), "doc1") {
		t.Fatalf("expected second toggle-all to restore the folder")
	}
}

func TestBrowserCheckboxCascade(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())

	press(b, tea.KeyPressMsg{Text: "x"}) // cursor on A, cascade enabled
	f := b.Forest()
	for _, key := range []string{"A", "A1", "A2"} {
		var n *tree.Node
		tree.Walk(f, func(c tree.Node, _ int) bool {
			if c.Key == key {
				cc := c
				n = &cc
				return false
			}
			return true
		})
		if n == nil || !n.Checked {
			t.Fatalf("expected %s checked after cascade", key)
		}
	}

	// Second press flips it back off, cascading.
	press(b, tea.KeyPressMsg{Text: "x"})
	tree.Walk(b.Forest(), func(c tree.Node, _ int) bool {
		if c.Checked {
			t.Fatalf("expected %s unchecked after second press", c.Key)
		}
		return true
	})
}

func TestBrowserCheckboxDisabledConfig(t *testing.T) {
	cfg := uiConfig()
	cfg.Checkbox.Enable = false
	b := NewBrowser(uiForest(), cfg)

	press(b, tea.KeyPressMsg{Text: "x"})
	tree.Walk(b.Forest(), func(c tree.Node, _ int) bool {
		if c.Checked {
			t.Fatalf("expected no checking when checkbox feature is off")
		}
		return true
	})
}

func TestBrowserCheckboxSkipsDisabledNode(t *testing.T) {
	f := uiForest()
	f[1].Disabled = true
	b := NewBrowser(f, uiConfig())

	// Move to B and try to check it.
	for i := 0; i < 3; i++ {
		press(b, tea.KeyPressMsg{Text: "j"})
	}
	if b.CursorKey() != "B" {
		t.Fatalf("setup: expected cursor on B, got %q", b.CursorKey())
	}
	press(b, tea.KeyPressMsg{Text: "x"})
	if b.Forest()[1].Checked {
		t.Fatalf("expected disabled node to be skipped by the render layer")
	}
}

func TestBrowserSearchFiltersRows(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	b.SetNoColor(true)

	press(b, tea.KeyPressMsg{Text: "/"})
	for _, ch := range "doc1" {
		press(b, tea.KeyPressMsg{Text: string(ch)})
	}

	v := viewText(b)
	if strings.Contains(v, "doc2") || strings.Contains(v, "readme") {
		t.Fatalf("expected non-matching rows hidden:\n%s", v)
	}
	if !strings.Contains(v, "doc1") || !strings.Contains(v, "Folder A") {
		t.Fatalf("expected matching branch visible:\n%s", v)
	}

	// Esc clears the filter entirely.
	press(b, tea.KeyPressMsg{Code: tea.KeyEsc})
	if !strings.Contains(viewText(b), "readme") {
		t.Fatalf("expected all rows back after esc")
	}
}

func TestBrowserSearchEnterKeepsFilter(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	b.SetNoColor(true)

	press(b, tea.KeyPressMsg{Text: "/"})
	press(b, tea.KeyPressMsg{Text: "r"})
	press(b, tea.KeyPressMsg{Code: tea.KeyEnter})

	v := viewText(b)
	if strings.Contains(v, "doc1") {
		t.Fatalf("expected filter to survive enter:\n%s", v)
	}
	if !strings.Contains(v, "readme") {
		t.Fatalf("expected matching row to stay visible:\n%s", v)
	}
}

func TestBrowserSearchDisabledConfig(t *testing.T) {
	cfg := uiConfig()
	cfg.Search.Enable = false
	b := NewBrowser(uiForest(), cfg)
	b.SetNoColor(true)

	press(b, tea.KeyPressMsg{Text: "/"})
	press(b, tea.KeyPressMsg{Text: "z"})
	if !strings.Contains(viewText(b), "readme") {
		t.Fatalf("expected search keys to be inert when the feature is off")
	}
}

func TestBrowserSelectSetsStatus(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())

	press(b, tea.KeyPressMsg{Text: "j"}) // A1, selectable
	press(b, tea.KeyPressMsg{Text: "s"})
	if b.Status() != "selected doc1" {
		t.Fatalf("expected selection notification, got %q", b.Status())
	}
}

func TestBrowserSelectIgnoresNonSelectable(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())

	press(b, tea.KeyPressMsg{Text: "s"}) // cursor on A, not selectable
	if b.Status() != "" {
		t.Fatalf("expected no notification for non-selectable node, got %q", b.Status())
	}
}

func TestBrowserExpressionFilterHighlights(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	b.SetNoColor(true)

	press(b, tea.KeyPressMsg{Text: "e"})
	for _, ch := range "node.leaf" {
		press(b, tea.KeyPressMsg{Text: string(ch)})
	}
	press(b, tea.KeyPressMsg{Code: tea.KeyEnter})

	if b.Status() != "3 nodes match" {
		t.Fatalf("expected match count in status, got %q", b.Status())
	}
	if !b.matched["A1"] || !b.matched["A2"] || !b.matched["B"] {
		t.Fatalf("expected every leaf in the matched set, got %v", b.matched)
	}
	if b.matched["A"] {
		t.Fatalf("expected the folder outside the matched set")
	}

	// Re-entering the prompt and pressing esc clears the filter.
	press(b, tea.KeyPressMsg{Text: "e"})
	press(b, tea.KeyPressMsg{Code: tea.KeyEsc})
	if b.matched != nil || b.Status() != "" {
		t.Fatalf("expected cleared filter, got %v %q", b.matched, b.Status())
	}
}

func TestBrowserExpressionFilterBadExpression(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())

	press(b, tea.KeyPressMsg{Text: "e"})
	press(b, tea.KeyPressMsg{Text: "("})
	press(b, tea.KeyPressMsg{Code: tea.KeyEnter})

	if !strings.Contains(b.Status(), "expression error") {
		t.Fatalf("expected compile error in status, got %q", b.Status())
	}
	if b.matched != nil {
		t.Fatalf("expected no matched set on error")
	}
}

func TestBrowserExpressionFilterEmptyInput(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())

	press(b, tea.KeyPressMsg{Text: "e"})
	press(b, tea.KeyPressMsg{Code: tea.KeyEnter})
	if b.Status() != "" || b.matched != nil {
		t.Fatalf("expected empty prompt to clear the filter, got %q %v", b.Status(), b.matched)
	}
}

func TestBrowserNarrowWindowClampsInputs(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	b.SetNoColor(true)

	b.Update(tea.WindowSizeMsg{Width: 3, Height: 2})
	press(b, tea.KeyPressMsg{Text: "/"})
	press(b, tea.KeyPressMsg{Text: "r"})

	if !strings.Contains(viewText(b), "readme") {
		t.Fatalf("expected search to keep working on a narrow terminal")
	}
}

func TestBrowserDebugStatusLine(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	b.SetNoColor(true)
	b.SetDebug(true)

	if !strings.Contains(viewText(b), "cursor=A rows=4/4") {
		t.Fatalf("expected debug line in view:\n%s", viewText(b))
	}
}

func TestBrowserQuit(t *testing.T) {
	b := NewBrowser(uiForest(), uiConfig())
	_, cmd := b.Update(tea.KeyPressMsg{Text: "q"})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if viewText(b) != "" {
		t.Fatalf("expected empty view while quitting")
	}
}

// Package ui implements the interactive browser over a forest snapshot. The
// model follows the unidirectional cycle of the core: key presses become
// tree intents, tree.Update produces the next snapshot, and the view is
// re-rendered from it. The model itself holds no tree state beyond the
// current snapshot.
package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/treeview/internal/expr"
	"github.com/oakwood-commons/treeview/pkg/tree"
)

// minInputWidth keeps the prompt inputs usable on very narrow terminals.
const minInputWidth = 10

// row is one visible line of the flattened forest.
type row struct {
	key        string
	title      string
	style      string
	depth      int
	leaf       bool
	opened     bool
	checked    bool
	disabled   bool
	selectable bool
	hasKids    bool
}

// Browser is the interactive tree browser model.
type Browser struct {
	forest tree.Forest
	cfg    tree.Config
	theme  Theme

	rows   []row
	cursor int

	searching bool
	search    textinput.Model

	filtering bool
	filter    textinput.Model
	matched   map[string]bool

	status   string
	width    int
	height   int
	noColor  bool
	debug    bool
	quitting bool
}

// NewBrowser creates a browser over the given snapshot and config.
func NewBrowser(f tree.Forest, cfg tree.Config) *Browser {
	si := textinput.New()
	si.Placeholder = "type to filter titles"
	si.CharLimit = 200
	si.SetWidth(40)
	si.Prompt = "/ "

	fi := textinput.New()
	fi.Placeholder = "predicate over node, e.g. node.leaf && node.depth > 0"
	fi.CharLimit = 200
	fi.SetWidth(40)
	fi.Prompt = "expr> "

	b := &Browser{
		forest: f,
		cfg:    cfg,
		theme:  ThemeByName(cfg.Look.Theme),
		search: si,
		filter: fi,
		width:  80,
		height: 24,
	}
	b.reflow()
	return b
}

// SetNoColor disables all styling in the view.
func (b *Browser) SetNoColor(noColor bool) {
	b.noColor = noColor
}

// SetDebug adds a debug line with cursor and row counts to the view.
func (b *Browser) SetDebug(debug bool) {
	b.debug = debug
}

// Forest returns the current snapshot.
func (b *Browser) Forest() tree.Forest {
	return b.forest
}

// CursorKey returns the key under the cursor, or "" when nothing is visible.
func (b *Browser) CursorKey() string {
	if b.cursor < 0 || b.cursor >= len(b.rows) {
		return ""
	}
	return b.rows[b.cursor].key
}

// Status returns the current status line text.
func (b *Browser) Status() string {
	return b.status
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		w := msg.Width - 4
		if w < minInputWidth {
			w = minInputWidth
		}
		b.search.SetWidth(w)
		b.filter.SetWidth(w)
		return b, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			b.quitting = true
			return b, tea.Quit
		}
		if b.searching {
			return b.updateSearching(msg)
		}
		if b.filtering {
			return b.updateFiltering(msg)
		}
		return b.updateNormal(msg)
	}
	return b, nil
}

func (b *Browser) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Keep the filter, leave input mode.
		b.searching = false
		b.search.Blur()
		return b, nil
	case "esc":
		b.searching = false
		b.search.Blur()
		b.search.SetValue("")
		b.apply(tree.SearchMsg{Text: ""})
		return b, nil
	}

	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.apply(tree.SearchMsg{Text: b.search.Value()})
	return b, cmd
}

// updateFiltering handles the expression prompt. Unlike title search the
// predicate is evaluated once on enter, not per keystroke, since a half-typed
// expression rarely compiles.
func (b *Browser) updateFiltering(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		b.filtering = false
		b.filter.Blur()
		b.applyFilter(b.filter.Value())
		return b, nil
	case "esc":
		b.filtering = false
		b.filter.Blur()
		b.filter.SetValue("")
		b.matched = nil
		b.status = ""
		return b, nil
	}

	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	return b, cmd
}

// applyFilter compiles the predicate and highlights every matching node.
func (b *Browser) applyFilter(src string) {
	if strings.TrimSpace(src) == "" {
		b.matched = nil
		b.status = ""
		return
	}
	p, err := expr.Compile(src)
	if err != nil {
		b.matched = nil
		b.status = "expression error: " + err.Error()
		return
	}
	keys, err := expr.MatchingKeys(p, b.forest)
	if err != nil {
		b.matched = nil
		b.status = "expression error: " + err.Error()
		return
	}
	b.matched = make(map[string]bool, len(keys))
	for _, k := range keys {
		b.matched[k] = true
	}
	b.status = fmt.Sprintf("%d nodes match", len(keys))
}

func (b *Browser) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		b.quitting = true
		return b, tea.Quit

	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}

	case "down", "j":
		if b.cursor < len(b.rows)-1 {
			b.cursor++
		}

	case "enter", "space", "right", "left":
		if r, ok := b.cursorRow(); ok && !r.leaf {
			b.apply(tree.ToggleMsg{Key: r.key})
		}

	case "E":
		b.forest = tree.ToggleAll(b.forest)
		b.reflow()

	case "x":
		// The core does not enforce disabled; deciding not to dispatch is
		// this layer's job.
		if r, ok := b.cursorRow(); ok && b.cfg.Checkbox.Enable && !r.disabled {
			b.apply(tree.SetCheckedMsg{
				Multiple: b.cfg.Checkbox.Multiple,
				Cascade:  b.cfg.Checkbox.Cascade,
				Key:      r.key,
				Previous: r.checked,
			})
		}

	case "s":
		if r, ok := b.cursorRow(); ok && r.selectable && !r.disabled {
			b.apply(tree.SelectMsg{Key: r.key})
			b.status = "selected " + r.title
		}

	case "/":
		if b.cfg.Search.Enable {
			b.searching = true
			return b, b.search.Focus()
		}

	case "e":
		b.filtering = true
		return b, b.filter.Focus()
	}
	return b, nil
}

// apply dispatches an intent and replaces the snapshot wholesale.
func (b *Browser) apply(msg tree.Msg) {
	b.forest = tree.Update(msg, b.forest)
	b.reflow()
}

// reflow rebuilds the visible rows from the snapshot and clamps the cursor.
func (b *Browser) reflow() {
	b.rows = b.rows[:0]
	b.flatten(b.forest, 0)
	if b.cursor >= len(b.rows) {
		b.cursor = len(b.rows) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b *Browser) flatten(nodes []tree.Node, depth int) {
	for _, n := range nodes {
		if !n.Visible {
			continue
		}
		b.rows = append(b.rows, row{
			key:        n.Key,
			title:      n.Title,
			style:      n.Style,
			depth:      depth,
			leaf:       n.Leaf(),
			opened:     n.Opened,
			checked:    n.Checked,
			disabled:   n.Disabled,
			selectable: n.Selectable,
			hasKids:    len(n.Children) > 0,
		})
		if n.Opened {
			b.flatten(n.Children, depth+1)
		}
	}
}

func (b *Browser) cursorRow() (row, bool) {
	if b.cursor < 0 || b.cursor >= len(b.rows) {
		return row{}, false
	}
	return b.rows[b.cursor], true
}

// View implements tea.Model.
func (b *Browser) View() tea.View {
	if b.quitting {
		return tea.NewView("")
	}

	var sb strings.Builder
	sb.WriteString(b.styled(b.theme.TitleColor, "treeview") + "\n")

	for i, r := range b.rows {
		sb.WriteString(b.renderRow(r, i == b.cursor))
		sb.WriteString("\n")
	}
	if len(b.rows) == 0 {
		sb.WriteString(b.styled(b.theme.DimColor, "(no matching nodes)") + "\n")
	}

	if b.searching || b.search.Value() != "" {
		sb.WriteString(b.search.View() + "\n")
	}
	if b.filtering || b.filter.Value() != "" {
		sb.WriteString(b.filter.View() + "\n")
	}
	if b.status != "" {
		sb.WriteString(b.styled(b.theme.StatusOK, b.status) + "\n")
	}
	if b.debug {
		dbg := fmt.Sprintf("cursor=%s rows=%d/%d", b.CursorKey(), len(b.rows), tree.Count(b.forest))
		sb.WriteString(b.styled(b.theme.DimColor, dbg) + "\n")
	}
	return tea.NewView(sb.String())
}

func (b *Browser) renderRow(r row, selected bool) string {
	var parts []string

	if b.cfg.Checkbox.Enable {
		glyph := "[ ]"
		if r.checked {
			glyph = "[x]"
		}
		parts = append(parts, glyph)
	}

	style := b.cfg.Look.StyleFor(r.style)
	icon := style.ClosedIcon
	if r.opened {
		icon = style.OpenedIcon
	}
	if icon != "" {
		parts = append(parts, icon)
	}

	title := r.title
	if !r.leaf && !r.opened && r.hasKids {
		title += " …"
	}
	parts = append(parts, title)

	line := strings.Repeat("  ", r.depth) + strings.Join(parts, " ")

	if b.noColor {
		if selected {
			return "> " + line
		}
		return "  " + line
	}

	switch {
	case selected:
		st := lipgloss.NewStyle().Foreground(b.theme.CursorFG).Background(b.theme.CursorBG)
		return st.Render("> " + line)
	case b.matched[r.key]:
		return lipgloss.NewStyle().Foreground(b.theme.SearchFG).Render("  " + line)
	case r.disabled:
		return lipgloss.NewStyle().Foreground(b.theme.DimColor).Render("  " + line)
	case r.checked:
		return lipgloss.NewStyle().Foreground(b.theme.CheckColor).Render("  " + line)
	default:
		return "  " + line
	}
}

func (b *Browser) styled(c color.Color, s string) string {
	if b.noColor {
		return s
	}
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

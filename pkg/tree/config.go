package tree

// SortOrder declares how a render layer should order sibling nodes. The core
// operations never reorder a forest; the order is applied at render time.
type SortOrder string

const (
	SortNone       SortOrder = "none"
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// CheckboxConfig controls the checkbox selection feature. Multiple and
// Cascade only matter when Enable is true; the render layer decides whether
// to dispatch SetCheckedMsg at all.
type CheckboxConfig struct {
	Enable   bool
	Multiple bool
	Cascade  bool
}

// SearchConfig controls the search feature.
type SearchConfig struct {
	Enable bool
}

// Style maps a node's opaque style tag to the icons and class a render layer
// uses for it.
type Style struct {
	Name       string
	ClosedIcon string
	OpenedIcon string
	Class      string
}

// Look groups the visual configuration: a theme name resolved by the render
// layer and the ordered style table.
type Look struct {
	Theme  string
	Styles []Style
}

// StyleFor resolves a style tag to its Style by first match on Name. An
// unknown tag degrades to the zero Style (no icons, no class); it is never an
// error.
func (l Look) StyleFor(name string) Style {
	for _, s := range l.Styles {
		if s.Name == name {
			return s
		}
	}
	return Style{}
}

// Config is the immutable feature description consumed by the dispatch
// boundary and the render layers. Operations receive only the parameters
// they need; none of them branch on features they do not use.
type Config struct {
	Checkbox CheckboxConfig
	Search   SearchConfig
	Sort     SortOrder
	Look     Look
}

// DefaultConfig returns a Config with checkbox and search disabled, no sort,
// and the given style table under the default theme.
func DefaultConfig(styles []Style) Config {
	return Config{
		Sort: SortNone,
		Look: Look{
			Theme:  "default",
			Styles: styles,
		},
	}
}

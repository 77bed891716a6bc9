// Package loader parses forest definition documents (YAML or JSON) into the
// tree model. A definition carries the node hierarchy plus optional widget
// configuration overrides; the loader auto-detects the input format.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/treeview/pkg/tree"
)

// NodeDef is the on-disk shape of one node. Children distinguishes the two
// shapes of the model: absent means a leaf, an explicit empty list means an
// expandable group with zero children; both YAML and JSON preserve that
// distinction through the nil-ness of the decoded slice.
type NodeDef struct {
	Key        string    `yaml:"key" json:"key"`
	Title      string    `yaml:"title" json:"title"`
	Style      string    `yaml:"style" json:"style"`
	Selectable bool      `yaml:"selectable" json:"selectable"`
	Opened     *bool     `yaml:"opened" json:"opened,omitempty"`
	Disabled   bool      `yaml:"disabled" json:"disabled"`
	Checked    bool      `yaml:"checked" json:"checked"`
	Children   []NodeDef `yaml:"children" json:"children,omitempty"`
}

// StyleDef is the on-disk shape of one style table entry.
type StyleDef struct {
	Name       string `yaml:"name" json:"name"`
	ClosedIcon string `yaml:"closedIcon" json:"closedIcon"`
	OpenedIcon string `yaml:"openedIcon" json:"openedIcon"`
	Class      string `yaml:"class" json:"class"`
}

// ConfigDef carries the optional widget configuration of a definition file.
// Pointer fields distinguish an explicit false from an absent one, so a
// definition only overrides the settings it actually states.
type ConfigDef struct {
	Checkbox struct {
		Enable   *bool `yaml:"enable" json:"enable,omitempty"`
		Multiple *bool `yaml:"multiple" json:"multiple,omitempty"`
		Cascade  *bool `yaml:"cascade" json:"cascade,omitempty"`
	} `yaml:"checkbox" json:"checkbox"`
	Search struct {
		Enable *bool `yaml:"enable" json:"enable,omitempty"`
	} `yaml:"search" json:"search"`
	Sort   string     `yaml:"sort" json:"sort"`
	Theme  string     `yaml:"theme" json:"theme"`
	Styles []StyleDef `yaml:"styles" json:"styles"`
}

// Definition is a full forest document: nodes plus optional configuration.
// A document may also be a bare top-level list, which is treated as nodes
// with no configuration.
type Definition struct {
	Config ConfigDef `yaml:"config" json:"config"`
	Nodes  []NodeDef `yaml:"nodes" json:"nodes"`
}

// Load parses a definition from a string, auto-detecting JSON vs YAML.
func Load(input string) (*Definition, error) {
	return LoadWithLogger(input, logr.Discard())
}

// LoadWithLogger is like Load but records format detection on the logger.
func LoadWithLogger(input string, lgr logr.Logger) (*Definition, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("empty input")
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		lgr.V(1).Info("detected JSON definition")
		return loadJSON(trimmed)
	}
	lgr.V(1).Info("detected YAML definition")
	return loadYAML(trimmed)
}

// LoadFile reads a file and parses it into a definition.
func LoadFile(path string) (*Definition, error) {
	return LoadFileWithLogger(path, logr.Discard())
}

// LoadFileWithLogger is like LoadFile but records activity on the logger.
func LoadFileWithLogger(path string, lgr logr.Logger) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	lgr.V(1).Info("loaded definition file", "path", path, "bytes", len(data))
	return LoadWithLogger(string(data), lgr)
}

func loadJSON(input string) (*Definition, error) {
	if strings.HasPrefix(input, "[") {
		var nodes []NodeDef
		if err := json.Unmarshal([]byte(input), &nodes); err != nil {
			return nil, fmt.Errorf("decode JSON node list: %w", err)
		}
		return &Definition{Nodes: nodes}, nil
	}
	var def Definition
	if err := json.Unmarshal([]byte(input), &def); err != nil {
		return nil, fmt.Errorf("decode JSON definition: %w", err)
	}
	if def.Nodes == nil {
		return nil, fmt.Errorf("definition has no nodes")
	}
	return &def, nil
}

func loadYAML(input string) (*Definition, error) {
	// A bare top-level sequence is a node list without configuration.
	if strings.HasPrefix(input, "-") {
		var nodes []NodeDef
		if err := yaml.Unmarshal([]byte(input), &nodes); err != nil {
			return nil, fmt.Errorf("decode YAML node list: %w", err)
		}
		return &Definition{Nodes: nodes}, nil
	}
	var def Definition
	if err := yaml.Unmarshal([]byte(input), &def); err != nil {
		return nil, fmt.Errorf("decode YAML definition: %w", err)
	}
	if def.Nodes == nil {
		return nil, fmt.Errorf("definition has no nodes")
	}
	return &def, nil
}

// Forest converts the definition's nodes into a tree.Forest, applying the
// model defaults for flags the document leaves out.
func (d *Definition) Forest() tree.Forest {
	return tree.Forest(buildNodes(d.Nodes))
}

func buildNodes(defs []NodeDef) []tree.Node {
	if defs == nil {
		return nil
	}
	out := make([]tree.Node, len(defs))
	for i, def := range defs {
		n := tree.NewNode(def.Key, def.Title, def.Style, def.Selectable, buildNodes(def.Children))
		if def.Opened != nil {
			n.Opened = *def.Opened
		}
		n.Disabled = def.Disabled
		n.Checked = def.Checked
		out[i] = n
	}
	return out
}

// TreeConfig translates the definition's configuration block into the core
// Config, starting from the model defaults.
func (d *Definition) TreeConfig() tree.Config {
	return d.TreeConfigFrom(tree.DefaultConfig(nil))
}

// TreeConfigFrom folds the definition's configuration block over base. Only
// settings the document states override the base; the document's styles are
// prepended so that first-match lookup prefers them over the base table.
func (d *Definition) TreeConfigFrom(base tree.Config) tree.Config {
	cfg := base
	if len(d.Config.Styles) > 0 {
		styles := make([]tree.Style, 0, len(d.Config.Styles)+len(base.Look.Styles))
		for _, s := range d.Config.Styles {
			styles = append(styles, tree.Style{
				Name:       s.Name,
				ClosedIcon: s.ClosedIcon,
				OpenedIcon: s.OpenedIcon,
				Class:      s.Class,
			})
		}
		cfg.Look.Styles = append(styles, base.Look.Styles...)
	}
	if d.Config.Checkbox.Enable != nil {
		cfg.Checkbox.Enable = *d.Config.Checkbox.Enable
	}
	if d.Config.Checkbox.Multiple != nil {
		cfg.Checkbox.Multiple = *d.Config.Checkbox.Multiple
	}
	if d.Config.Checkbox.Cascade != nil {
		cfg.Checkbox.Cascade = *d.Config.Checkbox.Cascade
	}
	if d.Config.Search.Enable != nil {
		cfg.Search.Enable = *d.Config.Search.Enable
	}
	if d.Config.Sort != "" {
		cfg.Sort = parseSortOrder(d.Config.Sort)
	}
	if d.Config.Theme != "" {
		cfg.Look.Theme = d.Config.Theme
	}
	return cfg
}

func parseSortOrder(s string) tree.SortOrder {
	switch tree.SortOrder(strings.ToLower(s)) {
	case tree.SortAscending:
		return tree.SortAscending
	case tree.SortDescending:
		return tree.SortDescending
	default:
		return tree.SortNone
	}
}

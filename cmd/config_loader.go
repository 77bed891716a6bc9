package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/treeview/internal/ui"
	"github.com/oakwood-commons/treeview/pkg/settings"
	"github.com/oakwood-commons/treeview/pkg/tree"
)

// configLoader centralizes app config loading so callers share one merge
// path. The embedded default config is the authoritative base; an optional
// user file overrides it field by field.
type configLoader struct {
	defaultConfig func() (ui.AppConfig, error)
}

var cfgLoader = configLoader{defaultConfig: ui.EmbeddedAppConfig}

func loadMergedConfig(cfgPath string) (ui.AppConfig, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

func (l configLoader) loadMergedConfig(cfgPath string) (ui.AppConfig, error) {
	cfg, err := l.defaultConfig()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}

	if cfgPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	var user ui.AppConfig
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", cfgPath, err)
	}
	return cfg.Merge(user), nil
}

// resolveConfigPath returns the explicit path if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/treeview/config.yaml) or ~/.config/treeview/config.yaml
// if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// baseTreeConfig translates a merged app config into the core Config that
// serves as the base for the definition's own config block.
func baseTreeConfig(app ui.AppConfig) tree.Config {
	styles := make([]tree.Style, len(app.Styles))
	for i, s := range app.Styles {
		styles[i] = tree.Style{
			Name:       s.Name,
			ClosedIcon: s.ClosedIcon,
			OpenedIcon: s.OpenedIcon,
			Class:      s.Class,
		}
	}
	cfg := tree.DefaultConfig(styles)
	if app.Theme.Default != "" {
		cfg.Look.Theme = app.Theme.Default
	}
	if app.Features.Checkbox != nil {
		cfg.Checkbox.Enable = *app.Features.Checkbox
	}
	if app.Features.Multiple != nil {
		cfg.Checkbox.Multiple = *app.Features.Multiple
	}
	if app.Features.Cascade != nil {
		cfg.Checkbox.Cascade = *app.Features.Cascade
	}
	if app.Features.Search != nil {
		cfg.Search.Enable = *app.Features.Search
	}
	if app.Features.Sort != "" {
		switch tree.SortOrder(strings.ToLower(app.Features.Sort)) {
		case tree.SortAscending:
			cfg.Sort = tree.SortAscending
		case tree.SortDescending:
			cfg.Sort = tree.SortDescending
		default:
			cfg.Sort = tree.SortNone
		}
	}
	return cfg
}

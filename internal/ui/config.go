package ui

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     AppConfig
	embeddedConfigErr  error
)

// AppConfig is the application-level configuration shared by the embedded
// defaults and user config files. Pointer fields distinguish an absent value
// from an explicit false so later layers override earlier ones field by
// field.
type AppConfig struct {
	Theme struct {
		Default string `yaml:"default"`
	} `yaml:"theme"`
	Features FeatureConfig `yaml:"features"`
	Styles   []StyleConfig `yaml:"styles"`
}

// FeatureConfig holds the widget feature toggles of an app config.
type FeatureConfig struct {
	Checkbox *bool  `yaml:"checkbox"`
	Multiple *bool  `yaml:"multiple"`
	Cascade  *bool  `yaml:"cascade"`
	Search   *bool  `yaml:"search"`
	Sort     string `yaml:"sort"`
}

// StyleConfig is one style table entry of an app config.
type StyleConfig struct {
	Name       string `yaml:"name"`
	ClosedIcon string `yaml:"closedIcon"`
	OpenedIcon string `yaml:"openedIcon"`
	Class      string `yaml:"class"`
}

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// EmbeddedAppConfig parses and returns the embedded default configuration,
// the authoritative source of application defaults.
func EmbeddedAppConfig() (AppConfig, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
		}
	})
	return embeddedConfig, embeddedConfigErr
}

// Merge folds overlay onto c: set pointer fields, non-empty strings, and a
// non-empty style table override, with overlay styles prepended so that
// first-match lookup prefers them.
func (c AppConfig) Merge(overlay AppConfig) AppConfig {
	out := c
	if overlay.Theme.Default != "" {
		out.Theme.Default = overlay.Theme.Default
	}
	if overlay.Features.Checkbox != nil {
		out.Features.Checkbox = overlay.Features.Checkbox
	}
	if overlay.Features.Multiple != nil {
		out.Features.Multiple = overlay.Features.Multiple
	}
	if overlay.Features.Cascade != nil {
		out.Features.Cascade = overlay.Features.Cascade
	}
	if overlay.Features.Search != nil {
		out.Features.Search = overlay.Features.Search
	}
	if overlay.Features.Sort != "" {
		out.Features.Sort = overlay.Features.Sort
	}
	if len(overlay.Styles) > 0 {
		out.Styles = append(append([]StyleConfig(nil), overlay.Styles...), c.Styles...)
	}
	return out
}

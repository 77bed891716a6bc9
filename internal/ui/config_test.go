package ui

import (
	"testing"
)

func TestEmbeddedAppConfig(t *testing.T) {
	app, err := EmbeddedAppConfig()
	if err != nil {
		t.Fatalf("embedded config must parse: %v", err)
	}
	if app.Theme.Default != "default" {
		t.Fatalf("expected default theme, got %q", app.Theme.Default)
	}
	for name, field := range map[string]*bool{
		"checkbox": app.Features.Checkbox,
		"multiple": app.Features.Multiple,
		"cascade":  app.Features.Cascade,
		"search":   app.Features.Search,
	} {
		if field == nil {
			t.Fatalf("expected %s stated in the embedded defaults", name)
		}
		if *field {
			t.Fatalf("expected %s off by default", name)
		}
	}
	if app.Features.Sort != "none" {
		t.Fatalf("expected sort none, got %q", app.Features.Sort)
	}
}

func TestAppConfigMerge(t *testing.T) {
	base, err := EmbeddedAppConfig()
	if err != nil {
		t.Fatalf("embedded config must parse: %v", err)
	}

	on := true
	var overlay AppConfig
	overlay.Theme.Default = "light"
	overlay.Features.Checkbox = &on
	overlay.Styles = []StyleConfig{{Name: "folder", ClosedIcon: ">"}}

	out := base.Merge(overlay)
	if out.Theme.Default != "light" {
		t.Fatalf("expected overlay theme, got %q", out.Theme.Default)
	}
	if out.Features.Checkbox == nil || !*out.Features.Checkbox {
		t.Fatalf("expected overlay checkbox to win")
	}
	if out.Features.Search == nil || *out.Features.Search {
		t.Fatalf("expected base search to survive")
	}
	if len(out.Styles) != 1 || out.Styles[0].ClosedIcon != ">" {
		t.Fatalf("expected overlay styles, got %v", out.Styles)
	}

	// The base is untouched.
	if base.Theme.Default != "default" {
		t.Fatalf("merge must not mutate the base")
	}
}

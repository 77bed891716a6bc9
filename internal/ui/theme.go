package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used by the browser. Host apps can supply their
// own theme; the Look.Theme name from the widget config selects one of the
// built-in palettes.
type Theme struct {
	CursorFG   color.Color // Foreground of the cursor row
	CursorBG   color.Color // Background of the cursor row
	TitleColor color.Color // Header text
	DimColor   color.Color // Collapsed hints, separators, disabled nodes
	CheckColor color.Color // Checked checkbox glyphs
	ClassColor color.Color // Style class annotations
	StatusOK   color.Color // Normal status line text
	SearchFG   color.Color // Search input text
}

// DefaultTheme is the dark palette used when the config names no theme or an
// unknown one.
func DefaultTheme() Theme {
	return Theme{
		CursorFG:   lipgloss.Color("250"),
		CursorBG:   lipgloss.Color("24"),
		TitleColor: lipgloss.Color("81"),
		DimColor:   lipgloss.Color("241"),
		CheckColor: lipgloss.Color("114"),
		ClassColor: lipgloss.Color("245"),
		StatusOK:   lipgloss.Color("81"),
		SearchFG:   lipgloss.Color("246"),
	}
}

func lightTheme() Theme {
	return Theme{
		CursorFG:   lipgloss.Color("235"),
		CursorBG:   lipgloss.Color("152"),
		TitleColor: lipgloss.Color("25"),
		DimColor:   lipgloss.Color("102"),
		CheckColor: lipgloss.Color("28"),
		ClassColor: lipgloss.Color("60"),
		StatusOK:   lipgloss.Color("25"),
		SearchFG:   lipgloss.Color("235"),
	}
}

// ThemeByName resolves a theme name from the widget config. Unknown names
// fall back to the default palette, mirroring the style-lookup contract.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return lightTheme()
	default:
		return DefaultTheme()
	}
}

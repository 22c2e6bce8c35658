// Package ui provides the GridCalc desktop application UI.
//
// This file defines a custom compact Fyne theme for a dense, form-heavy
// calculator layout.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// GridCalcTheme wraps the default Fyne theme with compact sizing overrides
// so the many-field option and count forms stay readable on one screen.
type GridCalcTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewGridCalcTheme creates a new GridCalcTheme with the system default variant.
func NewGridCalcTheme() *GridCalcTheme {
	return &GridCalcTheme{
		base:    theme.DefaultTheme(),
		variant: 0, // system default
	}
}

// NewGridCalcThemeWithVariant creates a GridCalcTheme with a specific light/dark variant.
func NewGridCalcThemeWithVariant(variant fyne.ThemeVariant) *GridCalcTheme {
	return &GridCalcTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// Color delegates to the base theme with the stored variant.
func (t *GridCalcTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *GridCalcTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *GridCalcTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *GridCalcTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}

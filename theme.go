package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/dosette/dosette/pkg/store"
)

// forcedVariantTheme pins the default theme to one variant so the
// dark/light preference wins over the OS setting
type forcedVariantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t *forcedVariantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

func applyTheme(app fyne.App, pref string) {
	variant := theme.VariantLight
	if pref == store.ThemeDark {
		variant = theme.VariantDark
	}
	app.Settings().SetTheme(&forcedVariantTheme{Theme: theme.DefaultTheme(), variant: variant})
}

package store

import "fyne.io/fyne/v2"

const (
	themeKey     = "theme"
	autoStartKey = "auto_start"
)

// Theme preference values
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// SettingsStore holds UI preferences outside the medicine data
type SettingsStore struct {
	prefs fyne.Preferences
}

func NewSettingsStore(app fyne.App) *SettingsStore {
	return &SettingsStore{prefs: app.Preferences()}
}

func (s *SettingsStore) Theme() string {
	return s.prefs.StringWithFallback(themeKey, ThemeLight)
}

func (s *SettingsStore) SetTheme(theme string) {
	s.prefs.SetString(themeKey, theme)
}

func (s *SettingsStore) AutoStart() bool {
	return s.prefs.BoolWithFallback(autoStartKey, false)
}

func (s *SettingsStore) SetAutoStart(enabled bool) {
	s.prefs.SetBool(autoStartKey, enabled)
}

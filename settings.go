package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/dosette/dosette/pkg/store"
)

func showSettingsDialog(d *Dosette, parent fyne.Window) {
	autostartCheck := widget.NewCheck("Launch Dosette on login", func(enabled bool) {
		if err := setupAutostart(enabled); err != nil {
			dialog.ShowError(err, parent)
			return
		}
		d.settings.SetAutoStart(enabled)
	})
	autostartCheck.SetChecked(d.settings.AutoStart())

	themeSelect := widget.NewSelect([]string{"Light", "Dark"}, func(selected string) {
		pref := store.ThemeLight
		if selected == "Dark" {
			pref = store.ThemeDark
		}
		d.settings.SetTheme(pref)
		applyTheme(d.app, pref)
	})
	if d.settings.Theme() == store.ThemeDark {
		themeSelect.SetSelected("Dark")
	} else {
		themeSelect.SetSelected("Light")
	}

	content := container.NewVBox(
		autostartCheck,
		container.NewHBox(widget.NewLabel("Theme"), themeSelect),
	)

	dialog.ShowCustom("Settings", "Close", content, parent)
}

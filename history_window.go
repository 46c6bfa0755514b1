package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowHistoryWindow lists logged doses, newest first
func ShowHistoryWindow(d *Dosette) {
	win := d.app.NewWindow("Dose History")
	win.Resize(fyne.NewSize(400, 500))

	list := container.NewVBox()
	refresh := func() {
		list.RemoveAll()
		entries := d.history.Entries()
		if len(entries) == 0 {
			list.Add(emptyState("No doses logged yet."))
		}
		for _, entry := range entries {
			line := fmt.Sprintf("%s  %s (%s)",
				entry.Timestamp.Format("Mon Jan 2 15:04"),
				entry.MedicineName, entry.Action)
			list.Add(widget.NewLabel(line))
		}
		list.Refresh()
	}
	refresh()

	clearButton := widget.NewButton("Clear History", func() {
		dialog.ShowConfirm("Clear History",
			"Remove all logged doses? This cannot be undone.",
			func(confirmed bool) {
				if confirmed {
					d.history.Clear()
					refresh()
				}
			}, win)
	})

	win.SetContent(container.NewBorder(nil, clearButton, nil, nil,
		container.NewVScroll(list)))
	win.Show()
}

package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/dosette/dosette/pkg/models"
)

// MainWindow is the dashboard: live clock, upcoming doses, and the
// medicine list with edit/delete actions
type MainWindow struct {
	d      *Dosette
	window fyne.Window

	clockText    *canvas.Text
	upcomingBox  *fyne.Container
	medicinesBox *fyne.Container
}

func NewMainWindow(d *Dosette) *MainWindow {
	mw := &MainWindow{
		d:      d,
		window: d.app.NewWindow("Dosette"),
	}

	mw.window.Resize(fyne.NewSize(480, 640))
	mw.window.SetMaster()
	mw.buildUI()
	mw.Refresh()

	return mw
}

func (mw *MainWindow) buildUI() {
	mw.clockText = canvas.NewText(time.Now().Format("15:04"), nil)
	mw.clockText.TextSize = 40
	mw.clockText.Alignment = fyne.TextAlignCenter

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			ShowMedicineForm(mw.d, mw.window, nil)
		}),
		widget.NewToolbarAction(theme.HistoryIcon(), func() {
			ShowHistoryWindow(mw.d)
		}),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.UploadIcon(), func() {
			importSchedule(mw.d, mw.window)
		}),
		widget.NewToolbarAction(theme.DownloadIcon(), func() {
			exportSchedule(mw.d, mw.window)
		}),
		widget.NewToolbarAction(theme.SettingsIcon(), func() {
			showSettingsDialog(mw.d, mw.window)
		}),
	)

	mw.upcomingBox = container.NewVBox()
	mw.medicinesBox = container.NewVBox()

	content := container.NewVBox(
		container.NewPadded(mw.clockText),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Next hour", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.upcomingBox,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Medicines", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		mw.medicinesBox,
	)

	mw.window.SetContent(container.NewBorder(
		toolbar, nil, nil, nil,
		container.NewVScroll(content),
	))
}

func (mw *MainWindow) Show() {
	mw.window.Show()
}

// SetClock updates the dashboard clock; called once per heartbeat
func (mw *MainWindow) SetClock(now time.Time) {
	text := now.Format("15:04")
	if mw.clockText.Text != text {
		mw.clockText.Text = text
		mw.clockText.Refresh()
		// A minute rolled over, so the upcoming section may change
		mw.Refresh()
	}
}

// Refresh rebuilds the medicine cards and the upcoming section from
// fresh store state
func (mw *MainWindow) Refresh() {
	meds := mw.d.meds.List()
	models.SortByTime(meds)

	mw.medicinesBox.RemoveAll()
	if len(meds) == 0 {
		mw.medicinesBox.Add(emptyState("No medicines added yet. Tap + to add one."))
	}
	for i := range meds {
		mw.medicinesBox.Add(mw.medicineCard(meds[i]))
	}
	mw.medicinesBox.Refresh()

	mw.refreshUpcoming(meds, time.Now())
}

// refreshUpcoming lists doses due within the next hour
func (mw *MainWindow) refreshUpcoming(meds []models.Medicine, now time.Time) {
	mw.upcomingBox.RemoveAll()

	count := 0
	for i := range meds {
		next, ok := meds[i].NextOccurrence(now)
		if !ok || next.Sub(now) > time.Hour {
			continue
		}
		label := fmt.Sprintf("%s  %s", next.Format("15:04"), meds[i].Name)
		mw.upcomingBox.Add(widget.NewLabel(label))
		count++
	}

	if count == 0 {
		mw.upcomingBox.Add(emptyState("No upcoming medicines in the next hour."))
	}
	mw.upcomingBox.Refresh()
}

func (mw *MainWindow) medicineCard(med models.Medicine) fyne.CanvasObject {
	timeText := canvas.NewText(string(med.Time), nil)
	timeText.TextSize = 24

	name := widget.NewLabelWithStyle(med.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	schedule := widget.NewLabel(med.ScheduleLabel())

	info := container.NewVBox(timeText, schedule, name)

	if med.Notes != "" {
		notes := widget.NewLabel(med.Notes)
		notes.Wrapping = fyne.TextWrapWord
		info.Add(notes)
	}

	if med.TracksStock() {
		stockLabel := widget.NewLabel(fmt.Sprintf("Stock: %d", *med.Stock))
		if med.LowStock() {
			stockLabel.SetText(fmt.Sprintf("Low stock: %d", *med.Stock))
			stockLabel.Importance = widget.DangerImportance
		}
		info.Add(stockLabel)
	}

	edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		current, ok := mw.d.meds.Get(med.ID)
		if !ok {
			return
		}
		ShowMedicineForm(mw.d, mw.window, &current)
	})

	del := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("Delete Medicine",
			fmt.Sprintf("Delete %q? This cannot be undone.", med.Name),
			func(confirmed bool) {
				if confirmed {
					mw.d.medicineDeleted(med.ID)
				}
			}, mw.window)
	})

	actions := container.NewVBox(edit, del)

	return widget.NewCard("", "", container.NewBorder(nil, nil, nil, actions, info))
}

// ShowLowStockWarning surfaces the low-stock signal computed by the
// dose outcome processor
func (mw *MainWindow) ShowLowStockWarning(name string, stock int) {
	dialog.ShowInformation("Low Stock",
		fmt.Sprintf("%s has only %d dose(s) left. Time to restock!", name, stock),
		mw.window)
}

func emptyState(text string) fyne.CanvasObject {
	label := widget.NewLabel(text)
	label.Importance = widget.LowImportance
	return label
}

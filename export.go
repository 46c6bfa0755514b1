package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/dosette/dosette/pkg/export"
)

// exportSchedule writes the medication schedule to a user-chosen .ics file
func exportSchedule(d *Dosette, parent fyne.Window) {
	meds := d.meds.List()
	if len(meds) == 0 {
		dialog.ShowInformation("Export Schedule", "Add a medicine first.", parent)
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := export.WriteSchedule(writer, meds, time.Now()); err != nil {
			log.Printf("Schedule export failed: %v", err)
			dialog.ShowError(fmt.Errorf("export failed: %w", err), parent)
			return
		}
		log.Printf("Exported %d medicines to %s", len(meds), writer.URI().Name())
	}, parent)
	fileDialog.SetFileName("dosette-schedule.ics")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	fileDialog.Show()
}

// importSchedule loads medicines from a previously exported .ics file.
// Existing medicines with matching IDs are overwritten; reminder sounds
// are not part of the calendar format, so imported entries get defaults
func importSchedule(d *Dosette, parent fyne.Window) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, parent)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		meds, err := export.ReadSchedule(reader)
		if err != nil {
			log.Printf("Schedule import failed: %v", err)
			dialog.ShowError(fmt.Errorf("import failed: %w", err), parent)
			return
		}

		for i := range meds {
			d.meds.Upsert(meds[i])
		}
		d.mainWindow.Refresh()
		d.updateSystemTrayMenu()
		log.Printf("Imported %d medicines from %s", len(meds), reader.URI().Name())
		dialog.ShowInformation("Import Schedule",
			fmt.Sprintf("Imported %d medicine(s).", len(meds)), parent)
	}, parent)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".ics"}))
	fileDialog.Show()
}

package main

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/dosette/dosette/pkg/audio"
	"github.com/dosette/dosette/pkg/engine"
	"github.com/dosette/dosette/pkg/models"
	"github.com/dosette/dosette/pkg/store"
)

// Dosette ties the alarm engine to its desktop shell. It implements the
// engine's Notifier and Presenter interfaces.
type Dosette struct {
	app      fyne.App
	meds     *store.MedicineStore
	history  *store.HistoryStore
	settings *store.SettingsStore
	sounds   *audio.Engine
	engine   *engine.Engine

	mainWindow  *MainWindow
	alarmWindow *AlarmWindow
	clockTicker *time.Ticker
}

func main() {
	d := &Dosette{
		app: app.NewWithID("io.dosette.app"),
	}

	d.initialize()
	d.run()
}

func (d *Dosette) initialize() {
	d.meds = store.NewMedicineStore(d.app)
	d.history = store.NewHistoryStore(d.app)
	d.settings = store.NewSettingsStore(d.app)
	d.sounds = audio.NewEngine()
	d.engine = engine.New(d.meds, d.history, d.sounds, d, d, engine.DefaultSnoozeDelay)

	applyTheme(d.app, d.settings.Theme())

	// Sync autostart state with the saved setting on startup
	if err := setupAutostart(d.settings.AutoStart()); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	d.setupSystemTray()
	d.mainWindow = NewMainWindow(d)
	d.startClock()
}

func (d *Dosette) run() {
	d.mainWindow.Show()
	d.app.Run()
}

// startClock drives the visible clock and the alarm engine off a single
// heartbeat. The engine itself guards against re-evaluating the same
// minute, so ticking every second is safe.
func (d *Dosette) startClock() {
	d.clockTicker = time.NewTicker(1 * time.Second)
	go func() {
		for range d.clockTicker.C {
			now := time.Now()
			d.engine.Tick(now)
			fyne.Do(func() {
				d.mainWindow.SetClock(now)
			})
		}
	}()
}

// Notify is the best-effort system notification channel; Fyne degrades
// silently when the platform denies notifications
func (d *Dosette) Notify(title, body string) {
	d.app.SendNotification(fyne.NewNotification(title, body))
}

// ShowAlarm presents the fullscreen alarm overlay for a due medicine
func (d *Dosette) ShowAlarm(med models.Medicine) {
	fyne.Do(func() {
		d.alarmWindow = NewAlarmWindow(d, med)
		d.alarmWindow.Show()
	})
}

// HideAlarm tears down the overlay after acknowledge, snooze or dismiss
func (d *Dosette) HideAlarm() {
	fyne.Do(func() {
		if d.alarmWindow != nil {
			d.alarmWindow.Close()
			d.alarmWindow = nil
		}
		d.mainWindow.Refresh()
		d.updateSystemTrayMenu()
	})
}

// LowStock warns the user after an acknowledgment drained stock to the
// configured threshold
func (d *Dosette) LowStock(med models.Medicine) {
	stock := 0
	if med.Stock != nil {
		stock = *med.Stock
	}
	fyne.Do(func() {
		d.mainWindow.ShowLowStockWarning(med.Name, stock)
	})
}

// medicineSaved persists a new or edited medicine and refreshes the UI
func (d *Dosette) medicineSaved(med models.Medicine) {
	d.meds.Upsert(med)
	d.mainWindow.Refresh()
	d.updateSystemTrayMenu()
}

// medicineDeleted removes a medicine, force-dismissing its alarm if it
// happens to be ringing or snoozed right now
func (d *Dosette) medicineDeleted(id string) {
	d.meds.Delete(id)
	d.engine.Dismiss(id)
	d.mainWindow.Refresh()
	d.updateSystemTrayMenu()
}

func (d *Dosette) quit() {
	if d.clockTicker != nil {
		d.clockTicker.Stop()
	}
	d.sounds.Stop()
	d.app.Quit()
}

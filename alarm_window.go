package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/dosette/dosette/pkg/engine"
	"github.com/dosette/dosette/pkg/models"
	"github.com/dosette/dosette/pkg/platform"
)

// holdToConfirm is how long the Take/Snooze buttons must be held
const holdToConfirm = 2 * time.Second

// AlarmWindow is the fullscreen overlay shown while an alarm rings.
// It only forwards user intent to the engine; the engine owns the
// state transition and tells the app when to tear the window down.
type AlarmWindow struct {
	d      *Dosette
	window fyne.Window
	med    models.Medicine

	closing bool
}

func NewAlarmWindow(d *Dosette, med models.Medicine) *AlarmWindow {
	aw := &AlarmWindow{
		d:   d,
		med: med,
	}

	aw.window = d.app.NewWindow("Medicine Reminder")
	aw.window.SetFullScreen(true)
	aw.buildUI()

	// The close control is not an explicit action in the alarm flow;
	// treat it as the conservative choice and snooze.
	aw.window.SetCloseIntercept(func() {
		go d.engine.Snooze()
	})

	return aw
}

func (aw *AlarmWindow) buildUI() {
	title := canvas.NewText(fmt.Sprintf("Time for %s!", aw.med.Name), nil)
	title.TextSize = 32
	title.Alignment = fyne.TextAlignCenter

	timeLabel := widget.NewLabel(fmt.Sprintf("Scheduled for %s", aw.med.Time))
	timeLabel.Alignment = fyne.TextAlignCenter

	notes := widget.NewLabel(aw.med.Notes)
	notes.Wrapping = fyne.TextWrapWord
	notes.Alignment = fyne.TextAlignCenter

	takeButton := NewHoldButton("Take (hold)", holdToConfirm, func() {
		go aw.d.engine.Acknowledge()
	})

	snoozeButton := NewHoldButton(
		fmt.Sprintf("Snooze %dm (hold)", int(engine.DefaultSnoozeDelay.Minutes())),
		holdToConfirm,
		func() {
			go aw.d.engine.Snooze()
		},
	)

	content := container.NewVBox(
		container.NewPadded(title),
		timeLabel,
		widget.NewSeparator(),
		container.NewPadded(notes),
		widget.NewSeparator(),
		container.NewHBox(snoozeButton, takeButton),
	)

	aw.window.SetContent(container.NewPadded(container.NewCenter(content)))
}

func (aw *AlarmWindow) Show() {
	aw.window.Show()
	aw.window.RequestFocus()
	platform.BringToFront()
}

// Close tears the window down without re-entering the engine
func (aw *AlarmWindow) Close() {
	if aw.closing {
		return
	}
	aw.closing = true
	aw.window.Close()
}

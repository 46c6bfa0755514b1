package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/dosette/dosette/pkg/audio"
	"github.com/dosette/dosette/pkg/models"
)

// Custom ringtones are stored inline in preferences, so keep them small
const maxCustomSoundBytes = 500 * 1024

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ShowMedicineForm opens the add/edit window. Pass nil to create a new
// medicine
func ShowMedicineForm(d *Dosette, parent fyne.Window, existing *models.Medicine) {
	title := "Add Medicine"
	med := models.Medicine{
		Frequency: models.FrequencyDaily,
		Sound:     models.DefaultSoundProfile(),
	}
	if existing != nil {
		title = "Edit Medicine"
		med = *existing
	}

	win := d.app.NewWindow(title)
	win.Resize(fyne.NewSize(420, 600))

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("e.g. Vitamin D")
	nameEntry.SetText(med.Name)

	timeEntry := widget.NewEntry()
	timeEntry.SetPlaceHolder("HH:MM (24-hour)")
	timeEntry.SetText(string(med.Time))

	notesEntry := widget.NewMultiLineEntry()
	notesEntry.SetPlaceHolder("Dosage instructions, with food, etc.")
	notesEntry.SetText(med.Notes)
	notesEntry.Wrapping = fyne.TextWrapWord

	stockEntry := widget.NewEntry()
	stockEntry.SetPlaceHolder("Leave empty to skip tracking")
	if med.Stock != nil {
		stockEntry.SetText(strconv.Itoa(*med.Stock))
	}

	lowAlertEntry := widget.NewEntry()
	lowAlertEntry.SetPlaceHolder("Warn at or below")
	if med.LowAlert != nil {
		lowAlertEntry.SetText(strconv.Itoa(*med.LowAlert))
	}

	dayChecks := make([]*widget.Check, len(weekdayLabels))
	daysRow := container.NewHBox()
	for i, label := range weekdayLabels {
		day := i
		check := widget.NewCheck(label, nil)
		for _, selected := range med.Days {
			if selected == day {
				check.SetChecked(true)
			}
		}
		dayChecks[i] = check
		daysRow.Add(check)
	}
	if med.Frequency != models.FrequencyWeekly {
		daysRow.Hide()
	}

	frequencyRadio := widget.NewRadioGroup([]string{"Daily", "Weekly"}, func(value string) {
		if value == "Weekly" {
			daysRow.Show()
		} else {
			daysRow.Hide()
		}
	})
	frequencyRadio.Horizontal = true
	if med.Frequency == models.FrequencyWeekly {
		frequencyRadio.SetSelected("Weekly")
	} else {
		frequencyRadio.SetSelected("Daily")
	}

	sound := med.Sound

	presetSelect := widget.NewSelect([]string{models.PresetBeep, models.PresetChime, models.PresetBell}, func(value string) {
		sound.Preset = value
	})
	if sound.Preset != "" {
		presetSelect.SetSelected(sound.Preset)
	} else {
		presetSelect.SetSelected(models.PresetBeep)
	}

	customLabel := widget.NewLabel("No file chosen")
	if sound.CustomName != "" {
		customLabel.SetText(sound.CustomName)
	}
	chooseButton := widget.NewButton("Choose WAV...", func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if reader == nil {
				return
			}
			defer reader.Close()

			data, err := io.ReadAll(io.LimitReader(reader, maxCustomSoundBytes+1))
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if len(data) > maxCustomSoundBytes {
				dialog.ShowError(fmt.Errorf("sound file too large (max %d KB)", maxCustomSoundBytes/1024), win)
				return
			}
			if err := audio.ValidateCustomSound(data); err != nil {
				dialog.ShowError(err, win)
				return
			}
			sound.Custom = data
			sound.CustomName = reader.URI().Name()
			customLabel.SetText(sound.CustomName)
		}, win)
		fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".wav"}))
		fileDialog.Show()
	})
	customRow := container.NewHBox(chooseButton, customLabel)

	soundRadio := widget.NewRadioGroup([]string{"Preset", "Custom file"}, func(value string) {
		if value == "Custom file" {
			sound.Kind = models.SoundKindCustom
			presetSelect.Hide()
			customRow.Show()
		} else {
			sound.Kind = models.SoundKindPreset
			presetSelect.Show()
			customRow.Hide()
		}
	})
	soundRadio.Horizontal = true
	if sound.Kind == models.SoundKindCustom {
		soundRadio.SetSelected("Custom file")
	} else {
		soundRadio.SetSelected("Preset")
	}

	volumeSlider := widget.NewSlider(0, 100)
	volumeSlider.Step = 5
	volumeSlider.SetValue(float64(sound.Volume))
	volumeSlider.OnChanged = func(value float64) {
		sound.Volume = int(value)
	}

	previewButton := widget.NewButton("Preview", func() {
		d.engine.PreviewSound(sound)
	})

	save := func() {
		name := strings.TrimSpace(nameEntry.Text)
		if name == "" {
			dialog.ShowError(fmt.Errorf("name is required"), win)
			return
		}

		timeOfDay, err := models.ParseTimeOfDay(strings.TrimSpace(timeEntry.Text))
		if err != nil {
			dialog.ShowError(err, win)
			return
		}

		med.Name = name
		med.Time = timeOfDay
		med.Notes = strings.TrimSpace(notesEntry.Text)

		if frequencyRadio.Selected == "Weekly" {
			med.Frequency = models.FrequencyWeekly
			med.Days = nil
			for day, check := range dayChecks {
				if check.Checked {
					med.Days = append(med.Days, day)
				}
			}
			if len(med.Days) == 0 {
				dialog.ShowError(fmt.Errorf("select at least one day for a weekly schedule"), win)
				return
			}
		} else {
			med.Frequency = models.FrequencyDaily
			med.Days = nil
		}

		med.Stock, err = parseOptionalCount(stockEntry.Text, "stock")
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		med.LowAlert, err = parseOptionalCount(lowAlertEntry.Text, "low stock alert")
		if err != nil {
			dialog.ShowError(err, win)
			return
		}

		if sound.Kind == models.SoundKindCustom && len(sound.Custom) == 0 {
			dialog.ShowError(fmt.Errorf("choose a sound file or switch back to a preset"), win)
			return
		}
		med.Sound = sound

		if med.ID == "" {
			med.ID = uuid.New().String()
		}

		log.Printf("Saving medicine %s (%s)", med.Name, med.ID)
		d.medicineSaved(med)
		win.Close()
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Name"), nameEntry,
		widget.NewLabel("Time"), timeEntry,
		widget.NewLabel("Notes"), notesEntry,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Schedule", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		frequencyRadio,
		daysRow,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Stock", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Doses on hand"), stockEntry,
		widget.NewLabel("Low stock alert"), lowAlertEntry,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		soundRadio,
		presetSelect,
		customRow,
		widget.NewLabel("Volume"), volumeSlider,
		previewButton,
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			widget.NewButton("Cancel", win.Close),
			widget.NewButton("Save", save),
		),
	)

	win.SetContent(container.NewVScroll(container.NewPadded(form)))
	win.Show()
}

func parseOptionalCount(text, field string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%s must be a non-negative number", field)
	}
	return &n, nil
}

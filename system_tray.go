package main

import (
	"fmt"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"github.com/dosette/dosette/pkg/models"
)

func (d *Dosette) setupSystemTray() {
	d.updateSystemTrayMenu()
}

func (d *Dosette) updateSystemTrayMenu() {
	if desk, ok := d.app.(desktop.App); ok {
		menuItems := []*fyne.MenuItem{}

		// Upcoming doses section at the top
		upcoming := d.upcomingTodayDoses(5)
		if len(upcoming) > 0 {
			headerItem := fyne.NewMenuItem("Due Today:", nil)
			headerItem.Disabled = true
			menuItems = append(menuItems, headerItem)

			for _, dose := range upcoming {
				doseText := fmt.Sprintf("  %s - %s",
					dose.at.Format("3:04 PM"),
					truncateString(dose.name, 35))

				doseItem := fyne.NewMenuItem(doseText, nil)
				doseItem.Disabled = true
				menuItems = append(menuItems, doseItem)
			}

			menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		}

		menuItems = append(menuItems,
			fyne.NewMenuItem("Open Dosette", func() {
				d.mainWindow.Show()
			}),
		)

		menuItems = append(menuItems, fyne.NewMenuItemSeparator())
		menuItems = append(menuItems, fyne.NewMenuItem("Quit", func() {
			d.quit()
		}))

		menu := fyne.NewMenu("Dosette", menuItems...)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(theme.MediaRecordIcon())
	}
}

type upcomingDose struct {
	name string
	at   time.Time
}

// upcomingTodayDoses returns the next N doses still due before midnight
func (d *Dosette) upcomingTodayDoses(limit int) []upcomingDose {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)

	meds := d.meds.List()
	models.SortByTime(meds)

	upcoming := []upcomingDose{}
	for i := range meds {
		next, ok := meds[i].NextOccurrence(now)
		if !ok {
			continue
		}
		if next.After(now) && next.Before(todayEnd) {
			upcoming = append(upcoming, upcomingDose{name: meds[i].Name, at: next})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].at.Before(upcoming[j].at)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

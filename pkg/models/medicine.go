package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Frequency controls which days a medicine's reminder fires on
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"  // every day at the scheduled time
	FrequencyWeekly Frequency = "weekly" // only on the selected weekdays
)

// TimeOfDay is a wall-clock trigger time in 24h "HH:MM" form.
// Minute granularity is the finest the scheduler works at.
type TimeOfDay string

// ParseTimeOfDay validates and normalizes an "HH:MM" string
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return TimeOfDay(t.Format("15:04")), nil
}

// Matches reports whether t falls in the same minute as this time of day
func (td TimeOfDay) Matches(t time.Time) bool {
	return string(td) == t.Format("15:04")
}

// Before compares two times of day. "HH:MM" strings order lexically.
func (td TimeOfDay) Before(other TimeOfDay) bool {
	return string(td) < string(other)
}

// Medicine is a scheduled reminder with optional stock tracking.
// Stock and LowAlert are nil when the user does not track inventory.
type Medicine struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Notes     string       `json:"notes"`
	Time      TimeOfDay    `json:"time"`
	Frequency Frequency    `json:"frequency"`
	Days      []int        `json:"days"` // weekday indices, 0 = Sunday; only for weekly
	Stock     *int         `json:"stock"`
	LowAlert  *int         `json:"lowAlert"`
	Sound     SoundProfile `json:"sound"`
}

// DueAt reports whether the medicine should trigger at the given moment.
// A weekly medicine with no selected days never triggers.
func (m *Medicine) DueAt(now time.Time) bool {
	if !m.Time.Matches(now) {
		return false
	}

	switch m.Frequency {
	case FrequencyWeekly:
		weekday := int(now.Weekday())
		for _, d := range m.Days {
			if d == weekday {
				return true
			}
		}
		return false
	default:
		// Records written before frequency existed have an empty value;
		// treat them as daily, like the original data did.
		return true
	}
}

// TracksStock reports whether inventory is tracked for this medicine
func (m *Medicine) TracksStock() bool {
	return m.Stock != nil
}

// LowStock reports whether remaining stock is at or below the alert threshold
func (m *Medicine) LowStock() bool {
	return m.Stock != nil && m.LowAlert != nil && *m.Stock <= *m.LowAlert
}

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ScheduleLabel renders the recurrence for display, e.g. "Daily" or "Mon, Wed, Fri"
func (m *Medicine) ScheduleLabel() string {
	if m.Frequency != FrequencyWeekly || len(m.Days) == 0 {
		return "Daily"
	}

	days := append([]int(nil), m.Days...)
	sort.Ints(days)

	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(dayNames) {
			names = append(names, dayNames[d])
		}
	}
	return strings.Join(names, ", ")
}

// NextOccurrence returns the first instant at or after now when this
// medicine is due. The second return is false for an unparseable time
// or a weekly schedule with no selected days.
func (m *Medicine) NextOccurrence(now time.Time) (time.Time, bool) {
	tod, err := time.Parse("15:04", string(m.Time))
	if err != nil {
		return time.Time{}, false
	}

	base := time.Date(now.Year(), now.Month(), now.Day(), tod.Hour(), tod.Minute(), 0, 0, now.Location())
	for i := 0; i < 8; i++ {
		cand := base.AddDate(0, 0, i)
		if cand.Before(now) {
			continue
		}
		if m.Frequency != FrequencyWeekly {
			return cand, true
		}
		weekday := int(cand.Weekday())
		for _, d := range m.Days {
			if d == weekday {
				return cand, true
			}
		}
	}
	return time.Time{}, false
}

// SortByTime sorts medicines by trigger time, stable for equal times
func SortByTime(meds []Medicine) {
	sort.SliceStable(meds, func(i, j int) bool {
		return meds[i].Time.Before(meds[j].Time)
	})
}

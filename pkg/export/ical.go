// Package export renders the medication schedule as an iCalendar file
// so it can be imported into any calendar application.
package export

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/dosette/dosette/pkg/models"
)

const (
	productID = "-//Dosette//Medication Schedule//EN"
	uidPrefix = "dosette-"
)

// iCal BYDAY codes indexed by weekday (0 = Sunday)
var byDayCodes = []string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// WriteSchedule encodes every medicine as a recurring VEVENT. A
// medicine with no representable occurrence is skipped with a log line
// so one bad record does not block the rest of the schedule.
func WriteSchedule(w io.Writer, meds []models.Medicine, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for i := range meds {
		event, err := medicineEvent(&meds[i], now)
		if err != nil {
			log.Printf("Skipping medicine during export: %v", err)
			continue
		}
		cal.Children = append(cal.Children, event.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}

func medicineEvent(med *models.Medicine, now time.Time) (*ical.Event, error) {
	start, ok := med.NextOccurrence(now)
	if !ok {
		return nil, fmt.Errorf("medicine %q has no upcoming occurrence", med.Name)
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uidPrefix+med.ID)
	event.Props.SetDateTime(ical.PropDateTimeStamp, now)
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetText(ical.PropSummary, "Take "+med.Name)
	if med.Notes != "" {
		event.Props.SetText(ical.PropDescription, med.Notes)
	}

	// RRULE values are structured, not text, so set the raw property
	event.Props.Set(&ical.Prop{
		Name:  ical.PropRecurrenceRule,
		Value: recurrenceRule(med),
	})

	return event, nil
}

// recurrenceRule builds the RRULE value for a medicine's schedule
func recurrenceRule(med *models.Medicine) string {
	if med.Frequency != models.FrequencyWeekly {
		return "FREQ=DAILY"
	}

	days := append([]int(nil), med.Days...)
	sort.Ints(days)

	codes := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(byDayCodes) {
			codes = append(codes, byDayCodes[d])
		}
	}
	return "FREQ=WEEKLY;BYDAY=" + strings.Join(codes, ",")
}

package export

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/dosette/dosette/pkg/models"
)

var dayNumbers = map[string]int{
	"SU": 0, "MO": 1, "TU": 2, "WE": 3, "TH": 4, "FR": 5, "SA": 6,
}

// ReadSchedule parses an exported schedule back into medicines. Events
// that cannot be mapped are skipped with a log line rather than failing
// the whole import, so a hand-edited file still loads what it can.
func ReadSchedule(r io.Reader) ([]models.Medicine, error) {
	decoder := ical.NewDecoder(r)

	meds := []models.Medicine{}
	seen := map[string]bool{}
	skipped := 0

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}

			med, err := medicineFromEvent(comp)
			if err != nil {
				log.Printf("Skipping event during import: %v", err)
				skipped++
				continue
			}
			if seen[med.ID] {
				log.Printf("Skipping duplicate event %s during import", med.ID)
				skipped++
				continue
			}
			seen[med.ID] = true
			meds = append(meds, med)
		}
	}

	if skipped > 0 {
		log.Printf("Imported %d medicines, skipped %d events", len(meds), skipped)
	}
	if len(meds) == 0 {
		return nil, fmt.Errorf("no usable events found")
	}

	return meds, nil
}

func medicineFromEvent(comp *ical.Component) (models.Medicine, error) {
	med := models.Medicine{Sound: models.DefaultSoundProfile()}

	summary := propValue(comp, ical.PropSummary)
	if summary == "" {
		return med, fmt.Errorf("event has no summary")
	}
	med.Name = strings.TrimPrefix(summary, "Take ")

	if uid := propValue(comp, ical.PropUID); strings.HasPrefix(uid, uidPrefix) {
		med.ID = strings.TrimPrefix(uid, uidPrefix)
	} else {
		med.ID = uuid.New().String()
	}

	med.Notes = propValue(comp, ical.PropDescription)

	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return med, fmt.Errorf("event %q has no start time", med.Name)
	}
	start, err := startProp.DateTime(time.Local)
	if err != nil {
		return med, fmt.Errorf("event %q has unparseable start time: %w", med.Name, err)
	}
	med.Time = models.TimeOfDay(start.Format("15:04"))

	frequency, days, err := parseRecurrenceRule(propValue(comp, ical.PropRecurrenceRule))
	if err != nil {
		return med, fmt.Errorf("event %q: %w", med.Name, err)
	}
	med.Frequency = frequency
	med.Days = days

	return med, nil
}

// parseRecurrenceRule understands the rule shapes WriteSchedule emits.
// A missing rule means a one-off calendar event, which has no place in
// a repeating schedule.
func parseRecurrenceRule(rule string) (models.Frequency, []int, error) {
	if rule == "" {
		return "", nil, fmt.Errorf("no recurrence rule")
	}

	parts := map[string]string{}
	for _, field := range strings.Split(rule, ";") {
		key, value, found := strings.Cut(field, "=")
		if !found {
			return "", nil, fmt.Errorf("malformed recurrence rule %q", rule)
		}
		parts[strings.ToUpper(key)] = value
	}

	switch strings.ToUpper(parts["FREQ"]) {
	case "DAILY":
		return models.FrequencyDaily, nil, nil
	case "WEEKLY":
		days := []int{}
		for _, code := range strings.Split(parts["BYDAY"], ",") {
			day, ok := dayNumbers[strings.ToUpper(strings.TrimSpace(code))]
			if !ok {
				return "", nil, fmt.Errorf("unknown day code %q in rule %q", code, rule)
			}
			days = append(days, day)
		}
		if len(days) == 0 {
			return "", nil, fmt.Errorf("weekly rule %q has no days", rule)
		}
		return models.FrequencyWeekly, days, nil
	default:
		return "", nil, fmt.Errorf("unsupported recurrence rule %q", rule)
	}
}

func propValue(comp *ical.Component, name string) string {
	if prop := comp.Props.Get(name); prop != nil {
		return prop.Value
	}
	return ""
}

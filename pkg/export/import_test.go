package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosette/dosette/pkg/models"
)

func TestReadScheduleRoundTrip(t *testing.T) {
	meds := []models.Medicine{
		{
			ID:        "m1",
			Name:      "Aspirin",
			Notes:     "after breakfast",
			Time:      "08:00",
			Frequency: models.FrequencyDaily,
			Sound:     models.DefaultSoundProfile(),
		},
		{
			ID:        "m2",
			Name:      "Vitamin D",
			Time:      "09:30",
			Frequency: models.FrequencyWeekly,
			Days:      []int{1, 3, 5},
			Sound:     models.DefaultSoundProfile(),
		},
	}

	now := time.Date(2026, time.March, 2, 7, 0, 0, 0, time.Local)

	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, meds, now))

	imported, err := ReadSchedule(&buf)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	assert.Equal(t, "m1", imported[0].ID)
	assert.Equal(t, "Aspirin", imported[0].Name)
	assert.Equal(t, "after breakfast", imported[0].Notes)
	assert.Equal(t, models.TimeOfDay("08:00"), imported[0].Time)
	assert.Equal(t, models.FrequencyDaily, imported[0].Frequency)

	assert.Equal(t, "m2", imported[1].ID)
	assert.Equal(t, models.TimeOfDay("09:30"), imported[1].Time)
	assert.Equal(t, models.FrequencyWeekly, imported[1].Frequency)
	assert.Equal(t, []int{1, 3, 5}, imported[1].Days)
}

func TestReadScheduleSkipsUnusableEvents(t *testing.T) {
	// A one-off event with no RRULE alongside a valid daily one
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + productID,
		"BEGIN:VEVENT",
		"UID:one-off",
		"DTSTAMP:20260302T070000",
		"DTSTART:20260302T080000",
		"SUMMARY:Dentist appointment",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:dosette-m1",
		"DTSTAMP:20260302T070000",
		"DTSTART:20260302T080000",
		"SUMMARY:Take Aspirin",
		"RRULE:FREQ=DAILY",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	imported, err := ReadSchedule(strings.NewReader(ics))
	require.NoError(t, err)
	require.Len(t, imported, 1)
	assert.Equal(t, "m1", imported[0].ID)
	assert.Equal(t, "Aspirin", imported[0].Name)
}

func TestReadScheduleForeignUIDGetsFreshID(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Other//App//EN",
		"BEGIN:VEVENT",
		"UID:someone-elses-uid",
		"DTSTAMP:20260302T070000",
		"DTSTART:20260302T213000",
		"SUMMARY:Take Melatonin",
		"RRULE:FREQ=WEEKLY;BYDAY=SA,SU",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	imported, err := ReadSchedule(strings.NewReader(ics))
	require.NoError(t, err)
	require.Len(t, imported, 1)

	assert.NotEmpty(t, imported[0].ID)
	assert.NotEqual(t, "someone-elses-uid", imported[0].ID)
	assert.Equal(t, "Melatonin", imported[0].Name)
	assert.Equal(t, models.TimeOfDay("21:30"), imported[0].Time)
	assert.Equal(t, []int{6, 0}, imported[0].Days)
}

func TestReadScheduleRejectsEmptyCalendar(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + productID,
		"END:VCALENDAR",
		"",
	}, "\r\n")

	_, err := ReadSchedule(strings.NewReader(ics))
	assert.Error(t, err)
}

func TestParseRecurrenceRule(t *testing.T) {
	frequency, days, err := parseRecurrenceRule("FREQ=DAILY")
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyDaily, frequency)
	assert.Empty(t, days)

	frequency, days, err = parseRecurrenceRule("FREQ=WEEKLY;BYDAY=MO,FR")
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyWeekly, frequency)
	assert.Equal(t, []int{1, 5}, days)

	_, _, err = parseRecurrenceRule("FREQ=MONTHLY")
	assert.Error(t, err)

	_, _, err = parseRecurrenceRule("FREQ=WEEKLY;BYDAY=XX")
	assert.Error(t, err)
}

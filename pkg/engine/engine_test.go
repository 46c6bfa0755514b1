package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosette/dosette/pkg/models"
)

// memSource is an in-memory MedicineSource for tests
type memSource struct {
	meds    []models.Medicine
	updates []models.Medicine
}

func (s *memSource) List() []models.Medicine {
	return append([]models.Medicine(nil), s.meds...)
}

func (s *memSource) Get(id string) (models.Medicine, bool) {
	for _, m := range s.meds {
		if m.ID == id {
			return m, true
		}
	}
	return models.Medicine{}, false
}

func (s *memSource) Update(med models.Medicine) {
	s.updates = append(s.updates, med)
	for i := range s.meds {
		if s.meds[i].ID == med.ID {
			s.meds[i] = med
			return
		}
	}
}

func (s *memSource) remove(id string) {
	for i := range s.meds {
		if s.meds[i].ID == id {
			s.meds = append(s.meds[:i], s.meds[i+1:]...)
			return
		}
	}
}

type memHistory struct {
	entries []models.HistoryEntry
}

func (h *memHistory) Append(entry models.HistoryEntry) {
	h.entries = append([]models.HistoryEntry{entry}, h.entries...)
}

type soundRecorder struct {
	played   []models.SoundProfile
	stops    int
	previews int
}

func (r *soundRecorder) Play(p models.SoundProfile) { r.played = append(r.played, p) }
func (r *soundRecorder) Stop()                      { r.stops++ }
func (r *soundRecorder) Preview(models.SoundProfile) {
	r.previews++
}

type notifyRecorder struct {
	titles []string
}

func (r *notifyRecorder) Notify(title, _ string) { r.titles = append(r.titles, title) }

type presenterRecorder struct {
	shown  []string // medicine names in show order
	hidden int
	low    []string
}

func (r *presenterRecorder) ShowAlarm(med models.Medicine) { r.shown = append(r.shown, med.Name) }
func (r *presenterRecorder) HideAlarm()                    { r.hidden++ }
func (r *presenterRecorder) LowStock(med models.Medicine)  { r.low = append(r.low, med.Name) }

type fixture struct {
	engine    *Engine
	meds      *memSource
	history   *memHistory
	sounds    *soundRecorder
	notifier  *notifyRecorder
	presenter *presenterRecorder
}

func newFixture(meds ...models.Medicine) *fixture {
	f := &fixture{
		meds:      &memSource{meds: meds},
		history:   &memHistory{},
		sounds:    &soundRecorder{},
		notifier:  &notifyRecorder{},
		presenter: &presenterRecorder{},
	}
	f.engine = New(f.meds, f.history, f.sounds, f.notifier, f.presenter, 0)
	return f
}

func intPtr(v int) *int { return &v }

// at builds a local time on a fixed date; 2026-03-01 is a Sunday
func at(day int, hhmm string, sec int) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return time.Date(2026, time.March, day, t.Hour(), t.Minute(), sec, 0, time.Local)
}

func dailyMed(id, name string, tod models.TimeOfDay) models.Medicine {
	return models.Medicine{
		ID:        id,
		Name:      name,
		Time:      tod,
		Frequency: models.FrequencyDaily,
		Sound:     models.DefaultSoundProfile(),
	}
}

func TestTickRingsDueDailyMedicineAndAcknowledgeRecordsHistory(t *testing.T) {
	f := newFixture(dailyMed("m1", "Aspirin", "08:00"))

	f.engine.Tick(at(2, "08:00", 0))

	require.Equal(t, StatusRinging, f.engine.Status())
	require.Equal(t, []string{"Aspirin"}, f.presenter.shown)
	require.Len(t, f.sounds.played, 1)
	require.Equal(t, []string{"Medicine Reminder: Aspirin"}, f.notifier.titles)

	f.engine.acknowledgeAt(at(2, "08:00", 10))

	assert.Equal(t, StatusIdle, f.engine.Status())
	assert.Equal(t, 1, f.sounds.stops)
	assert.Equal(t, 1, f.presenter.hidden)
	require.Len(t, f.history.entries, 1)
	assert.Equal(t, "Aspirin", f.history.entries[0].MedicineName)
	assert.Equal(t, models.ActionTaken, f.history.entries[0].Action)
	assert.False(t, f.history.entries[0].Timestamp.IsZero())
}

func TestTickSkipsWeeklyMedicineOnExcludedDay(t *testing.T) {
	f := newFixture(models.Medicine{
		ID:        "m1",
		Name:      "Vitamin D",
		Time:      "08:00",
		Frequency: models.FrequencyWeekly,
		Days:      []int{1, 3, 5},
	})

	// March 1st 2026 is a Sunday (weekday 0)
	f.engine.Tick(at(1, "08:00", 0))

	assert.Equal(t, StatusIdle, f.engine.Status())
	assert.Empty(t, f.presenter.shown)
	assert.Empty(t, f.sounds.played)
}

func TestTickRingsWeeklyMedicineOnSelectedDay(t *testing.T) {
	f := newFixture(models.Medicine{
		ID:        "m1",
		Name:      "Vitamin D",
		Time:      "08:00",
		Frequency: models.FrequencyWeekly,
		Days:      []int{1, 3, 5},
	})

	// March 2nd 2026 is a Monday (weekday 1)
	f.engine.Tick(at(2, "08:00", 0))

	assert.Equal(t, StatusRinging, f.engine.Status())
}

func TestTickEvaluatesAtMostOncePerMinute(t *testing.T) {
	f := newFixture(dailyMed("m1", "Aspirin", "08:00"))

	f.engine.Tick(at(2, "08:00", 0))
	require.Equal(t, StatusRinging, f.engine.Status())

	// Acknowledge, then keep ticking inside the same minute; the guard
	// must prevent a second triggering for 08:00.
	f.engine.acknowledgeAt(at(2, "08:00", 5))
	f.engine.Tick(at(2, "08:00", 20))
	f.engine.Tick(at(2, "08:00", 40))
	f.engine.Tick(at(2, "08:00", 59))

	assert.Equal(t, StatusIdle, f.engine.Status())
	assert.Equal(t, []string{"Aspirin"}, f.presenter.shown)
}

func TestSingleSlotDropsSecondDueMedicine(t *testing.T) {
	f := newFixture(
		dailyMed("m1", "Aspirin", "08:00"),
		dailyMed("m2", "Ibuprofen", "08:00"),
	)

	f.engine.Tick(at(2, "08:00", 0))

	// Evaluator order is stable for equal times, so the first registered
	// medicine wins the slot and the other is dropped for this minute.
	assert.Equal(t, []string{"Aspirin"}, f.presenter.shown)
	assert.Len(t, f.sounds.played, 1)
}

func TestAcknowledgeDecrementsStockAndSignalsLowStock(t *testing.T) {
	f := newFixture(models.Medicine{
		ID:        "m1",
		Name:      "Aspirin",
		Time:      "08:00",
		Frequency: models.FrequencyDaily,
		Stock:     intPtr(3),
		LowAlert:  intPtr(1),
	})

	f.engine.Tick(at(2, "08:00", 0))
	f.engine.acknowledgeAt(at(2, "08:00", 5))

	med, _ := f.meds.Get("m1")
	require.Equal(t, 2, *med.Stock)
	assert.Empty(t, f.presenter.low, "stock 2 with threshold 1 is not low")

	f.engine.Tick(at(2, "08:01", 0))
	f.engine.Tick(at(3, "08:00", 0))
	f.engine.acknowledgeAt(at(3, "08:00", 5))

	med, _ = f.meds.Get("m1")
	require.Equal(t, 1, *med.Stock)
	assert.Equal(t, []string{"Aspirin"}, f.presenter.low)
}

func TestAcknowledgeNeverDrivesStockNegative(t *testing.T) {
	f := newFixture(models.Medicine{
		ID:        "m1",
		Name:      "Aspirin",
		Time:      "08:00",
		Frequency: models.FrequencyDaily,
		Stock:     intPtr(0),
	})

	f.engine.Tick(at(2, "08:00", 0))
	f.engine.acknowledgeAt(at(2, "08:00", 5))

	med, _ := f.meds.Get("m1")
	assert.Equal(t, 0, *med.Stock)
	assert.Len(t, f.history.entries, 1, "taking is still logged at zero stock")
}

func TestAcknowledgeLeavesUntrackedStockAlone(t *testing.T) {
	f := newFixture(dailyMed("m1", "Aspirin", "08:00"))

	f.engine.Tick(at(2, "08:00", 0))
	f.engine.acknowledgeAt(at(2, "08:00", 5))

	med, _ := f.meds.Get("m1")
	assert.Nil(t, med.Stock)
	assert.Empty(t, f.presenter.low)
}

func TestSnoozeReRingsAfterDelayWithoutSideEffects(t *testing.T) {
	f := newFixture(models.Medicine{
		ID:        "m1",
		Name:      "Aspirin",
		Time:      "08:00",
		Frequency: models.FrequencyDaily,
		Stock:     intPtr(3),
	})

	f.engine.Tick(at(2, "08:00", 0))
	f.engine.snoozeAt(at(2, "08:00", 10))

	require.Equal(t, StatusIdle, f.engine.Status())
	require.Equal(t, 1, f.sounds.stops)
	require.Equal(t, 1, f.presenter.hidden)
	assert.Empty(t, f.history.entries)
	med, _ := f.meds.Get("m1")
	assert.Equal(t, 3, *med.Stock, "snooze must not touch stock")

	f.engine.Tick(at(2, "08:04", 0))
	assert.Equal(t, StatusIdle, f.engine.Status(), "too early to re-ring")

	f.engine.Tick(at(2, "08:05", 10))
	assert.Equal(t, StatusRinging, f.engine.Status())
	assert.Equal(t, []string{"Aspirin", "Aspirin"}, f.presenter.shown)
}

func TestSnoozeReRingWaitsWhileAnotherAlarmRings(t *testing.T) {
	f := newFixture(
		dailyMed("m1", "Aspirin", "08:00"),
		dailyMed("m2", "Ibuprofen", "08:03"),
	)

	f.engine.Tick(at(2, "08:00", 0))
	f.engine.snoozeAt(at(2, "08:00", 10)) // re-ring due 08:05

	f.engine.Tick(at(2, "08:03", 0))
	require.Equal(t, []string{"Aspirin", "Ibuprofen"}, f.presenter.shown)

	// Snooze elapses while Ibuprofen still rings; re-ring must wait
	f.engine.Tick(at(2, "08:06", 0))
	require.Equal(t, []string{"Aspirin", "Ibuprofen"}, f.presenter.shown)

	f.engine.acknowledgeAt(at(2, "08:06", 30))
	f.engine.Tick(at(2, "08:06", 45))

	assert.Equal(t, []string{"Aspirin", "Ibuprofen", "Aspirin"}, f.presenter.shown)
}

func TestSnoozedMedicineDeletedBeforeReRing(t *testing.T) {
	f := newFixture(dailyMed("m1", "Aspirin", "08:00"))

	f.engine.Tick(at(2, "08:00", 0))
	f.engine.snoozeAt(at(2, "08:00", 10))
	f.meds.remove("m1")

	f.engine.Tick(at(2, "08:05", 30))

	assert.Equal(t, StatusIdle, f.engine.Status())
	assert.Equal(t, []string{"Aspirin"}, f.presenter.shown)
}

func TestAcknowledgeDeletedMedicineSkipsOutcome(t *testing.T) {
	f := newFixture(dailyMed("m1", "Aspirin", "08:00"))

	f.engine.Tick(at(2, "08:00", 0))
	f.meds.remove("m1")
	f.engine.acknowledgeAt(at(2, "08:00", 30))

	assert.Equal(t, StatusIdle, f.engine.Status())
	assert.Empty(t, f.history.entries)
	assert.Empty(t, f.meds.updates)
}

func TestDismissClearsRingingAlarm(t *testing.T) {
	f := newFixture(dailyMed("m1", "Aspirin", "08:00"))

	f.engine.Tick(at(2, "08:00", 0))
	f.engine.Dismiss("m1")

	assert.Equal(t, StatusIdle, f.engine.Status())
	assert.Equal(t, 1, f.sounds.stops)
	assert.Empty(t, f.history.entries)
}

func TestDismissDropsPendingSnooze(t *testing.T) {
	f := newFixture(dailyMed("m1", "Aspirin", "08:00"))

	f.engine.Tick(at(2, "08:00", 0))
	f.engine.snoozeAt(at(2, "08:00", 10))
	f.engine.Dismiss("m1")

	f.engine.Tick(at(2, "08:05", 30))
	assert.Equal(t, StatusIdle, f.engine.Status())
}

func TestAcknowledgeAndSnoozeAreNoopsWhenIdle(t *testing.T) {
	f := newFixture(dailyMed("m1", "Aspirin", "08:00"))

	f.engine.Acknowledge()
	f.engine.Snooze()

	assert.Equal(t, StatusIdle, f.engine.Status())
	assert.Zero(t, f.sounds.stops)
	assert.Empty(t, f.history.entries)
}

func TestPreviewSoundIsIndependentOfAlarmState(t *testing.T) {
	f := newFixture()

	f.engine.PreviewSound(models.DefaultSoundProfile())

	assert.Equal(t, 1, f.sounds.previews)
	assert.Equal(t, StatusIdle, f.engine.Status())
}

func TestActiveMedicineResolvesFreshState(t *testing.T) {
	f := newFixture(models.Medicine{
		ID:        "m1",
		Name:      "Aspirin",
		Time:      "08:00",
		Frequency: models.FrequencyDaily,
		Stock:     intPtr(5),
	})

	f.engine.Tick(at(2, "08:00", 0))

	// Edit stock while the alarm rings; the engine must see it
	med, _ := f.meds.Get("m1")
	med.Stock = intPtr(9)
	f.meds.Update(med)

	active, ok := f.engine.ActiveMedicine()
	require.True(t, ok)
	assert.Equal(t, 9, *active.Stock)
}

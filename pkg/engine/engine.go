package engine

import (
	"log"
	"sync"
	"time"

	"github.com/dosette/dosette/pkg/models"
)

// DefaultSnoozeDelay is how long a snoozed alarm waits before re-ringing
const DefaultSnoozeDelay = 5 * time.Minute

// AlarmStatus is the state of the single alarm slot
type AlarmStatus string

const (
	StatusIdle    AlarmStatus = "Idle"
	StatusRinging AlarmStatus = "Ringing"
)

// MedicineSource provides fresh medicine state. The engine always
// re-resolves by ID instead of holding snapshots, since stock mutates.
type MedicineSource interface {
	List() []models.Medicine
	Get(id string) (models.Medicine, bool)
	Update(med models.Medicine)
}

// HistoryLog records dose outcomes, newest first
type HistoryLog interface {
	Append(entry models.HistoryEntry)
}

// Sounds drives alert playback. Implementations must guarantee at most
// one audible sound: Play stops any prior playback first.
type Sounds interface {
	Play(profile models.SoundProfile)
	Stop()
	Preview(profile models.SoundProfile)
}

// Notifier is the best-effort system notification side channel.
// Failures (e.g. denied permission) must not block the alarm.
type Notifier interface {
	Notify(title, body string)
}

// Presenter is the UI surface the engine drives
type Presenter interface {
	ShowAlarm(med models.Medicine)
	HideAlarm()
	LowStock(med models.Medicine)
}

// snoozeEntry is the single outstanding deferred re-ring
type snoozeEntry struct {
	medicineID string
	at         time.Time
}

// Engine owns the alarm lifecycle: it evaluates the schedule once per
// distinct clock minute, transitions the single alarm slot through
// Idle -> Ringing -> Idle, and applies acknowledgment side effects.
// All state lives here; there are no package-level globals.
type Engine struct {
	mu sync.Mutex

	meds      MedicineSource
	history   HistoryLog
	sounds    Sounds
	notifier  Notifier
	presenter Presenter

	snoozeDelay time.Duration

	status      AlarmStatus
	activeID    string
	snoozed     *snoozeEntry
	lastChecked string // last minute ("15:04") the evaluator ran for
}

// New wires an engine with its collaborators. snoozeDelay <= 0 selects
// the default 5 minute delay.
func New(meds MedicineSource, history HistoryLog, sounds Sounds, notifier Notifier, presenter Presenter, snoozeDelay time.Duration) *Engine {
	if snoozeDelay <= 0 {
		snoozeDelay = DefaultSnoozeDelay
	}
	return &Engine{
		meds:        meds,
		history:     history,
		sounds:      sounds,
		notifier:    notifier,
		presenter:   presenter,
		snoozeDelay: snoozeDelay,
		status:      StatusIdle,
	}
}

// Status returns the current alarm slot state
func (e *Engine) Status() AlarmStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// ActiveMedicine returns fresh state for the currently ringing medicine
func (e *Engine) ActiveMedicine() (models.Medicine, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusRinging {
		return models.Medicine{}, false
	}
	return e.meds.Get(e.activeID)
}

// Tick advances the engine to now. It runs on every heartbeat (about
// 1 Hz) but evaluates the schedule at most once per distinct minute; the
// pending snooze is checked on every tick so a re-ring lands as soon as
// the slot is free.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snoozed != nil && e.status == StatusIdle && !now.Before(e.snoozed.at) {
		entry := e.snoozed
		e.snoozed = nil
		if med, ok := e.meds.Get(entry.medicineID); ok {
			log.Printf("Snooze elapsed, re-ringing %q", med.Name)
			e.ring(med)
		} else {
			// Deleted while snoozed; nothing to re-ring
			log.Printf("Snoozed medicine %s no longer exists, dropping re-ring", entry.medicineID)
		}
		return
	}

	minute := now.Format("15:04")
	if minute == e.lastChecked {
		return
	}
	e.lastChecked = minute

	due := EvaluateDue(now, e.meds.List())
	if len(due) == 0 {
		return
	}

	if e.status != StatusIdle {
		// Single alarm slot: medicines due while another alarm rings are
		// skipped for this minute rather than queued.
		log.Printf("%d medicine(s) due at %s while alarm busy, skipping", len(due), minute)
		return
	}

	// Only the first due medicine gets the slot this minute
	e.ring(due[0])
}

// ring transitions the slot to Ringing with its presentation side
// effects. Caller holds e.mu.
func (e *Engine) ring(med models.Medicine) {
	e.status = StatusRinging
	e.activeID = med.ID

	e.sounds.Play(med.Sound)
	e.notifier.Notify("Medicine Reminder: "+med.Name, notificationBody(med))
	e.presenter.ShowAlarm(med)
}

func notificationBody(med models.Medicine) string {
	if med.Notes != "" {
		return med.Notes
	}
	return "Time to take your medicine!"
}

// Acknowledge marks the ringing dose as taken: stops audio, hides the
// overlay, decrements tracked stock, and appends a history entry. No-op
// when nothing is ringing.
func (e *Engine) Acknowledge() {
	e.acknowledgeAt(time.Now())
}

func (e *Engine) acknowledgeAt(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusRinging {
		return
	}

	id := e.activeID
	e.clearAlarm()

	result := e.applyOutcome(id, now)
	if result.LowStock {
		e.presenter.LowStock(result.Medicine)
	}
}

// Snooze hides the ringing alarm and schedules a re-ring after the
// snooze delay, with no stock or history side effects. Only one snooze
// can be outstanding; a newer one replaces any stale entry. No-op when
// nothing is ringing.
func (e *Engine) Snooze() {
	e.snoozeAt(time.Now())
}

func (e *Engine) snoozeAt(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusRinging {
		return
	}

	id := e.activeID
	e.clearAlarm()

	e.snoozed = &snoozeEntry{medicineID: id, at: now.Add(e.snoozeDelay)}
	log.Printf("Alarm snoozed until %s", e.snoozed.at.Format("15:04:05"))
}

// Dismiss force-clears the alarm without recording an outcome. Used when
// the ringing medicine is deleted out from under the alarm.
func (e *Engine) Dismiss(medicineID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusRinging && e.activeID == medicineID {
		e.clearAlarm()
	}
	if e.snoozed != nil && e.snoozed.medicineID == medicineID {
		e.snoozed = nil
	}
}

// clearAlarm stops audio and returns the slot to Idle. Caller holds e.mu.
func (e *Engine) clearAlarm() {
	e.sounds.Stop()
	e.presenter.HideAlarm()
	e.status = StatusIdle
	e.activeID = ""
}

// PreviewSound auditions a profile for a short fixed duration,
// independent of the alarm lifecycle
func (e *Engine) PreviewSound(profile models.SoundProfile) {
	e.sounds.Preview(profile)
}

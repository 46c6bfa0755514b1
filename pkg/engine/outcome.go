package engine

import (
	"log"
	"time"

	"github.com/dosette/dosette/pkg/models"
	"github.com/google/uuid"
)

// AckResult reports the side effects of acknowledging a dose
type AckResult struct {
	Medicine models.Medicine
	Applied  bool // false when the medicine was deleted mid-alarm
	LowStock bool
}

// applyOutcome applies acknowledgment side effects: decrement tracked
// stock (floored at zero), persist the medicine, detect the low-stock
// condition, and append a Taken entry to the history log. The medicine
// is re-fetched by ID so concurrent edits are not clobbered; if it was
// deleted mid-alarm nothing is recorded. Caller holds e.mu.
func (e *Engine) applyOutcome(id string, now time.Time) AckResult {
	med, ok := e.meds.Get(id)
	if !ok {
		log.Printf("Medicine %s deleted mid-alarm, skipping outcome", id)
		return AckResult{}
	}

	if med.Stock != nil && *med.Stock > 0 {
		stock := *med.Stock - 1
		med.Stock = &stock
	}
	e.meds.Update(med)

	e.history.Append(models.HistoryEntry{
		ID:           uuid.New().String(),
		MedicineName: med.Name,
		Action:       models.ActionTaken,
		Timestamp:    now,
	})

	return AckResult{
		Medicine: med,
		Applied:  true,
		LowStock: med.LowStock(),
	}
}

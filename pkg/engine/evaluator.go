package engine

import (
	"time"

	"github.com/dosette/dosette/pkg/models"
)

// EvaluateDue scans the medicine list and returns every medicine whose
// scheduled time matches now at minute granularity and whose recurrence
// covers the current weekday. Pure; no side effects. The result is sorted
// by trigger time, stable for ties, so callers process a deterministic
// order when two medicines share the same slot.
func EvaluateDue(now time.Time, meds []models.Medicine) []models.Medicine {
	var due []models.Medicine
	for i := range meds {
		if meds[i].DueAt(now) {
			due = append(due, meds[i])
		}
	}
	models.SortByTime(due)
	return due
}

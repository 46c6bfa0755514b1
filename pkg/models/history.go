package models

import "time"

// HistoryAction records what the user did when an alarm fired
type HistoryAction string

const (
	ActionTaken HistoryAction = "Taken"
)

// HistoryEntry is an immutable audit record of a dose outcome
type HistoryEntry struct {
	ID           string        `json:"id"`
	MedicineName string        `json:"medicineName"`
	Action       HistoryAction `json:"action"`
	Timestamp    time.Time     `json:"timestamp"`
}

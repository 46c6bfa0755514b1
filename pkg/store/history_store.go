package store

import (
	"encoding/json"
	"log"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/dosette/dosette/pkg/models"
)

const historyKey = "historyLog"

// HistoryStore persists the dose history log, newest entry first
type HistoryStore struct {
	mu    sync.Mutex
	prefs fyne.Preferences
}

func NewHistoryStore(app fyne.App) *HistoryStore {
	return &HistoryStore{prefs: app.Preferences()}
}

// Entries returns the log, most recent first. Corrupt stored state
// falls back to an empty log.
func (s *HistoryStore) Entries() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *HistoryStore) load() []models.HistoryEntry {
	raw := s.prefs.String(historyKey)
	if raw == "" {
		return nil
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("Error loading history, starting empty: %v", err)
		return nil
	}
	return entries
}

// Append prepends an entry so the log stays newest-first
func (s *HistoryStore) Append(entry models.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append([]models.HistoryEntry{entry}, s.load()...)

	data, err := json.Marshal(entries)
	if err != nil {
		log.Printf("Error saving history: %v", err)
		return
	}
	s.prefs.SetString(historyKey, string(data))
}

// Clear wipes the whole log. Callers confirm with the user first.
func (s *HistoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.SetString(historyKey, "[]")
}

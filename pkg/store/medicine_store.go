package store

import (
	"encoding/json"
	"log"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/dosette/dosette/pkg/models"
)

const medicinesKey = "medicines"

// MedicineStore persists the medicine list as a JSON record in Fyne
// preferences, mirroring a simple key-value store. Reads go through the
// stored record every time so callers always see fresh state.
type MedicineStore struct {
	mu    sync.Mutex
	prefs fyne.Preferences
}

// NewMedicineStore creates a store backed by the app's preferences
func NewMedicineStore(app fyne.App) *MedicineStore {
	return &MedicineStore{prefs: app.Preferences()}
}

// List returns all medicines. A corrupt or missing record falls back to
// an empty list; losing the parse is logged, never fatal.
func (s *MedicineStore) List() []models.Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *MedicineStore) load() []models.Medicine {
	raw := s.prefs.String(medicinesKey)
	if raw == "" {
		return nil
	}

	var meds []models.Medicine
	if err := json.Unmarshal([]byte(raw), &meds); err != nil {
		log.Printf("Error loading medicines, starting empty: %v", err)
		return nil
	}
	return meds
}

func (s *MedicineStore) save(meds []models.Medicine) {
	data, err := json.Marshal(meds)
	if err != nil {
		log.Printf("Error saving medicines: %v", err)
		return
	}
	s.prefs.SetString(medicinesKey, string(data))
}

// Get returns a medicine by ID
func (s *MedicineStore) Get(id string) (models.Medicine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.load() {
		if m.ID == id {
			return m, true
		}
	}
	return models.Medicine{}, false
}

// Upsert inserts the medicine, or replaces the record with the same ID
func (s *MedicineStore) Upsert(med models.Medicine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meds := s.load()
	for i := range meds {
		if meds[i].ID == med.ID {
			meds[i] = med
			s.save(meds)
			return
		}
	}
	s.save(append(meds, med))
}

// Update is Upsert under the name the alarm engine consumes
func (s *MedicineStore) Update(med models.Medicine) {
	s.Upsert(med)
}

// Delete removes a medicine by ID. Unknown IDs are a no-op.
func (s *MedicineStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meds := s.load()
	for i := range meds {
		if meds[i].ID == id {
			s.save(append(meds[:i], meds[i+1:]...))
			return
		}
	}
}

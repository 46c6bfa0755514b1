package models

// SoundKind selects between a synthesized preset and an uploaded sample
type SoundKind string

const (
	SoundKindPreset SoundKind = "preset"
	SoundKindCustom SoundKind = "custom"
)

// Preset tone identifiers
const (
	PresetBeep  = "beep"
	PresetChime = "chime"
	PresetBell  = "bell"
)

// SoundProfile describes the alert sound configured for a medicine.
// Custom holds the raw WAV payload for uploaded ringtones (base64 in JSON).
type SoundProfile struct {
	Kind       SoundKind `json:"kind"`
	Preset     string    `json:"preset,omitempty"`
	Custom     []byte    `json:"custom,omitempty"`
	CustomName string    `json:"customName,omitempty"`
	Volume     int       `json:"volume"` // 0-100
}

// DefaultSoundProfile is the profile used when the form adds a new medicine
func DefaultSoundProfile() SoundProfile {
	return SoundProfile{
		Kind:   SoundKindPreset,
		Preset: PresetBeep,
		Volume: 100,
	}
}

// Gain converts the volume percentage into a 0.0-1.0 master gain factor
func (p SoundProfile) Gain() float64 {
	switch {
	case p.Volume <= 0:
		return 0
	case p.Volume >= 100:
		return 1
	default:
		return float64(p.Volume) / 100
	}
}

// Label renders the sound choice for display in cards and forms
func (p SoundProfile) Label() string {
	if p.Kind == SoundKindCustom {
		if p.CustomName != "" {
			return p.CustomName
		}
		return "Custom sound"
	}
	if p.Preset == "" {
		return PresetBeep
	}
	return p.Preset
}

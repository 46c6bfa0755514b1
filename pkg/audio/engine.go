package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dosette/dosette/pkg/models"
)

// PreviewDuration is how long a sound auditioned from the edit form
// plays before auto-stopping
const PreviewDuration = 3 * time.Second

// Engine plays the alert sound for a medicine's profile. At most one
// sound is audible at a time: starting a new one stops the previous
// playback first. Playback failures are logged and swallowed; the
// visual alarm is the primary alert channel.
type Engine struct {
	mu      sync.Mutex
	current *Player
	loop    *models.SoundProfile

	// startPlayer is swapped out in tests; hardware playback otherwise
	startPlayer  func(models.SoundProfile) (*Player, error)
	previewDelay time.Duration
}

func NewEngine() *Engine {
	return &Engine{
		startPlayer:  start,
		previewDelay: PreviewDuration,
	}
}

// Play starts looping the profile's sound, replacing any active playback
func (e *Engine) Play(profile models.SoundProfile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loop = &profile
	e.startLocked(profile)
}

func (e *Engine) startLocked(profile models.SoundProfile) *Player {
	if e.current != nil {
		e.current.Stop()
		e.current = nil
	}

	player, err := e.startPlayer(profile)
	if err != nil {
		log.Printf("Sound playback failed: %v", err)
		return nil
	}

	e.current = player
	return player
}

// Stop halts any active playback. No-op when nothing is playing.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loop = nil
	if e.current != nil {
		e.current.Stop()
		e.current = nil
	}
}

// Preview plays the profile for a fixed short duration and then stops,
// unless some later playback has already taken over. A looping sound
// the preview displaced is started again afterwards, so auditioning a
// tone while an alarm rings does not leave the alarm silent.
func (e *Engine) Preview(profile models.SoundProfile) {
	e.mu.Lock()
	player := e.startLocked(profile)
	e.mu.Unlock()

	if player == nil {
		return
	}

	time.AfterFunc(e.previewDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.current != player {
			return
		}
		e.current.Stop()
		e.current = nil
		if e.loop != nil {
			e.startLocked(*e.loop)
		}
	})
}

// start resolves a profile into a looping player
func start(profile models.SoundProfile) (*Player, error) {
	if profile.Kind == models.SoundKindCustom {
		if len(profile.Custom) == 0 {
			return nil, errors.New("custom sound has no payload")
		}

		format, pcm, err := parseWAV(profile.Custom)
		if err != nil {
			return nil, err
		}
		if format.BitDepth != 16 {
			return nil, fmt.Errorf("unsupported %d-bit WAV, need 16-bit", format.BitDepth)
		}

		pcm = scalePCM16(pcm, profile.Gain())
		pcm = conformPCM16(format, pcm)

		return startLoop(synthFormat, pcm)
	}

	pcm := renderPreset(profile.Preset, profile.Gain())
	return startLoop(synthFormat, pcm)
}

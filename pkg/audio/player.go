package audio

import (
	"bytes"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// initAudioContext initializes the global audio context once. The
// context takes the format of the first sound played; oto supports a
// single context per process.
func initAudioContext(format *wavFormat) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// Player loops a block of PCM audio until stopped
type Player struct {
	stopChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

// startLoop begins looping the given PCM data in a goroutine and
// returns a Player handle for cancellation
func startLoop(format *wavFormat, pcm []byte) (*Player, error) {
	initAudioContext(format)

	if !audioCtxReady || globalAudioCtx == nil {
		return nil, errors.New("audio context not ready")
	}

	p := &Player{
		stopChan: make(chan struct{}),
	}

	go p.playLoop(pcm)

	return p, nil
}

func (p *Player) playLoop(pcm []byte) {
	for {
		// Create a new player for each loop iteration
		p.player = globalAudioCtx.NewPlayer(bytes.NewReader(pcm))

		// Play starts playing the sound and returns without waiting
		p.player.Play()

		// Wait for the sound to finish playing or stop signal
		for p.player.IsPlaying() {
			select {
			case <-p.stopChan:
				// Stop requested, pause and cleanup then exit
				p.player.Pause()
				p.player.Close()
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		// Close the player before creating a new one
		if err := p.player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}

		// Check if stop was requested between loops
		select {
		case <-p.stopChan:
			return
		default:
			// Continue looping
		}
	}
}

// Stop halts playback. Safe to call multiple times or on a nil player.
func (p *Player) Stop() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.stopped {
		p.stopped = true
		close(p.stopChan)

		// Also try to pause the current player if it exists
		if p.player != nil {
			p.player.Pause()
		}
	}
}

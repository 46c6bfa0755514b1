package audio

import (
	"encoding/binary"
	"math"

	"github.com/dosette/dosette/pkg/models"
)

// Synthesized presets render at a fixed format; the exact timbre of
// each preset is a replaceable asset, not a contract.
const (
	synthSampleRate = 44100
	synthChannels   = 1
)

var synthFormat = &wavFormat{
	SampleRate: synthSampleRate,
	Channels:   synthChannels,
	BitDepth:   16,
}

type waveShape int

const (
	waveSine waveShape = iota
	waveTriangle
)

// tonePattern describes one repetition of a preset: a tone with an
// amplitude envelope, padded with silence out to the repeat interval
type tonePattern struct {
	shape    waveShape
	freq     float64 // Hz
	duration float64 // audible seconds
	interval float64 // seconds between repetition starts
	envelope func(progress float64) float64
}

// decayEnvelope approximates an exponential ramp down to near silence
func decayEnvelope(progress float64) float64 {
	return math.Exp(-4.6 * progress)
}

// strikeEnvelope is a short linear attack followed by exponential decay
func strikeEnvelope(progress float64) float64 {
	const attack = 0.1
	if progress < attack {
		return progress / attack
	}
	return math.Exp(-4.6 * (progress - attack) / (1 - attack))
}

func presetPattern(name string) tonePattern {
	switch name {
	case models.PresetChime:
		return tonePattern{
			shape:    waveTriangle,
			freq:     600,
			duration: 1.5,
			interval: 2.0,
			envelope: decayEnvelope,
		}
	case models.PresetBell:
		return tonePattern{
			shape:    waveSine,
			freq:     400,
			duration: 1.0,
			interval: 1.5,
			envelope: strikeEnvelope,
		}
	default: // beep
		return tonePattern{
			shape:    waveSine,
			freq:     800,
			duration: 0.1,
			interval: 0.5,
			envelope: func(float64) float64 { return 1 },
		}
	}
}

func (w waveShape) sample(phase float64) float64 {
	switch w {
	case waveTriangle:
		// Triangle from the fractional phase, range -1..1
		frac := phase - math.Floor(phase)
		return 4*math.Abs(frac-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// renderPreset synthesizes one repetition cycle of the named preset as
// 16-bit little-endian PCM, scaled by the master gain. The cycle is
// looped by the player, which reproduces the preset's repeat interval.
func renderPreset(name string, gain float64) []byte {
	pattern := presetPattern(name)

	total := int(pattern.interval * synthSampleRate)
	audible := int(pattern.duration * synthSampleRate)
	out := make([]byte, total*2)

	const amplitude = 0.8 * 32767 // headroom below full scale

	for i := 0; i < audible; i++ {
		t := float64(i) / synthSampleRate
		progress := t / pattern.duration
		v := pattern.shape.sample(pattern.freq*t) * pattern.envelope(progress) * amplitude * gain
		binary.LittleEndian.PutUint16(out[i*2:i*2+2], uint16(int16(v)))
	}

	return out
}

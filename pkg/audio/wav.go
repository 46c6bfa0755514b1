package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// wavFormat holds WAV file format information
type wavFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// parseWAV parses a WAV file and returns the format and raw audio data
func parseWAV(data []byte) (*wavFormat, []byte, error) {
	reader := bytes.NewReader(data)

	// Read RIFF header
	riff := make([]byte, 4)
	if _, err := reader.Read(riff); err != nil {
		return nil, nil, err
	}
	if string(riff) != "RIFF" {
		return nil, nil, errors.New("not a RIFF file")
	}

	// Skip file size
	reader.Seek(4, io.SeekCurrent)

	// Read WAVE header
	wave := make([]byte, 4)
	if _, err := reader.Read(wave); err != nil {
		return nil, nil, err
	}
	if string(wave) != "WAVE" {
		return nil, nil, errors.New("not a WAVE file")
	}

	format := &wavFormat{}
	var dataStart int64
	var dataSize uint32

	// Read chunks
	for {
		chunkID := make([]byte, 4)
		if _, err := reader.Read(chunkID); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, err
		}

		switch string(chunkID) {
		case "fmt ":
			var audioFormat uint16
			binary.Read(reader, binary.LittleEndian, &audioFormat)

			var numChannels uint16
			binary.Read(reader, binary.LittleEndian, &numChannels)
			format.Channels = int(numChannels)

			var sampleRate uint32
			binary.Read(reader, binary.LittleEndian, &sampleRate)
			format.SampleRate = int(sampleRate)

			// Skip byte rate and block align
			reader.Seek(6, io.SeekCurrent)

			var bitsPerSample uint16
			binary.Read(reader, binary.LittleEndian, &bitsPerSample)
			format.BitDepth = int(bitsPerSample)

			// Skip any extra format bytes
			remaining := chunkSize - 16
			if remaining > 0 {
				reader.Seek(int64(remaining), io.SeekCurrent)
			}
		case "data":
			dataStart, _ = reader.Seek(0, io.SeekCurrent)
			dataSize = chunkSize
		default:
			// Skip unknown chunk
			reader.Seek(int64(chunkSize), io.SeekCurrent)
		}

		if dataSize > 0 {
			break
		}
	}

	if dataSize == 0 || format.SampleRate == 0 {
		return nil, nil, errors.New("missing fmt or data chunk")
	}

	audioData := make([]byte, dataSize)
	reader.Seek(dataStart, io.SeekStart)
	if _, err := io.ReadFull(reader, audioData); err != nil {
		return nil, nil, err
	}

	return format, audioData, nil
}

// ValidateCustomSound reports whether uploaded bytes are a WAV the
// player can decode, so the edit form can reject bad files up front
func ValidateCustomSound(data []byte) error {
	format, _, err := parseWAV(data)
	if err != nil {
		return err
	}
	if format.BitDepth != 16 {
		return fmt.Errorf("unsupported %d-bit WAV, need 16-bit", format.BitDepth)
	}
	return nil
}

// conformPCM16 remixes and resamples 16-bit PCM into the fixed playback
// format. The oto context is created once per process with one sample
// rate and channel count, so a custom sound recorded differently has to
// be converted before it reaches the player, or its frames get
// reinterpreted at the wrong rate.
func conformPCM16(format *wavFormat, pcm []byte) []byte {
	if format.SampleRate == synthFormat.SampleRate && format.Channels == synthFormat.Channels {
		return pcm
	}

	// Downmix to mono by averaging the channels of each frame
	frames := len(pcm) / 2 / format.Channels
	mono := make([]int16, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < format.Channels; c++ {
			offset := (i*format.Channels + c) * 2
			sum += int(int16(binary.LittleEndian.Uint16(pcm[offset : offset+2])))
		}
		mono[i] = int16(sum / format.Channels)
	}

	if format.SampleRate != synthFormat.SampleRate {
		mono = resamplePCM16(mono, format.SampleRate, synthFormat.SampleRate)
	}

	out := make([]byte, len(mono)*2)
	for i, sample := range mono {
		binary.LittleEndian.PutUint16(out[i*2:i*2+2], uint16(sample))
	}
	return out
}

// resamplePCM16 converts mono samples between rates by linear
// interpolation; good enough for short alert sounds
func resamplePCM16(samples []int16, fromRate, toRate int) []int16 {
	if len(samples) == 0 {
		return samples
	}

	outLen := int(int64(len(samples)) * int64(toRate) / int64(fromRate))
	out := make([]int16, outLen)
	step := float64(fromRate) / float64(toRate)

	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		a := float64(samples[idx])
		b := float64(samples[idx+1])
		out[i] = int16(a + (b-a)*frac)
	}
	return out
}

// scalePCM16 applies a 0.0-1.0 gain to 16-bit little-endian samples.
// Returns a new buffer; the input is left untouched.
func scalePCM16(pcm []byte, gain float64) []byte {
	out := make([]byte, len(pcm))
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(pcm[i : i+2]))
		scaled := float64(sample) * gain
		switch {
		case scaled > 32767:
			scaled = 32767
		case scaled < -32768:
			scaled = -32768
		}
		binary.LittleEndian.PutUint16(out[i:i+2], uint16(int16(scaled)))
	}
	return out
}

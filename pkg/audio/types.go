// ABOUTME: Audio type definitions
// ABOUTME: Defines audio format and float/int16 sample conversions
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// 16-bit PCM range constants
	MaxInt16 = 32767
	MinInt16 = -32768
)

// Format describes an audio stream format
type Format struct {
	SampleRate int
	Channels   int
}

// String returns a short human readable form, e.g. "44100Hz mono"
func (f Format) String() string {
	switch f.Channels {
	case 1:
		return fmt.Sprintf("%dHz mono", f.SampleRate)
	case 2:
		return fmt.Sprintf("%dHz stereo", f.SampleRate)
	}
	return fmt.Sprintf("%dHz %dch", f.SampleRate, f.Channels)
}

// FloatToInt16 converts an amplitude in [-1, 1] to 16-bit PCM with clipping
func FloatToInt16(sample float64) int16 {
	scaled := sample * MaxInt16
	if scaled > MaxInt16 {
		return MaxInt16
	}
	if scaled < MinInt16 {
		return MinInt16
	}
	return int16(math.Round(scaled))
}

// Int16ToFloat converts a 16-bit PCM sample to an amplitude in [-1, 1]
func Int16ToFloat(sample int16) float64 {
	if sample == MinInt16 {
		return -1
	}
	return float64(sample) / MaxInt16
}

// DecodeInt16LE converts little-endian 16-bit PCM bytes to amplitudes.
// A trailing odd byte is ignored.
func DecodeInt16LE(data []byte) []float64 {
	out := make([]float64, len(data)/2)
	for i := range out {
		out[i] = Int16ToFloat(int16(binary.LittleEndian.Uint16(data[i*2:])))
	}
	return out
}

// EncodeInt16LE converts amplitudes to little-endian 16-bit PCM bytes
func EncodeInt16LE(samples []float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(FloatToInt16(s)))
	}
	return out
}

// Downmix averages interleaved channels into a mono signal. Incomplete
// trailing frames are dropped.
func Downmix(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += samples[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

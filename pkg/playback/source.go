// ABOUTME: Audio sources for the playback controller
// ABOUTME: Sine test tone and MP3 files decoded to mono float samples
package playback

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/go-mp3"
	"github.com/harperreed/lofiwave/pkg/audio"
)

// DefaultSampleRate is used by generated sources
const DefaultSampleRate = 44100

// Source provides mono samples in [-1, 1]
type Source interface {
	// Read fills samples and returns the number written. io.EOF marks the end.
	Read(samples []float64) (int, error)
	// SampleRate returns the sample rate of the audio
	SampleRate() int
	// Metadata returns title and artist
	Metadata() (title, artist string)
	// Close closes the audio source
	Close() error
}

// NewSource creates a source from a file path. An empty path returns a test
// tone at freq Hz.
func NewSource(path string, freq float64) (Source, error) {
	if path == "" {
		return NewToneSource(freq, DefaultSampleRate), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		return NewMP3Source(path)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3)", ext)
	}
}

// ToneSource generates a sine test tone
type ToneSource struct {
	sampleIndex uint64
	sampleMu    sync.Mutex
	frequency   float64
	sampleRate  int
}

// NewToneSource creates a sine generator at freq Hz
func NewToneSource(freq float64, sampleRate int) *ToneSource {
	if freq <= 0 {
		freq = 440.0 // A4 note
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &ToneSource{
		frequency:  freq,
		sampleRate: sampleRate,
	}
}

func (s *ToneSource) Read(samples []float64) (int, error) {
	s.sampleMu.Lock()
	defer s.sampleMu.Unlock()

	for i := range samples {
		t := float64(s.sampleIndex+uint64(i)) / float64(s.sampleRate)
		samples[i] = math.Sin(2*math.Pi*s.frequency*t) * 0.5 // 50% volume
	}

	s.sampleIndex += uint64(len(samples))

	return len(samples), nil
}

func (s *ToneSource) SampleRate() int { return s.sampleRate }
func (s *ToneSource) Metadata() (string, string) {
	return fmt.Sprintf("Test Tone (%gHz)", s.frequency), "lofiwave"
}
func (s *ToneSource) Close() error { return nil }

// MP3Source reads from an MP3 file
type MP3Source struct {
	file    *os.File
	decoder *mp3.Decoder
	raw     []byte
	title   string
}

// NewMP3Source opens and decodes an MP3 file
func NewMP3Source(path string) (*MP3Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	// Extract filename as title
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	log.Printf("MP3 source: %s (%dHz)", title, decoder.SampleRate())

	return &MP3Source{
		file:    f,
		decoder: decoder,
		title:   title,
	}, nil
}

// Read decodes the next samples. go-mp3 always yields 16-bit stereo, which
// is downmixed to mono.
func (s *MP3Source) Read(samples []float64) (int, error) {
	const frameBytes = 4 // 2 channels * 2 bytes

	need := len(samples) * frameBytes
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	raw := s.raw[:need]

	n, err := io.ReadFull(s.decoder, raw)
	frames := n / frameBytes
	mono := audio.Downmix(audio.DecodeInt16LE(raw[:frames*frameBytes]), 2)
	copy(samples, mono)

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	if err != nil && err != io.EOF {
		return frames, fmt.Errorf("mp3 decode error: %w", err)
	}
	return frames, err
}

func (s *MP3Source) SampleRate() int { return s.decoder.SampleRate() }
func (s *MP3Source) Metadata() (string, string) {
	return s.title, ""
}
func (s *MP3Source) Close() error { return s.file.Close() }

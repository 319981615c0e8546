// ABOUTME: Tests for audio sources
// ABOUTME: Tests tone generation and source selection by file type
package playback

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestToneSource(t *testing.T) {
	src := NewToneSource(1000, 8000)

	buf := make([]float64, 8)
	n, err := src.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 samples, got %d", n)
	}

	// 1kHz at 8kHz: 8 samples per period, peak at index 2
	if buf[0] != 0 {
		t.Errorf("expected first sample 0, got %v", buf[0])
	}
	if math.Abs(buf[2]-0.5) > 1e-9 {
		t.Errorf("expected peak 0.5, got %v", buf[2])
	}
	if math.Abs(buf[6]+0.5) > 1e-9 {
		t.Errorf("expected trough -0.5, got %v", buf[6])
	}

	// Phase continues across reads
	next := make([]float64, 3)
	src.Read(next)
	if math.Abs(next[2]-buf[2]) > 1e-9 {
		t.Errorf("expected phase continuity, got %v vs %v", next[2], buf[2])
	}
}

func TestToneSourceDefaults(t *testing.T) {
	src := NewToneSource(0, 0)
	if src.SampleRate() != DefaultSampleRate {
		t.Errorf("expected %d, got %d", DefaultSampleRate, src.SampleRate())
	}
	title, _ := src.Metadata()
	if !strings.Contains(title, "440Hz") {
		t.Errorf("expected 440Hz in title, got %q", title)
	}
}

func TestNewSource(t *testing.T) {
	src, err := NewSource("", 220)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	if _, ok := src.(*ToneSource); !ok {
		t.Errorf("expected tone source, got %T", src)
	}

	if _, err := NewSource(filepath.Join(t.TempDir(), "missing.mp3"), 0); err == nil {
		t.Error("expected error for missing file")
	}

	wav := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(wav, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err = NewSource(wav, 0)
	if err == nil || !strings.Contains(err.Error(), "unsupported audio format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestNewMP3SourceInvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mp3")
	if err := os.WriteFile(path, []byte("not an mp3"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewMP3Source(path); err == nil {
		t.Error("expected decode error for invalid MP3")
	}
}

// testdata/silence.mp3 holds ten silent MPEG-1 Layer III frames, 44.1kHz
// stereo, 1152 samples per frame.
const silenceFrameSamples = 1152

func TestMP3SourceDecodesToMono(t *testing.T) {
	src, err := NewMP3Source(filepath.Join("testdata", "silence.mp3"))
	if err != nil {
		t.Fatalf("NewMP3Source: %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 {
		t.Errorf("expected 44100Hz, got %d", src.SampleRate())
	}
	if title, _ := src.Metadata(); title != "silence" {
		t.Errorf("expected title from filename, got %q", title)
	}

	// 1000 does not divide the frame size, so the last read is partial
	buf := make([]float64, 1000)
	total, reads, last := 0, 0, 0
	for {
		n, err := src.Read(buf)
		total += n
		reads++
		for _, v := range buf[:n] {
			if v < -1 || v > 1 {
				t.Fatalf("sample out of range: %v", v)
			}
			if math.Abs(v) > 1e-3 {
				t.Fatalf("expected silence, got %v", v)
			}
		}
		if errors.Is(err, io.EOF) {
			last = n
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if n != len(buf) {
			t.Fatalf("read %d: short read %d without EOF", reads, n)
		}
		if reads > 100 {
			t.Fatal("no EOF after 100 reads")
		}
	}

	// One mono sample per stereo frame pair
	if total%silenceFrameSamples != 0 {
		t.Errorf("expected whole MP3 frames, got %d samples", total)
	}
	if total < 9*silenceFrameSamples || total > 10*silenceFrameSamples {
		t.Errorf("expected about %d samples, got %d", 10*silenceFrameSamples, total)
	}
	if last != total%len(buf) {
		t.Errorf("expected final partial read of %d, got %d", total%len(buf), last)
	}
}

func TestNewSourcePicksMP3(t *testing.T) {
	src, err := NewSource(filepath.Join("testdata", "silence.mp3"), 0)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	defer src.Close()

	if _, ok := src.(*MP3Source); !ok {
		t.Errorf("expected *MP3Source, got %T", src)
	}
}

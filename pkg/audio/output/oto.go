// ABOUTME: Oto-based audio output implementation
// ABOUTME: Handles PCM playback with software volume control using oto library
package output

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/harperreed/lofiwave/pkg/audio"
)

// oto allows a single context per process
var (
	sharedCtx    *oto.Context
	sharedFormat audio.Format
	sharedMu     sync.Mutex
)

// Oto output implementation using oto library
type Oto struct {
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	format     audio.Format

	mu     sync.Mutex
	volume int
	ready  bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{
		volume: 100,
	}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ready {
		log.Printf("Audio output already initialized, reusing player")
		return nil
	}

	ctx, err := sharedContext(sampleRate, channels)
	if err != nil {
		return err
	}
	o.format = audio.Format{SampleRate: sampleRate, Channels: channels}

	// Create pipe for continuous streaming
	o.pipeReader, o.pipeWriter = io.Pipe()

	// Create persistent player that reads from the pipe
	o.player = ctx.NewPlayer(o.pipeReader)
	o.player.Play()

	o.ready = true

	log.Printf("Audio output initialized: %s", o.format)

	return nil
}

func sharedContext(sampleRate, channels int) (*oto.Context, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedCtx != nil {
		if sharedFormat.SampleRate != sampleRate || sharedFormat.Channels != channels {
			// oto cannot be reinitialized with a new format
			return nil, fmt.Errorf("audio context already open as %s", sharedFormat)
		}
		if err := sharedCtx.Resume(); err != nil {
			return nil, fmt.Errorf("failed to resume oto context: %w", err)
		}
		return sharedCtx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	sharedCtx = ctx
	sharedFormat = audio.Format{SampleRate: sampleRate, Channels: channels}
	return ctx, nil
}

// Write outputs audio samples (blocks until written)
func (o *Oto) Write(samples []float64) error {
	o.mu.Lock()
	if !o.ready {
		o.mu.Unlock()
		return fmt.Errorf("output not initialized")
	}
	w := o.pipeWriter
	data := audio.EncodeInt16LE(applyVolume(samples, o.volume))
	o.mu.Unlock()

	// Write to pipe (which feeds the persistent player)
	// This blocks until the player has consumed the data
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}

	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.pipeWriter != nil {
		o.pipeWriter.Close()
		o.pipeWriter = nil
	}
	if o.player != nil {
		o.player.Close()
		o.player = nil
	}
	if o.pipeReader != nil {
		o.pipeReader.Close()
		o.pipeReader = nil
	}
	if o.ready {
		if err := sharedCtx.Suspend(); err != nil {
			log.Printf("Error suspending oto context: %v", err)
		}
		o.ready = false
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	o.mu.Lock()
	o.volume = clampVolume(volume)
	o.mu.Unlock()
	log.Printf("Volume set to %d", clampVolume(volume))
}

// GetVolume returns current volume
func (o *Oto) GetVolume() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}

// applyVolume scales samples by volume percent
func applyVolume(samples []float64, volume int) []float64 {
	multiplier := float64(clampVolume(volume)) / 100.0
	if multiplier == 1 {
		return samples
	}

	result := make([]float64, len(samples))
	for i, sample := range samples {
		result[i] = sample * multiplier
	}
	return result
}

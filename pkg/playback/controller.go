// ABOUTME: Playback controller feeding a source into an audio output
// ABOUTME: Publishes the latest played sample for the waveform view
package playback

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/harperreed/lofiwave/pkg/audio/output"
)

// DefaultChunkSamples is the number of samples handed to the output at once
const DefaultChunkSamples = 1024

// State is the playback state
type State int

const (
	StateStopped State = iota
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ControllerConfig holds controller configuration
type ControllerConfig struct {
	// Source provides the audio to play
	Source Source

	// Output is the audio device
	Output output.Output

	// Volume is the initial volume (0-100). nil means 100; 0 starts muted.
	Volume *int

	// ChunkSamples is the write size in samples (default: 1024)
	ChunkSamples int

	// OutputRate is the device sample rate. Sources at other rates are
	// resampled. Zero plays at the source's own rate.
	OutputRate int

	// OnError is called when playback fails after Start
	OnError func(error)
}

// Stats contains playback statistics
type Stats struct {
	Chunks  int64
	Samples int64
	Ended   bool
}

// Controller plays a Source through an Output
type Controller struct {
	config ControllerConfig
	source Source
	output output.Output

	mu       sync.Mutex
	state    State
	starting bool // Open in progress, mu released
	volume   int

	latest    atomic.Uint64 // math.Float64bits of the newest sample
	hasSample atomic.Bool
	chunks    atomic.Int64
	samples   atomic.Int64
	ended     atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewController creates a stopped controller
func NewController(config ControllerConfig) (*Controller, error) {
	if config.Source == nil {
		return nil, fmt.Errorf("source is required")
	}
	if config.Output == nil {
		return nil, fmt.Errorf("output is required")
	}

	// Set defaults
	volume := 100
	if config.Volume != nil {
		volume = clampVolume(*config.Volume)
	}
	if config.ChunkSamples <= 0 {
		config.ChunkSamples = DefaultChunkSamples
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		config: config,
		source: Resampled(config.Source, config.OutputRate),
		output: config.Output,
		state:  StateStopped,
		volume: volume,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}, nil
}

// Start opens the output and begins playback. It moves the controller from
// Stopped to Playing; calling it again while Playing, or while another Start
// is still opening the device, does nothing. The lock is not held while the
// device opens, so State, Volume and SetVolume never wait on it.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StatePlaying || c.starting {
		c.mu.Unlock()
		return nil
	}
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return &EngineError{Op: "start", Err: fmt.Errorf("controller closed")}
	}
	if err := ctx.Err(); err != nil {
		c.mu.Unlock()
		return &EngineError{Op: "start", Err: err}
	}
	c.starting = true
	c.mu.Unlock()

	openErr := c.output.Open(c.source.SampleRate(), 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.starting = false

	if openErr != nil {
		return &EngineError{Op: "open output", Err: openErr}
	}
	if c.ctx.Err() != nil {
		// Closed while the device was opening
		if err := c.output.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
		return &EngineError{Op: "start", Err: fmt.Errorf("controller closed")}
	}
	if vc, ok := c.output.(output.VolumeControl); ok {
		vc.SetVolume(c.volume)
	}

	c.state = StatePlaying
	title, artist := c.source.Metadata()
	log.Printf("Playback started: %s %s (%dHz)", title, artist, c.source.SampleRate())

	go c.pump()
	return nil
}

// pump moves chunks from the source to the output until the source ends,
// an error occurs, or the controller is closed.
func (c *Controller) pump() {
	defer close(c.done)

	buf := make([]float64, c.config.ChunkSamples)
	for {
		if c.ctx.Err() != nil {
			return
		}

		n, err := c.source.Read(buf)
		if n > 0 {
			if werr := c.output.Write(buf[:n]); werr != nil {
				c.fail(fmt.Errorf("output write: %w", werr))
				return
			}
			c.publish(buf[n-1])
			c.chunks.Add(1)
			c.samples.Add(int64(n))
		}

		if err == io.EOF {
			log.Printf("Playback source ended after %d samples", c.samples.Load())
			c.ended.Store(true)
			return
		}
		if err != nil {
			c.fail(fmt.Errorf("source read: %w", err))
			return
		}
	}
}

func (c *Controller) publish(v float64) {
	c.latest.Store(math.Float64bits(v))
	c.hasSample.Store(true)
}

func (c *Controller) fail(err error) {
	if c.ctx.Err() != nil {
		// Closing the output unblocks Write with an error; not a fault
		return
	}
	log.Printf("Playback error: %v", err)
	if c.config.OnError != nil {
		c.config.OnError(err)
	}
}

// Sample returns the most recently played amplitude. ok is false until the
// first chunk has been played.
func (c *Controller) Sample() (float64, bool) {
	if !c.hasSample.Load() {
		return 0, false
	}
	return math.Float64frombits(c.latest.Load()), true
}

// Pause is not supported and leaves the state unchanged
func (c *Controller) Pause() error {
	return ErrPauseUnsupported
}

// State returns the current playback state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetVolume sets the volume (0-100)
func (c *Controller) SetVolume(volume int) {
	volume = clampVolume(volume)

	c.mu.Lock()
	c.volume = volume
	playing := c.state == StatePlaying
	c.mu.Unlock()

	if vc, ok := c.output.(output.VolumeControl); ok && playing {
		vc.SetVolume(volume)
	}
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

// Volume returns the current volume
func (c *Controller) Volume() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// Metadata returns the source title and artist
func (c *Controller) Metadata() (title, artist string) {
	return c.source.Metadata()
}

// Stats returns playback statistics
func (c *Controller) Stats() Stats {
	return Stats{
		Chunks:  c.chunks.Load(),
		Samples: c.samples.Load(),
		Ended:   c.ended.Load(),
	}
}

// Close stops playback and releases the output and source
func (c *Controller) Close() error {
	// A Start still opening the device re-checks ctx under this lock
	c.mu.Lock()
	c.cancel()
	playing := c.state == StatePlaying
	c.mu.Unlock()

	var firstErr error
	if playing {
		if err := c.output.Close(); err != nil {
			firstErr = fmt.Errorf("close output: %w", err)
		}
		<-c.done
	}
	if err := c.source.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close source: %w", err)
	}
	return firstErr
}

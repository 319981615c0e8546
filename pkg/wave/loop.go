// ABOUTME: Per-frame acquire, update and render loop
// ABOUTME: Pulls one sample per frame and redraws the scrolling waveform
package wave

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync/atomic"
	"time"
)

// Sampler reports the instantaneous amplitude in [-1, 1], or ok=false when
// no value is available. It must not block.
type Sampler interface {
	Sample() (value float64, ok bool)
}

// SamplerFunc adapts a function to Sampler
type SamplerFunc func() (float64, bool)

// Sample calls f
func (f SamplerFunc) Sample() (float64, bool) { return f() }

// Stats counts frames produced by a Loop
type Stats struct {
	Frames  uint64
	Skipped uint64 // frames with no sample available
	Latest  float64
}

// Loop is the render loop. Frame and Resize must be called from one
// goroutine only; Stop, Running and Stats may be called from anywhere.
type Loop struct {
	sampler Sampler
	buffer  *SampleBuffer
	style   Style
	width   int
	height  int

	running atomic.Bool
	frames  atomic.Uint64
	skipped atomic.Uint64
	latest  atomic.Uint64 // math.Float64bits of the newest buffered value
}

// NewLoop creates a running loop for a width x height surface. The buffer
// holds one sample per pixel column, seeded at the vertical midline.
func NewLoop(sampler Sampler, width, height int, style Style) (*Loop, error) {
	if sampler == nil {
		return nil, fmt.Errorf("sampler is required")
	}
	if height < 1 {
		return nil, fmt.Errorf("invalid surface height: %d", height)
	}

	buffer, err := NewSampleBuffer(width, float64(height)/2)
	if err != nil {
		return nil, err
	}

	l := &Loop{
		sampler: sampler,
		buffer:  buffer,
		style:   style,
		width:   width,
		height:  height,
	}
	l.running.Store(true)
	l.latest.Store(math.Float64bits(buffer.Latest()))
	return l, nil
}

// Normalize maps an amplitude in [-1, 1] to a vertical surface coordinate.
// Values outside the range are not clamped.
func Normalize(value float64, height int) float64 {
	half := float64(height) / 2
	return value*half + half
}

// Frame runs one iteration. It returns false once the loop has been
// stopped, in which case nothing is drawn and the host must not schedule
// another frame.
func (l *Loop) Frame(c Canvas) bool {
	if !l.running.Load() {
		return false
	}

	l.frames.Add(1)
	value, ok := l.sampler.Sample()
	if ok {
		y := Normalize(value, l.height)
		l.buffer.Write(Some(y))
		l.latest.Store(math.Float64bits(y))
	} else {
		l.skipped.Add(1)
	}

	l.render(c)
	return true
}

func (l *Loop) render(c Canvas) {
	w, h := float64(l.width), float64(l.height)

	c.Clear()
	c.FillRect(0, 0, w, h, l.style.Background)

	c.BeginPath()
	for x, y := range l.buffer.ReadOldestFirst() {
		if x == 0 {
			c.MoveTo(float64(x), y)
		} else {
			c.LineTo(float64(x), y)
		}
	}
	c.Stroke(l.style.Stroke, l.style.LineWidth)
}

// Resize re-creates the buffer for a new surface size. Existing samples are
// dropped.
func (l *Loop) Resize(width, height int) error {
	if width == l.width && height == l.height {
		return nil
	}
	if height < 1 {
		return fmt.Errorf("invalid surface height: %d", height)
	}

	buffer, err := NewSampleBuffer(width, float64(height)/2)
	if err != nil {
		return err
	}
	l.buffer = buffer
	l.latest.Store(math.Float64bits(buffer.Latest()))
	l.width = width
	l.height = height
	return nil
}

// Run drives the loop from a ticker at fps frames per second until ctx is
// done or the loop is stopped.
func (l *Loop) Run(ctx context.Context, fps int, c Canvas) error {
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate: %d", fps)
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	log.Printf("Render loop starting: %dx%d @ %d fps", l.width, l.height, fps)

	for {
		if !l.Frame(c) {
			log.Printf("Render loop stopped")
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Printf("Render loop stopping")
			return ctx.Err()
		}
	}
}

// Stop clears the run flag. The frame in progress, if any, completes.
func (l *Loop) Stop() {
	l.running.Store(false)
}

// Running reports whether the loop will draw another frame
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Stats returns frame counters
func (l *Loop) Stats() Stats {
	return Stats{
		Frames:  l.frames.Load(),
		Skipped: l.skipped.Load(),
		Latest:  math.Float64frombits(l.latest.Load()),
	}
}

// Buffer returns the sample buffer. Callers must not write to it.
func (l *Loop) Buffer() *SampleBuffer {
	return l.buffer
}

// Size returns the surface dimensions the loop draws into
func (l *Loop) Size() (width, height int) {
	return l.width, l.height
}

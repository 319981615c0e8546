// ABOUTME: Fixed-capacity circular store of recent samples
// ABOUTME: Oldest-first reads feed the scrolling polyline
package wave

import "fmt"

// Sample is an optional amplitude. A zero Sample carries no value.
type Sample struct {
	Value float64
	Valid bool
}

// None is the "no value" sentinel returned when no sample is available yet.
var None = Sample{}

// Some wraps v as a present sample
func Some(v float64) Sample {
	return Sample{Value: v, Valid: true}
}

// SampleBuffer holds exactly capacity values and a write cursor.
// It has a single owner and is not safe for concurrent use.
type SampleBuffer struct {
	values []float64
	cursor int
}

// NewSampleBuffer creates a buffer with every slot set to seed
func NewSampleBuffer(capacity int, seed float64) (*SampleBuffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("invalid buffer capacity: %d", capacity)
	}

	b := &SampleBuffer{values: make([]float64, capacity)}
	b.Reset(seed)
	return b, nil
}

// Write stores s at the cursor and advances it. Invalid samples are ignored.
func (b *SampleBuffer) Write(s Sample) {
	if !s.Valid {
		return
	}
	b.values[b.cursor] = s.Value
	b.cursor = (b.cursor + 1) % len(b.values)
}

// With returns a copy of the buffer with s written, leaving b unchanged
func (b *SampleBuffer) With(s Sample) *SampleBuffer {
	next := &SampleBuffer{
		values: append([]float64(nil), b.values...),
		cursor: b.cursor,
	}
	next.Write(s)
	return next
}

// ReadOldestFirst returns the contents starting at the cursor and wrapping
// around, so the newest value is last.
func (b *SampleBuffer) ReadOldestFirst() []float64 {
	out := make([]float64, 0, len(b.values))
	out = append(out, b.values[b.cursor:]...)
	out = append(out, b.values[:b.cursor]...)
	return out
}

// Latest returns the most recently written value
func (b *SampleBuffer) Latest() float64 {
	n := len(b.values)
	return b.values[(b.cursor+n-1)%n]
}

// Reset seeds every slot with seed and rewinds the cursor
func (b *SampleBuffer) Reset(seed float64) {
	for i := range b.values {
		b.values[i] = seed
	}
	b.cursor = 0
}

// Capacity returns the number of slots
func (b *SampleBuffer) Capacity() int { return len(b.values) }

// Cursor returns the slot the next write goes to
func (b *SampleBuffer) Cursor() int { return b.cursor }

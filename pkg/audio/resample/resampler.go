// ABOUTME: Streaming linear resampler for mono float audio
// ABOUTME: Used to feed sources at any rate into a fixed-rate output
package resample

import "math"

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	ratio      float64
	position   float64
	last       float64
	primed     bool
	buf        []float64
}

// New creates a new resampler
func New(inputRate, outputRate int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts input at inputRate into output at outputRate and returns
// the number of samples written. output must hold at least
// OutputSamplesNeeded(len(input)) samples.
func (r *Resampler) Resample(input []float64, output []float64) int {
	if len(input) == 0 {
		return 0
	}

	// Prepend the previous chunk's last sample so interpolation spans the seam
	r.buf = r.buf[:0]
	if r.primed {
		r.buf = append(r.buf, r.last)
	}
	r.buf = append(r.buf, input...)

	end := len(r.buf) - 1
	outIdx := 0
	for outIdx < len(output) && r.position < float64(end) {
		i := int(r.position)
		frac := r.position - float64(i)
		output[outIdx] = r.buf[i]*(1.0-frac) + r.buf[i+1]*frac
		outIdx++
		r.position += r.ratio
	}

	// Rebase position onto the carried sample at index 0 of the next chunk
	r.position -= float64(end)
	if r.position < 0 {
		r.position = 0
	}
	r.last = r.buf[end]
	r.primed = true

	return outIdx
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0
	r.last = 0
	r.primed = false
}

// Ratio returns inputRate / outputRate
func (r *Resampler) Ratio() float64 { return r.ratio }

// OutputSamplesNeeded returns an output size large enough for inputSamples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	return int(math.Ceil(float64(inputSamples)/r.ratio)) + 1
}

// InputSamplesNeeded estimates how many input samples produce outputSamples
func (r *Resampler) InputSamplesNeeded(outputSamples int) int {
	n := int(math.Ceil(float64(outputSamples) * r.ratio))
	if n < 1 {
		n = 1
	}
	return n
}

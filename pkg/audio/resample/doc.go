// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts mono audio between sample rates across chunk boundaries
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates. The last
// input sample of each chunk is carried into the next one so a stream can be
// converted chunk by chunk without clicks at the seams.
//
// Example:
//
//	r := resample.New(48000, 44100)
//	out := make([]float64, r.OutputSamplesNeeded(len(in)))
//	n := r.Resample(in, out)
package resample

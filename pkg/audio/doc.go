// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and float/PCM sample conversion functions
// Package audio provides the sample representation shared by sources,
// outputs and the waveform view.
//
// Samples travel through the player as mono float64 amplitudes in [-1, 1].
// Conversions to and from 16-bit PCM happen only at the edges: when a file
// is decoded and when samples are handed to the sound card.
//
// Example:
//
//	pcm := audio.FloatToInt16(0.5)   // 16383
//	amp := audio.Int16ToFloat(pcm)   // ~0.5
//	mono := audio.Downmix(stereo, 2) // average interleaved channels
package audio

// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface and oto implementation
// Package output provides audio playback interfaces.
//
// The oto backend streams 16-bit PCM to the system sound card on desktop
// platforms and to Web Audio when built for js/wasm.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(44100, 1)
//	err = out.Write(samples)
package output

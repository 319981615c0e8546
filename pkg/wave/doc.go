// ABOUTME: Scrolling waveform core package
// ABOUTME: Sample ring buffer and per-frame render loop
// Package wave keeps the most recent amplitude samples in a fixed ring and
// redraws them as a scrolling polyline once per display refresh.
//
// The package owns no scheduling primitive. A host (terminal, window,
// headless ticker) calls Loop.Frame once per refresh and keeps calling it
// for as long as Frame returns true.
//
// Example:
//
//	loop, err := wave.NewLoop(controller, 640, 200, wave.DefaultStyle())
//	for loop.Frame(canvas) {
//	    waitForNextRefresh()
//	}
package wave

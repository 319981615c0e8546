// ABOUTME: Playback controller package
// ABOUTME: Starts audio output and exposes the instantaneous sample
// Package playback drives an audio Source into an output device and exposes
// the most recently played amplitude to visualizers.
//
// A Controller starts Stopped. Start opens the output and begins playback;
// there is no way back to Stopped short of Close. Sample never blocks and
// reports ok=false until audio is flowing.
//
// Example:
//
//	src, err := playback.NewSource("", 440)
//	ctrl, err := playback.NewController(playback.ControllerConfig{
//	    Source: src,
//	    Output: output.NewOto(),
//	})
//	err = ctrl.Start(ctx)
//	v, ok := ctrl.Sample()
package playback

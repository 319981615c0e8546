// ABOUTME: Playback error types
// ABOUTME: Engine start failures and unsupported operations
package playback

import (
	"errors"
	"fmt"
)

// ErrPauseUnsupported is returned by Pause; playback cannot be paused
var ErrPauseUnsupported = errors.New("pause is not supported")

// EngineError reports that the audio engine could not acquire a resource
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("audio engine: %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the waveform player
package ui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/lofiwave/pkg/playback"
	"github.com/harperreed/lofiwave/pkg/wave"
)

// Engine is the playback side the TUI drives
type Engine interface {
	wave.Sampler
	Start(ctx context.Context) error
	Pause() error
	State() playback.State
	SetVolume(volume int)
	Volume() int
	Metadata() (title, artist string)
}

// Control holds channels for communication with main
type Control struct {
	Quit chan struct{}
}

// NewControl creates a new control handler
func NewControl() *Control {
	return &Control{
		Quit: make(chan struct{}, 1),
	}
}

// Options configures the TUI
type Options struct {
	FPS   int
	Style wave.Style
}

// Run creates the TUI program. The caller runs it.
func Run(engine Engine, ctrl *Control, opts Options) (*tea.Program, error) {
	m, err := NewModel(engine, ctrl, opts)
	if err != nil {
		return nil, err
	}
	log.Printf("TUI ready: %d fps", m.fps)
	return tea.NewProgram(m, tea.WithAltScreen()), nil
}

// ABOUTME: Main player application orchestration
// ABOUTME: Coordinates audio source, playback controller and the hosts
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/harperreed/lofiwave/internal/braille"
	"github.com/harperreed/lofiwave/internal/config"
	"github.com/harperreed/lofiwave/internal/ui"
	"github.com/harperreed/lofiwave/internal/version"
	"github.com/harperreed/lofiwave/pkg/audio/output"
	"github.com/harperreed/lofiwave/pkg/playback"
	"github.com/harperreed/lofiwave/pkg/wave"
)

// statsInterval is how often headless mode logs render stats
const statsInterval = 2 * time.Second

// Player represents the main player application
type Player struct {
	config     *config.Config
	sessionID  string
	style      wave.Style
	controller *playback.Controller
	statsEvery time.Duration

	tuiProg atomic.Pointer[tea.Program]
}

// New creates a player for cfg playing through out
func New(cfg *config.Config, out output.Output) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	style, err := cfg.View.Style()
	if err != nil {
		return nil, err
	}

	source, err := playback.NewSource(cfg.Audio.Source, cfg.Audio.Frequency)
	if err != nil {
		return nil, fmt.Errorf("audio source: %w", err)
	}

	p := &Player{
		config:     cfg,
		sessionID:  uuid.New().String(),
		style:      style,
		statsEvery: statsInterval,
	}

	volume := cfg.Audio.Volume
	p.controller, err = playback.NewController(playback.ControllerConfig{
		Source:       source,
		Output:       out,
		Volume:       &volume,
		ChunkSamples: cfg.Audio.ChunkSamples,
		OutputRate:   playback.DefaultSampleRate,
		OnError:      p.onPlaybackError,
	})
	if err != nil {
		source.Close()
		return nil, err
	}

	title, artist := source.Metadata()
	log.Printf("%s session %s: source %q %q", version.String(), p.sessionID, title, artist)

	return p, nil
}

// SessionID identifies this run in the logs
func (p *Player) SessionID() string { return p.sessionID }

// Controller returns the playback controller
func (p *Player) Controller() *playback.Controller { return p.controller }

// Style returns the configured waveform style
func (p *Player) Style() wave.Style { return p.style }

func (p *Player) onPlaybackError(err error) {
	if prog := p.tuiProg.Load(); prog != nil {
		prog.Send(ui.StatusMsg{Err: err})
	}
}

// RunTUI runs the terminal UI until the user quits
func (p *Player) RunTUI(ctrl *ui.Control) error {
	prog, err := ui.Run(p.controller, ctrl, ui.Options{
		FPS:   p.config.View.FPS,
		Style: p.style,
	})
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	p.tuiProg.Store(prog)

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Quit asks a running TUI to exit
func (p *Player) Quit() {
	if prog := p.tuiProg.Load(); prog != nil {
		prog.Quit()
	}
}

// RunHeadless starts playback immediately and renders off-screen, logging
// render stats until ctx is done. Start failures are logged, not returned.
func (p *Player) RunHeadless(ctx context.Context) error {
	canvas := braille.New(p.config.View.Width/2, p.config.View.Height/4)
	w, h := canvas.Size()

	loop, err := wave.NewLoop(p.controller, w, h, p.style)
	if err != nil {
		return fmt.Errorf("create render loop: %w", err)
	}

	if err := p.controller.Start(ctx); err != nil {
		log.Printf("Engine start failed: %v", err)
	}

	done := make(chan struct{})
	defer close(done)
	go p.logStats(loop, done)

	err = loop.Run(ctx, p.config.View.FPS, canvas)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logStats periodically logs render and playback statistics
func (p *Player) logStats(loop *wave.Loop, done <-chan struct{}) {
	ticker := time.NewTicker(p.statsEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rs := loop.Stats()
			ps := p.controller.Stats()
			log.Printf("render: frames=%d skipped=%d y=%.1f running=%v",
				rs.Frames, rs.Skipped, rs.Latest, loop.Running())
			log.Printf("playback: state=%s chunks=%d samples=%d ended=%v",
				p.controller.State(), ps.Chunks, ps.Samples, ps.Ended)
		case <-done:
			return
		}
	}
}

// Close stops playback and releases audio resources
func (p *Player) Close() error {
	return p.controller.Close()
}

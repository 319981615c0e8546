// ABOUTME: Ebiten game hosting the render loop in a window or browser tab
// ABOUTME: Draw runs one loop frame per display refresh
package window

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/harperreed/lofiwave/internal/version"
	"github.com/harperreed/lofiwave/pkg/playback"
	"github.com/harperreed/lofiwave/pkg/wave"
)

// Engine is the playback side the window drives
type Engine interface {
	wave.Sampler
	Start(ctx context.Context) error
	Pause() error
	State() playback.State
}

// Options configures the window
type Options struct {
	Width  int
	Height int
	Style  wave.Style
	Title  string
}

// Game implements ebiten.Game
type Game struct {
	engine Engine
	loop   *wave.Loop
	canvas *Canvas
	width  int
	height int

	starting atomic.Bool
	status   atomic.Value // string
}

// NewGame creates a game with a running render loop
func NewGame(engine Engine, opts Options) (*Game, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if opts.Style.Stroke == nil {
		opts.Style = wave.DefaultStyle()
	}

	loop, err := wave.NewLoop(engine, opts.Width, opts.Height, opts.Style)
	if err != nil {
		return nil, fmt.Errorf("create render loop: %w", err)
	}

	g := &Game{
		engine: engine,
		loop:   loop,
		canvas: NewCanvas(opts.Width, opts.Height),
		width:  opts.Width,
		height: opts.Height,
	}
	g.status.Store("space/click: play")
	return g, nil
}

// Run opens the window and blocks until it is closed
func Run(engine Engine, opts Options) error {
	g, err := NewGame(engine, opts)
	if err != nil {
		return err
	}

	title := opts.Title
	if title == "" {
		title = version.String()
	}
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(title)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update handles input
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.loop.Stop()
	}
	if !g.loop.Running() {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.togglePlayback()
	}
	return nil
}

// togglePlayback starts the engine in the background; pausing is not
// supported.
func (g *Game) togglePlayback() {
	if g.engine.State() == playback.StatePlaying {
		if err := g.engine.Pause(); err != nil {
			log.Printf("Pause ignored: %v", err)
		}
		return
	}

	if !g.starting.CompareAndSwap(false, true) {
		return
	}
	g.status.Store("starting...")

	go func() {
		defer g.starting.Store(false)
		if err := g.engine.Start(context.Background()); err != nil {
			log.Printf("Engine start failed: %v", err)
			g.status.Store("audio unavailable: " + err.Error())
			return
		}
		g.status.Store("playing")
	}()
}

// Draw runs one render loop frame onto the screen
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.SetTarget(screen)
	g.loop.Frame(g.canvas)
	ebitenutil.DebugPrint(screen, g.Status())
}

// Layout keeps the surface at its configured size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Status returns the overlay text
func (g *Game) Status() string {
	return g.status.Load().(string)
}

// ABOUTME: Bubbletea model for the waveform player
// ABOUTME: Schedules render frames and handles the start control
package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/harperreed/lofiwave/internal/braille"
	"github.com/harperreed/lofiwave/internal/version"
	"github.com/harperreed/lofiwave/pkg/playback"
	"github.com/harperreed/lofiwave/pkg/wave"
)

const (
	defaultFPS  = 60
	defaultCols = 80
	defaultRows = 16

	// header, status and help lines around the canvas
	chromeRows = 4
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Model represents the TUI state
type Model struct {
	engine Engine
	ctrl   *Control

	// Render loop
	loop   *wave.Loop
	canvas *braille.Canvas
	fps    int

	// Playback
	state   string
	volume  int
	title   string
	artist  string
	lastErr string
	notice  string

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int
}

type frameMsg time.Time

type engineStartedMsg struct {
	err error
}

// StatusMsg reports out-of-band events, such as playback errors
type StatusMsg struct {
	Err    error
	Notice string
}

// NewModel creates a new TUI model with a running render loop
func NewModel(engine Engine, ctrl *Control, opts Options) (Model, error) {
	if engine == nil {
		return Model{}, fmt.Errorf("engine is required")
	}
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.Style.Stroke == nil {
		opts.Style = wave.DefaultStyle()
	}

	canvas := braille.New(defaultCols, defaultRows)
	w, h := canvas.Size()
	loop, err := wave.NewLoop(engine, w, h, opts.Style)
	if err != nil {
		return Model{}, fmt.Errorf("create render loop: %w", err)
	}

	title, artist := engine.Metadata()
	return Model{
		engine: engine,
		ctrl:   ctrl,
		loop:   loop,
		canvas: canvas,
		fps:    opts.FPS,
		state:  engine.State().String(),
		volume: engine.Volume(),
		title:  title,
		artist: artist,
	}, nil
}

// Init schedules the first frame
func (m Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if m.loop.Frame(m.canvas) {
			return m, m.nextFrame()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case engineStartedMsg:
		if msg.err != nil {
			log.Printf("Engine start failed: %v", msg.err)
			m.lastErr = msg.err.Error()
		} else {
			m.lastErr = ""
		}
		m.state = m.engine.State().String()

	case StatusMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err.Error()
		}
		if msg.Notice != "" {
			m.notice = msg.Notice
		}
	}

	return m, nil
}

// resize fits the canvas to the terminal, leaving room for the chrome
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	cols, rows := width, height-chromeRows
	if cols < 1 || rows < 1 {
		return
	}
	if c, r := m.canvas.Cells(); c == cols && r == rows {
		return
	}

	canvas := braille.New(cols, rows)
	w, h := canvas.Size()
	if err := m.loop.Resize(w, h); err != nil {
		log.Printf("Resize failed: %v", err)
		return
	}
	m.canvas = canvas
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.loop.Stop()
		if m.ctrl != nil {
			select {
			case m.ctrl.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case " ", "p", "enter":
		return m.togglePlayback()
	case "up":
		m.setVolume(m.volume + 5)
	case "down":
		m.setVolume(m.volume - 5)
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// togglePlayback starts playback once; pausing is not supported
func (m Model) togglePlayback() (tea.Model, tea.Cmd) {
	if m.engine.State() == playback.StateStopped {
		if m.state == "starting" {
			return m, nil
		}
		m.state = "starting"
		m.lastErr = ""
		engine := m.engine
		return m, func() tea.Msg {
			return engineStartedMsg{err: engine.Start(context.Background())}
		}
	}

	if err := m.engine.Pause(); err != nil {
		if errors.Is(err, playback.ErrPauseUnsupported) {
			log.Printf("Pause requested while playing, ignoring")
			m.notice = "pause not supported"
		} else {
			m.lastErr = err.Error()
		}
	}
	return m, nil
}

func (m *Model) setVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	m.volume = volume
	m.engine.SetVolume(volume)
}

// View renders the TUI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.canvas.String())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderHeader renders product, playback state and track
func (m Model) renderHeader() string {
	track := m.title
	if m.artist != "" {
		track = m.artist + " - " + m.title
	}
	return titleStyle.Render(version.String()) + "  " +
		headerStyle.Render("State: ") + valueStyle.Render(m.state) + "  " +
		headerStyle.Render("Source: ") + valueStyle.Render(truncate(track, 40))
}

// renderStatus renders volume, frame stats and the last error
func (m Model) renderStatus() string {
	s := headerStyle.Render("Volume: ") + valueStyle.Render(fmt.Sprintf("[%s] %d%%", renderBar(m.volume, 100, 10), m.volume))

	if m.showDebug {
		stats := m.loop.Stats()
		s += valueStyle.Render(fmt.Sprintf("  frames: %d  skipped: %d  y: %.1f", stats.Frames, stats.Skipped, stats.Latest))
	}
	if m.notice != "" {
		s += "  " + valueStyle.Render(m.notice)
	}
	if m.lastErr != "" {
		s += "  " + errorStyle.Render("error: "+truncate(m.lastErr, 60))
	}
	return s
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return helpStyle.Render("space:Play  ↑/↓:Volume  d:Debug  q:Quit")
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

// truncate shortens s to length terminal cells, never splitting a rune
func truncate(s string, length int) string {
	return ansi.Truncate(s, length, "...")
}

// ABOUTME: Entry point for the lofiwave window player
// ABOUTME: Opens an ebiten window with the scrolling waveform
package main

import (
	"flag"
	"log"

	"github.com/harperreed/lofiwave/internal/app"
	"github.com/harperreed/lofiwave/internal/version"
	"github.com/harperreed/lofiwave/internal/window"
	"github.com/harperreed/lofiwave/pkg/audio/output"
)

var flags = app.RegisterFlags(flag.CommandLine)

func main() {
	flag.Parse()

	cfg, err := flags.Config(flag.CommandLine)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logs := app.SetupLogging(cfg.Logging, true)
	defer func() { _ = logs.Close() }()

	player, err := app.New(cfg, output.NewOto())
	if err != nil {
		log.Fatalf("Failed to create player: %v", err)
	}
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("Error closing player: %v", err)
		}
	}()

	err = window.Run(player.Controller(), window.Options{
		Width:  cfg.View.Width,
		Height: cfg.View.Height,
		Style:  player.Style(),
		Title:  version.String(),
	})
	if err != nil {
		log.Printf("Window error: %v", err)
	}
}

// ABOUTME: Entry point for the lofiwave terminal player
// ABOUTME: Parses CLI flags and starts the player application
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/lofiwave/internal/app"
	"github.com/harperreed/lofiwave/internal/ui"
	"github.com/harperreed/lofiwave/internal/version"
	"github.com/harperreed/lofiwave/pkg/audio/output"
)

var (
	flags      = app.RegisterFlags(flag.CommandLine)
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
)

func main() {
	flag.Parse()

	// Determine if we should use TUI or streaming logs
	useTUI := !(*noTUI || *streamLogs)

	cfg, err := flags.Config(flag.CommandLine)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logs := app.SetupLogging(cfg.Logging, !useTUI)
	defer func() { _ = logs.Close() }()

	player, err := app.New(cfg, output.NewOto())
	if err != nil {
		log.Fatalf("Failed to create player: %v", err)
	}
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("Error closing player: %v", err)
		}
		log.Printf("Player stopped")
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if !useTUI {
		log.Printf("Starting %s", version.String())
		log.Printf("TUI disabled - streaming logs")

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-sigChan
			log.Printf("Shutdown signal received")
			cancel()
		}()

		if err := player.RunHeadless(ctx); err != nil {
			log.Printf("Render loop stopped: %v", err)
		}
		return
	}

	ctrl := ui.NewControl()
	go func() {
		select {
		case <-ctrl.Quit:
			log.Printf("Received quit signal from TUI")
		case <-sigChan:
			log.Printf("Shutdown signal received")
			player.Quit()
		}
	}()

	if err := player.RunTUI(ctrl); err != nil {
		log.Printf("%v", err)
	}
}

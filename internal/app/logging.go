// ABOUTME: Log output setup with file rotation
// ABOUTME: Routes the standard logger to a rotating file and optionally stdout
package app

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/harperreed/lofiwave/internal/config"
)

// SetupLogging points the standard logger at the configured log file. In
// TUI mode the terminal belongs to the UI, so stdout is only added when
// toStdout is set. The returned closer flushes the file.
func SetupLogging(cfg config.LoggingConfig, toStdout bool) io.Closer {
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	if toStdout {
		log.SetOutput(io.MultiWriter(os.Stdout, file))
	} else {
		log.SetOutput(file)
	}
	return file
}

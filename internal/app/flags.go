// ABOUTME: Command line flags shared by the player entrypoints
// ABOUTME: Layers explicitly set flags over the YAML config file
package app

import (
	"flag"

	"github.com/harperreed/lofiwave/internal/config"
)

// Flags holds the command line options common to every host
type Flags struct {
	ConfigPath string
	Source     string
	Frequency  float64
	Width      int
	Height     int
	FPS        int
	Volume     int
	LogFile    string
}

// RegisterFlags defines the shared flags on fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	def := config.Default()
	f := &Flags{}

	fs.StringVar(&f.ConfigPath, "config", "", "Config file path (default: ~/.config/lofiwave/config.yaml)")
	fs.StringVar(&f.Source, "audio", def.Audio.Source, "MP3 file to play (default: test tone)")
	fs.Float64Var(&f.Frequency, "freq", def.Audio.Frequency, "Test tone frequency in Hz")
	fs.IntVar(&f.Width, "width", def.View.Width, "Waveform width in pixels")
	fs.IntVar(&f.Height, "height", def.View.Height, "Waveform height in pixels")
	fs.IntVar(&f.FPS, "fps", def.View.FPS, "Frames per second")
	fs.IntVar(&f.Volume, "volume", def.Audio.Volume, "Initial volume (0-100)")
	fs.StringVar(&f.LogFile, "log-file", def.Logging.File, "Log file path")
	return f
}

// Config loads the config file and applies the flags set on fs
func (f *Flags) Config(fs *flag.FlagSet) (*config.Config, error) {
	path := f.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "audio":
			cfg.Audio.Source = f.Source
		case "freq":
			cfg.Audio.Frequency = f.Frequency
		case "width":
			cfg.View.Width = f.Width
		case "height":
			cfg.View.Height = f.Height
		case "fps":
			cfg.View.FPS = f.FPS
		case "volume":
			cfg.Audio.Volume = f.Volume
		case "log-file":
			cfg.Logging.File = f.LogFile
		}
	})

	return cfg, cfg.Validate()
}

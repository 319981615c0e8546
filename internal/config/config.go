// ABOUTME: YAML configuration parsing and validation
// ABOUTME: Defines player, view and logging settings with defaults
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	View    ViewConfig    `yaml:"view"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

type ViewConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	Background string  `yaml:"background"`
	Stroke     string  `yaml:"stroke"`
	LineWidth  float64 `yaml:"line_width"`
}

type AudioConfig struct {
	Source       string  `yaml:"source"`
	Frequency    float64 `yaml:"frequency"`
	Volume       int     `yaml:"volume"`
	ChunkSamples int     `yaml:"chunk_samples"`
}

type LoggingConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Width:      800,
			Height:     200,
			FPS:        60,
			Background: "#2a1b3d",
			Stroke:     "#ffffff",
			LineWidth:  2,
		},
		Audio: AudioConfig{
			Frequency:    440,
			Volume:       100,
			ChunkSamples: 1024,
		},
		Logging: LoggingConfig{
			File:       "lofiwave.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads a YAML file over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// DefaultPath returns the first existing user config file, or "" if none
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	paths := []string{
		filepath.Join(home, ".config", "lofiwave", "config.yaml"),
		filepath.Join(home, ".config", "lofiwave", "config.yml"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks ranges and color syntax
func (c *Config) Validate() error {
	if c.View.Width < 1 || c.View.Height < 1 {
		return fmt.Errorf("view size must be positive, got %dx%d", c.View.Width, c.View.Height)
	}
	if c.View.FPS < 1 || c.View.FPS > 240 {
		return fmt.Errorf("fps must be between 1 and 240, got %d", c.View.FPS)
	}
	if c.View.LineWidth <= 0 {
		return fmt.Errorf("line_width must be positive, got %v", c.View.LineWidth)
	}
	if _, err := ParseHexColor(c.View.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := ParseHexColor(c.View.Stroke); err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}
	if c.Audio.Frequency <= 0 {
		return fmt.Errorf("frequency must be positive, got %v", c.Audio.Frequency)
	}
	if c.Audio.ChunkSamples < 1 {
		return fmt.Errorf("chunk_samples must be positive, got %d", c.Audio.ChunkSamples)
	}
	return nil
}

// ParseHexColor parses "#rgb" or "#rrggbb"
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

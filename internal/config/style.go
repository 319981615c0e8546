// ABOUTME: Conversion of view settings to waveform style
// ABOUTME: Parses configured colors into a wave.Style
package config

import (
	"fmt"

	"github.com/harperreed/lofiwave/pkg/wave"
)

// Style returns the waveform style described by the view settings
func (v ViewConfig) Style() (wave.Style, error) {
	bg, err := ParseHexColor(v.Background)
	if err != nil {
		return wave.Style{}, fmt.Errorf("background: %w", err)
	}
	stroke, err := ParseHexColor(v.Stroke)
	if err != nil {
		return wave.Style{}, fmt.Errorf("stroke: %w", err)
	}
	return wave.Style{
		Background: bg,
		Stroke:     stroke,
		LineWidth:  v.LineWidth,
	}, nil
}

// ABOUTME: Drawing surface abstraction for the render loop
// ABOUTME: Clear, solid fill and a single stroked polyline
package wave

import "image/color"

// Canvas is a fixed-size 2D surface. Points outside the surface are the
// canvas's concern to clip.
type Canvas interface {
	// Size returns the surface dimensions in pixels
	Size() (width, height int)

	// Clear erases the whole surface
	Clear()

	// FillRect fills a rectangle with a solid color
	FillRect(x, y, w, h float64, c color.Color)

	// BeginPath discards any pending path
	BeginPath()

	// MoveTo starts a new subpath at (x, y)
	MoveTo(x, y float64)

	// LineTo extends the current subpath to (x, y)
	LineTo(x, y float64)

	// Stroke draws the pending path
	Stroke(c color.Color, width float64)
}

// Style holds the fixed visual constants of the waveform
type Style struct {
	Background color.Color
	Stroke     color.Color
	LineWidth  float64
}

// DefaultStyle is a white 2px line on dark purple
func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{R: 0x2a, G: 0x1b, B: 0x3d, A: 0xff},
		Stroke:     color.White,
		LineWidth:  2,
	}
}

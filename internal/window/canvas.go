// ABOUTME: Ebiten-backed drawing surface
// ABOUTME: Fills and strokes the waveform onto the frame's screen image
package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas draws onto the *ebiten.Image passed to Draw. The target changes
// every frame; the size does not.
type Canvas struct {
	target *ebiten.Image
	width  int
	height int
	path   [][2]float32
}

// NewCanvas creates a width x height surface with no target yet
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

// SetTarget sets the image the next frame draws to
func (c *Canvas) SetTarget(img *ebiten.Image) {
	c.target = img
}

func (c *Canvas) Size() (int, int) { return c.width, c.height }

func (c *Canvas) Clear() {
	c.target.Clear()
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	vector.DrawFilledRect(c.target, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path[:0], [2]float32{float32(x), float32(y)})
}

func (c *Canvas) LineTo(x, y float64) {
	c.path = append(c.path, [2]float32{float32(x), float32(y)})
}

// Stroke draws the path as joined segments. Clipping to the image bounds
// is left to ebiten.
func (c *Canvas) Stroke(col color.Color, width float64) {
	for i := 1; i < len(c.path); i++ {
		a, b := c.path[i-1], c.path[i]
		vector.StrokeLine(c.target, a[0], a[1], b[0], b[1], float32(width), col, true)
	}
}

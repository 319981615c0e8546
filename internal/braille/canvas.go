// ABOUTME: Braille dot canvas for terminal rendering
// ABOUTME: Implements the waveform drawing surface with 2x4 dots per cell
package braille

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const blank rune = 0x2800

// Canvas is a dot grid of cols*2 x rows*4 pixels. Strokes are one dot wide.
type Canvas struct {
	cols, rows int
	dots       [][]color.Color // nil = unset
	background [][]color.Color // per cell

	path [][2]float64
}

// New creates a canvas covering cols x rows terminal cells
func New(cols, rows int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	c := &Canvas{cols: cols, rows: rows}
	c.dots = make([][]color.Color, rows*4)
	for i := range c.dots {
		c.dots[i] = make([]color.Color, cols*2)
	}
	c.background = make([][]color.Color, rows)
	for i := range c.background {
		c.background[i] = make([]color.Color, cols)
	}
	return c
}

// Size returns the dot dimensions
func (c *Canvas) Size() (int, int) { return c.cols * 2, c.rows * 4 }

// Cells returns the terminal cell dimensions
func (c *Canvas) Cells() (int, int) { return c.cols, c.rows }

// Clear removes all dots and backgrounds
func (c *Canvas) Clear() {
	for y := range c.dots {
		for x := range c.dots[y] {
			c.dots[y][x] = nil
		}
	}
	for y := range c.background {
		for x := range c.background[y] {
			c.background[y][x] = nil
		}
	}
	c.path = c.path[:0]
}

// FillRect sets the background of every cell the rectangle touches
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := clampInt(int(math.Floor(x/2)), 0, c.cols)
	x1 := clampInt(int(math.Ceil((x+w)/2)), 0, c.cols)
	y0 := clampInt(int(math.Floor(y/4)), 0, c.rows)
	y1 := clampInt(int(math.Ceil((y+h)/4)), 0, c.rows)

	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			c.background[cy][cx] = col
		}
	}
}

// BeginPath discards any pending path
func (c *Canvas) BeginPath() { c.path = c.path[:0] }

// MoveTo starts the path at (x, y)
func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path[:0], [2]float64{x, y})
}

// LineTo extends the path to (x, y)
func (c *Canvas) LineTo(x, y float64) {
	c.path = append(c.path, [2]float64{x, y})
}

// Stroke plots the pending path. The width is ignored: a dot is the
// thinnest and thickest line a braille cell can show legibly.
func (c *Canvas) Stroke(col color.Color, _ float64) {
	switch len(c.path) {
	case 0:
		return
	case 1:
		p := c.snap(c.path[0])
		c.Set(p[0], p[1], col)
		return
	}
	for i := 1; i < len(c.path); i++ {
		a, b := c.snap(c.path[i-1]), c.snap(c.path[i])
		c.DrawLine(a[0], a[1], b[0], b[1], col)
	}
}

// snap rounds to the dot grid, pulling far off-surface points in to just
// outside the edge so long segments stay cheap to rasterize.
func (c *Canvas) snap(p [2]float64) [2]int {
	w, h := c.Size()
	x := math.Round(math.Max(-1, math.Min(float64(w), p[0])))
	y := math.Round(math.Max(-1, math.Min(float64(h), p[1])))
	return [2]int{int(x), int(y)}
}

// Set lights one dot. Out-of-range dots are clipped.
func (c *Canvas) Set(x, y int, col color.Color) {
	w, h := c.Size()
	if x >= 0 && x < w && y >= 0 && y < h {
		c.dots[y][x] = col
	}
}

// DrawLine plots a segment with Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.Color) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	sy := 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Rune returns the braille character for a cell
func (c *Canvas) Rune(cx, cy int) rune {
	r := blank
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			if c.dots[cy*4+dy][cx*2+dx] != nil {
				r |= brailleBit(dx, dy)
			}
		}
	}
	return r
}

// String renders the canvas as lipgloss-styled lines of braille runes
func (c *Canvas) String() string {
	var b strings.Builder
	for cy := 0; cy < c.rows; cy++ {
		var run strings.Builder
		var runStyle lipgloss.Style
		runKey := ""

		flush := func() {
			if run.Len() > 0 {
				b.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}

		for cx := 0; cx < c.cols; cx++ {
			fg, bg := c.cellColors(cx, cy)
			key := hex(fg) + hex(bg)
			if key != runKey {
				flush()
				runKey = key
				runStyle = style(fg, bg)
			}
			run.WriteRune(c.Rune(cx, cy))
		}
		flush()

		if cy < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// cellColors picks the color of the lowest, leftmost lit dot
func (c *Canvas) cellColors(cx, cy int) (fg, bg color.Color) {
	bg = c.background[cy][cx]
	maxPriority := -1
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			col := c.dots[cy*4+dy][cx*2+dx]
			if col == nil {
				continue
			}
			priority := dy*2 + (1 - dx)
			if priority > maxPriority {
				maxPriority = priority
				fg = col
			}
		}
	}
	return fg, bg
}

func style(fg, bg color.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg != nil {
		s = s.Foreground(lipgloss.Color(hex(fg)))
	}
	if bg != nil {
		s = s.Background(lipgloss.Color(hex(bg)))
	}
	return s
}

func hex(col color.Color) string {
	if col == nil {
		return ""
	}
	r, g, b, _ := col.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func brailleBit(x, y int) rune {
	offsets := [2][4]rune{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	return offsets[x][y]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package viz

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells. Each cell holds 2x4 dots, so a canvas
// of Width x Height cells has (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps plane coordinates onto canvas dots with one scale on both
// axes, y pointing up.
type Viewport struct {
	scale  float64
	cx, cy float64 // dot position of the plane origin
}

// FitViewport centers the origin and scales so that every point, and the
// origin itself, lies inside a canvas of w x h dots.
func FitViewport(points []r2.Vec, w, h int) Viewport {
	reach := 0.0
	for _, p := range points {
		reach = math.Max(reach, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if reach == 0 {
		reach = 1
	}
	half := float64(min(w, h)-1) / 2
	return Viewport{
		scale: half / reach,
		cx:    float64(w-1) / 2,
		cy:    float64(h-1) / 2,
	}
}

func (v Viewport) Dot(p r2.Vec) (x, y int) {
	return int(math.Round(v.cx + p.X*v.scale)), int(math.Round(v.cy - p.Y*v.scale))
}

// DrawPolyline connects consecutive points.
func (c *Canvas) DrawPolyline(v Viewport, points []r2.Vec) {
	for i := 1; i < len(points); i++ {
		x0, y0 := v.Dot(points[i-1])
		x1, y1 := v.Dot(points[i])
		c.DrawLine(x0, y0, x1, y1)
	}
}

// DrawCross marks p with a small plus sign of the given arm length in dots.
func (c *Canvas) DrawCross(v Viewport, p r2.Vec, arm int) {
	x, y := v.Dot(p)
	c.DrawLine(x-arm, y, x+arm, y)
	c.DrawLine(x, y-arm, x, y+arm)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package labyrinth

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// Anything that can draw a straight line between two render-space points.
type Surface interface {
	DrawLine(from, to Point, c color.Color)
}

// Submits every shown segment in the grid to the surface, exactly once each.
// Hidden segments are skipped. Returns the number of segments drawn.
func Render(g *Grid, s Surface) int {
	drawn := 0
	for i := range g.segments {
		segment := &(g.segments[i])
		if !segment.shown {
			continue
		}
		s.DrawLine(segment.Start, segment.End, segment.Color)
		drawn++
	}
	return drawn
}

// Returns the width and height, in pixels, of a square canvas that fits a
// maze of the given size with the layout's padding on every side.
func CanvasSize(size int, layout Layout) int {
	return size*layout.Multiplier + 2*layout.Offset
}

// A Surface backed by a gg drawing context. Create using NewCanvas.
type Canvas struct {
	dc *gg.Context
}

// Allocates a square canvas, cleared to the given background color. A nil
// background leaves the canvas transparent.
func NewCanvas(size int, background color.Color) *Canvas {
	dc := gg.NewContext(size, size)
	if background != nil {
		dc.SetColor(background)
		dc.Clear()
	}
	dc.SetLineWidth(1)
	dc.SetLineCapSquare()
	return &Canvas{
		dc: dc,
	}
}

// Sets the stroke width used for subsequent lines.
func (c *Canvas) SetLineWidth(width float64) {
	c.dc.SetLineWidth(width)
}

func (c *Canvas) DrawLine(from, to Point, lineColor color.Color) {
	c.dc.SetColor(lineColor)
	c.dc.DrawLine(float64(from.X), float64(from.Y), float64(to.X),
		float64(to.Y))
	c.dc.Stroke()
}

// Returns the canvas contents. The image shares memory with the canvas.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

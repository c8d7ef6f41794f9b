package labyrinth

import (
	"bytes"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedLine struct {
	from  Point
	to    Point
	color color.Color
}

// A Surface that remembers what was drawn on it.
type recordingSurface struct {
	lines []recordedLine
}

func (s *recordingSurface) DrawLine(from, to Point, c color.Color) {
	s.lines = append(s.lines, recordedLine{from: from, to: to, color: c})
}

func TestRenderSkipsHiddenSegments(t *testing.T) {
	g := newTestGrid(t, 6)
	gen := NewGenerator(g, rand.New(rand.NewSource(3)))
	gen.Run()

	surface := &recordingSurface{}
	drawn := Render(g, surface)
	require.Len(t, surface.lines, drawn)
	// Two entrances plus the carved passages are missing.
	assert.Equal(t, g.SegmentCount()-2-len(g.Passages()), drawn)

	seen := make(map[[2]Point]bool)
	for _, l := range surface.lines {
		key := [2]Point{l.from, l.to}
		assert.False(t, seen[key], "segment %v drawn twice", key)
		seen[key] = true
		assert.Equal(t, color.Black, l.color)
	}
	for _, s := range g.Segments() {
		assert.Equal(t, s.Shown(), seen[[2]Point{s.Start, s.End}])
	}
}

func TestCanvas(t *testing.T) {
	canvas := NewCanvas(100, color.White)
	canvas.SetLineWidth(4)
	canvas.DrawLine(Point{X: 10, Y: 50}, Point{X: 90, Y: 50}, color.Black)
	pic := canvas.Image()
	assert.Equal(t, 100, pic.Bounds().Dx())
	assert.Equal(t, 100, pic.Bounds().Dy())

	r, _, _, _ := pic.At(50, 50).RGBA()
	assert.Less(t, r, uint32(0x8000))
	r, g, b, _ := pic.At(50, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)

	var buf bytes.Buffer
	require.NoError(t, canvas.EncodePNG(&buf))
	decoded, e := png.Decode(&buf)
	require.NoError(t, e)
	assert.Equal(t, pic.Bounds(), decoded.Bounds())
}

func TestCanvasSize(t *testing.T) {
	assert.Equal(t, 475, CanvasSize(15, DefaultLayout()))
	assert.Equal(t, 3, CanvasSize(1, Layout{Multiplier: 1, Offset: 1}))
}

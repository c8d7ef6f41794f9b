// This defines a library for generating perfect square mazes. A maze is a
// Grid of cells whose walls are BorderSegments; neighboring cells share the
// segment between them, so carving a passage from either side opens it for
// both.
package labyrinth

import (
	"fmt"
	"image/color"
	"strings"
)

// The largest side length NewGrid accepts. Keeps the cell and segment arrays
// to a few hundred megabytes at most.
const MaxGridSize = 1024

// The largest width or height, in pixels, a layout may place segments at.
const MaxCanvasSize = 1 << 14

// Controls where segments are placed in render space. A cell at grid position
// (x, y) has its top-left corner at (x*Multiplier+Offset, y*Multiplier+Offset).
type Layout struct {
	// The number of pixels across one cell. Must be at least 1.
	Multiplier int
	// The padding, in pixels, between the canvas edge and the maze.
	Offset int
	// The color given to every segment when the grid is built.
	WallColor color.Color
}

// Returns the layout used by the command-line tool when nothing is configured.
func DefaultLayout() Layout {
	return Layout{
		Multiplier: 25,
		Offset:     50,
		WallColor:  color.Black,
	}
}

func (l Layout) validate() error {
	if l.Multiplier < 1 {
		return fmt.Errorf("%w: multiplier must be at least 1, got %d",
			ErrInvalidLayout, l.Multiplier)
	}
	if l.Offset < 0 {
		return fmt.Errorf("%w: offset must not be negative, got %d",
			ErrInvalidLayout, l.Offset)
	}
	// Checked separately so the product below can't overflow.
	if (l.Multiplier > MaxCanvasSize) || (l.Offset > MaxCanvasSize) {
		return fmt.Errorf("%w: multiplier %d and offset %d must each be at "+
			"most %d", ErrInvalidLayout, l.Multiplier, l.Offset, MaxCanvasSize)
	}
	return nil
}

// Like validate, but also checks that a grid of the given side length fits in
// a canvas no more than MaxCanvasSize pixels across. The size must already be
// between 1 and MaxGridSize.
func (l Layout) validateFor(size int) error {
	e := l.validate()
	if e != nil {
		return e
	}
	canvasSize := CanvasSize(size, l)
	if canvasSize > MaxCanvasSize {
		return fmt.Errorf("%w: a %dx%d maze needs a %d pixel canvas, more "+
			"than the maximum of %d", ErrInvalidLayout, size, size,
			canvasSize, MaxCanvasSize)
	}
	return nil
}

// Converts a grid-space corner to render space.
func (l Layout) toRender(p Point) Point {
	return Point{
		X: p.X*l.Multiplier + l.Offset,
		Y: p.Y*l.Multiplier + l.Offset,
	}
}

// Identifies a BorderSegment within its Grid. IDs are stable for the lifetime
// of the grid.
type SegmentID int

// A single wall, either between two cells or between a cell and the outside.
type BorderSegment struct {
	// The endpoints, in render space.
	Start Point
	End   Point
	Color color.Color
	// True while the wall is present. Only ever goes from true to false.
	shown bool
}

// Returns true if the wall is still present.
func (s *BorderSegment) Shown() bool {
	return s.shown
}

// Removes the wall, turning it into a passage. Hiding a hidden segment does
// nothing.
func (s *BorderSegment) Hide() {
	s.shown = false
}

// Builds a fully shown segment along the given edge of the cell at p.
func newBorderSegment(p Point, d Direction, layout Layout) BorderSegment {
	// Corners are in grid units until they're converted at the end.
	var a, b Point
	switch d {
	case Up:
		a, b = p, p.Add(1, 0)
	case Down:
		a, b = p.Add(0, 1), p.Add(1, 1)
	case Left:
		a, b = p.Add(0, 1), p
	case Right:
		a, b = p.Add(1, 1), p.Add(1, 0)
	default:
		panic("Bad direction.")
	}
	return BorderSegment{
		Start: layout.toRender(a),
		End:   layout.toRender(b),
		Color: layout.WallColor,
		shown: true,
	}
}

// One grid position. A cell doesn't own its borders; it only records which of
// the grid's segments surround it.
type Cell struct {
	Point   Point
	borders [4]SegmentID
}

// Returns the ID of the segment on the given side of the cell.
func (c *Cell) Border(d Direction) SegmentID {
	return c.borders[d.Index()]
}

// A square arrangement of cells, along with every distinct segment between
// them. Create using NewGrid.
type Grid struct {
	size   int
	layout Layout
	// Row-major: the cell at (x, y) is at index y*size + x.
	cells []Cell
	// Each distinct segment appears exactly once.
	segments []BorderSegment
	// The indices of the cells referring to each segment. The second entry is
	// -1 for segments on the outside of the grid.
	owners [][2]int
}

// Builds a size x size grid with every wall present. Neighboring cells are
// given the same segment for their shared wall.
func NewGrid(size int, layout Layout) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be at least 1, got %d",
			ErrInvalidSize, size)
	}
	if size > MaxGridSize {
		return nil, fmt.Errorf("%w: size %d exceeds the maximum of %d",
			ErrInvalidSize, size, MaxGridSize)
	}
	e := layout.validateFor(size)
	if e != nil {
		return nil, e
	}
	if layout.WallColor == nil {
		layout.WallColor = color.Black
	}
	segmentCount := 2 * size * (size + 1)
	g := &Grid{
		size:     size,
		layout:   layout,
		cells:    make([]Cell, size*size),
		segments: make([]BorderSegment, 0, segmentCount),
		owners:   make([][2]int, 0, segmentCount),
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			index := y*size + x
			c := &(g.cells[index])
			c.Point = Point{X: x, Y: y}
			if y > 0 {
				g.share(index-size, Down, index, Up)
			} else {
				c.borders[Up] = g.addSegment(index, Up)
			}
			if x > 0 {
				g.share(index-1, Right, index, Left)
			} else {
				c.borders[Left] = g.addSegment(index, Left)
			}
			c.borders[Down] = g.addSegment(index, Down)
			c.borders[Right] = g.addSegment(index, Right)
		}
	}
	return g, nil
}

// Appends a new segment owned by the given cell and returns its ID.
func (g *Grid) addSegment(cellIndex int, d Direction) SegmentID {
	id := SegmentID(len(g.segments))
	g.segments = append(g.segments, newBorderSegment(g.cells[cellIndex].Point,
		d, g.layout))
	g.owners = append(g.owners, [2]int{cellIndex, -1})
	return id
}

// Makes the "to" cell refer to the segment the "from" cell already has.
func (g *Grid) share(fromIndex int, fromDir Direction, toIndex int,
	toDir Direction) {
	id := g.cells[fromIndex].borders[fromDir]
	g.cells[toIndex].borders[toDir] = id
	g.owners[id][1] = toIndex
}

// Returns the side length of the grid, in cells.
func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) Layout() Layout {
	return g.layout
}

// Returns the total number of cells, size * size.
func (g *Grid) CellCount() int {
	return len(g.cells)
}

// Returns the index of the cell at p, or -1 if p is outside the grid.
func (g *Grid) IndexOf(p Point) int {
	if (p.X < 0) || (p.Y < 0) || (p.X >= g.size) || (p.Y >= g.size) {
		return -1
	}
	return p.Y*g.size + p.X
}

// Returns the cell at p. The bool is false if p is outside the grid.
func (g *Grid) Cell(p Point) (*Cell, bool) {
	index := g.IndexOf(p)
	if index < 0 {
		return nil, false
	}
	return &(g.cells[index]), true
}

// Returns the cell with the given row-major index.
func (g *Grid) CellAt(index int) *Cell {
	return &(g.cells[index])
}

// Returns the index of the cell next to the given one in direction d. Returns
// false, rather than an error, if there's no cell there.
func (g *Grid) MoveTo(index int, d Direction) (int, bool) {
	dx, dy := d.Delta()
	p := g.cells[index].Point.Add(dx, dy)
	next := g.IndexOf(p)
	if next < 0 {
		return -1, false
	}
	return next, true
}

// Returns the segment with the given ID. Changes made through the returned
// pointer are visible from both cells sharing it.
func (g *Grid) Segment(id SegmentID) *BorderSegment {
	return &(g.segments[id])
}

// Returns the segment on side d of the cell with the given index.
func (g *Grid) Border(index int, d Direction) *BorderSegment {
	return g.Segment(g.cells[index].borders[d])
}

// Returns the number of distinct segments, which is always
// 2 * size * (size + 1).
func (g *Grid) SegmentCount() int {
	return len(g.segments)
}

// Returns a copy of every distinct segment, in ID order. Shared walls are only
// included once.
func (g *Grid) Segments() []BorderSegment {
	toReturn := make([]BorderSegment, len(g.segments))
	copy(toReturn, g.segments)
	return toReturn
}

// Returns the indices of the cells bordering the segment. The second index is
// -1 if the segment is on the outside of the grid.
func (g *Grid) Owners(id SegmentID) (int, int) {
	o := g.owners[id]
	return o[0], o[1]
}

// Returns true if the segment separates a cell from the outside.
func (g *Grid) IsBoundary(id SegmentID) bool {
	return g.owners[id][1] < 0
}

// Draws the grid's current walls using ASCII characters. Cells are three
// characters wide.
func (g *Grid) String() string {
	var sb strings.Builder
	wall := func(index int, d Direction, present, absent string) {
		if g.Border(index, d).Shown() {
			sb.WriteString(present)
		} else {
			sb.WriteString(absent)
		}
	}

	// Top boundary
	for x := 0; x < g.size; x++ {
		sb.WriteString("+")
		wall(x, Up, "---", "   ")
	}
	sb.WriteString("+\n")

	for y := 0; y < g.size; y++ {
		rowStart := y * g.size
		// Cell row
		wall(rowStart, Left, "|", " ")
		for x := 0; x < g.size; x++ {
			sb.WriteString("   ")
			wall(rowStart+x, Right, "|", " ")
		}
		sb.WriteString("\n")

		// Wall row
		for x := 0; x < g.size; x++ {
			sb.WriteString("+")
			wall(rowStart+x, Down, "---", "   ")
		}
		sb.WriteString("+\n")
	}
	return sb.String()
}

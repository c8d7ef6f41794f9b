package labyrinth

import (
	"fmt"
)

// A Point is an integer coordinate, either a grid position or a location in
// render space.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Returns the point shifted by the given amounts.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// One of the four directions a cell can be left in. The numeric value of a
// Direction is also its index into a cell's border array.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// The fixed order in which directions are enumerated. Candidate directions are
// always collected in this order, which keeps seeded generation reproducible.
var AllDirections = [4]Direction{Up, Down, Left, Right}

// Indexed by Direction. Each entry is {dx, dy}.
var directionDeltas = [4][2]int{
	{0, -1},
	{0, 1},
	{-1, 0},
	{1, 0},
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Unknown direction: %d", uint8(d))
}

// Returns the index of the direction, 0 through 3.
func (d Direction) Index() int {
	return int(d)
}

// Returns the change in x and y when moving one cell in this direction.
func (d Direction) Delta() (int, int) {
	if d > Right {
		panic("Bad direction.")
	}
	delta := directionDeltas[d]
	return delta[0], delta[1]
}

// Returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic("Bad direction.")
}

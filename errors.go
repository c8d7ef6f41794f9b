package labyrinth

import (
	"errors"
)

// Returned (wrapped) when a grid is requested with a side length that isn't
// positive, or that is too large to allocate.
var ErrInvalidSize = errors.New("invalid grid size")

// Returned (wrapped) when the render-space layout can't place segments.
var ErrInvalidLayout = errors.New("invalid layout")

// Returned (wrapped) by CheckPerfect when the open passages don't form a
// spanning tree over the grid.
var ErrNotPerfect = errors.New("maze is not perfect")

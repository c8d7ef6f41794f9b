package labyrinth

import (
	"fmt"
)

// Union-find over cell indices, with union by rank and path compression.
type cellSets struct {
	parent []int
	rank   []int
}

// Returns sets where every cell is alone.
func newCellSets(cellCount int) *cellSets {
	toReturn := &cellSets{
		parent: make([]int, cellCount),
		rank:   make([]int, cellCount),
	}
	for i := range toReturn.parent {
		toReturn.parent[i] = i
	}
	return toReturn
}

// Returns the representative cell of the set containing the given cell.
func (s *cellSets) find(cell int) int {
	root := cell
	for s.parent[root] != root {
		root = s.parent[root]
	}
	for s.parent[cell] != root {
		next := s.parent[cell]
		s.parent[cell] = root
		cell = next
	}
	return root
}

// Merges the sets containing a and b. Returns false if they were already the
// same set.
func (s *cellSets) union(a, b int) bool {
	x := s.find(a)
	y := s.find(b)
	if x == y {
		return false
	}
	if s.rank[x] > s.rank[y] {
		x, y = y, x
	}
	s.parent[x] = y
	if s.rank[x] == s.rank[y] {
		s.rank[y]++
	}
	return true
}

// An open connection between two neighboring cells. A is always the lower of
// the two cell indices.
type Passage struct {
	A       int
	B       int
	Segment SegmentID
}

// Returns every hidden segment that lies between two cells, in segment ID
// order. The entrance and exit aren't included, since they lead outside.
func (g *Grid) Passages() []Passage {
	toReturn := make([]Passage, 0, len(g.cells))
	for i := range g.segments {
		id := SegmentID(i)
		if g.segments[i].shown || g.IsBoundary(id) {
			continue
		}
		a, b := g.Owners(id)
		if a > b {
			a, b = b, a
		}
		toReturn = append(toReturn, Passage{
			A:       a,
			B:       b,
			Segment: id,
		})
	}
	return toReturn
}

// Returns nil if the open passages form a spanning tree over the cells: every
// cell can reach every other, and by exactly one path. Otherwise, returns an
// error wrapping ErrNotPerfect.
func (g *Grid) CheckPerfect() error {
	sets := newCellSets(len(g.cells))
	components := len(g.cells)
	for _, p := range g.Passages() {
		if !sets.union(p.A, p.B) {
			return fmt.Errorf("%w: the passage between cells %s and %s "+
				"forms a loop", ErrNotPerfect, g.cells[p.A].Point,
				g.cells[p.B].Point)
		}
		components--
	}
	if components != 1 {
		return fmt.Errorf("%w: %d disconnected regions", ErrNotPerfect,
			components)
	}
	return nil
}

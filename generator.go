package labyrinth

import (
	"fmt"
	"image"
	"math/rand"
	"time"
)

// Counters collected while carving a maze.
type Stats struct {
	// The number of loop iterations, including ones that only backtracked.
	Steps int
	// The number of times a branch point was popped to resume carving.
	Backtracks int
	// The number of cells recorded as branch points.
	BranchPoints int
	// The number of segments hidden by the traversal. Doesn't include the
	// entrance and exit.
	Carved int
	// Time spent in Run.
	Duration time.Duration
}

// A possible move out of the current cell.
type candidate struct {
	dir   Direction
	index int
}

// Carves a perfect maze into a Grid using a randomized depth-first
// backtracker. Create using NewGenerator; a Generator can only be run once.
type Generator struct {
	grid *Grid
	rng  *rand.Rand
	// The index of the cell the traversal is at.
	current      int
	visited      []bool
	visitedCount int
	// Cells that had more than one unvisited neighbor when they were left.
	// Corridor cells are never pushed, since returning to them could never
	// find a new direction.
	branchPoints []int
	// Reused by every step to avoid reallocating.
	candidates []candidate
	stats      Stats
}

// Prepares to carve the given grid, starting at its top-left cell. If rng is
// nil, one seeded with the current time is used.
func NewGenerator(g *Grid, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cellCount := g.CellCount()
	return &Generator{
		grid:         g,
		rng:          rng,
		current:      0,
		visited:      make([]bool, cellCount),
		branchPoints: make([]int, 0, cellCount),
		candidates:   make([]candidate, 0, len(AllDirections)),
	}
}

// The outer walls removed by OpenEntrances: the entrance is on this side of
// the top-left cell, and the exit on ExitSide of the bottom-right cell.
const (
	EntranceSide = Left
	ExitSide     = Right
)

// Hides the entrance wall of the top-left cell and the exit wall of the
// bottom-right cell.
func (gen *Generator) OpenEntrances() {
	gen.grid.Border(0, EntranceSide).Hide()
	gen.grid.Border(gen.grid.CellCount()-1, ExitSide).Hide()
}

// Returns true once every cell has been visited.
func (gen *Generator) Done() bool {
	return gen.visitedCount == len(gen.visited)
}

// Returns the number of distinct cells visited so far.
func (gen *Generator) Visited() int {
	return gen.visitedCount
}

// Returns true if the cell with the given index has been visited.
func (gen *Generator) IsVisited(index int) bool {
	return gen.visited[index]
}

// Returns the index of the cell the traversal is currently at.
func (gen *Generator) Current() int {
	return gen.current
}

// Returns the number of branch points waiting to be resumed.
func (gen *Generator) StackDepth() int {
	return len(gen.branchPoints)
}

func (gen *Generator) Stats() Stats {
	return gen.stats
}

// Fills gen.candidates with the unvisited neighbors of the current cell, in
// AllDirections order.
func (gen *Generator) collectCandidates() {
	gen.candidates = gen.candidates[:0]
	for _, d := range AllDirections {
		next, ok := gen.grid.MoveTo(gen.current, d)
		if !ok || gen.visited[next] {
			continue
		}
		gen.candidates = append(gen.candidates, candidate{
			dir:   d,
			index: next,
		})
	}
}

// Returns the directions the next step could carve in from the current cell.
func (gen *Generator) Candidates() []Direction {
	gen.collectCandidates()
	toReturn := make([]Direction, len(gen.candidates))
	for i, c := range gen.candidates {
		toReturn[i] = c.dir
	}
	return toReturn
}

func (gen *Generator) markVisited(index int) {
	if gen.visited[index] {
		return
	}
	gen.visited[index] = true
	gen.visitedCount++
}

// Performs a single iteration of the traversal: either carves one passage
// and moves through it, or backtracks to the most recent branch point.
// Returns true when every cell has been visited.
func (gen *Generator) Step() bool {
	if gen.Done() {
		return true
	}
	gen.stats.Steps++
	gen.collectCandidates()
	gen.markVisited(gen.current)

	if len(gen.candidates) == 0 {
		if gen.Done() {
			return true
		}
		last := len(gen.branchPoints) - 1
		if last < 0 {
			// Every unvisited cell is reachable from some branch point, so
			// this can only happen if the grid or the visited set is broken.
			panic(fmt.Sprintf("Internal error: no branch points left with "+
				"%d of %d cells visited", gen.visitedCount, len(gen.visited)))
		}
		gen.current = gen.branchPoints[last]
		gen.branchPoints = gen.branchPoints[:last]
		gen.stats.Backtracks++
		return false
	}

	if len(gen.candidates) > 1 {
		gen.branchPoints = append(gen.branchPoints, gen.current)
		gen.stats.BranchPoints++
	}
	chosen := gen.candidates[gen.rng.Intn(len(gen.candidates))]
	gen.grid.Border(gen.current, chosen.dir).Hide()
	gen.stats.Carved++
	gen.current = chosen.index
	return false
}

// Opens the entrance and exit, then steps until every cell has been visited.
// Returns the final stats.
func (gen *Generator) Run() Stats {
	startTime := time.Now()
	gen.OpenEntrances()
	for !gen.Step() {
	}
	gen.stats.Duration += time.Since(startTime)
	return gen.stats
}

// Describes a generated maze, mostly for decorating and logging it.
type Info struct {
	Size  int
	Seed  int64
	Stats Stats
	// The middle of the entrance, in render space, and the direction in which
	// a walker passes through it to enter the maze.
	StartPoint     image.Point
	StartDirection Direction
	// The same, for leaving through the exit.
	EndPoint     image.Point
	EndDirection Direction
	// A human-readable summary.
	DebugInfo string
}

// Returns the midpoint of a segment as an image.Point.
func segmentMidpoint(s *BorderSegment) image.Point {
	return image.Pt((s.Start.X+s.End.X)/2, (s.Start.Y+s.End.Y)/2)
}

// Builds the Info for a grid that has been carved with the given seed.
func NewInfo(g *Grid, seed int64, stats Stats) *Info {
	return &Info{
		Size:           g.Size(),
		Seed:           seed,
		Stats:          stats,
		StartPoint:     segmentMidpoint(g.Border(0, EntranceSide)),
		StartDirection: EntranceSide.Opposite(),
		EndPoint:       segmentMidpoint(g.Border(g.CellCount()-1, ExitSide)),
		EndDirection:   ExitSide,
		DebugInfo: fmt.Sprintf("%dx%d maze with random seed %d, generated "+
			"in %.03f seconds", g.Size(), g.Size(), seed,
			stats.Duration.Seconds()),
	}
}

// Builds and carves a size x size maze. If the given RNG seed is not positive,
// a new seed will be selected based on the current time in nanoseconds.
func NewGridMazeWithSeed(size int, layout Layout, seed int64) (*Grid, *Info,
	error) {
	g, e := NewGrid(size, layout)
	if e != nil {
		return nil, nil, fmt.Errorf("Error allocating grid: %w", e)
	}
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	gen := NewGenerator(g, rand.New(rand.NewSource(seed)))
	stats := gen.Run()
	return g, NewInfo(g, seed, stats), nil
}

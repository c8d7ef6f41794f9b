package labyrinth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassages(t *testing.T) {
	g := newTestGrid(t, 3)
	assert.Empty(t, g.Passages())

	// Boundary segments never count as passages.
	g.Border(0, Left).Hide()
	g.Border(0, Up).Hide()
	assert.Empty(t, g.Passages())

	g.Border(4, Left).Hide()
	g.Border(1, Down).Hide()
	passages := g.Passages()
	require.Len(t, passages, 2)
	for _, p := range passages {
		assert.Less(t, p.A, p.B)
		assert.False(t, g.Segment(p.Segment).Shown())
	}
	assert.ElementsMatch(t, [][2]int{{3, 4}, {1, 4}},
		[][2]int{{passages[0].A, passages[0].B},
			{passages[1].A, passages[1].B}})
}

func TestCheckPerfect(t *testing.T) {
	t.Run("Single cell", func(t *testing.T) {
		g := newTestGrid(t, 1)
		assert.NoError(t, g.CheckPerfect())
	})

	t.Run("Disconnected", func(t *testing.T) {
		g := newTestGrid(t, 3)
		e := g.CheckPerfect()
		assert.ErrorIs(t, e, ErrNotPerfect)
		assert.Contains(t, e.Error(), "9 disconnected regions")
	})

	t.Run("Loop", func(t *testing.T) {
		g := newTestGrid(t, 2)
		g.Border(0, Right).Hide()
		g.Border(0, Down).Hide()
		g.Border(3, Up).Hide()
		assert.NoError(t, g.CheckPerfect())
		g.Border(3, Left).Hide()
		e := g.CheckPerfect()
		assert.ErrorIs(t, e, ErrNotPerfect)
		assert.Contains(t, e.Error(), "loop")
	})
}

func TestCellSets(t *testing.T) {
	sets := newCellSets(5)
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, sets.find(i))
	}
	assert.True(t, sets.union(0, 1))
	assert.Equal(t, sets.find(0), sets.find(1))
	assert.NotEqual(t, sets.find(0), sets.find(2))
	assert.True(t, sets.union(3, 4))
	assert.True(t, sets.union(4, 1))
	assert.Equal(t, sets.find(0), sets.find(3))
	// Joining cells that are already connected reports a loop.
	assert.False(t, sets.union(3, 0))
	assert.False(t, sets.union(2, 2))
	assert.NotEqual(t, sets.find(2), sets.find(4))
}

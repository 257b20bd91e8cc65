package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealFloodFill(t *testing.T) {
	b, err := NewBoard(10, 10, Point{9, 9})
	require.NoError(t, err)
	revealed := NewCellSet(10, 10)

	delta, detonated := Reveal(b, revealed, nil, 0, 0)
	require.False(t, detonated)
	require.Len(t, delta, 99)
	require.Equal(t, 99, revealed.Len())
	require.False(t, revealed.Has(9, 9))

	require.Equal(t, Cell{Point{0, 0}, 0}, delta[0])
	counts := map[Point]CellStatus{}
	for _, c := range delta {
		_, dup := counts[c.Point]
		require.False(t, dup, "cell %v revealed twice", c.Point)
		counts[c.Point] = c.Status
	}
	assert.Equal(t, CellStatus(1), counts[Point{8, 8}])
	assert.Equal(t, CellStatus(1), counts[Point{9, 8}])
	assert.Equal(t, CellStatus(1), counts[Point{8, 9}])
	assert.Equal(t, CellStatus(0), counts[Point{7, 7}])
}

func TestRevealIdempotent(t *testing.T) {
	b, err := NewBoard(10, 10, Point{0, 0})
	require.NoError(t, err)
	revealed := NewCellSet(10, 10)

	delta, detonated := Reveal(b, revealed, nil, 0, 1)
	require.False(t, detonated)
	require.Equal(t, []Cell{{Point{0, 1}, 1}}, delta)

	delta, detonated = Reveal(b, revealed, nil, 0, 1)
	require.False(t, detonated)
	require.Empty(t, delta)
	require.Equal(t, 1, revealed.Len())
}

func TestRevealMine(t *testing.T) {
	b, err := NewBoard(4, 4, Point{2, 2})
	require.NoError(t, err)
	revealed := NewCellSet(4, 4)

	delta, detonated := Reveal(b, revealed, nil, 2, 2)
	require.True(t, detonated)
	require.Empty(t, delta)
	require.Zero(t, revealed.Len())
}

func TestRevealStopsAtFlags(t *testing.T) {
	// a wall of flags on column 2 keeps the fill on the left side
	b, err := NewBoard(5, 5, Point{4, 4})
	require.NoError(t, err)
	revealed := NewCellSet(5, 5)
	flags := NewCellSet(5, 5)
	for row := range 5 {
		ToggleFlag(flags, revealed, row, 2)
	}

	delta, detonated := Reveal(b, revealed, flags, 0, 0)
	require.False(t, detonated)
	require.Len(t, delta, 10)
	for _, c := range delta {
		require.Less(t, c.Col, 2)
	}
	require.Equal(t, 5, flags.Len())
}

func TestRevealOutOfBounds(t *testing.T) {
	b, err := NewBoard(3, 3, Point{0, 0})
	require.NoError(t, err)
	revealed := NewCellSet(3, 3)

	delta, detonated := Reveal(b, revealed, nil, 3, 0)
	require.False(t, detonated)
	require.Empty(t, delta)
}

func TestRevealLargeEmptyBoard(t *testing.T) {
	b, err := NewBoard(500, 500, Point{499, 499})
	require.NoError(t, err)
	revealed := NewCellSet(500, 500)

	delta, detonated := Reveal(b, revealed, nil, 0, 0)
	require.False(t, detonated)
	require.Len(t, delta, 500*500-1)
}

func TestToggleFlag(t *testing.T) {
	flags := NewCellSet(3, 3)
	revealed := NewCellSet(3, 3)
	revealed.add(4)

	flagged, changed := ToggleFlag(flags, revealed, 0, 0)
	assert.True(t, flagged)
	assert.True(t, changed)
	assert.True(t, flags.Has(0, 0))

	flagged, changed = ToggleFlag(flags, revealed, 0, 0)
	assert.False(t, flagged)
	assert.True(t, changed)
	assert.False(t, flags.Has(0, 0))

	flagged, changed = ToggleFlag(flags, revealed, 1, 1)
	assert.False(t, flagged)
	assert.False(t, changed)
	assert.Zero(t, flags.Len())

	flagged, changed = ToggleFlag(flags, revealed, 5, 5)
	assert.False(t, flagged)
	assert.False(t, changed)
}

package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type token struct {
	id  int
	pos Cell
}

func (t *token) OccupantID() int    { return t.id }
func (t *token) Position() Cell     { return t.pos }
func (t *token) SetPosition(c Cell) { t.pos = c }

func TestWrap(t *testing.T) {
	g := NewGrid(6, 4)
	assert.Equal(t, Cell{X: 5, Y: 3}, g.Wrap(Cell{X: -1, Y: -1}))
	assert.Equal(t, Cell{X: 0, Y: 0}, g.Wrap(Cell{X: 6, Y: 4}))
	assert.Equal(t, Cell{X: 2, Y: 1}, g.Wrap(Cell{X: 14, Y: 9}))
}

func TestNeighborsWrapAround(t *testing.T) {
	g := NewGrid(6, 6)
	center := &token{id: 1}
	corner := &token{id: 2}
	far := &token{id: 3}
	g.Place(center, Cell{X: 0, Y: 0})
	g.Place(corner, Cell{X: 5, Y: 5})
	g.Place(far, Cell{X: 3, Y: 3})

	cells := g.NeighborCells(Cell{X: 0, Y: 0})
	assert.Len(t, cells, 8)
	assert.NotContains(t, cells, Cell{X: 0, Y: 0})

	neighbors := g.Neighbors(center.Position())
	require.Len(t, neighbors, 1)
	assert.Equal(t, 2, neighbors[0].OccupantID())
}

func TestNeighborsSmallGridDeduplicated(t *testing.T) {
	g := NewGrid(2, 1)
	a := &token{id: 1}
	b := &token{id: 2}
	g.Place(a, Cell{X: 0, Y: 0})
	g.Place(b, Cell{X: 1, Y: 0})

	assert.Equal(t, []Cell{{X: 1, Y: 0}}, g.NeighborCells(Cell{}))
	assert.Len(t, g.Neighbors(Cell{}), 1)
}

func TestPlaceRandom(t *testing.T) {
	g := NewGrid(2, 2)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 4; i++ {
		tok := &token{id: i}
		c, err := g.PlaceRandom(tok, rng)
		require.NoError(t, err)
		assert.Equal(t, c, tok.Position())
		assert.Len(t, g.CellContents(c), 1)
	}
	assert.Empty(t, g.Empties())
	assert.Equal(t, 4, g.OccupantCount())

	_, err := g.PlaceRandom(&token{id: 99}, rng)
	assert.ErrorIs(t, err, ErrPlacementExhausted)
	assert.Equal(t, 4, g.OccupantCount())
}

func TestCounts(t *testing.T) {
	g := NewGrid(3, 2)
	g.Place(&token{id: 1}, Cell{X: 2, Y: 1})
	g.Place(&token{id: 2}, Cell{X: 2, Y: 1})

	counts := g.Counts()
	require.Len(t, counts, 3)
	assert.Equal(t, 2, counts[2][1])
	assert.Equal(t, 0, counts[0][0])
	assert.Equal(t, "Grid(3x2, occupants=2)", g.String())
}

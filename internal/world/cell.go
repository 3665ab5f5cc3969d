// Package world provides the toroidal grid agents live on.
// Cells are addressed by (x, y) and wrap at the edges in both axes.
package world

import "fmt"

// Cell is a position on the grid.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// MooreDirections are the eight offsets surrounding a cell (no centre).
var MooreDirections = [8]Cell{
	{X: -1, Y: -1},
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

// Occupant is anything that can be placed on the grid.
type Occupant interface {
	OccupantID() int
	Position() Cell
	SetPosition(Cell)
}

// Intner is the slice of a random source the grid needs for placement.
type Intner interface {
	Intn(n int) int
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

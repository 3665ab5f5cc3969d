package world

import (
	"errors"
	"fmt"
)

// ErrPlacementExhausted is returned when an occupant needs a free cell and
// none is left.
var ErrPlacementExhausted = errors.New("no empty cells available")

// Grid is a toroidal multi-grid: a cell may hold several occupants, but
// initial placement only ever targets empty cells.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	cells [][]Occupant // Indexed by y*Width + x
}

// NewGrid creates an empty width×height torus.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([][]Occupant, width*height),
	}
}

// Wrap maps any coordinate back onto the torus.
func (g *Grid) Wrap(c Cell) Cell {
	return Cell{X: mod(c.X, g.Width), Y: mod(c.Y, g.Height)}
}

func (g *Grid) index(c Cell) int {
	c = g.Wrap(c)
	return c.Y*g.Width + c.X
}

// Place puts an occupant on a cell and records the position on it.
func (g *Grid) Place(o Occupant, c Cell) {
	c = g.Wrap(c)
	i := g.index(c)
	g.cells[i] = append(g.cells[i], o)
	o.SetPosition(c)
}

// IsEmpty returns true if nothing occupies the cell.
func (g *Grid) IsEmpty(c Cell) bool {
	return len(g.cells[g.index(c)]) == 0
}

// Empties lists all unoccupied cells, column by column.
func (g *Grid) Empties() []Cell {
	var free []Cell
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			c := Cell{X: x, Y: y}
			if g.IsEmpty(c) {
				free = append(free, c)
			}
		}
	}
	return free
}

// PlaceRandom places an occupant on a uniformly chosen empty cell.
func (g *Grid) PlaceRandom(o Occupant, rng Intner) (Cell, error) {
	free := g.Empties()
	if len(free) == 0 {
		return Cell{}, fmt.Errorf("place occupant %d: %w", o.OccupantID(), ErrPlacementExhausted)
	}
	c := free[rng.Intn(len(free))]
	g.Place(o, c)
	return c, nil
}

// CellContents returns the occupants of a cell.
func (g *Grid) CellContents(c Cell) []Occupant {
	return g.cells[g.index(c)]
}

// NeighborCells returns the distinct Moore-neighbourhood cells around c,
// wrapped onto the torus and excluding c itself. On grids narrower than
// three cells several offsets land on the same cell; each is listed once.
func (g *Grid) NeighborCells(c Cell) []Cell {
	c = g.Wrap(c)
	seen := make(map[Cell]bool, len(MooreDirections))
	result := make([]Cell, 0, len(MooreDirections))
	for _, d := range MooreDirections {
		n := g.Wrap(Cell{X: c.X + d.X, Y: c.Y + d.Y})
		if n == c || seen[n] {
			continue
		}
		seen[n] = true
		result = append(result, n)
	}
	return result
}

// Neighbors returns the occupants of the Moore neighbourhood around c.
func (g *Grid) Neighbors(c Cell) []Occupant {
	var result []Occupant
	for _, n := range g.NeighborCells(c) {
		result = append(result, g.CellContents(n)...)
	}
	return result
}

// Counts returns the number of occupants per cell as counts[x][y].
func (g *Grid) Counts() [][]int {
	counts := make([][]int, g.Width)
	for x := range counts {
		counts[x] = make([]int, g.Height)
		for y := range counts[x] {
			counts[x][y] = len(g.CellContents(Cell{X: x, Y: y}))
		}
	}
	return counts
}

// OccupantCount returns the total number of placed occupants.
func (g *Grid) OccupantCount() int {
	total := 0
	for _, cell := range g.cells {
		total += len(cell)
	}
	return total
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, occupants=%d)", g.Width, g.Height, g.OccupantCount())
}

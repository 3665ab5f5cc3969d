package agents

import (
	"github.com/talgya/mini-market/internal/world"
)

// scriptedRand replays queued draws; an empty queue yields 0.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		panic("scripted draw out of range")
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type testEnv struct {
	day       int
	shops     []*Shop
	neighbors map[world.Cell][]*Client
	rng       Rand
}

func (e *testEnv) Day() int       { return e.day }
func (e *testEnv) Shops() []*Shop { return e.shops }
func (e *testEnv) Rand() Rand     { return e.rng }

func (e *testEnv) NeighborClients(pos world.Cell) []*Client {
	return e.neighbors[pos]
}

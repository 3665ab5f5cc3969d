// Package agents provides the shop and client agents, their opinions, and
// the capabilities the model drives them through.
package agents

import (
	"github.com/talgya/mini-market/internal/world"
)

// AgentID is a unique identifier for a shop or client.
type AgentID int

// Rand is the random source agents draw from. *rand.Rand satisfies it; the
// model shares one seeded instance so a run is reproducible.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Env is the model as seen from inside an agent's turn.
type Env interface {
	Day() int
	Shops() []*Shop
	NeighborClients(pos world.Cell) []*Client
	Rand() Rand
}

// Steppable is an agent that acts once per simulated day.
type Steppable interface {
	Step(env Env)
}

// placement is embedded by agents to satisfy world.Occupant.
type placement struct {
	pos world.Cell
}

// Position returns the agent's grid cell.
func (p *placement) Position() world.Cell { return p.pos }

// SetPosition is called by the grid when the agent is placed.
func (p *placement) SetPosition(c world.Cell) { p.pos = c }

// randInt returns a uniform integer in [lo, hi].
func randInt(rng Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// uniform returns a uniform float in [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

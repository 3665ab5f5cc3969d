// Model ties the grid, shops, and clients together and runs the day loop.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/talgya/mini-market/internal/agents"
	"github.com/talgya/mini-market/internal/economy"
	"github.com/talgya/mini-market/internal/world"
)

// ModelConfig holds the parameters of one run.
type ModelConfig struct {
	Width           int
	Height          int
	Clients         int
	Shops           int
	Seed            int64
	ClientMoney     float64
	ShopMoney       float64
	ScamProbability float64
}

// DefaultModelConfig returns the reference setup: a 6×6 torus with 30
// clients and 5 shops.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Width:           6,
		Height:          6,
		Clients:         30,
		Shops:           5,
		Seed:            42,
		ClientMoney:     agents.DefaultClientMoney,
		ShopMoney:       agents.DefaultShopMoney,
		ScamProbability: agents.DefaultScamProbability,
	}
}

// Model holds the complete market state.
type Model struct {
	grid    *world.Grid
	shops   []*agents.Shop
	clients []*agents.Client
	rng     *rand.Rand
	day     int

	Recorder Recorder
}

// NewModel builds the market: shops first, then clients, each on a random
// empty cell, then every client starts neutral about every shop.
func NewModel(cfg ModelConfig) (*Model, error) {
	m := &Model{
		grid: world.NewGrid(cfg.Width, cfg.Height),
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}

	spawner := agents.NewSpawner(m.rng, economy.DefaultCatalog())
	spawner.ShopMoney = cfg.ShopMoney
	spawner.ClientMoney = cfg.ClientMoney
	spawner.ScamProbability = cfg.ScamProbability

	for i := 0; i < cfg.Shops; i++ {
		shop := spawner.SpawnShop()
		if _, err := m.grid.PlaceRandom(shop, m.rng); err != nil {
			return nil, fmt.Errorf("place shop: %w", err)
		}
		m.shops = append(m.shops, shop)
	}

	for i := 0; i < cfg.Clients; i++ {
		client := spawner.SpawnClient()
		if _, err := m.grid.PlaceRandom(client, m.rng); err != nil {
			return nil, fmt.Errorf("place client: %w", err)
		}
		m.clients = append(m.clients, client)
	}

	for _, c := range m.clients {
		for _, s := range m.shops {
			c.EnsureOpinion(s.ID)
		}
	}

	slog.Info("market initialized",
		"grid", m.grid.String(),
		"shops", len(m.shops),
		"clients", len(m.clients),
		"seed", cfg.Seed,
	)
	return m, nil
}

// Day returns the number of completed days. During a day's client turns it
// is the zero-based index of the day in progress.
func (m *Model) Day() int { return m.day }

// Shops returns the shops in creation order.
func (m *Model) Shops() []*agents.Shop { return m.shops }

// Clients returns the clients in creation order.
func (m *Model) Clients() []*agents.Client { return m.clients }

// Grid returns the grid.
func (m *Model) Grid() *world.Grid { return m.grid }

// Rand returns the model's shared random source.
func (m *Model) Rand() agents.Rand { return m.rng }

// NeighborClients returns the clients in the Moore neighbourhood of pos.
func (m *Model) NeighborClients(pos world.Cell) []*agents.Client {
	var result []*agents.Client
	for _, occ := range m.grid.Neighbors(pos) {
		if c, ok := occ.(*agents.Client); ok {
			result = append(result, c)
		}
	}
	return result
}

// Step advances the market by one day and returns its snapshot.
func (m *Model) Step() DaySnapshot {
	for _, c := range m.clients {
		c.ReplenishNeeds()
	}

	// Shop maintenance precedes every client turn.
	for _, s := range m.shops {
		s.Step(m)
	}

	for _, i := range m.rng.Perm(len(m.clients)) {
		m.clients[i].Step(m)
	}

	m.day++

	snap := m.Snapshot()
	m.Recorder.Record(snap)
	logDailyStatistics(snap)
	return snap
}

// Run advances the market by n days.
func (m *Model) Run(days int) []DaySnapshot {
	out := make([]DaySnapshot, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, m.Step())
	}
	return out
}

// Snapshot captures every agent's current state without changing it.
func (m *Model) Snapshot() DaySnapshot {
	snap := DaySnapshot{
		Day:     m.day,
		Shops:   make([]ShopSnapshot, 0, len(m.shops)),
		Clients: make([]ClientSnapshot, 0, len(m.clients)),
	}
	for _, s := range m.shops {
		snap.Shops = append(snap.Shops, snapshotShop(m.day, s))
	}
	for _, c := range m.clients {
		snap.Clients = append(snap.Clients, snapshotClient(m.day, c))
	}
	return snap
}

// Snapshots returns every recorded day, oldest first.
func (m *Model) Snapshots() []DaySnapshot {
	return m.Recorder.All()
}

// RenderGrid draws the grid row by row: S for a cell holding a shop, C for
// clients only, . for empty.
func (m *Model) RenderGrid() string {
	var b strings.Builder
	for y := 0; y < m.grid.Height; y++ {
		for x := 0; x < m.grid.Width; x++ {
			mark := "."
			for _, occ := range m.grid.CellContents(world.Cell{X: x, Y: y}) {
				if _, ok := occ.(*agents.Shop); ok {
					mark = "S"
					break
				}
				mark = "C"
			}
			b.WriteString(mark)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func logDailyStatistics(snap DaySnapshot) {
	slog.Info("daily report",
		"day", snap.Day,
		"shops", len(snap.Shops),
		"clients", len(snap.Clients),
		"shop_money", fmt.Sprintf("%.2f", snap.TotalShopMoney()),
		"client_money", fmt.Sprintf("%.2f", snap.TotalClientMoney()),
		"total_stock", snap.TotalStock(),
		"sales", snap.TotalSales(),
	)
	for _, s := range snap.Shops {
		slog.Debug("shop", "day", snap.Day, "shop", s.ShopID,
			"money", fmt.Sprintf("%.2f", s.Money), "total_stock", s.TotalStock, "sales", s.Sales)
	}
	for _, c := range snap.Clients {
		slog.Debug("client", "day", snap.Day, "client", c.ClientID,
			"money", fmt.Sprintf("%.2f", c.Money), "inventory", c.Summary)
	}
}

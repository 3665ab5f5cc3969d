// Agent spawning: creates shops and clients with randomized catalogs and
// needs drawn from a shared product catalog.
package agents

import (
	"github.com/talgya/mini-market/internal/economy"
)

// Spawn ranges.
const (
	MinProductsPerShop = 2
	MaxProductsPerShop = 4
	MinInitialStock    = 10
	MaxInitialStock    = 50
	MinNeedsPerClient  = 2
	MaxNeedsPerClient  = 4
	MinDailyNeed       = 1
	MaxDailyNeed       = 5
)

// Spawner creates agents with sequential IDs.
type Spawner struct {
	rng     Rand
	catalog []*economy.Product
	nextID  AgentID

	ShopMoney       float64
	ScamProbability float64
	ClientMoney     float64
}

// NewSpawner creates a spawner drawing from the given catalog.
func NewSpawner(rng Rand, catalog []*economy.Product) *Spawner {
	return &Spawner{
		rng:             rng,
		catalog:         catalog,
		ShopMoney:       DefaultShopMoney,
		ScamProbability: DefaultScamProbability,
		ClientMoney:     DefaultClientMoney,
	}
}

// SpawnShop creates a shop stocking 2–4 distinct catalog goods, each with
// its own random starting stock.
func (s *Spawner) SpawnShop() *Shop {
	shop := NewShop(s.issueID(), s.ShopMoney, s.ScamProbability)
	n := randInt(s.rng, MinProductsPerShop, MaxProductsPerShop)
	for _, p := range s.sample(n) {
		shop.AddProduct(p.WithQuantity(randInt(s.rng, MinInitialStock, MaxInitialStock)))
	}
	return shop
}

// SpawnClient creates a client needing 2–4 distinct catalog goods, each
// with a random daily requirement.
func (s *Spawner) SpawnClient() *Client {
	n := randInt(s.rng, MinNeedsPerClient, MaxNeedsPerClient)
	picked := s.sample(n)
	needs := make([]*economy.Product, 0, len(picked))
	for _, p := range picked {
		needs = append(needs, p.WithQuantity(randInt(s.rng, MinDailyNeed, MaxDailyNeed)))
	}
	return NewClient(s.issueID(), s.ClientMoney, DefaultProductToSell, needs)
}

func (s *Spawner) issueID() AgentID {
	id := s.nextID
	s.nextID++
	return id
}

// sample picks k distinct catalog entries (partial Fisher–Yates).
func (s *Spawner) sample(k int) []*economy.Product {
	pool := make([]*economy.Product, len(s.catalog))
	copy(pool, s.catalog)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

package agents

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/talgya/mini-market/internal/economy"
)

// Client buying and production policy.
const (
	StockpileFactor   = 5 // Skip buying when inventory holds this many days of a need
	MinBuyMultiplier  = 5
	MaxBuyMultiplier  = 8
	MinProfitMargin   = 0.8
	MaxProfitMargin   = 0.9
	MinSurcharge      = 0.1
	MaxSurcharge      = 0.3
	SharedOpinionStep = 0.5

	DefaultClientMoney   = 500.0
	DefaultProductToSell = "Cookies"

	ReasonShared = "shared"
)

// dailyNeeds are the fixed per-day requirements for the staple goods.
var dailyNeeds = map[economy.ProductID]int{
	economy.ProductMilk:   5,
	economy.ProductEggs:   3,
	economy.ProductBread:  4,
	economy.ProductButter: 2,
}

// Client buys ingredients, turns them into a product it sells at a markup,
// and gossips about shops with its neighbours.
type Client struct {
	placement

	ID            AgentID            `json:"id"`
	Money         float64            `json:"money"`
	ProductToSell string             `json:"product_to_sell"`
	Needs         []*economy.Product `json:"product_needs"` // Quantity is the daily requirement
	Inventory     []*economy.Product `json:"inventory"`     // One entry per product ID

	opinions      map[AgentID]*Opinion
	exchangeCount map[AgentID]int
	baseNeeds     map[economy.ProductID]int // Need quantities at creation
}

// NewClient creates a client. The needs are taken over by the client.
func NewClient(id AgentID, money float64, productToSell string, needs []*economy.Product) *Client {
	base := make(map[economy.ProductID]int, len(needs))
	for _, n := range needs {
		base[n.ID] = n.Quantity
	}
	return &Client{
		ID:            id,
		Money:         money,
		ProductToSell: productToSell,
		Needs:         needs,
		opinions:      make(map[AgentID]*Opinion),
		exchangeCount: make(map[AgentID]int),
		baseNeeds:     base,
	}
}

// OccupantID identifies the client on the grid.
func (c *Client) OccupantID() int { return int(c.ID) }

// BuyerID implements Buyer.
func (c *Client) BuyerID() AgentID { return c.ID }

// Balance implements Buyer.
func (c *Client) Balance() float64 { return c.Money }

// Debit implements Buyer.
func (c *Client) Debit(amount float64) { c.Money -= amount }

// ReplenishNeeds resets each daily requirement. Staples use their fixed
// quantities; anything else returns to what it was when the client was
// created.
func (c *Client) ReplenishNeeds() {
	for _, need := range c.Needs {
		if qty, ok := dailyNeeds[need.ID]; ok {
			need.Quantity = qty
			continue
		}
		if qty, ok := c.baseNeeds[need.ID]; ok {
			need.Quantity = qty
		}
	}
}

// InventoryItem returns the inventory entry for a product, or nil.
func (c *Client) InventoryItem(id economy.ProductID) *economy.Product {
	return economy.Find(c.Inventory, id)
}

// BuyProducts tries to cover every need that is not already stockpiled,
// asking shops in order until one sells. A need no shop can serve goes
// unmet for the day.
func (c *Client) BuyProducts(shops []*Shop, day int, rng Rand) {
	for _, need := range c.Needs {
		item := c.InventoryItem(need.ID)
		if item != nil && item.Quantity >= need.Quantity*StockpileFactor {
			continue
		}

		buyQty := randInt(rng, MinBuyMultiplier, MaxBuyMultiplier) * need.Quantity

		for _, shop := range shops {
			if shop.SellProduct(c, need.ID, buyQty, day) != SaleOK {
				continue
			}
			if item != nil {
				if err := item.AdjustQuantity(buyQty); err != nil {
					slog.Error("inventory update failed", "client", c.ID, "error", err)
				}
			} else {
				c.Inventory = append(c.Inventory, &economy.Product{
					ID:       need.ID,
					Name:     need.Name,
					Quality:  0, // Quality is not tracked in client inventories
					Price:    need.Price,
					Quantity: buyQty,
				})
			}
			break
		}
	}
}

// ProduceProduct consumes one day's worth of every need and sells the
// result at a markup over ingredient cost. Nothing changes unless every
// ingredient is available. Returns the profit earned.
func (c *Client) ProduceProduct(rng Rand) (float64, bool) {
	for _, need := range c.Needs {
		item := c.InventoryItem(need.ID)
		if item == nil || item.Quantity < need.Quantity {
			slog.Debug("not enough to produce", "client", c.ID, "missing", need.Name)
			return 0, false
		}
	}

	totalCost := 0.0
	for _, need := range c.Needs {
		item := c.InventoryItem(need.ID)
		if err := item.AdjustQuantity(-need.Quantity); err != nil {
			// Unreachable after the availability check above.
			slog.Error("ingredient deduction failed", "client", c.ID, "error", err)
			continue
		}
		totalCost += item.Price * float64(need.Quantity)
	}

	margin := uniform(rng, MinProfitMargin, MaxProfitMargin)
	surcharge := uniform(rng, MinSurcharge, MaxSurcharge)
	profit := totalCost * margin * (1 + surcharge)
	c.Money += profit

	slog.Debug("produced", "client", c.ID, "product", c.ProductToSell,
		"total_cost", fmt.Sprintf("%.2f", totalCost),
		"margin", fmt.Sprintf("%.2f", margin),
		"surcharge", fmt.Sprintf("%.2f", surcharge),
		"profit", fmt.Sprintf("%.2f", profit))
	return profit, true
}

// Opinion returns the client's opinion of a shop, or nil if it has none.
func (c *Client) Opinion(shopID AgentID) *Opinion {
	return c.opinions[shopID]
}

// Opinions returns the client's opinions sorted by shop ID.
func (c *Client) Opinions() []*Opinion {
	out := make([]*Opinion, 0, len(c.opinions))
	for _, o := range c.opinions {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShopID < out[j].ShopID })
	return out
}

// opinionOf returns the opinion of a shop, creating a neutral one if needed.
func (c *Client) opinionOf(shopID AgentID) *Opinion {
	o, ok := c.opinions[shopID]
	if !ok {
		o = NewOpinion(shopID, 0)
		c.opinions[shopID] = o
	}
	return o
}

// EnsureOpinion makes sure the client holds an opinion of the shop.
func (c *Client) EnsureOpinion(shopID AgentID) {
	c.opinionOf(shopID)
}

// UpdateOpinion applies a direct experience with a shop.
func (c *Client) UpdateOpinion(shopID AgentID, change float64, reason string) {
	c.opinionOf(shopID).AdjustScore(change, reason)
}

// ExchangeCount returns how many times the client raised a neighbour's
// opinion of a shop.
func (c *Client) ExchangeCount(shopID AgentID) int {
	return c.exchangeCount[shopID]
}

// ShareOpinion nudges the other client's opinions up toward this client's
// wherever the other client thinks less of a shop. It never lowers a score.
func (c *Client) ShareOpinion(other *Client) {
	for _, o := range c.Opinions() {
		theirs := other.opinionOf(o.ShopID)
		if theirs.Score() >= o.Score() {
			continue
		}
		theirs.AdjustScore(SharedOpinionStep, ReasonShared)
		c.exchangeCount[o.ShopID]++
		slog.Debug("shared opinion", "client", c.ID, "with", other.ID, "shop", o.ShopID)
	}
}

// ChooseBestShop returns the shop the client thinks best of. When the best
// score is exactly neutral the choice is random. Ties go to the lowest
// shop ID. Returns false if the client has no opinions.
func (c *Client) ChooseBestShop(rng Rand) (AgentID, bool) {
	opinions := c.Opinions()
	if len(opinions) == 0 {
		return 0, false
	}

	best := opinions[0]
	for _, o := range opinions[1:] {
		if o.Score() > best.Score() {
			best = o
		}
	}
	if best.Score() == 0 {
		return opinions[rng.Intn(len(opinions))].ShopID, true
	}
	return best.ShopID, true
}

// Step is the client's daily turn: shop, produce, then share opinions with
// every client in the surrounding cells.
func (c *Client) Step(env Env) {
	c.BuyProducts(env.Shops(), env.Day(), env.Rand())
	c.ProduceProduct(env.Rand())
	for _, neighbor := range env.NeighborClients(c.Position()) {
		if neighbor == c {
			continue
		}
		c.ShareOpinion(neighbor)
	}
}

// InventorySummary renders the inventory as "Milk: 10, Eggs: 3", or
// "Empty".
func (c *Client) InventorySummary() string {
	if len(c.Inventory) == 0 {
		return "Empty"
	}
	parts := make([]string, 0, len(c.Inventory))
	for _, p := range c.Inventory {
		parts = append(parts, fmt.Sprintf("%s: %d", p.Name, p.Quantity))
	}
	return strings.Join(parts, ", ")
}

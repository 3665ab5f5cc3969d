package engine

import (
	"github.com/talgya/mini-market/internal/agents"
	"github.com/talgya/mini-market/internal/economy"
)

// ProductSnapshot is one shelf entry at the end of a day.
type ProductSnapshot struct {
	ProductID economy.ProductID `json:"product_id"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	Quantity  int               `json:"quantity"`
}

// ShopSnapshot is a shop's state at the end of a day.
type ShopSnapshot struct {
	Day        int               `json:"day"`
	ShopID     agents.AgentID    `json:"shop_id"`
	Money      float64           `json:"money"`
	TotalStock int               `json:"total_stock"`
	Sales      int               `json:"sales"` // Transactions completed during this day
	Products   []ProductSnapshot `json:"products"`
}

// InventoryLine is one inventory entry of a client.
type InventoryLine struct {
	ProductID economy.ProductID `json:"product_id"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
}

// ClientSnapshot is a client's state at the end of a day.
type ClientSnapshot struct {
	Day       int             `json:"day"`
	ClientID  agents.AgentID  `json:"client_id"`
	Money     float64         `json:"money"`
	Inventory []InventoryLine `json:"inventory"`
	Summary   string          `json:"summary"` // "Milk: 10, Eggs: 3" or "Empty"
}

// DaySnapshot gathers every agent's end-of-day state.
type DaySnapshot struct {
	Day     int              `json:"day"`
	Shops   []ShopSnapshot   `json:"shops"`
	Clients []ClientSnapshot `json:"clients"`
}

// TotalShopMoney sums money across all shops.
func (d DaySnapshot) TotalShopMoney() float64 {
	total := 0.0
	for _, s := range d.Shops {
		total += s.Money
	}
	return total
}

// TotalClientMoney sums money across all clients.
func (d DaySnapshot) TotalClientMoney() float64 {
	total := 0.0
	for _, c := range d.Clients {
		total += c.Money
	}
	return total
}

// TotalStock sums stock across all shops.
func (d DaySnapshot) TotalStock() int {
	total := 0
	for _, s := range d.Shops {
		total += s.TotalStock
	}
	return total
}

// TotalSales counts the day's transactions across all shops.
func (d DaySnapshot) TotalSales() int {
	total := 0
	for _, s := range d.Shops {
		total += s.Sales
	}
	return total
}

// Recorder accumulates daily snapshots in order.
type Recorder struct {
	days []DaySnapshot
}

// Record appends a snapshot.
func (r *Recorder) Record(s DaySnapshot) {
	r.days = append(r.days, s)
}

// All returns every recorded snapshot, oldest first.
func (r *Recorder) All() []DaySnapshot {
	out := make([]DaySnapshot, len(r.days))
	copy(out, r.days)
	return out
}

// Latest returns the most recent snapshot, if any.
func (r *Recorder) Latest() (DaySnapshot, bool) {
	if len(r.days) == 0 {
		return DaySnapshot{}, false
	}
	return r.days[len(r.days)-1], true
}

// Len returns the number of recorded days.
func (r *Recorder) Len() int {
	return len(r.days)
}

func snapshotShop(day int, s *agents.Shop) ShopSnapshot {
	products := make([]ProductSnapshot, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, ProductSnapshot{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  p.Quantity,
		})
	}

	// Sales are stamped with the zero-based day they happened on.
	sales := 0
	for _, tx := range s.Sales() {
		if tx.Day == day-1 {
			sales++
		}
	}

	return ShopSnapshot{
		Day:        day,
		ShopID:     s.ID,
		Money:      s.Money,
		TotalStock: s.TotalStock(),
		Sales:      sales,
		Products:   products,
	}
}

func snapshotClient(day int, c *agents.Client) ClientSnapshot {
	lines := make([]InventoryLine, 0, len(c.Inventory))
	for _, p := range c.Inventory {
		lines = append(lines, InventoryLine{ProductID: p.ID, Name: p.Name, Quantity: p.Quantity})
	}
	return ClientSnapshot{
		Day:       day,
		ClientID:  c.ID,
		Money:     c.Money,
		Inventory: lines,
		Summary:   c.InventorySummary(),
	}
}

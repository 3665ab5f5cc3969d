package agents

import (
	"log/slog"
	"math"
	"sync"

	"github.com/talgya/mini-market/internal/economy"
)

// Shop pricing and restocking policy.
const (
	LowStockThreshold   = 20   // Below this, prices rise
	HighStockThreshold  = 100  // Above this, prices fall
	LowStockMarkup      = 1.10 // Price multiplier when stock is low
	HighStockDiscount   = 0.90 // Price multiplier when stock is high
	RestockThreshold    = 25   // At or below this, the shop restocks
	MinRestock          = 30
	MaxRestock          = 150
	RestockCostFraction = 0.20 // Wholesale cost as a fraction of the retail price

	DefaultShopMoney       = 1000.0
	DefaultScamProbability = 0.1
)

// SaleResult is the outcome of a sale attempt. Only SaleOK changes state.
type SaleResult uint8

const (
	SaleOK SaleResult = iota
	// SaleNotFound means the shop does not carry the product.
	SaleNotFound
	// SaleOutOfStock means there are not enough units on the shelf.
	SaleOutOfStock
	// SaleUnaffordable means the buyer cannot pay the full amount.
	SaleUnaffordable
)

func (r SaleResult) String() string {
	switch r {
	case SaleOK:
		return "ok"
	case SaleNotFound:
		return "not_found"
	case SaleOutOfStock:
		return "out_of_stock"
	case SaleUnaffordable:
		return "unaffordable"
	}
	return "unknown"
}

// Buyer is the paying side of a sale.
type Buyer interface {
	BuyerID() AgentID
	Balance() float64
	Debit(amount float64)
}

// Transaction is one completed sale.
type Transaction struct {
	Day       int               `json:"day"`
	ClientID  AgentID           `json:"client_id"`
	ProductID economy.ProductID `json:"product_id"`
	Quantity  int               `json:"quantity"`
	Price     float64           `json:"price"`
	Quality   float64           `json:"quality"`
	Scammed   bool              `json:"scammed"`
}

// Shop sells goods from its own catalog, restocks, and reprices daily.
type Shop struct {
	placement

	ID    AgentID `json:"id"`
	Money float64 `json:"money"`

	// Products holds at most one entry per product ID.
	Products []*economy.Product `json:"products"`

	// ScamProbability is stored but not yet consulted by any sale.
	ScamProbability float64       `json:"scam_probability"`
	SalesLog        []Transaction `json:"sales_log"`

	// Guards Products and Money so a sale is one atomic step.
	mu sync.Mutex
}

// NewShop creates a shop with no products.
func NewShop(id AgentID, money, scamProbability float64) *Shop {
	return &Shop{
		ID:              id,
		Money:           money,
		ScamProbability: scamProbability,
	}
}

// OccupantID identifies the shop on the grid.
func (s *Shop) OccupantID() int { return int(s.ID) }

// AddProduct puts a product on the shelf, replacing any entry with the same ID.
func (s *Shop) AddProduct(p *economy.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.Products {
		if existing.ID == p.ID {
			s.Products[i] = p
			return
		}
	}
	s.Products = append(s.Products, p)
}

// Product returns the shelf entry for id, or nil.
func (s *Shop) Product(id economy.ProductID) *economy.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return economy.Find(s.Products, id)
}

// TotalStock returns the number of units across all products.
func (s *Shop) TotalStock() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return economy.TotalQuantity(s.Products)
}

// SellProduct sells quantity units of a product to the buyer. Either stock
// and money both move or nothing changes.
func (s *Shop) SellProduct(buyer Buyer, id economy.ProductID, quantity int, day int) SaleResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := economy.Find(s.Products, id)
	if product == nil {
		slog.Debug("product not found", "shop", s.ID, "product", id)
		return SaleNotFound
	}

	if product.Quantity < quantity {
		slog.Debug("not enough stock", "shop", s.ID, "product", product.Name,
			"requested", quantity, "available", product.Quantity)
		return SaleOutOfStock
	}

	cost := product.Price * float64(quantity)
	if buyer.Balance() < cost {
		slog.Debug("client cannot afford", "shop", s.ID, "client", buyer.BuyerID(),
			"product", product.Name, "cost", cost, "client_money", buyer.Balance())
		return SaleUnaffordable
	}

	// Stock first: a failure here leaves money untouched.
	if err := product.AdjustQuantity(-quantity); err != nil {
		slog.Error("sale rejected", "shop", s.ID, "error", err)
		return SaleOutOfStock
	}
	buyer.Debit(cost)
	s.Money += cost

	s.SalesLog = append(s.SalesLog, Transaction{
		Day:       day,
		ClientID:  buyer.BuyerID(),
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.Price,
		Quality:   product.Quality,
	})
	slog.Debug("sale", "shop", s.ID, "client", buyer.BuyerID(),
		"product", product.Name, "quantity", quantity, "cost", cost)
	return SaleOK
}

// RestockProducts tops up every product at or below the restock threshold,
// provided the shop can pay the wholesale cost in full.
func (s *Shop) RestockProducts(rng Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.Products {
		if p.Quantity > RestockThreshold {
			continue
		}
		amount := randInt(rng, MinRestock, MaxRestock)
		cost := float64(amount) * p.Price * RestockCostFraction
		if s.Money < cost {
			slog.Debug("cannot afford restock", "shop", s.ID, "product", p.Name, "cost", cost, "money", s.Money)
			continue
		}
		if err := p.AdjustQuantity(amount); err != nil {
			slog.Error("restock rejected", "shop", s.ID, "error", err)
			continue
		}
		s.Money -= cost
		slog.Debug("restocked", "shop", s.ID, "product", p.Name, "amount", amount, "cost", cost)
	}
}

// AdjustPrices raises prices on scarce goods, lowers them on overstocked
// ones, and rounds every price to cents.
func (s *Shop) AdjustPrices() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.Products {
		switch {
		case p.Quantity < LowStockThreshold:
			p.Price *= LowStockMarkup
		case p.Quantity > HighStockThreshold:
			p.Price *= HighStockDiscount
		}
		p.Price = roundCents(p.Price)
	}
}

// Step runs the shop's daily maintenance: restock, then reprice.
func (s *Shop) Step(env Env) {
	s.RestockProducts(env.Rand())
	s.AdjustPrices()
}

// Sales returns a copy of the sales log.
func (s *Shop) Sales() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Transaction, len(s.SalesLog))
	copy(out, s.SalesLog)
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

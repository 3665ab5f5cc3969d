// Package economy provides the goods traded between shops and clients.
package economy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuantity is returned when a stock change would drive a
	// product's quantity below zero.
	ErrInvalidQuantity = errors.New("quantity cannot go below zero")

	// ErrDivideByZero is returned by QualityToPrice for a zero-priced product.
	ErrDivideByZero = errors.New("product price is zero")
)

// ProductID identifies a good across shops, inventories, and needs.
type ProductID int

// Product is a quantity of one good with its quality and unit price.
// Every holder (shop catalog, client inventory, client need) owns its own
// instance; use Clone or WithQuantity when goods change hands.
type Product struct {
	ID       ProductID `json:"product_id"`
	Name     string    `json:"name"`
	Quality  float64   `json:"quality"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"` // Never negative
}

// AdjustQuantity adds amount (possibly negative) to the stock. The product
// is left untouched if the result would be negative.
func (p *Product) AdjustQuantity(amount int) error {
	if p.Quantity+amount < 0 {
		return fmt.Errorf("adjust %s (ID: %d) by %d from %d: %w",
			p.Name, p.ID, amount, p.Quantity, ErrInvalidQuantity)
	}
	p.Quantity += amount
	return nil
}

// QualityToPrice returns quality per unit of price.
func (p *Product) QualityToPrice() (float64, error) {
	if p.Price == 0 {
		return 0, fmt.Errorf("quality to price for %s: %w", p.Name, ErrDivideByZero)
	}
	return p.Quality / p.Price, nil
}

// Clone returns an independent copy of the product.
func (p *Product) Clone() *Product {
	c := *p
	return &c
}

// WithQuantity returns a copy of the product holding quantity units.
func (p *Product) WithQuantity(quantity int) *Product {
	c := p.Clone()
	c.Quantity = quantity
	return c
}

func (p *Product) String() string {
	return fmt.Sprintf("Product %s (ID: %d) - Quality: %g, Price: %g, Quantity: %d",
		p.Name, p.ID, p.Quality, p.Price, p.Quantity)
}

// Package cart holds the in-memory state of a sale being built at the till.
package cart

import (
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/shopspring/decimal"
)

// Cart is an ordered collection of cart lines keyed by product.
// Iteration follows the order in which products were first added.
// A Cart is not safe for concurrent use.
type Cart struct {
	active bool
	order  []int64
	lines  map[int64]*domain.CartLine
}

// New returns an inactive, empty cart
func New() *Cart {
	return &Cart{lines: make(map[int64]*domain.CartLine)}
}

// StartSale clears the cart and activates it
func (c *Cart) StartSale() {
	c.clear()
	c.active = true
}

// CancelSale clears the cart and deactivates it
func (c *Cart) CancelSale() {
	c.clear()
	c.active = false
}

// Active reports whether a sale is in progress
func (c *Cart) Active() bool {
	return c.active
}

// AddUnit adds one unit of the product, capturing its current price
// the first time the product enters the cart.
func (c *Cart) AddUnit(p *domain.Product) error {
	if !c.active {
		return domain.ErrNoActiveSale
	}

	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
		return nil
	}

	c.lines[p.ID] = &domain.CartLine{
		ProductID:    p.ID,
		Name:         p.Name,
		Presentation: p.Presentation,
		UnitPrice:    p.Price,
		Quantity:     1,
	}
	c.order = append(c.order, p.ID)
	return nil
}

// RemoveUnit removes one unit of the product, dropping the line at zero.
// Unknown products are ignored.
func (c *Cart) RemoveUnit(productID int64) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}

	line.Quantity--
	if line.Quantity > 0 {
		return
	}

	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Quantity returns the units of the product in the cart
func (c *Cart) Quantity(productID int64) int {
	if line, ok := c.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// Total sums quantity times unit price, computed on every call
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		total = total.Add(c.lines[id].Subtotal())
	}
	return total
}

func (c *Cart) clear() {
	c.order = nil
	c.lines = make(map[int64]*domain.CartLine)
}

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups products on the till screen
type Category string

const (
	CategoryDrink Category = "DRINK"
	CategoryFood  Category = "FOOD"
	CategoryOther Category = "OTHER"
)

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	switch c {
	case CategoryDrink, CategoryFood, CategoryOther:
		return true
	}
	return false
}

// Product is a sellable item of one event's catalog
type Product struct {
	ID           int64           `json:"id"`
	EventID      int64           `json:"event_id"`
	Name         string          `json:"name"`
	Category     Category        `json:"category"`
	Presentation string          `json:"presentation,omitempty"`
	Price        decimal.Decimal `json:"price"`
}

// NewProduct validates and builds a product
func NewProduct(eventID int64, name string, category Category, presentation string, price decimal.Decimal) (*Product, error) {
	if eventID <= 0 {
		return nil, ErrInvalidID
	}
	p := &Product{
		EventID:      eventID,
		Name:         name,
		Category:     category,
		Presentation: presentation,
		Price:        price,
	}
	if err := p.Normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// Normalize trims text fields, rounds the price and validates the result
func (p *Product) Normalize() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Presentation = strings.TrimSpace(p.Presentation)
	p.Price = RoundMoney(p.Price)

	if p.Name == "" {
		return ErrInvalidProductName
	}
	if !p.Category.IsValid() {
		return ErrInvalidCategory
	}
	if !ValidPrice(p.Price) {
		return ErrInvalidPrice
	}
	return nil
}

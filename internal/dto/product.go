package dto

import (
	"strings"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductRequest is used to create or replace a product.
// Price accepts a JSON number or a decimal string.
type ProductRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	Category     string          `json:"category" binding:"required"`
	Presentation string          `json:"presentation" binding:"max=255"`
	Price        decimal.Decimal `json:"price"`
}

// Validate validates the ProductRequest
func (r *ProductRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" {
		return false, "Product name is required"
	}
	if !domain.Category(r.Category).IsValid() {
		return false, "Category must be DRINK, FOOD or OTHER"
	}
	if !domain.ValidPrice(r.Price) {
		return false, "Price must be greater than zero and at most 1000000000.00"
	}
	return true, ""
}

// ProductResponse represents the response for a product
type ProductResponse struct {
	ID           int64  `json:"id"`
	EventID      int64  `json:"event_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Presentation string `json:"presentation,omitempty"`
	Price        string `json:"price"`
}

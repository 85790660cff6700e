package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

// Only confirmed sales are produced; the status is kept for future voiding.
const (
	SaleStatusConfirmed SaleStatus = "CONFIRMED"
)

// CartLine is one product entry of an in-progress sale
type CartLine struct {
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	Presentation string          `json:"presentation,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
}

// Subtotal returns quantity times unit price
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Sale is a committed transaction with its line items
type Sale struct {
	ID      int64           `json:"id"`
	EventID int64           `json:"event_id"`
	SoldAt  time.Time       `json:"sold_at"`
	Total   decimal.Decimal `json:"total"`
	Status  SaleStatus      `json:"status"`
	Lines   []SaleLine      `json:"lines"`
}

// SaleLine is one product-quantity entry of a sale with its price snapshot
type SaleLine struct {
	ID           int64           `json:"id"`
	SaleID       int64           `json:"sale_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Presentation string          `json:"presentation,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// NewSale builds a confirmed sale from cart lines. The total is always
// derived from the lines.
func NewSale(eventID int64, lines []CartLine, soldAt time.Time) (*Sale, error) {
	if eventID <= 0 {
		return nil, ErrInvalidID
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	sale := &Sale{
		EventID: eventID,
		SoldAt:  soldAt.UTC(),
		Status:  SaleStatusConfirmed,
		Lines:   make([]SaleLine, 0, len(lines)),
	}

	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if !ValidPrice(l.UnitPrice) {
			return nil, ErrInvalidPrice
		}
		price := RoundMoney(l.UnitPrice)
		sale.Lines = append(sale.Lines, SaleLine{
			ProductID:    l.ProductID,
			ProductName:  l.Name,
			Presentation: l.Presentation,
			Quantity:     l.Quantity,
			UnitPrice:    price,
			Subtotal:     price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}
	sale.Total = sale.LinesTotal()
	if sale.Total.GreaterThan(MaxSaleTotal) {
		return nil, ErrSaleTotalTooLarge
	}

	return sale, nil
}

// LinesTotal sums the line subtotals
func (s *Sale) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

package domain

import "github.com/shopspring/decimal"

// SalesSummary aggregates the confirmed sales of an event.
// AverageTicket is invalid when there are no sales.
type SalesSummary struct {
	EventID       int64               `json:"event_id"`
	Count         int64               `json:"count"`
	TotalRevenue  decimal.Decimal     `json:"total_revenue"`
	AverageTicket decimal.NullDecimal `json:"average_ticket"`
}

// NewSalesSummary derives the average ticket from count and revenue
func NewSalesSummary(eventID, count int64, revenue decimal.Decimal) *SalesSummary {
	s := &SalesSummary{
		EventID:      eventID,
		Count:        count,
		TotalRevenue: revenue,
	}
	if count > 0 {
		s.AverageTicket = decimal.NewNullDecimal(revenue.DivRound(decimal.NewFromInt(count), MoneyPlaces))
	}
	return s
}

// IsEmpty reports whether the event has no confirmed sales
func (s *SalesSummary) IsEmpty() bool {
	return s.Count == 0
}

// ProductSales is one row of the per-product breakdown
type ProductSales struct {
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	Presentation string          `json:"presentation,omitempty"`
	Category     Category        `json:"category"`
	UnitsSold    int64           `json:"units_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

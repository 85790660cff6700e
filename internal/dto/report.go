package dto

// SalesSummaryResponse aggregates the sales of an event.
// AverageTicket is null when there are no sales.
type SalesSummaryResponse struct {
	EventID       int64   `json:"event_id"`
	Count         int64   `json:"count"`
	TotalRevenue  string  `json:"total_revenue"`
	AverageTicket *string `json:"average_ticket"`
}

// ProductSalesResponse is one row of the per-product breakdown
type ProductSalesResponse struct {
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	Presentation string `json:"presentation,omitempty"`
	Category     string `json:"category"`
	UnitsSold    int64  `json:"units_sold"`
	Revenue      string `json:"revenue"`
}

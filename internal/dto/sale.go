package dto

// SaleLineResponse is one line of a recorded sale
type SaleLineResponse struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	Presentation string `json:"presentation,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	Subtotal     string `json:"subtotal"`
}

// SaleResponse represents a recorded sale
type SaleResponse struct {
	ID      int64               `json:"id"`
	EventID int64               `json:"event_id"`
	SoldAt  string              `json:"sold_at"`
	Total   string              `json:"total"`
	Status  string              `json:"status"`
	Lines   []*SaleLineResponse `json:"lines"`
}

package dto

import "github.com/shopspring/decimal"

// AddItemRequest adds one unit of a product to the till
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// Validate validates the AddItemRequest
func (r *AddItemRequest) Validate() (bool, string) {
	if r.ProductID <= 0 {
		return false, "product_id must be positive"
	}
	return true, ""
}

// ConfirmSaleRequest confirms the current cart. Total is optional; when
// present it must match the cart total.
type ConfirmSaleRequest struct {
	Total *decimal.Decimal `json:"total"`
}

// CartLineResponse is one line of the till
type CartLineResponse struct {
	ProductID    int64  `json:"product_id"`
	Name         string `json:"name"`
	Presentation string `json:"presentation,omitempty"`
	UnitPrice    string `json:"unit_price"`
	Quantity     int    `json:"quantity"`
	Subtotal     string `json:"subtotal"`
}

// TillResponse is the state of an event's till
type TillResponse struct {
	EventID int64               `json:"event_id"`
	State   string              `json:"state"`
	Lines   []*CartLineResponse `json:"lines"`
	Units   int                 `json:"units"`
	Total   string              `json:"total"`
}

// ConfirmSaleResponse returns the recorded sale and its print job
type ConfirmSaleResponse struct {
	Sale     *SaleResponse     `json:"sale"`
	PrintJob *PrintJobResponse `json:"print_job,omitempty"`
}

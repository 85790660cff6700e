package dto

// TicketResponse is one physical ticket of a print job
type TicketResponse struct {
	ProductName  string `json:"product_name"`
	Presentation string `json:"presentation,omitempty"`
	UnitPrice    string `json:"unit_price"`
	EventName    string `json:"event_name"`
}

// PrintJobResponse represents the progress of a print job
type PrintJobResponse struct {
	ID         string          `json:"id"`
	SaleID     int64           `json:"sale_id"`
	EventID    int64           `json:"event_id"`
	Reprint    bool            `json:"reprint"`
	Status     string          `json:"status"`
	Printed    int             `json:"printed"`
	Total      int             `json:"total"`
	Remaining  int             `json:"remaining"`
	NextTicket *TicketResponse `json:"next_ticket,omitempty"`
	LastError  string          `json:"last_error,omitempty"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

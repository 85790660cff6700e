package service

import (
	"context"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/shopspring/decimal"
)

// EventService defines the interface for event business logic
type EventService interface {
	// CreateEvent creates an event; rented events get an access code
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error)
	// GetEvent retrieves an event by ID
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
	// FindEventByAccessCode retrieves an event by its exact access code
	FindEventByAccessCode(ctx context.Context, code string) (*domain.Event, error)
	// ListEvents lists every event, newest first
	ListEvents(ctx context.Context) ([]*domain.Event, error)
}

// CatalogService defines the interface for product catalog logic
type CatalogService interface {
	// ListProducts lists the catalog of an event by name
	ListProducts(ctx context.Context, eventID int64) ([]*domain.Product, error)
	// CreateProduct adds a product to an event's catalog
	CreateProduct(ctx context.Context, eventID int64, req *dto.ProductRequest) (*domain.Product, error)
	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	// UpdateProduct replaces the editable fields of a product
	UpdateProduct(ctx context.Context, id int64, req *dto.ProductRequest) (*domain.Product, error)
	// DeleteProduct removes a product without recorded sales
	DeleteProduct(ctx context.Context, id int64) error
}

// SaleService defines the sale commit pipeline
type SaleService interface {
	// CommitSale persists a sale and its lines atomically. The total is
	// recomputed from the lines; a supplied total must match it.
	CommitSale(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal, lines []domain.CartLine) (*domain.Sale, error)
	// GetSale retrieves a sale with its lines
	GetSale(ctx context.Context, id int64) (*domain.Sale, error)
	// DeleteSale removes a sale and its lines
	DeleteSale(ctx context.Context, id int64) error
}

// ReportService defines the read side over recorded sales
type ReportService interface {
	// Summary returns count, revenue and average ticket of an event
	Summary(ctx context.Context, eventID int64) (*domain.SalesSummary, error)
	// ProductBreakdown returns units and revenue per product, most sold first
	ProductBreakdown(ctx context.Context, eventID int64) ([]*domain.ProductSales, error)
	// SaleHistory returns the sales of an event with their lines, newest first
	SaleHistory(ctx context.Context, eventID int64) ([]*domain.Sale, error)
}

// TillService defines the per-event cart lifecycle
type TillService interface {
	// GetTill returns the current till state of an event
	GetTill(ctx context.Context, eventID int64) (*TillSnapshot, error)
	// StartSale opens a new empty sale
	StartSale(ctx context.Context, eventID int64) (*TillSnapshot, error)
	// CancelSale discards the sale in progress
	CancelSale(ctx context.Context, eventID int64) (*TillSnapshot, error)
	// AddUnit adds one unit of a catalog product
	AddUnit(ctx context.Context, eventID, productID int64) (*TillSnapshot, error)
	// RemoveUnit removes one unit of a product
	RemoveUnit(ctx context.Context, eventID, productID int64) (*TillSnapshot, error)
	// Confirm commits the cart and starts printing its tickets
	Confirm(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal) (*ConfirmResult, error)
}

// PrintService defines the gated ticket printing of sales
type PrintService interface {
	// StartSaleJob creates the print job of a freshly committed sale
	StartSaleJob(ctx context.Context, sale *domain.Sale, eventName string) (*domain.PrintJob, error)
	// Reprint creates a print job from the stored lines of a sale
	Reprint(ctx context.Context, saleID int64) (*domain.PrintJob, error)
	// PrintNext prints the pending ticket of a job
	PrintNext(ctx context.Context, jobID string) (*domain.PrintJob, error)
	// Acknowledge releases a job to print its next ticket
	Acknowledge(ctx context.Context, jobID string) (*domain.PrintJob, error)
	// Cancel abandons the remaining tickets of a job
	Cancel(ctx context.Context, jobID string) (*domain.PrintJob, error)
	// GetJob retrieves a job by ID
	GetJob(ctx context.Context, jobID string) (*domain.PrintJob, error)
	// ListJobs lists the jobs that still have tickets to print
	ListJobs(ctx context.Context) ([]*domain.PrintJob, error)
}

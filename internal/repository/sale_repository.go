package repository

import (
	"context"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	// Create persists the sale and all of its lines in one transaction,
	// setting the generated IDs. Nothing is written if any step fails.
	Create(ctx context.Context, sale *domain.Sale) error

	// GetByID retrieves a sale with its lines, nil when absent
	GetByID(ctx context.Context, id int64) (*domain.Sale, error)

	// Delete removes a sale and, by cascade, its lines
	Delete(ctx context.Context, id int64) error
}

package repository

import (
	"context"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	// Create inserts the product and sets its ID
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product, nil when absent
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// ListByEvent returns the catalog of an event ordered by name
	ListByEvent(ctx context.Context, eventID int64) ([]*domain.Product, error)

	// Update overwrites the editable fields of a product
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product that has no recorded sales
	Delete(ctx context.Context, id int64) error
}

package repository

import (
	"context"
	"errors"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// ErrDuplicateAccessCode is returned when an access code is already taken
var ErrDuplicateAccessCode = errors.New("access code already in use")

// EventRepository defines the interface for event data access
type EventRepository interface {
	// Create inserts the event and sets its ID
	Create(ctx context.Context, event *domain.Event) error

	// GetByID retrieves an event, nil when absent
	GetByID(ctx context.Context, id int64) (*domain.Event, error)

	// GetByAccessCode retrieves an event by exact access code, nil when absent
	GetByAccessCode(ctx context.Context, code string) (*domain.Event, error)

	// List returns every event, newest first
	List(ctx context.Context) ([]*domain.Event, error)
}

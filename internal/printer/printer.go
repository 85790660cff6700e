package printer

import (
	"context"
	"errors"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// ErrPrinterUnavailable is returned when the device cannot be reached
var ErrPrinterUnavailable = errors.New("printer unavailable")

// Printer defines the interface of the ticket printing device.
// One call prints exactly one physical ticket.
type Printer interface {
	// PrintTicket prints a single ticket
	PrintTicket(ctx context.Context, ticket domain.Ticket) error

	// Name returns the printer driver name
	Name() string

	// Close releases the device
	Close() error
}

// Config holds common printer configuration
type Config struct {
	Addr    string
	Timeout time.Duration
}

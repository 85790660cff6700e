package printer

import (
	"context"
	"sync"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// MockPrinter implements Printer in memory, for tests and demo tills
type MockPrinter struct {
	config  *MockPrinterConfig
	mu      sync.Mutex
	printed []domain.Ticket
	calls   int
}

// MockPrinterConfig holds configuration for the mock printer
type MockPrinterConfig struct {
	// DelayMs is the simulated print time in milliseconds
	DelayMs int

	// FailCalls lists 1-based call numbers that fail
	FailCalls map[int]bool

	// FailAll makes every call fail, like a disconnected device
	FailAll bool
}

// DefaultMockPrinterConfig returns default configuration
func DefaultMockPrinterConfig() *MockPrinterConfig {
	return &MockPrinterConfig{}
}

// NewMockPrinter creates a new mock printer
func NewMockPrinter(config *MockPrinterConfig) *MockPrinter {
	if config == nil {
		config = DefaultMockPrinterConfig()
	}
	return &MockPrinter{config: config}
}

// PrintTicket records the ticket unless the call is configured to fail
func (p *MockPrinter) PrintTicket(ctx context.Context, ticket domain.Ticket) error {
	if p.config.DelayMs > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(p.config.DelayMs) * time.Millisecond):
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.config.FailAll || p.config.FailCalls[p.calls] {
		return ErrPrinterUnavailable
	}
	p.printed = append(p.printed, ticket)
	return nil
}

// SetFailAll toggles a simulated disconnection
func (p *MockPrinter) SetFailAll(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.config.FailAll = fail
}

// Printed returns the successfully printed tickets
func (p *MockPrinter) Printed() []domain.Ticket {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Ticket(nil), p.printed...)
}

// Calls returns the number of print attempts
func (p *MockPrinter) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Name returns the printer driver name
func (p *MockPrinter) Name() string {
	return "mock"
}

// Close does nothing
func (p *MockPrinter) Close() error {
	return nil
}

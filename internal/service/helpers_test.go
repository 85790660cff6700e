package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/printer"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/malenagianoglio/ventas-eventos/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testEnv wires every service on a migrated SQLite store and a mock printer
type testEnv struct {
	db          *database.DB
	events      repository.EventRepository
	products    repository.ProductRepository
	sales       repository.SaleRepository
	invalidated *recordingInvalidator
	printer     *printer.MockPrinter

	eventSvc   EventService
	catalogSvc CatalogService
	saleSvc    SaleService
	reportSvc  ReportService
	printSvc   PrintService
	tillSvc    TillService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := database.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "ventas_service.db")
	cfg.MaxRetries = 0

	db, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		db:          db,
		events:      repository.NewSQLEventRepository(db.DB),
		products:    repository.NewSQLProductRepository(db.DB),
		sales:       repository.NewSQLSaleRepository(db.DB),
		invalidated: &recordingInvalidator{},
		printer:     printer.NewMockPrinter(nil),
	}

	env.eventSvc = NewEventService(env.events)
	env.catalogSvc = NewCatalogService(env.events, env.products, env.invalidated)
	env.saleSvc = NewSaleService(env.events, env.sales, env.invalidated, nil)
	env.reportSvc = NewReportService(env.events, repository.NewSQLReportRepository(db.DB))
	env.printSvc = NewPrintService(env.events, env.sales, env.printer, &PrintServiceConfig{
		MaxRetries:    0,
		RetryInterval: time.Millisecond,
	})
	env.tillSvc = NewTillService(env.events, env.products, env.saleSvc, env.printSvc)
	return env
}

func (e *testEnv) createEvent(t *testing.T, name string) *domain.Event {
	t.Helper()
	event, err := e.eventSvc.CreateEvent(context.Background(), &dto.CreateEventRequest{Name: name, Type: "OWNED"})
	require.NoError(t, err)
	return event
}

func (e *testEnv) createProduct(t *testing.T, eventID int64, name, presentation, price string) *domain.Product {
	t.Helper()
	p, err := e.catalogSvc.CreateProduct(context.Background(), eventID, &dto.ProductRequest{
		Name:         name,
		Category:     "DRINK",
		Presentation: presentation,
		Price:        decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p
}

func cartLine(p *domain.Product, qty int) domain.CartLine {
	return domain.CartLine{ProductID: p.ID, Name: p.Name, Presentation: p.Presentation, UnitPrice: p.Price, Quantity: qty}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// recordingInvalidator remembers which events had their reports invalidated
type recordingInvalidator struct {
	mu     sync.Mutex
	events []int64
}

func (r *recordingInvalidator) InvalidateEvent(ctx context.Context, eventID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventID)
}

func (r *recordingInvalidator) count(eventID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range r.events {
		if id == eventID {
			n++
		}
	}
	return n
}

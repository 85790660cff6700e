package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// skipIfNoIntegration skips tests that need external services
func skipIfNoIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

// newTestDB opens a migrated SQLite store in a temp directory
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	cfg := database.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "ventas_test.db")
	cfg.MaxRetries = 0

	db, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db
}

type fixture struct {
	db       *database.DB
	events   *SQLEventRepository
	products *SQLProductRepository
	sales    *SQLSaleRepository
	reports  *SQLReportRepository
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	return &fixture{
		db:       db,
		events:   NewSQLEventRepository(db.DB),
		products: NewSQLProductRepository(db.DB),
		sales:    NewSQLSaleRepository(db.DB),
		reports:  NewSQLReportRepository(db.DB),
	}
}

func (f *fixture) createEvent(t *testing.T, name string) *domain.Event {
	t.Helper()
	e, err := domain.NewEvent(name, domain.EventTypeOwned, nil)
	require.NoError(t, err)
	require.NoError(t, f.events.Create(context.Background(), e))
	return e
}

func (f *fixture) createProduct(t *testing.T, eventID int64, name, price string) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(eventID, name, domain.CategoryDrink, "", decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

// commit persists a sale with the given lines
func (f *fixture) commit(t *testing.T, eventID int64, soldAt time.Time, lines ...domain.CartLine) *domain.Sale {
	t.Helper()
	sale, err := domain.NewSale(eventID, lines, soldAt)
	require.NoError(t, err)
	require.NoError(t, f.sales.Create(context.Background(), sale))
	return sale
}

func cartLine(p *domain.Product, qty int) domain.CartLine {
	return domain.CartLine{ProductID: p.ID, Name: p.Name, Presentation: p.Presentation, UnitPrice: p.Price, Quantity: qty}
}

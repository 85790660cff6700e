package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaleService_CommitSale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")
	beer := env.createProduct(t, event.ID, "Cerveza", "Pinta", "3.50")
	water := env.createProduct(t, event.ID, "Agua", "", "1.25")

	sale, err := env.saleSvc.CommitSale(ctx, event.ID, decPtr("8.25"), []domain.CartLine{
		cartLine(beer, 2),
		cartLine(water, 1),
	})
	require.NoError(t, err)
	assert.Positive(t, sale.ID)
	assert.Equal(t, domain.SaleStatusConfirmed, sale.Status)
	assert.True(t, sale.Total.Equal(dec("8.25")))
	assert.True(t, sale.Total.Equal(sale.LinesTotal()))
	assert.Equal(t, 3, env.invalidated.count(event.ID)) // two products and the sale

	stored, err := env.saleSvc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Lines, 2)
	assert.Equal(t, 2, stored.Lines[0].Quantity)
	assert.True(t, stored.Lines[0].Subtotal.Equal(dec("7")))
}

func TestSaleService_CommitSale_RecomputesTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")
	p := env.createProduct(t, event.ID, "Choripán", "", "4")

	_, err := env.saleSvc.CommitSale(ctx, event.ID, decPtr("7.99"), []domain.CartLine{cartLine(p, 2)})
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)

	summary, err := env.reportSvc.Summary(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Count)

	sale, err := env.saleSvc.CommitSale(ctx, event.ID, nil, []domain.CartLine{cartLine(p, 2)})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("8")))
}

func TestSaleService_CommitSale_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")
	other := env.createEvent(t, "Otra")
	p := env.createProduct(t, event.ID, "Choripán", "", "4")
	foreign := env.createProduct(t, other.ID, "Vino", "", "5")

	tests := []struct {
		name    string
		eventID int64
		lines   []domain.CartLine
		wantErr error
	}{
		{name: "empty cart", eventID: event.ID, lines: nil, wantErr: domain.ErrEmptyCart},
		{name: "unknown event", eventID: 999, lines: []domain.CartLine{cartLine(p, 1)}, wantErr: domain.ErrEventNotFound},
		{name: "zero quantity", eventID: event.ID, lines: []domain.CartLine{cartLine(p, 0)}, wantErr: domain.ErrInvalidQuantity},
		{name: "product of another event", eventID: event.ID, lines: []domain.CartLine{cartLine(p, 1), cartLine(foreign, 1)}, wantErr: domain.ErrProductEventMismatch},
		{name: "unknown product", eventID: event.ID, lines: []domain.CartLine{{ProductID: 999, Name: "X", UnitPrice: dec("1"), Quantity: 1}}, wantErr: domain.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.saleSvc.CommitSale(ctx, tt.eventID, nil, tt.lines)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	history, err := env.reportSvc.SaleHistory(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSaleService_CommitSale_StorageFailure(t *testing.T) {
	events := new(MockEventRepository)
	events.On("GetByID", mock.Anything, int64(1)).Return(&domain.Event{ID: 1, Name: "Peña"}, nil)

	storageErr := domain.NewStorageError("insert sale line", errors.New("disk I/O error"))
	sales := new(MockSaleRepository)
	sales.On("Create", mock.Anything, mock.Anything).Return(storageErr)

	invalidated := &recordingInvalidator{}
	svc := NewSaleService(events, sales, invalidated, nil)

	_, err := svc.CommitSale(context.Background(), 1, nil, []domain.CartLine{
		{ProductID: 7, Name: "Agua", UnitPrice: dec("1"), Quantity: 1},
	})

	assert.True(t, domain.IsStorageError(err))
	assert.Equal(t, 0, invalidated.count(1))
	sales.AssertExpectations(t)
}

func TestSaleService_CommitSale_UsesClock(t *testing.T) {
	soldAt := time.Date(2026, 7, 9, 22, 15, 0, 0, time.UTC)
	events := new(MockEventRepository)
	events.On("GetByID", mock.Anything, int64(1)).Return(&domain.Event{ID: 1}, nil)
	sales := new(MockSaleRepository)
	sales.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Sale) bool {
		return s.SoldAt.Equal(soldAt)
	})).Return(nil)

	svc := NewSaleService(events, sales, repository.NoopReportInvalidator{}, &SaleServiceConfig{
		Clock: func() time.Time { return soldAt },
	})

	_, err := svc.CommitSale(context.Background(), 1, nil, []domain.CartLine{
		{ProductID: 7, Name: "Agua", UnitPrice: dec("1"), Quantity: 1},
	})
	require.NoError(t, err)
	sales.AssertExpectations(t)
}

func TestSaleService_DeleteSale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")
	p := env.createProduct(t, event.ID, "Choripán", "", "4")

	sale, err := env.saleSvc.CommitSale(ctx, event.ID, nil, []domain.CartLine{cartLine(p, 1)})
	require.NoError(t, err)
	before := env.invalidated.count(event.ID)

	require.NoError(t, env.saleSvc.DeleteSale(ctx, sale.ID))
	assert.Equal(t, before+1, env.invalidated.count(event.ID))

	_, err = env.saleSvc.GetSale(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)

	err = env.saleSvc.DeleteSale(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)

	// the product is free again once its only sale is gone
	assert.NoError(t, env.catalogSvc.DeleteProduct(ctx, p.ID))
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")

	created, err := env.catalogSvc.CreateProduct(ctx, event.ID, &dto.ProductRequest{
		Name:         " Fernet ",
		Category:     "DRINK",
		Presentation: "Vaso",
		Price:        dec("5.499"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fernet", created.Name)
	assert.True(t, created.Price.Equal(dec("5.50")))

	got, err := env.catalogSvc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	updated, err := env.catalogSvc.UpdateProduct(ctx, created.ID, &dto.ProductRequest{
		Name:     "Fernet con coca",
		Category: "DRINK",
		Price:    dec("6"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fernet con coca", updated.Name)
	assert.Equal(t, "", updated.Presentation)

	env.createProduct(t, event.ID, "Agua", "", "1")
	list, err := env.catalogSvc.ListProducts(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Agua", list[0].Name)

	require.NoError(t, env.catalogSvc.DeleteProduct(ctx, created.ID))
	_, err = env.catalogSvc.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	// create x2, update, delete
	assert.Equal(t, 4, env.invalidated.count(event.ID))
}

func TestCatalogService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")

	_, err := env.catalogSvc.CreateProduct(ctx, event.ID, &dto.ProductRequest{Name: "Vino", Category: "DRINK", Price: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = env.catalogSvc.CreateProduct(ctx, event.ID, &dto.ProductRequest{Name: "", Category: "DRINK", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidProductName)

	_, err = env.catalogSvc.CreateProduct(ctx, event.ID, &dto.ProductRequest{Name: "Vino", Category: "WINE", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = env.catalogSvc.CreateProduct(ctx, 999, &dto.ProductRequest{Name: "Vino", Category: "DRINK", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	_, err = env.catalogSvc.ListProducts(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestCatalogService_RejectsPriceBeyondStoreRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")

	_, err := env.catalogSvc.CreateProduct(ctx, event.ID, &dto.ProductRequest{Name: "Vino", Category: "DRINK", Price: dec("184467440737095516.33")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	product := env.createProduct(t, event.ID, "Vino", "", "1000000000")
	stored, err := env.catalogSvc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000000000.00", domain.FormatMoney(stored.Price))

	_, err = env.catalogSvc.UpdateProduct(ctx, product.ID, &dto.ProductRequest{Name: "Vino", Category: "DRINK", Price: dec("1000000000.01")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestCatalogService_DeleteSoldProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")
	p := env.createProduct(t, event.ID, "Empanada", "Carne", "2")

	_, err := env.saleSvc.CommitSale(ctx, event.ID, nil, []domain.CartLine{cartLine(p, 1)})
	require.NoError(t, err)

	err = env.catalogSvc.DeleteProduct(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductInUse)

	_, err = env.catalogSvc.GetProduct(ctx, p.ID)
	assert.NoError(t, err)
}

func TestCatalogService_PriceChangeKeepsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	event := env.createEvent(t, "Peña")
	p := env.createProduct(t, event.ID, "Cerveza", "Pinta", "3")

	sale, err := env.saleSvc.CommitSale(ctx, event.ID, nil, []domain.CartLine{cartLine(p, 2)})
	require.NoError(t, err)

	_, err = env.catalogSvc.UpdateProduct(ctx, p.ID, &dto.ProductRequest{Name: "Cerveza IPA", Category: "DRINK", Price: dec("4.5")})
	require.NoError(t, err)

	stored, err := env.saleSvc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Lines, 1)
	assert.True(t, stored.Lines[0].UnitPrice.Equal(dec("3")))
	assert.True(t, stored.Lines[0].Subtotal.Equal(dec("6")))
	assert.Equal(t, "Cerveza", stored.Lines[0].ProductName)
	assert.WithinDuration(t, time.Now(), stored.SoldAt, time.Minute)
}

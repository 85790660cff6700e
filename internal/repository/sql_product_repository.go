package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/pkg/database"
)

// SQLProductRepository implements ProductRepository
type SQLProductRepository struct {
	db *sqlx.DB
}

// NewSQLProductRepository creates a new SQLProductRepository
func NewSQLProductRepository(db *sqlx.DB) *SQLProductRepository {
	return &SQLProductRepository{db: db}
}

const productColumns = `id, event_id, name, category, presentation, price_cents`

// Create inserts the product and sets its ID
func (r *SQLProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := r.db.Rebind(`
		INSERT INTO products (event_id, name, category, presentation, price_cents)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		product.EventID,
		product.Name,
		string(product.Category),
		nullString(product.Presentation),
		domain.ToCents(product.Price),
	).Scan(&product.ID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return domain.NewStorageError("create product", err)
	}
	return nil
}

// GetByID retrieves a product, nil when absent
func (r *SQLProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var row productRow
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get product", err)
	}
	return row.toDomain(), nil
}

// ListByEvent returns the catalog of an event ordered by name
func (r *SQLProductRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Product, error) {
	var rows []productRow
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE event_id = ? ORDER BY name ASC, id ASC`)
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, domain.NewStorageError("list products", err)
	}

	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toDomain())
	}
	return products, nil
}

// Update overwrites the editable fields of a product
func (r *SQLProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := r.db.Rebind(`
		UPDATE products SET name = ?, category = ?, presentation = ?, price_cents = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		product.Name,
		string(product.Category),
		nullString(product.Presentation),
		domain.ToCents(product.Price),
		product.ID,
	)
	if err != nil {
		return domain.NewStorageError("update product", err)
	}
	return expectOneRow(result, "update product", domain.ErrProductNotFound)
}

// Delete removes a product that has no recorded sales
func (r *SQLProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return domain.ErrProductInUse
		}
		return domain.NewStorageError("delete product", err)
	}
	return expectOneRow(result, "delete product", domain.ErrProductNotFound)
}

func expectOneRow(result sql.Result, op string, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageError(op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

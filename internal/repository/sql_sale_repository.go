package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/pkg/database"
)

// SQLSaleRepository implements SaleRepository
type SQLSaleRepository struct {
	db *sqlx.DB
}

// NewSQLSaleRepository creates a new SQLSaleRepository
func NewSQLSaleRepository(db *sqlx.DB) *SQLSaleRepository {
	return &SQLSaleRepository{db: db}
}

// Create persists the sale and all of its lines in one transaction
func (r *SQLSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	if len(sale.Lines) == 0 {
		return domain.ErrEmptyCart
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.NewStorageError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := r.checkProductsTx(ctx, tx, sale); err != nil {
		return err
	}

	var saleID int64
	insertSale := tx.Rebind(`
		INSERT INTO sales (event_id, sold_at, total_cents, status)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	err = tx.QueryRowxContext(ctx, insertSale,
		sale.EventID, formatTimestamp(sale.SoldAt), domain.ToCents(sale.Total), string(sale.Status),
	).Scan(&saleID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return domain.NewStorageError("insert sale", err)
	}

	insertLine := tx.Rebind(`
		INSERT INTO sale_lines (sale_id, product_id, product_name, presentation, quantity, unit_price_cents, subtotal_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	lineIDs := make([]int64, len(sale.Lines))
	for i, line := range sale.Lines {
		err := tx.QueryRowxContext(ctx, insertLine,
			saleID,
			line.ProductID,
			line.ProductName,
			nullString(line.Presentation),
			line.Quantity,
			domain.ToCents(line.UnitPrice),
			domain.ToCents(line.Subtotal),
		).Scan(&lineIDs[i])
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return domain.ErrProductNotFound
			}
			return domain.NewStorageError(fmt.Sprintf("insert sale line %d", i+1), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.NewStorageError("commit sale", err)
	}

	sale.ID = saleID
	for i := range sale.Lines {
		sale.Lines[i].ID = lineIDs[i]
		sale.Lines[i].SaleID = saleID
	}
	return nil
}

// checkProductsTx verifies every line references a product of the sale's
// event and fills missing name snapshots from the catalog.
func (r *SQLSaleRepository) checkProductsTx(ctx context.Context, tx *sqlx.Tx, sale *domain.Sale) error {
	ids := make([]int64, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		ids = append(ids, l.ProductID)
	}

	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("failed to build product query: %w", err)
	}

	var rows []productRow
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return domain.NewStorageError("load sale products", err)
	}

	byID := make(map[int64]*productRow, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	for i := range sale.Lines {
		line := &sale.Lines[i]
		p, ok := byID[line.ProductID]
		if !ok {
			return fmt.Errorf("product %d: %w", line.ProductID, domain.ErrProductNotFound)
		}
		if p.EventID != sale.EventID {
			return fmt.Errorf("product %d: %w", line.ProductID, domain.ErrProductEventMismatch)
		}
		if line.ProductName == "" {
			line.ProductName = p.Name
			line.Presentation = p.Presentation.String
		}
	}
	return nil
}

// GetByID retrieves a sale with its lines, nil when absent
func (r *SQLSaleRepository) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	var row saleRow
	query := r.db.Rebind(`SELECT id, event_id, sold_at, total_cents, status FROM sales WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError("get sale", err)
	}

	sale, err := row.toDomain()
	if err != nil {
		return nil, err
	}

	var lines []saleLineRow
	linesQuery := r.db.Rebind(`SELECT ` + saleLineColumns + ` FROM sale_lines WHERE sale_id = ? ORDER BY id ASC`)
	if err := r.db.SelectContext(ctx, &lines, linesQuery, id); err != nil {
		return nil, domain.NewStorageError("get sale lines", err)
	}
	for i := range lines {
		sale.Lines = append(sale.Lines, lines[i].toDomain())
	}
	return sale, nil
}

// Delete removes a sale and, by cascade, its lines
func (r *SQLSaleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM sales WHERE id = ?`), id)
	if err != nil {
		return domain.NewStorageError("delete sale", err)
	}
	return expectOneRow(result, "delete sale", domain.ErrSaleNotFound)
}

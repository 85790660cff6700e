package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// SQLReportRepository implements ReportRepository
type SQLReportRepository struct {
	db *sqlx.DB
}

// NewSQLReportRepository creates a new SQLReportRepository
func NewSQLReportRepository(db *sqlx.DB) *SQLReportRepository {
	return &SQLReportRepository{db: db}
}

// Summary returns count, revenue and average ticket
func (r *SQLReportRepository) Summary(ctx context.Context, eventID int64) (*domain.SalesSummary, error) {
	var row struct {
		SaleCount    int64 `db:"sale_count"`
		RevenueCents int64 `db:"revenue_cents"`
	}

	query := r.db.Rebind(`
		SELECT COUNT(*) AS sale_count, CAST(COALESCE(SUM(total_cents), 0) AS BIGINT) AS revenue_cents
		FROM sales
		WHERE event_id = ? AND status = ?
	`)
	if err := r.db.GetContext(ctx, &row, query, eventID, string(domain.SaleStatusConfirmed)); err != nil {
		return nil, domain.NewStorageError("sales summary", err)
	}

	return domain.NewSalesSummary(eventID, row.SaleCount, domain.FromCents(row.RevenueCents)), nil
}

// ProductBreakdown returns units and revenue per product, most sold first.
// Ties keep the order in which products were first sold.
func (r *SQLReportRepository) ProductBreakdown(ctx context.Context, eventID int64) ([]*domain.ProductSales, error) {
	var rows []struct {
		ProductID    int64  `db:"product_id"`
		Name         string `db:"name"`
		Presentation string `db:"presentation"`
		Category     string `db:"category"`
		UnitsSold    int64  `db:"units_sold"`
		RevenueCents int64  `db:"revenue_cents"`
		FirstLineID  int64  `db:"first_line_id"`
	}

	query := r.db.Rebind(`
		SELECT
			p.id AS product_id,
			p.name AS name,
			COALESCE(p.presentation, '') AS presentation,
			p.category AS category,
			CAST(SUM(sl.quantity) AS BIGINT) AS units_sold,
			CAST(SUM(sl.subtotal_cents) AS BIGINT) AS revenue_cents,
			MIN(sl.id) AS first_line_id
		FROM sale_lines sl
		JOIN sales s ON s.id = sl.sale_id
		JOIN products p ON p.id = sl.product_id
		WHERE s.event_id = ? AND s.status = ?
		GROUP BY p.id, p.name, p.presentation, p.category
		ORDER BY units_sold DESC, first_line_id ASC
	`)
	if err := r.db.SelectContext(ctx, &rows, query, eventID, string(domain.SaleStatusConfirmed)); err != nil {
		return nil, domain.NewStorageError("product breakdown", err)
	}

	result := make([]*domain.ProductSales, 0, len(rows))
	for _, row := range rows {
		result = append(result, &domain.ProductSales{
			ProductID:    row.ProductID,
			Name:         row.Name,
			Presentation: row.Presentation,
			Category:     domain.Category(row.Category),
			UnitsSold:    row.UnitsSold,
			Revenue:      domain.FromCents(row.RevenueCents),
		})
	}
	return result, nil
}

// SaleHistory returns every sale with its lines, newest first. Lines are
// loaded with a single batched query.
func (r *SQLReportRepository) SaleHistory(ctx context.Context, eventID int64) ([]*domain.Sale, error) {
	var saleRows []saleRow
	query := r.db.Rebind(`
		SELECT id, event_id, sold_at, total_cents, status
		FROM sales
		WHERE event_id = ? AND status = ?
		ORDER BY sold_at DESC, id DESC
	`)
	if err := r.db.SelectContext(ctx, &saleRows, query, eventID, string(domain.SaleStatusConfirmed)); err != nil {
		return nil, domain.NewStorageError("sale history", err)
	}

	sales := make([]*domain.Sale, 0, len(saleRows))
	if len(saleRows) == 0 {
		return sales, nil
	}

	byID := make(map[int64]*domain.Sale, len(saleRows))
	ids := make([]int64, 0, len(saleRows))
	for i := range saleRows {
		sale, err := saleRows[i].toDomain()
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
		byID[sale.ID] = sale
		ids = append(ids, sale.ID)
	}

	linesQuery, args, err := sqlx.In(`SELECT `+saleLineColumns+` FROM sale_lines WHERE sale_id IN (?) ORDER BY sale_id, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build sale lines query: %w", err)
	}

	var lineRows []saleLineRow
	if err := r.db.SelectContext(ctx, &lineRows, r.db.Rebind(linesQuery), args...); err != nil {
		return nil, domain.NewStorageError("sale history lines", err)
	}
	for i := range lineRows {
		if sale, ok := byID[lineRows[i].SaleID]; ok {
			sale.Lines = append(sale.Lines, lineRows[i].toDomain())
		}
	}

	return sales, nil
}

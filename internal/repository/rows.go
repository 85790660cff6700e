package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// timestampLayout is fixed width so text ordering matches time ordering
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		// rows written by other tools may use plain RFC3339
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type eventRow struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Type       string         `db:"type"`
	AccessCode sql.NullString `db:"access_code"`
	EventDate  sql.NullString `db:"event_date"`
	CreatedAt  string         `db:"created_at"`
}

func (r *eventRow) toDomain() (*domain.Event, error) {
	e := &domain.Event{
		ID:   r.ID,
		Name: r.Name,
		Type: domain.EventType(r.Type),
	}
	if r.AccessCode.Valid {
		code := r.AccessCode.String
		e.AccessCode = &code
	}
	if r.EventDate.Valid && r.EventDate.String != "" {
		d, err := time.Parse(domain.DateLayout, r.EventDate.String)
		if err != nil {
			return nil, fmt.Errorf("invalid date for event %d: %w", r.ID, err)
		}
		e.Date = &d
	}
	created, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at for event %d: %w", r.ID, err)
	}
	e.CreatedAt = created
	return e, nil
}

type productRow struct {
	ID           int64          `db:"id"`
	EventID      int64          `db:"event_id"`
	Name         string         `db:"name"`
	Category     string         `db:"category"`
	Presentation sql.NullString `db:"presentation"`
	PriceCents   int64          `db:"price_cents"`
}

func (r *productRow) toDomain() *domain.Product {
	return &domain.Product{
		ID:           r.ID,
		EventID:      r.EventID,
		Name:         r.Name,
		Category:     domain.Category(r.Category),
		Presentation: r.Presentation.String,
		Price:        domain.FromCents(r.PriceCents),
	}
}

type saleRow struct {
	ID         int64  `db:"id"`
	EventID    int64  `db:"event_id"`
	SoldAt     string `db:"sold_at"`
	TotalCents int64  `db:"total_cents"`
	Status     string `db:"status"`
}

func (r *saleRow) toDomain() (*domain.Sale, error) {
	soldAt, err := parseTimestamp(r.SoldAt)
	if err != nil {
		return nil, fmt.Errorf("invalid sold_at for sale %d: %w", r.ID, err)
	}
	return &domain.Sale{
		ID:      r.ID,
		EventID: r.EventID,
		SoldAt:  soldAt,
		Total:   domain.FromCents(r.TotalCents),
		Status:  domain.SaleStatus(r.Status),
		Lines:   []domain.SaleLine{},
	}, nil
}

type saleLineRow struct {
	ID             int64          `db:"id"`
	SaleID         int64          `db:"sale_id"`
	ProductID      int64          `db:"product_id"`
	ProductName    string         `db:"product_name"`
	Presentation   sql.NullString `db:"presentation"`
	Quantity       int            `db:"quantity"`
	UnitPriceCents int64          `db:"unit_price_cents"`
	SubtotalCents  int64          `db:"subtotal_cents"`
}

func (r *saleLineRow) toDomain() domain.SaleLine {
	return domain.SaleLine{
		ID:           r.ID,
		SaleID:       r.SaleID,
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		Presentation: r.Presentation.String,
		Quantity:     r.Quantity,
		UnitPrice:    domain.FromCents(r.UnitPriceCents),
		Subtotal:     domain.FromCents(r.SubtotalCents),
	}
}

const saleLineColumns = `id, sale_id, product_id, product_name, presentation, quantity, unit_price_cents, subtotal_cents`

package repository

import (
	"context"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// ReportRepository defines the read-only aggregation queries over
// confirmed sales of an event
type ReportRepository interface {
	// Summary returns count, revenue and average ticket
	Summary(ctx context.Context, eventID int64) (*domain.SalesSummary, error)

	// ProductBreakdown returns units and revenue per product, most sold first
	ProductBreakdown(ctx context.Context, eventID int64) ([]*domain.ProductSales, error)

	// SaleHistory returns every sale with its lines, newest first
	SaleHistory(ctx context.Context, eventID int64) ([]*domain.Sale, error)
}

// ReportInvalidator drops derived report data after writes
type ReportInvalidator interface {
	InvalidateEvent(ctx context.Context, eventID int64)
}

// NoopReportInvalidator is used when reports are not cached
type NoopReportInvalidator struct{}

// InvalidateEvent does nothing
func (NoopReportInvalidator) InvalidateEvent(context.Context, int64) {}

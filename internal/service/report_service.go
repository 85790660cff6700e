package service

import (
	"context"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/malenagianoglio/ventas-eventos/pkg/telemetry"
)

// reportService implements ReportService
type reportService struct {
	eventRepo  repository.EventRepository
	reportRepo repository.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(eventRepo repository.EventRepository, reportRepo repository.ReportRepository) ReportService {
	return &reportService{
		eventRepo:  eventRepo,
		reportRepo: reportRepo,
	}
}

// Summary returns count, revenue and average ticket of an event
func (s *reportService) Summary(ctx context.Context, eventID int64) (*domain.SalesSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.report.summary")
	defer span.End()

	if _, err := requireEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}
	return s.reportRepo.Summary(ctx, eventID)
}

// ProductBreakdown returns units and revenue per product
func (s *reportService) ProductBreakdown(ctx context.Context, eventID int64) ([]*domain.ProductSales, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.report.products")
	defer span.End()

	if _, err := requireEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}
	rows, err := s.reportRepo.ProductBreakdown(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*domain.ProductSales{}
	}
	return rows, nil
}

// SaleHistory returns the sales of an event, newest first
func (s *reportService) SaleHistory(ctx context.Context, eventID int64) ([]*domain.Sale, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.report.history")
	defer span.End()

	if _, err := requireEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}
	sales, err := s.reportRepo.SaleHistory(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []*domain.Sale{}
	}
	return sales, nil
}

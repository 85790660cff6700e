package service

import (
	"context"
	"errors"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/metrics"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/malenagianoglio/ventas-eventos/pkg/logger"
	"github.com/malenagianoglio/ventas-eventos/pkg/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// saleService implements SaleService
type saleService struct {
	eventRepo   repository.EventRepository
	saleRepo    repository.SaleRepository
	invalidator repository.ReportInvalidator
	now         func() time.Time
	log         *logger.Logger
}

// SaleServiceConfig contains optional settings of the sale service
type SaleServiceConfig struct {
	// Clock overrides time.Now for the sale timestamp
	Clock func() time.Time
}

// NewSaleService creates a new SaleService
func NewSaleService(
	eventRepo repository.EventRepository,
	saleRepo repository.SaleRepository,
	invalidator repository.ReportInvalidator,
	cfg *SaleServiceConfig,
) SaleService {
	if invalidator == nil {
		invalidator = repository.NoopReportInvalidator{}
	}
	now := time.Now
	if cfg != nil && cfg.Clock != nil {
		now = cfg.Clock
	}
	return &saleService{
		eventRepo:   eventRepo,
		saleRepo:    saleRepo,
		invalidator: invalidator,
		now:         now,
		log:         logger.Get().With(zap.String("component", "sale_service")),
	}
}

// CommitSale persists a sale and its lines atomically
func (s *saleService) CommitSale(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal, lines []domain.CartLine) (*domain.Sale, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.sale.commit")
	defer span.End()
	span.SetAttributes(
		telemetry.AttrEventID.Int64(eventID),
		telemetry.AttrLineCount.Int(len(lines)),
	)

	if len(lines) == 0 {
		metrics.RecordCommitFailure("empty_cart")
		return nil, domain.ErrEmptyCart
	}

	if _, err := requireEvent(ctx, s.eventRepo, eventID); err != nil {
		metrics.RecordCommitFailure(failureReason(err))
		return nil, err
	}

	sale, err := domain.NewSale(eventID, lines, s.now())
	if err != nil {
		metrics.RecordCommitFailure(failureReason(err))
		return nil, err
	}

	if expectedTotal != nil && !domain.RoundMoney(*expectedTotal).Equal(sale.Total) {
		metrics.RecordCommitFailure("total_mismatch")
		s.log.Warn("Sale total mismatch",
			zap.Int64("event_id", eventID),
			zap.String("expected", domain.FormatMoney(*expectedTotal)),
			zap.String("computed", domain.FormatMoney(sale.Total)),
		)
		return nil, domain.ErrTotalMismatch
	}

	start := time.Now()
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		telemetry.RecordError(span, err)
		metrics.RecordCommitFailure(failureReason(err))
		s.log.Error("Sale commit failed",
			zap.Int64("event_id", eventID),
			zap.Int("lines", len(lines)),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.RecordSaleCommitted(eventID, sale.Total, time.Since(start))

	s.invalidator.InvalidateEvent(ctx, eventID)

	span.SetAttributes(telemetry.AttrSaleID.Int64(sale.ID))
	s.log.Info("Sale committed",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("event_id", eventID),
		zap.String("total", domain.FormatMoney(sale.Total)),
		zap.Int("lines", len(sale.Lines)),
	)
	return sale, nil
}

// GetSale retrieves a sale with its lines
func (s *saleService) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return sale, nil
}

// DeleteSale removes a sale and its lines
func (s *saleService) DeleteSale(ctx context.Context, id int64) error {
	ctx, span := telemetry.StartSpan(ctx, "service.sale.delete")
	defer span.End()
	span.SetAttributes(telemetry.AttrSaleID.Int64(id))

	sale, err := s.GetSale(ctx, id)
	if err != nil {
		return err
	}

	if err := s.saleRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.invalidator.InvalidateEvent(ctx, sale.EventID)
	s.log.Info("Sale deleted",
		zap.Int64("sale_id", id),
		zap.Int64("event_id", sale.EventID),
		zap.String("total", domain.FormatMoney(sale.Total)),
	)
	return nil
}

// failureReason maps a commit error to a metric label
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, domain.ErrProductEventMismatch):
		return "product_event_mismatch"
	case domain.IsValidationError(err):
		return "validation"
	case domain.IsStorageError(err):
		return "storage"
	default:
		return "other"
	}
}

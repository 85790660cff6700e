package service

import (
	"context"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/malenagianoglio/ventas-eventos/pkg/logger"
	"github.com/malenagianoglio/ventas-eventos/pkg/telemetry"
	"go.uber.org/zap"
)

// catalogService implements CatalogService
type catalogService struct {
	eventRepo   repository.EventRepository
	productRepo repository.ProductRepository
	invalidator repository.ReportInvalidator
	log         *logger.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	eventRepo repository.EventRepository,
	productRepo repository.ProductRepository,
	invalidator repository.ReportInvalidator,
) CatalogService {
	if invalidator == nil {
		invalidator = repository.NoopReportInvalidator{}
	}
	return &catalogService{
		eventRepo:   eventRepo,
		productRepo: productRepo,
		invalidator: invalidator,
		log:         logger.Get().With(zap.String("component", "catalog_service")),
	}
}

// ListProducts lists the catalog of an event
func (s *catalogService) ListProducts(ctx context.Context, eventID int64) ([]*domain.Product, error) {
	if _, err := requireEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}
	return s.productRepo.ListByEvent(ctx, eventID)
}

// CreateProduct adds a product to an event's catalog
func (s *catalogService) CreateProduct(ctx context.Context, eventID int64, req *dto.ProductRequest) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.create")
	defer span.End()
	span.SetAttributes(telemetry.AttrEventID.Int64(eventID))

	if _, err := requireEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(eventID, req.Name, domain.Category(req.Category), req.Presentation, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.invalidator.InvalidateEvent(ctx, eventID)
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// UpdateProduct replaces the editable fields of a product.
// Recorded sales keep their own snapshot of name and price.
func (s *catalogService) UpdateProduct(ctx context.Context, id int64, req *dto.ProductRequest) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.update")
	defer span.End()
	span.SetAttributes(telemetry.AttrProductID.Int64(id))

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Category = domain.Category(req.Category)
	product.Presentation = req.Presentation
	product.Price = req.Price
	if err := product.Normalize(); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.invalidator.InvalidateEvent(ctx, product.EventID)
	return product, nil
}

// DeleteProduct removes a product without recorded sales
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := telemetry.StartSpan(ctx, "service.catalog.delete")
	defer span.End()
	span.SetAttributes(telemetry.AttrProductID.Int64(id))

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.invalidator.InvalidateEvent(ctx, product.EventID)
	s.log.Info("Product deleted",
		zap.Int64("product_id", id),
		zap.Int64("event_id", product.EventID),
		zap.String("name", product.Name),
	)
	return nil
}

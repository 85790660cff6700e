package handler

import (
	"context"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/shopspring/decimal"
)

// MockEventService is a mock implementation of EventService for testing
type MockEventService struct {
	CreateEventFunc           func(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error)
	GetEventFunc              func(ctx context.Context, id int64) (*domain.Event, error)
	FindEventByAccessCodeFunc func(ctx context.Context, code string) (*domain.Event, error)
	ListEventsFunc            func(ctx context.Context) ([]*domain.Event, error)
}

func (m *MockEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockEventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	if m.GetEventFunc != nil {
		return m.GetEventFunc(ctx, id)
	}
	return nil, domain.ErrEventNotFound
}

func (m *MockEventService) FindEventByAccessCode(ctx context.Context, code string) (*domain.Event, error) {
	if m.FindEventByAccessCodeFunc != nil {
		return m.FindEventByAccessCodeFunc(ctx, code)
	}
	return nil, domain.ErrEventNotFound
}

func (m *MockEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx)
	}
	return nil, nil
}

// MockCatalogService is a mock implementation of CatalogService for testing
type MockCatalogService struct {
	ListProductsFunc  func(ctx context.Context, eventID int64) ([]*domain.Product, error)
	CreateProductFunc func(ctx context.Context, eventID int64, req *dto.ProductRequest) (*domain.Product, error)
	GetProductFunc    func(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProductFunc func(ctx context.Context, id int64, req *dto.ProductRequest) (*domain.Product, error)
	DeleteProductFunc func(ctx context.Context, id int64) error
}

func (m *MockCatalogService) ListProducts(ctx context.Context, eventID int64) ([]*domain.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, eventID int64, req *dto.ProductRequest) (*domain.Product, error) {
	if m.CreateProductFunc != nil {
		return m.CreateProductFunc(ctx, eventID, req)
	}
	return nil, nil
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, id int64, req *dto.ProductRequest) (*domain.Product, error) {
	if m.UpdateProductFunc != nil {
		return m.UpdateProductFunc(ctx, id, req)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if m.DeleteProductFunc != nil {
		return m.DeleteProductFunc(ctx, id)
	}
	return nil
}

// MockSaleService is a mock implementation of SaleService for testing
type MockSaleService struct {
	CommitSaleFunc func(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal, lines []domain.CartLine) (*domain.Sale, error)
	GetSaleFunc    func(ctx context.Context, id int64) (*domain.Sale, error)
	DeleteSaleFunc func(ctx context.Context, id int64) error
}

func (m *MockSaleService) CommitSale(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal, lines []domain.CartLine) (*domain.Sale, error) {
	if m.CommitSaleFunc != nil {
		return m.CommitSaleFunc(ctx, eventID, expectedTotal, lines)
	}
	return nil, nil
}

func (m *MockSaleService) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	if m.GetSaleFunc != nil {
		return m.GetSaleFunc(ctx, id)
	}
	return nil, domain.ErrSaleNotFound
}

func (m *MockSaleService) DeleteSale(ctx context.Context, id int64) error {
	if m.DeleteSaleFunc != nil {
		return m.DeleteSaleFunc(ctx, id)
	}
	return nil
}

// MockReportService is a mock implementation of ReportService for testing
type MockReportService struct {
	SummaryFunc          func(ctx context.Context, eventID int64) (*domain.SalesSummary, error)
	ProductBreakdownFunc func(ctx context.Context, eventID int64) ([]*domain.ProductSales, error)
	SaleHistoryFunc      func(ctx context.Context, eventID int64) ([]*domain.Sale, error)
}

func (m *MockReportService) Summary(ctx context.Context, eventID int64) (*domain.SalesSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, eventID)
	}
	return domain.NewSalesSummary(eventID, 0, decimal.Zero), nil
}

func (m *MockReportService) ProductBreakdown(ctx context.Context, eventID int64) ([]*domain.ProductSales, error) {
	if m.ProductBreakdownFunc != nil {
		return m.ProductBreakdownFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *MockReportService) SaleHistory(ctx context.Context, eventID int64) ([]*domain.Sale, error) {
	if m.SaleHistoryFunc != nil {
		return m.SaleHistoryFunc(ctx, eventID)
	}
	return nil, nil
}

// MockTillService is a mock implementation of TillService for testing
type MockTillService struct {
	GetTillFunc    func(ctx context.Context, eventID int64) (*service.TillSnapshot, error)
	StartSaleFunc  func(ctx context.Context, eventID int64) (*service.TillSnapshot, error)
	CancelSaleFunc func(ctx context.Context, eventID int64) (*service.TillSnapshot, error)
	AddUnitFunc    func(ctx context.Context, eventID, productID int64) (*service.TillSnapshot, error)
	RemoveUnitFunc func(ctx context.Context, eventID, productID int64) (*service.TillSnapshot, error)
	ConfirmFunc    func(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal) (*service.ConfirmResult, error)
}

func emptyTill(eventID int64) *service.TillSnapshot {
	return &service.TillSnapshot{EventID: eventID, State: service.TillNoActiveSale}
}

func (m *MockTillService) GetTill(ctx context.Context, eventID int64) (*service.TillSnapshot, error) {
	if m.GetTillFunc != nil {
		return m.GetTillFunc(ctx, eventID)
	}
	return emptyTill(eventID), nil
}

func (m *MockTillService) StartSale(ctx context.Context, eventID int64) (*service.TillSnapshot, error) {
	if m.StartSaleFunc != nil {
		return m.StartSaleFunc(ctx, eventID)
	}
	return emptyTill(eventID), nil
}

func (m *MockTillService) CancelSale(ctx context.Context, eventID int64) (*service.TillSnapshot, error) {
	if m.CancelSaleFunc != nil {
		return m.CancelSaleFunc(ctx, eventID)
	}
	return emptyTill(eventID), nil
}

func (m *MockTillService) AddUnit(ctx context.Context, eventID, productID int64) (*service.TillSnapshot, error) {
	if m.AddUnitFunc != nil {
		return m.AddUnitFunc(ctx, eventID, productID)
	}
	return emptyTill(eventID), nil
}

func (m *MockTillService) RemoveUnit(ctx context.Context, eventID, productID int64) (*service.TillSnapshot, error) {
	if m.RemoveUnitFunc != nil {
		return m.RemoveUnitFunc(ctx, eventID, productID)
	}
	return emptyTill(eventID), nil
}

func (m *MockTillService) Confirm(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal) (*service.ConfirmResult, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, eventID, expectedTotal)
	}
	return nil, domain.ErrNoActiveSale
}

// MockPrintService is a mock implementation of PrintService for testing
type MockPrintService struct {
	StartSaleJobFunc func(ctx context.Context, sale *domain.Sale, eventName string) (*domain.PrintJob, error)
	ReprintFunc      func(ctx context.Context, saleID int64) (*domain.PrintJob, error)
	PrintNextFunc    func(ctx context.Context, jobID string) (*domain.PrintJob, error)
	AcknowledgeFunc  func(ctx context.Context, jobID string) (*domain.PrintJob, error)
	CancelFunc       func(ctx context.Context, jobID string) (*domain.PrintJob, error)
	GetJobFunc       func(ctx context.Context, jobID string) (*domain.PrintJob, error)
	ListJobsFunc     func(ctx context.Context) ([]*domain.PrintJob, error)
}

func (m *MockPrintService) StartSaleJob(ctx context.Context, sale *domain.Sale, eventName string) (*domain.PrintJob, error) {
	if m.StartSaleJobFunc != nil {
		return m.StartSaleJobFunc(ctx, sale, eventName)
	}
	return domain.NewPrintJob(sale, eventName, false), nil
}

func (m *MockPrintService) Reprint(ctx context.Context, saleID int64) (*domain.PrintJob, error) {
	if m.ReprintFunc != nil {
		return m.ReprintFunc(ctx, saleID)
	}
	return nil, domain.ErrSaleNotFound
}

func (m *MockPrintService) PrintNext(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	if m.PrintNextFunc != nil {
		return m.PrintNextFunc(ctx, jobID)
	}
	return nil, domain.ErrPrintJobNotFound
}

func (m *MockPrintService) Acknowledge(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	if m.AcknowledgeFunc != nil {
		return m.AcknowledgeFunc(ctx, jobID)
	}
	return nil, domain.ErrPrintJobNotFound
}

func (m *MockPrintService) Cancel(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, jobID)
	}
	return nil, domain.ErrPrintJobNotFound
}

func (m *MockPrintService) GetJob(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	if m.GetJobFunc != nil {
		return m.GetJobFunc(ctx, jobID)
	}
	return nil, domain.ErrPrintJobNotFound
}

func (m *MockPrintService) ListJobs(ctx context.Context) ([]*domain.PrintJob, error) {
	if m.ListJobsFunc != nil {
		return m.ListJobsFunc(ctx)
	}
	return []*domain.PrintJob{}, nil
}

var (
	_ service.EventService   = (*MockEventService)(nil)
	_ service.CatalogService = (*MockCatalogService)(nil)
	_ service.SaleService    = (*MockSaleService)(nil)
	_ service.ReportService  = (*MockReportService)(nil)
	_ service.TillService    = (*MockTillService)(nil)
	_ service.PrintService   = (*MockPrintService)(nil)
)

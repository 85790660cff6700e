package di

import (
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/handler"
	"github.com/malenagianoglio/ventas-eventos/internal/printer"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/database"
	"github.com/malenagianoglio/ventas-eventos/pkg/redis"
)

// Container holds all dependencies of the point-of-sale service
type Container struct {
	// Infrastructure
	DB      *database.DB
	Redis   *redis.Client
	Printer printer.Printer

	// Repositories
	EventRepo   repository.EventRepository
	ProductRepo repository.ProductRepository
	SaleRepo    repository.SaleRepository
	ReportRepo  repository.ReportRepository
	Invalidator repository.ReportInvalidator

	// Services
	EventService   service.EventService
	CatalogService service.CatalogService
	SaleService    service.SaleService
	ReportService  service.ReportService
	PrintService   service.PrintService
	TillService    service.TillService

	// Handlers
	Handlers *handler.Handlers
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.DB
	Redis          *redis.Client
	Printer        printer.Printer
	ReportCacheTTL time.Duration
	PrintConfig    *service.PrintServiceConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:      cfg.DB,
		Redis:   cfg.Redis,
		Printer: cfg.Printer,
	}

	// Initialize repositories
	c.EventRepo = repository.NewSQLEventRepository(c.DB.DB)
	c.ProductRepo = repository.NewSQLProductRepository(c.DB.DB)
	c.SaleRepo = repository.NewSQLSaleRepository(c.DB.DB)

	// Wrap reports with cache if Redis is available
	sqlReportRepo := repository.NewSQLReportRepository(c.DB.DB)
	if c.Redis != nil {
		cached := repository.NewCachedReportRepository(sqlReportRepo, c.Redis, cfg.ReportCacheTTL)
		c.ReportRepo = cached
		c.Invalidator = cached
	} else {
		c.ReportRepo = sqlReportRepo
		c.Invalidator = repository.NoopReportInvalidator{}
	}

	// Initialize services
	c.EventService = service.NewEventService(c.EventRepo)
	c.CatalogService = service.NewCatalogService(c.EventRepo, c.ProductRepo, c.Invalidator)
	c.SaleService = service.NewSaleService(c.EventRepo, c.SaleRepo, c.Invalidator, nil)
	c.ReportService = service.NewReportService(c.EventRepo, c.ReportRepo)
	c.PrintService = service.NewPrintService(c.EventRepo, c.SaleRepo, c.Printer, cfg.PrintConfig)
	c.TillService = service.NewTillService(c.EventRepo, c.ProductRepo, c.SaleService, c.PrintService)

	// Initialize handlers
	components := map[string]handler.HealthChecker{
		"database": c.DB,
		"redis":    nil,
	}
	if c.Redis != nil {
		components["redis"] = c.Redis
	}

	c.Handlers = &handler.Handlers{
		Health:  handler.NewHealthHandler(components),
		Event:   handler.NewEventHandler(c.EventService),
		Product: handler.NewProductHandler(c.CatalogService),
		Till:    handler.NewTillHandler(c.TillService),
		Sale:    handler.NewSaleHandler(c.SaleService, c.ReportService, c.PrintService),
		Report:  handler.NewReportHandler(c.ReportService),
		Print:   handler.NewPrintHandler(c.PrintService),
	}

	return c
}

package service

import (
	"context"
	"sync"

	"github.com/malenagianoglio/ventas-eventos/internal/cart"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/malenagianoglio/ventas-eventos/pkg/logger"
	"github.com/malenagianoglio/ventas-eventos/pkg/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TillState is the lifecycle state of an event's till
type TillState string

const (
	TillNoActiveSale TillState = "NO_ACTIVE_SALE"
	TillCartBuilding TillState = "CART_BUILDING"
	TillCommitting   TillState = "COMMITTING"
)

// TillSnapshot is a point-in-time copy of a till
type TillSnapshot struct {
	EventID int64
	State   TillState
	Lines   []domain.CartLine
	Units   int
	Total   decimal.Decimal
}

// ConfirmResult is the outcome of a confirmed sale
type ConfirmResult struct {
	Sale     *domain.Sale
	PrintJob *domain.PrintJob
}

// till is the cart of one event plus its commit flag
type till struct {
	cart       *cart.Cart
	committing bool
}

func (t *till) state() TillState {
	switch {
	case t.committing:
		return TillCommitting
	case t.cart.Active():
		return TillCartBuilding
	default:
		return TillNoActiveSale
	}
}

// tillService implements TillService
type tillService struct {
	eventRepo    repository.EventRepository
	productRepo  repository.ProductRepository
	saleService  SaleService
	printService PrintService
	log          *logger.Logger

	// tills holds only events with a sale open or committing. An idle till
	// is dropped, so the map does not grow with every event ever touched.
	mu    sync.Mutex
	tills map[int64]*till
}

// NewTillService creates a new TillService
func NewTillService(
	eventRepo repository.EventRepository,
	productRepo repository.ProductRepository,
	saleService SaleService,
	printService PrintService,
) TillService {
	return &tillService{
		eventRepo:    eventRepo,
		productRepo:  productRepo,
		saleService:  saleService,
		printService: printService,
		log:          logger.Get().With(zap.String("component", "till_service")),
		tills:        make(map[int64]*till),
	}
}

// GetTill returns the current till state of an event
func (s *tillService) GetTill(ctx context.Context, eventID int64) (*TillSnapshot, error) {
	if _, err := requireEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tills[eventID]
	if !ok {
		t = &till{cart: cart.New()}
	}
	return s.snapshot(eventID, t), nil
}

// StartSale opens a new empty sale, discarding any cart in progress
func (s *tillService) StartSale(ctx context.Context, eventID int64) (*TillSnapshot, error) {
	return s.mutate(ctx, eventID, func(t *till) error {
		t.cart.StartSale()
		return nil
	})
}

// CancelSale discards the sale in progress
func (s *tillService) CancelSale(ctx context.Context, eventID int64) (*TillSnapshot, error) {
	return s.mutate(ctx, eventID, func(t *till) error {
		t.cart.CancelSale()
		return nil
	})
}

// AddUnit adds one unit of a product of the event's catalog
func (s *tillService) AddUnit(ctx context.Context, eventID, productID int64) (*TillSnapshot, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidID
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if product.EventID != eventID {
		return nil, domain.ErrProductEventMismatch
	}

	return s.mutate(ctx, eventID, func(t *till) error {
		return t.cart.AddUnit(product)
	})
}

// RemoveUnit removes one unit of a product
func (s *tillService) RemoveUnit(ctx context.Context, eventID, productID int64) (*TillSnapshot, error) {
	return s.mutate(ctx, eventID, func(t *till) error {
		if !t.cart.Active() {
			return domain.ErrNoActiveSale
		}
		t.cart.RemoveUnit(productID)
		return nil
	})
}

// Confirm commits the cart. On failure the cart is kept for a retry; on
// success the till resets and a print job is started for the sale.
func (s *tillService) Confirm(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal) (*ConfirmResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.till.confirm")
	defer span.End()
	span.SetAttributes(telemetry.AttrEventID.Int64(eventID))

	event, err := requireEvent(ctx, s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	t, ok := s.tills[eventID]
	switch {
	case !ok:
		s.mu.Unlock()
		return nil, domain.ErrNoActiveSale
	case t.committing:
		s.mu.Unlock()
		return nil, domain.ErrCommitInProgress
	case !t.cart.Active():
		s.mu.Unlock()
		return nil, domain.ErrNoActiveSale
	case t.cart.IsEmpty():
		s.mu.Unlock()
		return nil, domain.ErrEmptyCart
	}
	lines := t.cart.Lines()
	t.committing = true
	s.mu.Unlock()

	sale, err := s.saleService.CommitSale(ctx, eventID, expectedTotal, lines)

	s.mu.Lock()
	t.committing = false
	if err != nil {
		s.mu.Unlock()
		telemetry.RecordError(span, err)
		return nil, err
	}
	t.cart.CancelSale()
	s.prune(eventID, t)
	s.mu.Unlock()

	job, err := s.printService.StartSaleJob(ctx, sale, event.Name)
	if err != nil {
		s.log.Error("Could not start print job",
			zap.Int64("sale_id", sale.ID),
			zap.Error(err),
		)
		return &ConfirmResult{Sale: sale}, nil
	}

	span.SetAttributes(
		telemetry.AttrSaleID.Int64(sale.ID),
		telemetry.AttrTickets.Int(len(job.Tickets)),
	)
	return &ConfirmResult{Sale: sale, PrintJob: job}, nil
}

// mutate applies fn to the event's till unless a commit is running
func (s *tillService) mutate(ctx context.Context, eventID int64, fn func(t *till) error) (*TillSnapshot, error) {
	if _, err := requireEvent(ctx, s.eventRepo, eventID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tillFor(eventID)
	defer s.prune(eventID, t)
	if t.committing {
		return nil, domain.ErrCommitInProgress
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	return s.snapshot(eventID, t), nil
}

// tillFor returns the till of an event, creating it on first use.
// Callers hold s.mu.
func (s *tillService) tillFor(eventID int64) *till {
	t, ok := s.tills[eventID]
	if !ok {
		t = &till{cart: cart.New()}
		s.tills[eventID] = t
	}
	return t
}

// prune drops an idle till. Callers hold s.mu.
func (s *tillService) prune(eventID int64, t *till) {
	if t.state() == TillNoActiveSale && s.tills[eventID] == t {
		delete(s.tills, eventID)
	}
}

func (s *tillService) snapshot(eventID int64, t *till) *TillSnapshot {
	lines := t.cart.Lines()
	units := 0
	for _, l := range lines {
		units += l.Quantity
	}
	return &TillSnapshot{
		EventID: eventID,
		State:   t.state(),
		Lines:   lines,
		Units:   units,
		Total:   t.cart.Total(),
	}
}

package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/metrics"
	"github.com/malenagianoglio/ventas-eventos/internal/printer"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/malenagianoglio/ventas-eventos/pkg/logger"
	"github.com/malenagianoglio/ventas-eventos/pkg/retry"
	"github.com/malenagianoglio/ventas-eventos/pkg/telemetry"
	"go.uber.org/zap"
)

// PrintServiceConfig contains configuration for the print service
type PrintServiceConfig struct {
	// MaxRetries is the number of retries per ticket after the first attempt
	MaxRetries int
	// RetryInterval is the first backoff interval between attempts
	RetryInterval time.Duration
	// Retention is how long finished jobs stay queryable
	Retention time.Duration
}

// printService implements PrintService. Jobs live in memory: they drive a
// physical device attached to this process.
type printService struct {
	eventRepo repository.EventRepository
	saleRepo  repository.SaleRepository
	printer   printer.Printer
	retryCfg  retry.Config
	retention time.Duration
	log       *logger.Logger

	mu   sync.Mutex
	jobs map[string]*domain.PrintJob

	// device is held for a whole ticket, retries included. There is one
	// printer, so tickets of different jobs never interleave.
	device sync.Mutex
}

// NewPrintService creates a new PrintService
func NewPrintService(
	eventRepo repository.EventRepository,
	saleRepo repository.SaleRepository,
	p printer.Printer,
	cfg *PrintServiceConfig,
) PrintService {
	retryCfg := retry.DefaultConfig()
	retention := 30 * time.Minute
	if cfg != nil {
		if cfg.MaxRetries >= 0 {
			retryCfg.MaxRetries = cfg.MaxRetries
		}
		if cfg.RetryInterval > 0 {
			retryCfg.InitialInterval = cfg.RetryInterval
		}
		if cfg.Retention > 0 {
			retention = cfg.Retention
		}
	}
	return &printService{
		eventRepo: eventRepo,
		saleRepo:  saleRepo,
		printer:   p,
		retryCfg:  *retryCfg,
		retention: retention,
		log:       logger.Get().With(zap.String("component", "print_service")),
		jobs:      make(map[string]*domain.PrintJob),
	}
}

// StartSaleJob creates the print job of a freshly committed sale
func (s *printService) StartSaleJob(ctx context.Context, sale *domain.Sale, eventName string) (*domain.PrintJob, error) {
	job := domain.NewPrintJob(sale, eventName, false)
	return s.register(job), nil
}

// Reprint rebuilds the tickets of a recorded sale from its stored lines
func (s *printService) Reprint(ctx context.Context, saleID int64) (*domain.PrintJob, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.print.reprint")
	defer span.End()
	span.SetAttributes(telemetry.AttrSaleID.Int64(saleID))

	if saleID <= 0 {
		return nil, domain.ErrInvalidID
	}
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}

	eventName := ""
	event, err := s.eventRepo.GetByID(ctx, sale.EventID)
	if err != nil {
		return nil, err
	}
	if event != nil {
		eventName = event.Name
	}

	job := s.register(domain.NewPrintJob(sale, eventName, true))
	s.log.Info("Reprint requested",
		zap.String("job_id", job.ID),
		zap.Int64("sale_id", saleID),
		zap.Int("tickets", len(job.Tickets)),
	)
	return job, nil
}

// PrintNext prints the pending ticket of a job. A device failure leaves the
// ticket pending and returns a *domain.PrintError along with the job.
func (s *printService) PrintNext(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.print.next")
	defer span.End()
	span.SetAttributes(telemetry.AttrPrintJobID.String(jobID))

	s.mu.Lock()
	job, ok := s.jobs[jobID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrPrintJobNotFound
	}
	ticket, err := job.BeginPrint()
	index := job.Printed + 1
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.device.Lock()
	result := retry.New(&s.retryCfg).DoWithCallback(ctx, func(ctx context.Context) error {
		return s.printer.PrintTicket(ctx, ticket)
	}, func(attempt int, err error, next time.Duration) {
		s.log.Warn("Ticket print failed, retrying",
			zap.String("job_id", jobID),
			zap.Int("ticket", index),
			zap.Int("attempt", attempt),
			zap.Duration("next_in", next),
			zap.Error(err),
		)
	})
	s.device.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if result.Err != nil {
		cause := result.LastError
		if cause == nil {
			cause = result.Err
		}
		job.MarkFailed(cause)
		metrics.RecordTicket(false)
		telemetry.RecordError(span, cause)
		s.log.Error("Ticket print failed",
			zap.String("job_id", jobID),
			zap.Int64("sale_id", job.SaleID),
			zap.Int("ticket", index),
			zap.Int("attempts", result.Attempts),
			zap.Error(cause),
		)
		return job.Clone(), &domain.PrintError{JobID: jobID, Ticket: index, Err: cause}
	}

	job.MarkPrinted()
	metrics.RecordTicket(true)
	if job.Status == domain.PrintJobCompleted {
		metrics.RecordPrintJobClosed(string(job.Status), job.Reprint)
		s.log.Info("Print job completed",
			zap.String("job_id", jobID),
			zap.Int64("sale_id", job.SaleID),
			zap.Int("tickets", len(job.Tickets)),
		)
	}
	return job.Clone(), nil
}

// Acknowledge releases a job to print its next ticket
func (s *printService) Acknowledge(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.ErrPrintJobNotFound
	}
	if err := job.Acknowledge(); err != nil {
		return nil, err
	}
	return job.Clone(), nil
}

// Cancel abandons the remaining tickets of a job. The sale is unaffected.
func (s *printService) Cancel(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.ErrPrintJobNotFound
	}
	if err := job.Cancel(); err != nil {
		return nil, err
	}

	metrics.RecordPrintJobClosed(string(job.Status), job.Reprint)
	s.log.Info("Print job cancelled",
		zap.String("job_id", jobID),
		zap.Int64("sale_id", job.SaleID),
		zap.Int("printed", job.Printed),
		zap.Int("remaining", job.Remaining()),
	)
	return job.Clone(), nil
}

// GetJob retrieves a job by ID
func (s *printService) GetJob(ctx context.Context, jobID string) (*domain.PrintJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.ErrPrintJobNotFound
	}
	return job.Clone(), nil
}

// ListJobs lists unfinished jobs, oldest first
func (s *printService) ListJobs(ctx context.Context) ([]*domain.PrintJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]*domain.PrintJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		if !job.IsFinal() {
			jobs = append(jobs, job.Clone())
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// register stores a new job and drops finished jobs past retention
func (s *printService) register(job *domain.PrintJob) *domain.PrintJob {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.retention)
	for id, j := range s.jobs {
		if j.IsFinal() && j.UpdatedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}

	s.jobs[job.ID] = job
	if job.Status == domain.PrintJobCompleted {
		metrics.RecordPrintJobClosed(string(job.Status), job.Reprint)
	}
	return job.Clone()
}

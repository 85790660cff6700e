package service

import (
	"context"
	"errors"
	"strings"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/repository"
	"github.com/malenagianoglio/ventas-eventos/pkg/logger"
	"github.com/malenagianoglio/ventas-eventos/pkg/telemetry"
	"go.uber.org/zap"
)

// maxAccessCodeRetries bounds regeneration after an access code collision
const maxAccessCodeRetries = 5

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
	log       *logger.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{
		eventRepo: eventRepo,
		log:       logger.Get().With(zap.String("component", "event_service")),
	}
}

// CreateEvent creates an event
func (s *eventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	event, err := domain.NewEvent(req.Name, domain.EventType(req.Type), req.ParsedDate())
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if event.NeedsAccessCode() {
			if err := event.AssignAccessCode(); err != nil {
				telemetry.RecordError(span, err)
				return nil, err
			}
		}

		err = s.eventRepo.Create(ctx, event)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateAccessCode) {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if attempt >= maxAccessCodeRetries {
			s.log.Error("Access code space exhausted", zap.String("event_name", event.Name))
			return nil, domain.ErrAccessCodeExhausted
		}
		s.log.Warn("Access code collision, regenerating", zap.Int("attempt", attempt+1))
	}

	span.SetAttributes(telemetry.AttrEventID.Int64(event.ID))
	s.log.Info("Event created",
		zap.Int64("event_id", event.ID),
		zap.String("type", string(event.Type)),
	)
	return event, nil
}

// GetEvent retrieves an event by ID
func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// FindEventByAccessCode retrieves an event by its exact access code
func (s *eventService) FindEventByAccessCode(ctx context.Context, code string) (*domain.Event, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrEventNotFound
	}
	event, err := s.eventRepo.GetByAccessCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// ListEvents lists every event, newest first
func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.eventRepo.List(ctx)
}

// requireEvent loads an event and fails when it does not exist
func requireEvent(ctx context.Context, repo repository.EventRepository, eventID int64) (*domain.Event, error) {
	if eventID <= 0 {
		return nil, domain.ErrInvalidID
	}
	event, err := repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

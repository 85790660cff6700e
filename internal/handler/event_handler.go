package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/response"
)

// EventHandler handles event-related HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.ListEvents(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]*dto.EventResponse, len(events))
	for i, event := range events {
		out[i] = toEventResponse(event)
	}
	response.List(c, out, len(out))
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, toEventResponse(event))
}

// GetByID handles GET /events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, toEventResponse(event))
}

// GetByAccessCode handles GET /events/access/:code
func (h *EventHandler) GetByAccessCode(c *gin.Context) {
	event, err := h.eventService.FindEventByAccessCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, toEventResponse(event))
}

func toEventResponse(event *domain.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:         event.ID,
		Name:       event.Name,
		Type:       string(event.Type),
		AccessCode: event.AccessCode,
		CreatedAt:  event.CreatedAt.Format(time.RFC3339),
	}
	if event.Date != nil {
		d := event.Date.Format(domain.DateLayout)
		resp.Date = &d
	}
	return resp
}

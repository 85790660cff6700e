package dto

import (
	"strings"
	"time"

	"github.com/malenagianoglio/ventas-eventos/internal/domain"
)

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Type string `json:"type" binding:"required"`
	Date string `json:"date"` // YYYY-MM-DD, optional
}

// Validate validates the CreateEventRequest
func (r *CreateEventRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" {
		return false, "Event name is required"
	}
	if !domain.EventType(r.Type).IsValid() {
		return false, "Event type must be OWNED or RENTED"
	}
	if r.Date != "" {
		if _, err := time.Parse(domain.DateLayout, r.Date); err != nil {
			return false, "Event date must be YYYY-MM-DD"
		}
	}
	return true, ""
}

// ParsedDate returns the event date, nil when not given
func (r *CreateEventRequest) ParsedDate() *time.Time {
	if r.Date == "" {
		return nil
	}
	d, err := time.Parse(domain.DateLayout, r.Date)
	if err != nil {
		return nil
	}
	return &d
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	AccessCode *string `json:"access_code,omitempty"`
	Date       *string `json:"date,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

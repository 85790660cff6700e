package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

// EventType tells whether the event belongs to the club or is rented out
type EventType string

const (
	EventTypeOwned  EventType = "OWNED"
	EventTypeRented EventType = "RENTED"
)

// IsValid reports whether t is a known event type
func (t EventType) IsValid() bool {
	return t == EventTypeOwned || t == EventTypeRented
}

// Access codes are short uppercase alphanumeric tokens
const (
	AccessCodeLength   = 6
	accessCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// DateLayout is the calendar date format of events
const DateLayout = "2006-01-02"

// Event represents a sales occasion owning a catalog and its sales
type Event struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Type       EventType  `json:"type"`
	AccessCode *string    `json:"access_code,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewEvent validates and builds an event. Rented events need an access code,
// assigned with AssignAccessCode before persisting.
func NewEvent(name string, eventType EventType, date *time.Time) (*Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidEventName
	}
	if !eventType.IsValid() {
		return nil, ErrInvalidEventType
	}

	var day *time.Time
	if date != nil {
		d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		day = &d
	}

	return &Event{
		Name:      name,
		Type:      eventType,
		Date:      day,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NeedsAccessCode reports whether the event must carry an access code
func (e *Event) NeedsAccessCode() bool {
	return e.Type == EventTypeRented
}

// AssignAccessCode sets a freshly generated access code
func (e *Event) AssignAccessCode() error {
	code, err := GenerateAccessCode()
	if err != nil {
		return err
	}
	e.AccessCode = &code
	return nil
}

// GenerateAccessCode returns a random code of AccessCodeLength characters
func GenerateAccessCode() (string, error) {
	base := big.NewInt(int64(len(accessCodeAlphabet)))
	var b strings.Builder
	b.Grow(AccessCodeLength)
	for i := 0; i < AccessCodeLength; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		b.WriteByte(accessCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

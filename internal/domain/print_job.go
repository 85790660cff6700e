package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultEventName is printed when the event name is unknown
const DefaultEventName = "Evento"

// PrintJobStatus represents the state of a ticket print job
type PrintJobStatus string

const (
	PrintJobReady       PrintJobStatus = "READY"
	PrintJobPrinting    PrintJobStatus = "PRINTING"
	PrintJobAwaitingAck PrintJobStatus = "AWAITING_ACK"
	PrintJobFailed      PrintJobStatus = "FAILED"
	PrintJobCompleted   PrintJobStatus = "COMPLETED"
	PrintJobCancelled   PrintJobStatus = "CANCELLED"
)

// Ticket is one physical receipt, printed per unit sold
type Ticket struct {
	ProductName  string          `json:"product_name"`
	Presentation string          `json:"presentation,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	EventName    string          `json:"event_name"`
}

// PrintJob drives the tickets of one sale, one at a time. After each printed
// ticket the job waits for an acknowledgment before the next one.
type PrintJob struct {
	ID        string         `json:"id"`
	SaleID    int64          `json:"sale_id"`
	EventID   int64          `json:"event_id"`
	Reprint   bool           `json:"reprint"`
	Tickets   []Ticket       `json:"tickets"`
	Printed   int            `json:"printed"`
	Status    PrintJobStatus `json:"status"`
	LastError string         `json:"last_error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ExpandTickets yields one ticket per unit, in line order
func ExpandTickets(lines []SaleLine, eventName string) []Ticket {
	if eventName == "" {
		eventName = DefaultEventName
	}
	var tickets []Ticket
	for _, l := range lines {
		for i := 0; i < l.Quantity; i++ {
			tickets = append(tickets, Ticket{
				ProductName:  l.ProductName,
				Presentation: l.Presentation,
				UnitPrice:    l.UnitPrice,
				EventName:    eventName,
			})
		}
	}
	return tickets
}

// NewPrintJob creates a job for the stored lines of a sale
func NewPrintJob(sale *Sale, eventName string, reprint bool) *PrintJob {
	now := time.Now().UTC()
	job := &PrintJob{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		EventID:   sale.EventID,
		Reprint:   reprint,
		Tickets:   ExpandTickets(sale.Lines, eventName),
		Status:    PrintJobReady,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(job.Tickets) == 0 {
		job.Status = PrintJobCompleted
	}
	return job
}

// BeginPrint returns the pending ticket and marks it in flight.
// A failed ticket is retried by calling BeginPrint again.
func (j *PrintJob) BeginPrint() (Ticket, error) {
	switch j.Status {
	case PrintJobReady, PrintJobFailed:
	case PrintJobAwaitingAck:
		return Ticket{}, ErrPrintJobNotReady
	case PrintJobPrinting:
		return Ticket{}, ErrPrintInFlight
	default:
		return Ticket{}, ErrPrintJobClosed
	}
	j.Status = PrintJobPrinting
	j.touch()
	return j.Tickets[j.Printed], nil
}

// MarkPrinted records the in-flight ticket as printed
func (j *PrintJob) MarkPrinted() {
	if j.Status != PrintJobPrinting {
		return
	}
	j.Printed++
	j.LastError = ""
	if j.Printed >= len(j.Tickets) {
		j.Status = PrintJobCompleted
	} else {
		j.Status = PrintJobAwaitingAck
	}
	j.touch()
}

// MarkFailed records the in-flight ticket as failed; it stays pending
func (j *PrintJob) MarkFailed(err error) {
	if j.Status != PrintJobPrinting {
		return
	}
	j.Status = PrintJobFailed
	if err != nil {
		j.LastError = err.Error()
	}
	j.touch()
}

// Acknowledge releases the job to print the next ticket
func (j *PrintJob) Acknowledge() error {
	if j.IsFinal() {
		return ErrPrintJobClosed
	}
	if j.Status != PrintJobAwaitingAck {
		return ErrPrintJobNotWaiting
	}
	j.Status = PrintJobReady
	j.touch()
	return nil
}

// Cancel abandons the remaining tickets. Only allowed between tickets.
func (j *PrintJob) Cancel() error {
	if j.IsFinal() {
		return ErrPrintJobClosed
	}
	if j.Status == PrintJobPrinting {
		return ErrPrintInFlight
	}
	j.Status = PrintJobCancelled
	j.touch()
	return nil
}

// Remaining returns the number of tickets not printed yet
func (j *PrintJob) Remaining() int {
	return len(j.Tickets) - j.Printed
}

// IsFinal returns true if the job can no longer change
func (j *PrintJob) IsFinal() bool {
	return j.Status == PrintJobCompleted || j.Status == PrintJobCancelled
}

// Clone returns a copy safe to hand out while the job keeps changing
func (j *PrintJob) Clone() *PrintJob {
	c := *j
	c.Tickets = append([]Ticket(nil), j.Tickets...)
	return &c
}

func (j *PrintJob) touch() {
	j.UpdatedAt = time.Now().UTC()
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/response"
)

// PrintHandler drives ticket print jobs
type PrintHandler struct {
	printService service.PrintService
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(printService service.PrintService) *PrintHandler {
	return &PrintHandler{
		printService: printService,
	}
}

// List handles GET /print-jobs
func (h *PrintHandler) List(c *gin.Context) {
	jobs, err := h.printService.ListJobs(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]*dto.PrintJobResponse, len(jobs))
	for i, job := range jobs {
		out[i] = toPrintJobResponse(job)
	}
	response.List(c, out, len(out))
}

// GetByID handles GET /print-jobs/:id
func (h *PrintHandler) GetByID(c *gin.Context) {
	job, err := h.printService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toPrintJobResponse(job))
}

// Next handles POST /print-jobs/:id/next. A printer failure answers 502
// with the job, whose pending ticket can be retried with the same call.
func (h *PrintHandler) Next(c *gin.Context) {
	job, err := h.printService.PrintNext(c.Request.Context(), c.Param("id"))
	if err != nil {
		if domain.IsPrintError(err) && job != nil {
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, response.Response{
				Success: false,
				Data:    toPrintJobResponse(job),
				Error: &response.ErrorData{
					Code:    response.CodePrinterFailed,
					Message: "Ticket could not be printed",
					Details: err.Error(),
				},
			})
			return
		}
		handleError(c, err)
		return
	}
	response.Success(c, toPrintJobResponse(job))
}

// Ack handles POST /print-jobs/:id/ack
func (h *PrintHandler) Ack(c *gin.Context) {
	job, err := h.printService.Acknowledge(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toPrintJobResponse(job))
}

// Cancel handles POST /print-jobs/:id/cancel
func (h *PrintHandler) Cancel(c *gin.Context) {
	job, err := h.printService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, toPrintJobResponse(job))
}

func toPrintJobResponse(job *domain.PrintJob) *dto.PrintJobResponse {
	resp := &dto.PrintJobResponse{
		ID:        job.ID,
		SaleID:    job.SaleID,
		EventID:   job.EventID,
		Reprint:   job.Reprint,
		Status:    string(job.Status),
		Printed:   job.Printed,
		Total:     len(job.Tickets),
		Remaining: job.Remaining(),
		LastError: job.LastError,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
		UpdatedAt: job.UpdatedAt.Format(time.RFC3339),
	}
	if !job.IsFinal() && job.Remaining() > 0 {
		t := job.Tickets[job.Printed]
		resp.NextTicket = &dto.TicketResponse{
			ProductName:  t.ProductName,
			Presentation: t.Presentation,
			UnitPrice:    domain.FormatMoney(t.UnitPrice),
			EventName:    t.EventName,
		}
	}
	return resp
}

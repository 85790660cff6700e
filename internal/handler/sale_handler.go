package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/response"
)

// SaleHandler handles recorded sales
type SaleHandler struct {
	saleService   service.SaleService
	reportService service.ReportService
	printService  service.PrintService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService service.SaleService, reportService service.ReportService, printService service.PrintService) *SaleHandler {
	return &SaleHandler{
		saleService:   saleService,
		reportService: reportService,
		printService:  printService,
	}
}

// History handles GET /events/:id/sales
func (h *SaleHandler) History(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	sales, err := h.reportService.SaleHistory(c.Request.Context(), eventID)
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]*dto.SaleResponse, len(sales))
	for i, s := range sales {
		out[i] = toSaleResponse(s)
	}
	response.List(c, out, len(out))
}

// GetByID handles GET /sales/:id
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, toSaleResponse(sale))
}

// Delete handles DELETE /sales/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

// Reprint handles POST /sales/:id/reprint
func (h *SaleHandler) Reprint(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	job, err := h.printService.Reprint(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, toPrintJobResponse(job))
}

func toSaleResponse(s *domain.Sale) *dto.SaleResponse {
	lines := make([]*dto.SaleLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = &dto.SaleLineResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Presentation: l.Presentation,
			Quantity:     l.Quantity,
			UnitPrice:    domain.FormatMoney(l.UnitPrice),
			Subtotal:     domain.FormatMoney(l.Subtotal),
		}
	}
	return &dto.SaleResponse{
		ID:      s.ID,
		EventID: s.EventID,
		SoldAt:  s.SoldAt.Format(time.RFC3339),
		Total:   domain.FormatMoney(s.Total),
		Status:  string(s.Status),
		Lines:   lines,
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/response"
)

// ReportHandler handles event reports
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Summary handles GET /events/:id/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), eventID)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := &dto.SalesSummaryResponse{
		EventID:      summary.EventID,
		Count:        summary.Count,
		TotalRevenue: domain.FormatMoney(summary.TotalRevenue),
	}
	if summary.AverageTicket.Valid {
		avg := domain.FormatMoney(summary.AverageTicket.Decimal)
		resp.AverageTicket = &avg
	}
	response.Success(c, resp)
}

// Products handles GET /events/:id/reports/products
func (h *ReportHandler) Products(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	rows, err := h.reportService.ProductBreakdown(c.Request.Context(), eventID)
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]*dto.ProductSalesResponse, len(rows))
	for i, r := range rows {
		out[i] = &dto.ProductSalesResponse{
			ProductID:    r.ProductID,
			Name:         r.Name,
			Presentation: r.Presentation,
			Category:     string(r.Category),
			UnitsSold:    r.UnitsSold,
			Revenue:      domain.FormatMoney(r.Revenue),
		}
	}
	response.List(c, out, len(out))
}

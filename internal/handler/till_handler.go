package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/response"
)

// TillHandler handles the sale-in-progress of an event
type TillHandler struct {
	tillService service.TillService
}

// NewTillHandler creates a new TillHandler
func NewTillHandler(tillService service.TillService) *TillHandler {
	return &TillHandler{
		tillService: tillService,
	}
}

// Get handles GET /events/:id/till
func (h *TillHandler) Get(c *gin.Context) {
	h.respond(c, func(eventID int64) (*service.TillSnapshot, error) {
		return h.tillService.GetTill(c.Request.Context(), eventID)
	})
}

// Start handles POST /events/:id/till/start
func (h *TillHandler) Start(c *gin.Context) {
	h.respond(c, func(eventID int64) (*service.TillSnapshot, error) {
		return h.tillService.StartSale(c.Request.Context(), eventID)
	})
}

// Cancel handles POST /events/:id/till/cancel
func (h *TillHandler) Cancel(c *gin.Context) {
	h.respond(c, func(eventID int64) (*service.TillSnapshot, error) {
		return h.tillService.CancelSale(c.Request.Context(), eventID)
	})
}

// AddItem handles POST /events/:id/till/items
func (h *TillHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	h.respond(c, func(eventID int64) (*service.TillSnapshot, error) {
		return h.tillService.AddUnit(c.Request.Context(), eventID, req.ProductID)
	})
}

// RemoveItem handles DELETE /events/:id/till/items/:productId
func (h *TillHandler) RemoveItem(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	h.respond(c, func(eventID int64) (*service.TillSnapshot, error) {
		return h.tillService.RemoveUnit(c.Request.Context(), eventID, productID)
	})
}

// Confirm handles POST /events/:id/till/confirm
func (h *TillHandler) Confirm(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ConfirmSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tillService.Confirm(c.Request.Context(), eventID, req.Total)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := &dto.ConfirmSaleResponse{Sale: toSaleResponse(result.Sale)}
	if result.PrintJob != nil {
		resp.PrintJob = toPrintJobResponse(result.PrintJob)
	}
	response.Created(c, resp)
}

func (h *TillHandler) respond(c *gin.Context, fn func(eventID int64) (*service.TillSnapshot, error)) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	snap, err := fn(eventID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, toTillResponse(snap))
}

func toTillResponse(snap *service.TillSnapshot) *dto.TillResponse {
	lines := make([]*dto.CartLineResponse, len(snap.Lines))
	for i, l := range snap.Lines {
		lines[i] = &dto.CartLineResponse{
			ProductID:    l.ProductID,
			Name:         l.Name,
			Presentation: l.Presentation,
			UnitPrice:    domain.FormatMoney(l.UnitPrice),
			Quantity:     l.Quantity,
			Subtotal:     domain.FormatMoney(l.Subtotal()),
		}
	}
	return &dto.TillResponse{
		EventID: snap.EventID,
		State:   string(snap.State),
		Lines:   lines,
		Units:   snap.Units,
		Total:   domain.FormatMoney(snap.Total),
	}
}

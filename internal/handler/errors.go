package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/pkg/response"
	"go.opentelemetry.io/otel/trace"
)

// handleError maps domain errors to HTTP responses
func handleError(c *gin.Context, err error) {
	span := trace.SpanFromContext(c.Request.Context())
	span.RecordError(err)

	switch {
	case domain.IsValidationError(err):
		response.BadRequest(c, err.Error())
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case domain.IsConflictError(err):
		response.Conflict(c, err.Error())
	case domain.IsPrintError(err):
		response.PrinterFailed(c, "Ticket could not be printed", err.Error())
	default:
		response.InternalError(c, err)
	}
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/response"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	catalogService service.CatalogService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// ListByEvent handles GET /events/:id/products
func (h *ProductHandler) ListByEvent(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	products, err := h.catalogService.ListProducts(c.Request.Context(), eventID)
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]*dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	response.List(c, out, len(out))
}

// Create handles POST /events/:id/products
func (h *ProductHandler) Create(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}

	req, ok := bindProductRequest(c)
	if !ok {
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), eventID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, toProductResponse(product))
}

// GetByID handles GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, toProductResponse(product))
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	req, ok := bindProductRequest(c)
	if !ok {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, toProductResponse(product))
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	response.NoContent(c)
}

func bindProductRequest(c *gin.Context) (*dto.ProductRequest, bool) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return nil, false
	}
	return &req, true
}

func toProductResponse(p *domain.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		EventID:      p.EventID,
		Name:         p.Name,
		Category:     string(p.Category),
		Presentation: p.Presentation,
		Price:        domain.FormatMoney(p.Price),
	}
}

package handler

import "github.com/gin-gonic/gin"

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Health  *HealthHandler
	Event   *EventHandler
	Product *ProductHandler
	Till    *TillHandler
	Sale    *SaleHandler
	Report  *ReportHandler
	Print   *PrintHandler
}

// RegisterRoutes mounts the API under /api/v1 and the probes at the root
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)

	v1 := r.Group("/api/v1")

	events := v1.Group("/events")
	{
		events.GET("", h.Event.List)
		events.POST("", h.Event.Create)
		events.GET("/access/:code", h.Event.GetByAccessCode)
		events.GET("/:id", h.Event.GetByID)

		events.GET("/:id/products", h.Product.ListByEvent)
		events.POST("/:id/products", h.Product.Create)

		events.GET("/:id/till", h.Till.Get)
		events.POST("/:id/till/start", h.Till.Start)
		events.POST("/:id/till/cancel", h.Till.Cancel)
		events.POST("/:id/till/items", h.Till.AddItem)
		events.DELETE("/:id/till/items/:productId", h.Till.RemoveItem)
		events.POST("/:id/till/confirm", h.Till.Confirm)

		events.GET("/:id/sales", h.Sale.History)

		events.GET("/:id/reports/summary", h.Report.Summary)
		events.GET("/:id/reports/products", h.Report.Products)
	}

	products := v1.Group("/products")
	{
		products.GET("/:id", h.Product.GetByID)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	sales := v1.Group("/sales")
	{
		sales.GET("/:id", h.Sale.GetByID)
		sales.DELETE("/:id", h.Sale.Delete)
		sales.POST("/:id/reprint", h.Sale.Reprint)
	}

	jobs := v1.Group("/print-jobs")
	{
		jobs.GET("", h.Print.List)
		jobs.GET("/:id", h.Print.GetByID)
		jobs.POST("/:id/next", h.Print.Next)
		jobs.POST("/:id/ack", h.Print.Ack)
		jobs.POST("/:id/cancel", h.Print.Cancel)
	}
}

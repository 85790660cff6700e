package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/internal/dto"
	"github.com/malenagianoglio/ventas-eventos/internal/service"
	"github.com/malenagianoglio/ventas-eventos/pkg/response"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServices struct {
	events  *MockEventService
	catalog *MockCatalogService
	sales   *MockSaleService
	reports *MockReportService
	till    *MockTillService
	print   *MockPrintService
}

func setupTestRouter() (*gin.Engine, *testServices) {
	svc := &testServices{
		events:  &MockEventService{},
		catalog: &MockCatalogService{},
		sales:   &MockSaleService{},
		reports: &MockReportService{},
		till:    &MockTillService{},
		print:   &MockPrintService{},
	}

	router := gin.New()
	RegisterRoutes(router, &Handlers{
		Health:  NewHealthHandler(nil),
		Event:   NewEventHandler(svc.events),
		Product: NewProductHandler(svc.catalog),
		Till:    NewTillHandler(svc.till),
		Sale:    NewSaleHandler(svc.sales, svc.reports, svc.print),
		Report:  NewReportHandler(svc.reports),
		Print:   NewPrintHandler(svc.print),
	})
	return router, svc
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorData `json:"error"`
	Meta    *response.Meta      `json:"meta"`
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func sampleSale() *domain.Sale {
	return &domain.Sale{
		ID:      7,
		EventID: 1,
		SoldAt:  time.Date(2026, 3, 14, 22, 5, 0, 0, time.UTC),
		Total:   decimal.RequireFromString("4500"),
		Status:  domain.SaleStatusConfirmed,
		Lines: []domain.SaleLine{
			{ID: 1, SaleID: 7, ProductID: 3, ProductName: "Fernet", Presentation: "Vaso", Quantity: 2, UnitPrice: decimal.RequireFromString("1500"), Subtotal: decimal.RequireFromString("3000")},
			{ID: 2, SaleID: 7, ProductID: 4, ProductName: "Hamburguesa", Quantity: 1, UnitPrice: decimal.RequireFromString("1500"), Subtotal: decimal.RequireFromString("1500")},
		},
	}
}

func TestEventHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name:       "owned event",
			body:       map[string]interface{}{"name": "Peña", "type": "OWNED", "date": "2026-03-14"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       map[string]interface{}{"type": "OWNED"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad date",
			body:       map[string]interface{}{"name": "Peña", "type": "OWNED", "date": "14/03/2026"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown type",
			body:       map[string]interface{}{"name": "Peña", "type": "SHARED"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupTestRouter()
			svc.events.CreateEventFunc = func(ctx context.Context, req *dto.CreateEventRequest) (*domain.Event, error) {
				event, err := domain.NewEvent(req.Name, domain.EventType(req.Type), req.ParsedDate())
				if err != nil {
					return nil, err
				}
				event.ID = 1
				return event, nil
			}

			resp := doRequest(router, http.MethodPost, "/api/v1/events", tt.body)
			assert.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
		})
	}
}

func TestEventHandler_GetByAccessCode(t *testing.T) {
	router, svc := setupTestRouter()
	code := "AB12CD"
	svc.events.FindEventByAccessCodeFunc = func(ctx context.Context, c string) (*domain.Event, error) {
		if c != code {
			return nil, domain.ErrEventNotFound
		}
		return &domain.Event{ID: 9, Name: "Cumple", Type: domain.EventTypeRented, AccessCode: &code}, nil
	}

	resp := doRequest(router, http.MethodGet, "/api/v1/events/access/"+code, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var event dto.EventResponse
	decodeData(t, resp, &event)
	assert.Equal(t, int64(9), event.ID)
	require.NotNil(t, event.AccessCode)
	assert.Equal(t, code, *event.AccessCode)

	resp = doRequest(router, http.MethodGet, "/api/v1/events/access/ZZZZZZ", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestEventHandler_GetByID_InvalidID(t *testing.T) {
	router, _ := setupTestRouter()

	resp := doRequest(router, http.MethodGet, "/api/v1/events/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/v1/events/0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProductHandler_Create(t *testing.T) {
	router, svc := setupTestRouter()
	svc.catalog.CreateProductFunc = func(ctx context.Context, eventID int64, req *dto.ProductRequest) (*domain.Product, error) {
		p, err := domain.NewProduct(eventID, req.Name, domain.Category(req.Category), req.Presentation, req.Price)
		if err != nil {
			return nil, err
		}
		p.ID = 3
		return p, nil
	}

	resp := doRequest(router, http.MethodPost, "/api/v1/events/1/products", map[string]interface{}{
		"name":         "Fernet",
		"category":     "DRINK",
		"presentation": "Vaso",
		"price":        "1500",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var product dto.ProductResponse
	decodeData(t, resp, &product)
	assert.Equal(t, "1500.00", product.Price)
	assert.Equal(t, "DRINK", product.Category)

	resp = doRequest(router, http.MethodPost, "/api/v1/events/1/products", map[string]interface{}{
		"name":     "Fernet",
		"category": "DRINK",
		"price":    "0",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestProductHandler_DeleteInUse(t *testing.T) {
	router, svc := setupTestRouter()
	svc.catalog.DeleteProductFunc = func(ctx context.Context, id int64) error {
		return domain.ErrProductInUse
	}

	resp := doRequest(router, http.MethodDelete, "/api/v1/products/3", nil)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestTillHandler_AddItem(t *testing.T) {
	router, svc := setupTestRouter()
	svc.till.AddUnitFunc = func(ctx context.Context, eventID, productID int64) (*service.TillSnapshot, error) {
		line := domain.CartLine{ProductID: productID, Name: "Fernet", UnitPrice: decimal.RequireFromString("1500"), Quantity: 2}
		return &service.TillSnapshot{
			EventID: eventID,
			State:   service.TillCartBuilding,
			Lines:   []domain.CartLine{line},
			Units:   2,
			Total:   line.Subtotal(),
		}, nil
	}

	resp := doRequest(router, http.MethodPost, "/api/v1/events/1/till/items", map[string]interface{}{"product_id": 3})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var till dto.TillResponse
	decodeData(t, resp, &till)
	assert.Equal(t, "CART_BUILDING", till.State)
	assert.Equal(t, "3000.00", till.Total)
	require.Len(t, till.Lines, 1)
	assert.Equal(t, "3000.00", till.Lines[0].Subtotal)

	resp = doRequest(router, http.MethodPost, "/api/v1/events/1/till/items", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestTillHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "no active sale", err: domain.ErrNoActiveSale, wantStatus: http.StatusConflict},
		{name: "commit in progress", err: domain.ErrCommitInProgress, wantStatus: http.StatusConflict},
		{name: "product of another event", err: domain.ErrProductEventMismatch, wantStatus: http.StatusBadRequest},
		{name: "unknown product", err: domain.ErrProductNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", err: domain.NewStorageError("add", errors.New("disk full")), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := setupTestRouter()
			svc.till.AddUnitFunc = func(ctx context.Context, eventID, productID int64) (*service.TillSnapshot, error) {
				return nil, tt.err
			}

			resp := doRequest(router, http.MethodPost, "/api/v1/events/1/till/items", map[string]interface{}{"product_id": 3})
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestTillHandler_RemoveItem(t *testing.T) {
	router, svc := setupTestRouter()
	var removed int64
	svc.till.RemoveUnitFunc = func(ctx context.Context, eventID, productID int64) (*service.TillSnapshot, error) {
		removed = productID
		return &service.TillSnapshot{EventID: eventID, State: service.TillCartBuilding}, nil
	}

	resp := doRequest(router, http.MethodDelete, "/api/v1/events/1/till/items/5", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(5), removed)
}

func TestTillHandler_Confirm(t *testing.T) {
	t.Run("without total", func(t *testing.T) {
		router, svc := setupTestRouter()
		svc.till.ConfirmFunc = func(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal) (*service.ConfirmResult, error) {
			assert.Nil(t, expectedTotal)
			sale := sampleSale()
			return &service.ConfirmResult{Sale: sale, PrintJob: domain.NewPrintJob(sale, "Peña", false)}, nil
		}

		resp := doRequest(router, http.MethodPost, "/api/v1/events/1/till/confirm", nil)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		var out dto.ConfirmSaleResponse
		decodeData(t, resp, &out)
		assert.Equal(t, "4500.00", out.Sale.Total)
		require.NotNil(t, out.PrintJob)
		assert.Equal(t, 3, out.PrintJob.Total)
		assert.Equal(t, "READY", out.PrintJob.Status)
		require.NotNil(t, out.PrintJob.NextTicket)
		assert.Equal(t, "Fernet", out.PrintJob.NextTicket.ProductName)
	})

	t.Run("with mismatching total", func(t *testing.T) {
		router, svc := setupTestRouter()
		svc.till.ConfirmFunc = func(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal) (*service.ConfirmResult, error) {
			require.NotNil(t, expectedTotal)
			assert.True(t, expectedTotal.Equal(decimal.RequireFromString("100")))
			return nil, domain.ErrTotalMismatch
		}

		resp := doRequest(router, http.MethodPost, "/api/v1/events/1/till/confirm", map[string]interface{}{"total": "100"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("empty cart", func(t *testing.T) {
		router, svc := setupTestRouter()
		svc.till.ConfirmFunc = func(ctx context.Context, eventID int64, expectedTotal *decimal.Decimal) (*service.ConfirmResult, error) {
			return nil, domain.ErrEmptyCart
		}

		resp := doRequest(router, http.MethodPost, "/api/v1/events/1/till/confirm", nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestSaleHandler_History(t *testing.T) {
	router, svc := setupTestRouter()
	svc.reports.SaleHistoryFunc = func(ctx context.Context, eventID int64) ([]*domain.Sale, error) {
		return []*domain.Sale{sampleSale()}, nil
	}

	resp := doRequest(router, http.MethodGet, "/api/v1/events/1/sales", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var sales []*dto.SaleResponse
	env := decodeData(t, resp, &sales)
	require.Len(t, sales, 1)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Count)
	assert.Equal(t, "2026-03-14T22:05:00Z", sales[0].SoldAt)
	assert.Equal(t, "1500.00", sales[0].Lines[0].UnitPrice)
}

func TestSaleHandler_Reprint(t *testing.T) {
	router, svc := setupTestRouter()
	svc.print.ReprintFunc = func(ctx context.Context, saleID int64) (*domain.PrintJob, error) {
		sale := sampleSale()
		if saleID != sale.ID {
			return nil, domain.ErrSaleNotFound
		}
		return domain.NewPrintJob(sale, "Peña", true), nil
	}

	resp := doRequest(router, http.MethodPost, "/api/v1/sales/7/reprint", nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var job dto.PrintJobResponse
	decodeData(t, resp, &job)
	assert.True(t, job.Reprint)
	assert.Equal(t, 3, job.Remaining)

	resp = doRequest(router, http.MethodPost, "/api/v1/sales/8/reprint", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSaleHandler_Delete(t *testing.T) {
	router, _ := setupTestRouter()

	resp := doRequest(router, http.MethodDelete, "/api/v1/sales/7", nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestReportHandler_Summary(t *testing.T) {
	t.Run("no sales", func(t *testing.T) {
		router, _ := setupTestRouter()

		resp := doRequest(router, http.MethodGet, "/api/v1/events/1/reports/summary", nil)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"average_ticket":null`)

		var summary dto.SalesSummaryResponse
		decodeData(t, resp, &summary)
		assert.Equal(t, int64(0), summary.Count)
		assert.Equal(t, "0.00", summary.TotalRevenue)
	})

	t.Run("with sales", func(t *testing.T) {
		router, svc := setupTestRouter()
		svc.reports.SummaryFunc = func(ctx context.Context, eventID int64) (*domain.SalesSummary, error) {
			return domain.NewSalesSummary(eventID, 3, decimal.RequireFromString("10000")), nil
		}

		resp := doRequest(router, http.MethodGet, "/api/v1/events/1/reports/summary", nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var summary dto.SalesSummaryResponse
		decodeData(t, resp, &summary)
		require.NotNil(t, summary.AverageTicket)
		assert.Equal(t, "3333.33", *summary.AverageTicket)
	})

	t.Run("unknown event", func(t *testing.T) {
		router, svc := setupTestRouter()
		svc.reports.SummaryFunc = func(ctx context.Context, eventID int64) (*domain.SalesSummary, error) {
			return nil, domain.ErrEventNotFound
		}

		resp := doRequest(router, http.MethodGet, "/api/v1/events/99/reports/summary", nil)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestReportHandler_Products(t *testing.T) {
	router, svc := setupTestRouter()
	svc.reports.ProductBreakdownFunc = func(ctx context.Context, eventID int64) ([]*domain.ProductSales, error) {
		return []*domain.ProductSales{
			{ProductID: 3, Name: "Fernet", Category: domain.CategoryDrink, UnitsSold: 4, Revenue: decimal.RequireFromString("6000")},
		}, nil
	}

	resp := doRequest(router, http.MethodGet, "/api/v1/events/1/reports/products", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var rows []*dto.ProductSalesResponse
	decodeData(t, resp, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "6000.00", rows[0].Revenue)
	assert.Equal(t, int64(4), rows[0].UnitsSold)
}

func TestPrintHandler_Next(t *testing.T) {
	t.Run("printed", func(t *testing.T) {
		router, svc := setupTestRouter()
		svc.print.PrintNextFunc = func(ctx context.Context, jobID string) (*domain.PrintJob, error) {
			job := domain.NewPrintJob(sampleSale(), "Peña", false)
			job.ID = jobID
			_, _ = job.BeginPrint()
			job.MarkPrinted()
			return job, nil
		}

		resp := doRequest(router, http.MethodPost, "/api/v1/print-jobs/job-1/next", nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var job dto.PrintJobResponse
		decodeData(t, resp, &job)
		assert.Equal(t, "AWAITING_ACK", job.Status)
		assert.Equal(t, 1, job.Printed)
		assert.Equal(t, 2, job.Remaining)
	})

	t.Run("printer failure returns the job", func(t *testing.T) {
		router, svc := setupTestRouter()
		svc.print.PrintNextFunc = func(ctx context.Context, jobID string) (*domain.PrintJob, error) {
			job := domain.NewPrintJob(sampleSale(), "Peña", false)
			job.ID = jobID
			_, _ = job.BeginPrint()
			cause := errors.New("paper out")
			job.MarkFailed(cause)
			return job, &domain.PrintError{JobID: jobID, Ticket: 0, Err: cause}
		}

		resp := doRequest(router, http.MethodPost, "/api/v1/print-jobs/job-1/next", nil)
		require.Equal(t, http.StatusBadGateway, resp.Code)

		var job dto.PrintJobResponse
		env := decodeData(t, resp, &job)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.CodePrinterFailed, env.Error.Code)
		assert.Equal(t, "FAILED", job.Status)
		assert.Equal(t, 0, job.Printed)
		require.NotNil(t, job.NextTicket)
	})

	t.Run("awaiting acknowledgment", func(t *testing.T) {
		router, svc := setupTestRouter()
		svc.print.PrintNextFunc = func(ctx context.Context, jobID string) (*domain.PrintJob, error) {
			return nil, domain.ErrPrintJobNotReady
		}

		resp := doRequest(router, http.MethodPost, "/api/v1/print-jobs/job-1/next", nil)
		assert.Equal(t, http.StatusConflict, resp.Code)
	})
}

func TestPrintHandler_AckAndCancel(t *testing.T) {
	router, svc := setupTestRouter()
	svc.print.AcknowledgeFunc = func(ctx context.Context, jobID string) (*domain.PrintJob, error) {
		return nil, domain.ErrPrintJobNotWaiting
	}
	svc.print.CancelFunc = func(ctx context.Context, jobID string) (*domain.PrintJob, error) {
		job := domain.NewPrintJob(sampleSale(), "Peña", false)
		require.NoError(t, job.Cancel())
		return job, nil
	}

	resp := doRequest(router, http.MethodPost, "/api/v1/print-jobs/job-1/ack", nil)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = doRequest(router, http.MethodPost, "/api/v1/print-jobs/job-1/cancel", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var job dto.PrintJobResponse
	decodeData(t, resp, &job)
	assert.Equal(t, "CANCELLED", job.Status)
	assert.Nil(t, job.NextTicket)

	resp = doRequest(router, http.MethodGet, "/api/v1/print-jobs/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

type stubChecker struct {
	err error
}

func (s stubChecker) HealthCheck(ctx context.Context) error {
	return s.err
}

func TestHealthHandler(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		router, _ := setupTestRouter()
		resp := doRequest(router, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("ready", func(t *testing.T) {
		h := NewHealthHandler(map[string]HealthChecker{
			"database": stubChecker{},
			"redis":    nil,
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		h.Ready(c)

		require.Equal(t, http.StatusOK, w.Code)
		var body ReadyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body.Components["database"])
		assert.Equal(t, "not configured", body.Components["redis"])
	})

	t.Run("not ready", func(t *testing.T) {
		h := NewHealthHandler(map[string]HealthChecker{
			"database": stubChecker{err: errors.New("connection refused")},
		})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		h.Ready(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/utils"
	"github.com/shopspring/decimal"
)

type fakeInvoiceService struct {
	created   *models.Invoice
	listResp  *models.InvoiceListResponse
	lastList  *models.ListInvoicesRequest
	getResp   *models.Invoice
	getErr    error
	updated   *models.Invoice
	lastID    string
	deleteErr error
}

func (f *fakeInvoiceService) Create(ctx context.Context, req *models.CreateInvoiceRequest, ownerID string) (*models.Invoice, error) {
	return f.created, nil
}

func (f *fakeInvoiceService) List(ctx context.Context, req *models.ListInvoicesRequest, ownerID string) (*models.InvoiceListResponse, error) {
	f.lastList = req
	return f.listResp, nil
}

func (f *fakeInvoiceService) Get(ctx context.Context, id, ownerID string) (*models.Invoice, error) {
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResp, nil
}

func (f *fakeInvoiceService) Update(ctx context.Context, id string, req *models.UpdateInvoiceRequest, ownerID string) (*models.Invoice, error) {
	f.lastID = id
	return f.updated, nil
}

func (f *fakeInvoiceService) Delete(ctx context.Context, id, ownerID string) error {
	f.lastID = id
	return f.deleteErr
}

func invoiceRouter(h *InvoiceHandler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/invoices", h.HandleCreate).Methods("POST")
	router.HandleFunc("/invoices", h.HandleList).Methods("GET")
	router.HandleFunc("/invoices/{id}", h.HandleGet).Methods("GET")
	router.HandleFunc("/invoices/{id}", h.HandleUpdate).Methods("PATCH")
	router.HandleFunc("/invoices/{id}", h.HandleDelete).Methods("DELETE")
	return router
}

func authed(req *http.Request) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), utils.UserIDKey, "user-1"))
}

func TestInvoiceHandler_Create(t *testing.T) {
	svc := &fakeInvoiceService{created: &models.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-1758000000000-ABCDEF123",
		PaymentStatus: models.PaymentStatusPending,
		Amount:        decimal.NewFromInt(500),
	}}
	router := invoiceRouter(CreateInvoiceHandler(svc))

	body := `{
		"customerName": "John Doe",
		"customerEmail": "john@example.com",
		"amount": 500,
		"invoiceDate": "2026-08-01",
		"dueDate": "2026-09-01"
	}`
	req := authed(httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var resp models.Invoice
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.InvoiceNumber != "INV-1758000000000-ABCDEF123" {
		t.Errorf("response = %+v, want created invoice", resp)
	}
}

func TestInvoiceHandler_Create_MissingEmail(t *testing.T) {
	router := invoiceRouter(CreateInvoiceHandler(&fakeInvoiceService{}))

	body := `{"customerName": "John Doe", "amount": 500, "invoiceDate": "2026-08-01", "dueDate": "2026-09-01"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestInvoiceHandler_List_QueryParams(t *testing.T) {
	svc := &fakeInvoiceService{listResp: &models.InvoiceListResponse{
		Invoices: []*models.Invoice{},
		Page:     2,
		Limit:    5,
	}}
	router := invoiceRouter(CreateInvoiceHandler(svc))

	req := authed(httptest.NewRequest(http.MethodGet, "/invoices?search=john&status=paid&page=2&limit=5", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.lastList.Search != "john" || svc.lastList.Status != models.PaymentStatusPaid {
		t.Errorf("list request = %+v, want search/status from query", svc.lastList)
	}
	if svc.lastList.Page != 2 || svc.lastList.Limit != 5 {
		t.Errorf("list request = %+v, want page 2 limit 5", svc.lastList)
	}
}

func TestInvoiceHandler_Get_NotFound(t *testing.T) {
	svc := &fakeInvoiceService{getErr: utils.ErrInvoiceNotFound}
	router := invoiceRouter(CreateInvoiceHandler(svc))

	req := authed(httptest.NewRequest(http.MethodGet, "/invoices/inv-404", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if svc.lastID != "inv-404" {
		t.Errorf("id = %q, want path variable", svc.lastID)
	}
}

func TestInvoiceHandler_Delete(t *testing.T) {
	svc := &fakeInvoiceService{}
	router := invoiceRouter(CreateInvoiceHandler(svc))

	req := authed(httptest.NewRequest(http.MethodDelete, "/invoices/inv-1", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if svc.lastID != "inv-1" {
		t.Errorf("id = %q, want inv-1", svc.lastID)
	}
}

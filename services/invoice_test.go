package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/utils"
	"github.com/shopspring/decimal"
)

type fakeInvoiceStore struct {
	created     []*models.Invoice
	byOwner     map[string]*models.Invoice
	byLinkID    map[string]*models.Invoice
	searchResp  []*models.Invoice
	searchTotal int64
	lastSearch  *models.ListInvoicesRequest
	updates     []map[string]interface{}
	updateErr   error
	deleted     []string
}

func (f *fakeInvoiceStore) Create(ctx context.Context, invoice *models.Invoice) error {
	f.created = append(f.created, invoice)
	return nil
}

func (f *fakeInvoiceStore) Search(ctx context.Context, ownerID string, req *models.ListInvoicesRequest) ([]*models.Invoice, int64, error) {
	f.lastSearch = req
	return f.searchResp, f.searchTotal, nil
}

func (f *fakeInvoiceStore) GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Invoice, error) {
	inv, ok := f.byOwner[ownerID+"/"+id]
	if !ok {
		return nil, nil
	}
	return inv, nil
}

func (f *fakeInvoiceStore) GetByPaymentLinkID(ctx context.Context, linkID string) (*models.Invoice, error) {
	inv, ok := f.byLinkID[linkID]
	if !ok {
		return nil, nil
	}
	return inv, nil
}

func (f *fakeInvoiceStore) UpdateVersioned(ctx context.Context, invoice *models.Invoice, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, fields)
	invoice.Version++
	return nil
}

func (f *fakeInvoiceStore) Delete(ctx context.Context, invoice *models.Invoice) error {
	f.deleted = append(f.deleted, invoice.ID)
	return nil
}

type fakeOwnerStore struct {
	users map[string]*models.User
}

func (f *fakeOwnerStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

var invoiceNumberPattern = regexp.MustCompile(`^INV-\d{13}-[0-9A-Z]{9}$`)

func TestGenerateInvoiceNumber_Format(t *testing.T) {
	number := GenerateInvoiceNumber()
	if !invoiceNumberPattern.MatchString(number) {
		t.Errorf("GenerateInvoiceNumber() = %q, want match for %s", number, invoiceNumberPattern)
	}
}

func TestGenerateInvoiceNumber_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := GenerateInvoiceNumber()
		if seen[number] {
			t.Fatalf("GenerateInvoiceNumber() produced duplicate %q", number)
		}
		seen[number] = true
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 7, 15},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestInvoiceService_Create(t *testing.T) {
	store := &fakeInvoiceStore{}
	users := &fakeOwnerStore{users: map[string]*models.User{
		"user-1": {ID: "user-1", Username: "alice"},
	}}
	svc := CreateInvoiceService(store, users, nil)

	invoice, err := svc.Create(context.Background(), &models.CreateInvoiceRequest{
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		Amount:        decimal.NewFromFloat(500.00),
		InvoiceDate:   "2026-08-01",
		DueDate:       "2026-08-15",
	}, "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if invoice.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("Create() status = %q, want %q", invoice.PaymentStatus, models.PaymentStatusPending)
	}
	if !invoiceNumberPattern.MatchString(invoice.InvoiceNumber) {
		t.Errorf("Create() invoice number = %q, want generated format", invoice.InvoiceNumber)
	}
	if invoice.CreatedBy != "user-1" {
		t.Errorf("Create() createdBy = %q, want user-1", invoice.CreatedBy)
	}
	if len(store.created) != 1 {
		t.Errorf("Create() persisted %d invoices, want 1", len(store.created))
	}
}

func TestInvoiceService_Create_OwnerMissing(t *testing.T) {
	svc := CreateInvoiceService(&fakeInvoiceStore{}, &fakeOwnerStore{users: map[string]*models.User{}}, nil)

	_, err := svc.Create(context.Background(), &models.CreateInvoiceRequest{
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		Amount:        decimal.NewFromInt(100),
		InvoiceDate:   "2026-08-01",
		DueDate:       "2026-08-15",
	}, "ghost")
	if err != utils.ErrUserNotFound {
		t.Errorf("Create() error = %v, want %v", err, utils.ErrUserNotFound)
	}
}

func TestInvoiceService_Create_BadDate(t *testing.T) {
	users := &fakeOwnerStore{users: map[string]*models.User{"user-1": {ID: "user-1"}}}
	svc := CreateInvoiceService(&fakeInvoiceStore{}, users, nil)

	_, err := svc.Create(context.Background(), &models.CreateInvoiceRequest{
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		Amount:        decimal.NewFromInt(100),
		InvoiceDate:   "01-08-2026",
		DueDate:       "2026-08-15",
	}, "user-1")
	if err == nil {
		t.Fatal("Create() error = nil, want bad request")
	}
	if apiErr := utils.AsAPIError(err); apiErr.Code != 400 {
		t.Errorf("Create() error code = %d, want 400", apiErr.Code)
	}
}

func TestInvoiceService_List_Defaults(t *testing.T) {
	store := &fakeInvoiceStore{searchTotal: 25}
	svc := CreateInvoiceService(store, &fakeOwnerStore{}, nil)

	resp, err := svc.List(context.Background(), &models.ListInvoicesRequest{}, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if store.lastSearch.Page != 1 || store.lastSearch.Limit != 10 {
		t.Errorf("List() page/limit = %d/%d, want 1/10", store.lastSearch.Page, store.lastSearch.Limit)
	}
	if resp.TotalPages != 3 {
		t.Errorf("List() totalPages = %d, want 3", resp.TotalPages)
	}
	if resp.Invoices == nil {
		t.Error("List() invoices = nil, want empty slice")
	}
}

func TestInvoiceService_List_ClampsLimit(t *testing.T) {
	store := &fakeInvoiceStore{}
	svc := CreateInvoiceService(store, &fakeOwnerStore{}, nil)

	if _, err := svc.List(context.Background(), &models.ListInvoicesRequest{Page: 2, Limit: 500}, "user-1"); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if store.lastSearch.Limit != maxPageLimit {
		t.Errorf("List() limit = %d, want %d", store.lastSearch.Limit, maxPageLimit)
	}
}

func TestInvoiceService_List_InvalidStatus(t *testing.T) {
	svc := CreateInvoiceService(&fakeInvoiceStore{}, &fakeOwnerStore{}, nil)

	_, err := svc.List(context.Background(), &models.ListInvoicesRequest{Status: "bogus"}, "user-1")
	if err == nil {
		t.Fatal("List() error = nil, want bad request")
	}
}

func TestInvoiceService_Get_OtherOwner(t *testing.T) {
	store := &fakeInvoiceStore{byOwner: map[string]*models.Invoice{
		"user-1/inv-1": {ID: "inv-1", CreatedBy: "user-1"},
	}}
	svc := CreateInvoiceService(store, &fakeOwnerStore{}, nil)

	// A foreign invoice id reads as not-found, never unauthorized.
	if _, err := svc.Get(context.Background(), "inv-1", "user-2"); err != utils.ErrInvoiceNotFound {
		t.Errorf("Get() error = %v, want %v", err, utils.ErrInvoiceNotFound)
	}
}

func TestInvoiceService_Update_PatchesFields(t *testing.T) {
	store := &fakeInvoiceStore{byOwner: map[string]*models.Invoice{
		"user-1/inv-1": {ID: "inv-1", CreatedBy: "user-1", CustomerName: "Old Name"},
	}}
	svc := CreateInvoiceService(store, &fakeOwnerStore{}, nil)

	name := "New Name"
	dueDate := "2026-09-30"
	invoice, err := svc.Update(context.Background(), "inv-1", &models.UpdateInvoiceRequest{
		CustomerName: &name,
		DueDate:      &dueDate,
	}, "user-1")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if invoice.CustomerName != "New Name" {
		t.Errorf("Update() customerName = %q, want %q", invoice.CustomerName, "New Name")
	}
	if len(store.updates) != 1 {
		t.Fatalf("Update() issued %d updates, want 1", len(store.updates))
	}
	if store.updates[0]["customer_name"] != "New Name" {
		t.Errorf("Update() fields = %v, missing customer_name", store.updates[0])
	}
	if _, ok := store.updates[0]["due_date"]; !ok {
		t.Errorf("Update() fields = %v, missing due_date", store.updates[0])
	}
}

func TestInvoiceService_Delete_OtherOwner(t *testing.T) {
	store := &fakeInvoiceStore{byOwner: map[string]*models.Invoice{
		"user-1/inv-1": {ID: "inv-1", CreatedBy: "user-1"},
	}}
	svc := CreateInvoiceService(store, &fakeOwnerStore{}, nil)

	if err := svc.Delete(context.Background(), "inv-1", "user-2"); err != utils.ErrInvoiceNotFound {
		t.Errorf("Delete() error = %v, want %v", err, utils.ErrInvoiceNotFound)
	}
	if len(store.deleted) != 0 {
		t.Errorf("Delete() removed %d invoices, want 0", len(store.deleted))
	}
}

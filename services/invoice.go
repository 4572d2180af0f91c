package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/stores"
	"github.com/kishandholakiya1027/invoice-be/utils"
)

const (
	dateLayout     = "2006-01-02"
	defaultPage    = 1
	defaultLimit   = 10
	maxPageLimit   = 100
	numberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type InvoiceStore interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Search(ctx context.Context, ownerID string, req *models.ListInvoicesRequest) ([]*models.Invoice, int64, error)
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Invoice, error)
	UpdateVersioned(ctx context.Context, invoice *models.Invoice, fields map[string]interface{}) error
	Delete(ctx context.Context, invoice *models.Invoice) error
}

type OwnerStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// StatsCache invalidation is best-effort: a nil cache disables it.
type StatsCache interface {
	GetStats(ctx context.Context, userID string) (*models.DashboardStats, bool)
	SetStats(ctx context.Context, userID string, stats *models.DashboardStats)
	InvalidateStats(ctx context.Context, userID string)
}

type InvoiceService struct {
	invoices InvoiceStore
	users    OwnerStore
	cache    StatsCache
	logger   *utils.Logger
}

func CreateInvoiceService(invoices InvoiceStore, users OwnerStore, cache StatsCache) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		users:    users,
		cache:    cache,
		logger:   utils.CreateLogger("invoice"),
	}
}

func (s *InvoiceService) Create(ctx context.Context, req *models.CreateInvoiceRequest, ownerID string) (*models.Invoice, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, utils.WrapError(err, "failed to look up owner")
	}
	if owner == nil {
		return nil, utils.ErrUserNotFound
	}

	invoiceDate, err := time.Parse(dateLayout, req.InvoiceDate)
	if err != nil {
		return nil, utils.BadRequest("Invalid invoice date", err)
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, utils.BadRequest("Invalid due date", err)
	}

	invoice := &models.Invoice{
		InvoiceNumber:   GenerateInvoiceNumber(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Amount:          req.Amount,
		InvoiceDate:     invoiceDate,
		DueDate:         dueDate,
		PaymentStatus:   models.PaymentStatusPending,
		Description:     req.Description,
		CreatedBy:       ownerID,
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, utils.WrapError(err, "failed to create invoice")
	}

	s.invalidateStats(ctx, ownerID)
	s.logger.Info(ctx, "invoice created", map[string]interface{}{"invoice_number": invoice.InvoiceNumber})
	return invoice, nil
}

func (s *InvoiceService) List(ctx context.Context, req *models.ListInvoicesRequest, ownerID string) (*models.InvoiceListResponse, error) {
	if req.Page < 1 {
		req.Page = defaultPage
	}
	if req.Limit < 1 {
		req.Limit = defaultLimit
	}
	if req.Limit > maxPageLimit {
		req.Limit = maxPageLimit
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, utils.BadRequest("Invalid payment status filter", nil)
	}

	invoices, total, err := s.invoices.Search(ctx, ownerID, req)
	if err != nil {
		return nil, utils.WrapError(err, "failed to search invoices")
	}

	if invoices == nil {
		invoices = []*models.Invoice{}
	}
	return &models.InvoiceListResponse{
		Invoices:   invoices,
		Total:      total,
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: TotalPages(total, req.Limit),
	}, nil
}

func (s *InvoiceService) Get(ctx context.Context, id, ownerID string) (*models.Invoice, error) {
	invoice, err := s.invoices.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, utils.WrapError(err, "failed to load invoice")
	}
	if invoice == nil {
		return nil, utils.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *InvoiceService) Update(ctx context.Context, id string, req *models.UpdateInvoiceRequest, ownerID string) (*models.Invoice, error) {
	invoice, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.CustomerName != nil {
		fields["customer_name"] = *req.CustomerName
		invoice.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		fields["customer_email"] = *req.CustomerEmail
		invoice.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		fields["customer_phone"] = *req.CustomerPhone
		invoice.CustomerPhone = *req.CustomerPhone
	}
	if req.CustomerAddress != nil {
		fields["customer_address"] = *req.CustomerAddress
		invoice.CustomerAddress = *req.CustomerAddress
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
		invoice.Amount = *req.Amount
	}
	if req.InvoiceDate != nil {
		invoiceDate, err := time.Parse(dateLayout, *req.InvoiceDate)
		if err != nil {
			return nil, utils.BadRequest("Invalid invoice date", err)
		}
		fields["invoice_date"] = invoiceDate
		invoice.InvoiceDate = invoiceDate
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, utils.BadRequest("Invalid due date", err)
		}
		fields["due_date"] = dueDate
		invoice.DueDate = dueDate
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		invoice.Description = *req.Description
	}
	if req.PaymentStatus != nil {
		if !req.PaymentStatus.Valid() {
			return nil, utils.BadRequest("Invalid payment status", nil)
		}
		fields["payment_status"] = *req.PaymentStatus
		invoice.PaymentStatus = *req.PaymentStatus
	}

	if len(fields) == 0 {
		return invoice, nil
	}

	if err := s.invoices.UpdateVersioned(ctx, invoice, fields); err != nil {
		if errors.Is(err, stores.ErrVersionConflict) {
			return nil, utils.ErrInvoiceConflict
		}
		return nil, utils.WrapError(err, "failed to update invoice")
	}

	s.invalidateStats(ctx, ownerID)
	return invoice, nil
}

func (s *InvoiceService) Delete(ctx context.Context, id, ownerID string) error {
	invoice, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.invoices.Delete(ctx, invoice); err != nil {
		return utils.WrapError(err, "failed to delete invoice")
	}
	s.invalidateStats(ctx, ownerID)
	return nil
}

func (s *InvoiceService) invalidateStats(ctx context.Context, ownerID string) {
	if s.cache != nil {
		s.cache.InvalidateStats(ctx, ownerID)
	}
}

// GenerateInvoiceNumber builds the human-facing number: prefix, millisecond
// timestamp, and a random base-36 suffix so same-millisecond creations do not
// collide.
func GenerateInvoiceNumber() string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("INV-%d", time.Now().UnixNano())
	}
	suffix := make([]byte, len(buf))
	for i, b := range buf {
		suffix[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return fmt.Sprintf("INV-%d-%s", time.Now().UnixMilli(), suffix)
}

// TotalPages is ceil(total/limit) without floating point.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

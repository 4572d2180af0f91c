package stores

import (
	"context"
	"errors"

	"github.com/kishandholakiya1027/invoice-be/models"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a conditional update matched no row,
// i.e. the invoice was changed (or deleted) by a concurrent writer.
var ErrVersionConflict = errors.New("invoice version conflict")

type InvoiceStore struct {
	BaseStore
}

func CreateInvoiceStore(db, readDB *gorm.DB) *InvoiceStore {
	return &InvoiceStore{BaseStore: BaseStore{db: db, readDB: readDB}}
}

func (s *InvoiceStore) Create(ctx context.Context, invoice *models.Invoice) error {
	return s.GetDB(ctx).Create(invoice).Error
}

// Search returns one owner-scoped page ordered by creation time descending,
// plus the total match count. The search term matches customer name OR invoice
// number case-insensitively; scoping applies to both branches.
func (s *InvoiceStore) Search(ctx context.Context, ownerID string, req *models.ListInvoicesRequest) ([]*models.Invoice, int64, error) {
	q := s.GetReadDB(ctx).Model(&models.Invoice{}).Where("created_by = ?", ownerID)

	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		q = q.Where("(customer_name ILIKE ? OR invoice_number ILIKE ?)", pattern, pattern)
	}
	if req.Status != "" {
		q = q.Where("payment_status = ?", req.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []*models.Invoice
	offset := (req.Page - 1) * req.Limit
	err := q.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// GetByIDForOwner reports not-found for both missing and foreign invoices so
// cross-user probing cannot distinguish the two.
func (s *InvoiceStore) GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.GetDB(ctx).First(&invoice, "id = ? AND created_by = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *InvoiceStore) GetByPaymentLinkID(ctx context.Context, linkID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.GetDB(ctx).First(&invoice, "razorpay_payment_link_id = ?", linkID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

// UpdateVersioned applies fields as a single conditional update keyed on the
// version the caller read. At most one concurrent writer wins; losers get
// ErrVersionConflict.
func (s *InvoiceStore) UpdateVersioned(ctx context.Context, invoice *models.Invoice, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["version"] = invoice.Version + 1

	res := s.GetDB(ctx).Model(&models.Invoice{}).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	invoice.Version++
	return nil
}

func (s *InvoiceStore) Delete(ctx context.Context, invoice *models.Invoice) error {
	return s.GetDB(ctx).Delete(invoice).Error
}

// AggregateForOwner computes every dashboard figure in one pass over the
// owner's invoices, pushed down to the database. Month buckets compare
// month-to-date against the full previous calendar month.
func (s *InvoiceStore) AggregateForOwner(ctx context.Context, ownerID string) (*models.InvoiceAggregates, error) {
	var agg models.InvoiceAggregates
	err := s.GetReadDB(ctx).Model(&models.Invoice{}).
		Select(`COUNT(*) AS total_invoices,
			COUNT(*) FILTER (WHERE payment_status = 'paid') AS paid_invoices,
			COUNT(*) FILTER (WHERE payment_status = 'pending') AS pending_invoices,
			COUNT(DISTINCT customer_email) AS total_customers,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(SUM(amount) FILTER (WHERE payment_status = 'paid'), 0) AS paid_amount,
			COALESCE(SUM(amount) FILTER (WHERE payment_status = 'pending'), 0) AS pending_amount,
			COUNT(*) FILTER (WHERE created_at >= date_trunc('month', now())) AS current_month_count,
			COUNT(*) FILTER (WHERE created_at >= date_trunc('month', now()) - interval '1 month'
				AND created_at < date_trunc('month', now())) AS previous_month_count`).
		Where("created_by = ?", ownerID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

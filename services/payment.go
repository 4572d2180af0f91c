package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/providers"
	"github.com/kishandholakiya1027/invoice-be/stores"
	"github.com/kishandholakiya1027/invoice-be/utils"
	"github.com/shopspring/decimal"
)

const (
	defaultExpiryDays = 7
	linkCurrency      = "INR"
)

type PaymentGateway interface {
	CreatePaymentLink(ctx context.Context, req *providers.PaymentLinkRequest) (*providers.PaymentLink, error)
	VerifyCallbackSignature(linkID, referenceID, status, paymentID, signature string) error
}

type PaymentInvoiceStore interface {
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Invoice, error)
	GetByPaymentLinkID(ctx context.Context, linkID string) (*models.Invoice, error)
	UpdateVersioned(ctx context.Context, invoice *models.Invoice, fields map[string]interface{}) error
}

type PaymentService struct {
	invoices    PaymentInvoiceStore
	gateway     PaymentGateway
	callbackURL string
	cache       StatsCache
	logger      *utils.Logger
}

func CreatePaymentService(invoices PaymentInvoiceStore, gateway PaymentGateway, callbackURL string, cache StatsCache) *PaymentService {
	return &PaymentService{
		invoices:    invoices,
		gateway:     gateway,
		callbackURL: callbackURL,
		cache:       cache,
		logger:      utils.CreateLogger("payment"),
	}
}

func (s *PaymentService) GeneratePaymentLink(ctx context.Context, req *models.GeneratePaymentLinkRequest, ownerID string) (*models.PaymentLinkResponse, error) {
	invoice, err := s.invoices.GetByIDForOwner(ctx, req.InvoiceID, ownerID)
	if err != nil {
		return nil, utils.WrapError(err, "failed to load invoice")
	}
	if invoice == nil {
		return nil, utils.ErrInvoiceNotFound
	}
	if invoice.PaymentStatus == models.PaymentStatusPaid {
		return nil, utils.ErrInvoiceAlreadyPaid
	}
	if invoice.Amount.Sign() <= 0 {
		return nil, utils.ErrInvalidAmount
	}

	expiryDays := req.ExpiryDays
	if expiryDays <= 0 {
		expiryDays = defaultExpiryDays
	}
	expiresAt := time.Now().Add(time.Duration(expiryDays) * 24 * time.Hour)

	// Razorpay takes the amount in paise.
	amountPaise := invoice.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	link, err := s.gateway.CreatePaymentLink(ctx, &providers.PaymentLinkRequest{
		Amount:        amountPaise,
		Currency:      linkCurrency,
		Description:   fmt.Sprintf("Payment for Invoice %s", invoice.InvoiceNumber),
		CustomerName:  invoice.CustomerName,
		CustomerEmail: invoice.CustomerEmail,
		CustomerPhone: invoice.CustomerPhone,
		Notes: map[string]interface{}{
			"invoiceId":     invoice.ID,
			"invoiceNumber": invoice.InvoiceNumber,
		},
		CallbackURL: s.callbackURL,
		ExpireBy:    expiresAt.Unix(),
	})
	if err != nil {
		s.logger.Error(ctx, "payment link creation failed", map[string]interface{}{
			"invoice_id": invoice.ID,
			"error":      err.Error(),
		})
		return nil, utils.BadRequest("Failed to create payment link", err)
	}

	fields := map[string]interface{}{
		"razorpay_payment_link_id": link.ID,
		"payment_link":             link.ShortURL,
		"link_expires_at":          expiresAt,
		"payment_status":           models.PaymentStatusPending,
	}
	if link.Status == "paid" {
		fields["payment_status"] = models.PaymentStatusPaid
		fields["paid_at"] = time.Now()
	}

	if err := s.invoices.UpdateVersioned(ctx, invoice, fields); err != nil {
		if errors.Is(err, stores.ErrVersionConflict) {
			return nil, utils.ErrInvoiceConflict
		}
		return nil, utils.WrapError(err, "failed to persist payment link")
	}

	s.invalidate(ctx, invoice.CreatedBy)
	s.logger.Info(ctx, "payment link generated", map[string]interface{}{
		"invoice_number":  invoice.InvoiceNumber,
		"payment_link_id": link.ID,
	})

	currency := link.Currency
	if currency == "" {
		currency = linkCurrency
	}
	return &models.PaymentLinkResponse{
		PaymentLink:   link.ShortURL,
		PaymentLinkID: link.ID,
		Status:        link.Status,
		ExpiresAt:     expiresAt,
		Amount:        invoice.Amount,
		Currency:      currency,
	}, nil
}

// HandleCallback applies the gateway-reported outcome onto the invoice
// correlated by payment-link id. The signature is verified before anything is
// looked up or mutated.
func (s *PaymentService) HandleCallback(ctx context.Context, cb *models.PaymentCallbackRequest) (string, error) {
	if err := s.gateway.VerifyCallbackSignature(cb.PaymentLinkID, cb.ReferenceID, cb.Status, cb.PaymentID, cb.Signature); err != nil {
		s.logger.Warn(ctx, "callback signature rejected", map[string]interface{}{
			"payment_link_id": cb.PaymentLinkID,
		})
		return "", utils.ErrInvalidSignature
	}

	invoice, err := s.invoices.GetByPaymentLinkID(ctx, cb.PaymentLinkID)
	if err != nil {
		return "", utils.WrapError(err, "failed to load invoice for callback")
	}
	if invoice == nil {
		return "", utils.ErrInvoiceNotFound
	}

	var fields map[string]interface{}
	switch cb.Status {
	case "paid":
		fields = map[string]interface{}{
			"payment_status":      models.PaymentStatusPaid,
			"razorpay_payment_id": cb.PaymentID,
			"paid_at":             time.Now(),
		}
	case "failed":
		fields = map[string]interface{}{"payment_status": models.PaymentStatusCancelled}
	case "cancelled", "expired":
		fields = map[string]interface{}{"payment_status": models.PaymentStatusExpired}
	default:
		s.logger.Warn(ctx, "unknown payment status received", map[string]interface{}{
			"status":          cb.Status,
			"payment_link_id": cb.PaymentLinkID,
		})
		return fmt.Sprintf("Payment %s for invoice %s", cb.Status, invoice.InvoiceNumber), nil
	}

	if err := s.invoices.UpdateVersioned(ctx, invoice, fields); err != nil {
		if errors.Is(err, stores.ErrVersionConflict) {
			return "", utils.ErrInvoiceConflict
		}
		return "", utils.WrapError(err, "failed to apply callback")
	}

	s.invalidate(ctx, invoice.CreatedBy)
	s.logger.Info(ctx, "payment callback processed", map[string]interface{}{
		"invoice_number": invoice.InvoiceNumber,
		"status":         cb.Status,
	})
	return fmt.Sprintf("Payment %s for invoice %s", cb.Status, invoice.InvoiceNumber), nil
}

func (s *PaymentService) invalidate(ctx context.Context, ownerID string) {
	if s.cache != nil {
		s.cache.InvalidateStats(ctx, ownerID)
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type GeneratePaymentLinkRequest struct {
	InvoiceID  string `json:"invoiceId" validate:"required,uuid"`
	ExpiryDays int    `json:"expiryDays,omitempty" validate:"omitempty,min=1"`
}

type PaymentLinkResponse struct {
	PaymentLink   string          `json:"paymentLink"`
	PaymentLinkID string          `json:"paymentLinkId"`
	Status        string          `json:"status"`
	ExpiresAt     time.Time       `json:"expiresAt"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

// PaymentCallbackRequest carries the fields Razorpay sends on the payment-link
// redirect. The signature is an HMAC over the other four values.
type PaymentCallbackRequest struct {
	PaymentID     string `json:"razorpay_payment_id" validate:"required"`
	PaymentLinkID string `json:"razorpay_payment_link_id" validate:"required"`
	ReferenceID   string `json:"razorpay_payment_link_reference_id"`
	Status        string `json:"razorpay_payment_link_status" validate:"required"`
	Signature     string `json:"razorpay_signature" validate:"required"`
}

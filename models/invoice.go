package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusExpired   PaymentStatus = "expired"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusExpired, PaymentStatusCancelled:
		return true
	}
	return false
}

type Invoice struct {
	ID                    string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	InvoiceNumber         string          `json:"invoiceNumber" gorm:"uniqueIndex;not null"`
	CustomerName          string          `json:"customerName" gorm:"not null"`
	CustomerEmail         string          `json:"customerEmail" gorm:"not null"`
	CustomerPhone         string          `json:"customerPhone,omitempty"`
	CustomerAddress       string          `json:"customerAddress,omitempty" gorm:"type:text"`
	Amount                decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	InvoiceDate           time.Time       `json:"invoiceDate" gorm:"type:date;not null"`
	DueDate               time.Time       `json:"dueDate" gorm:"type:date;not null"`
	PaymentStatus         PaymentStatus   `json:"paymentStatus" gorm:"not null;default:'pending';index"`
	Description           string          `json:"description,omitempty" gorm:"type:text"`
	PaymentLink           string          `json:"paymentLink,omitempty"`
	RazorpayOrderID       string          `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID     string          `json:"razorpayPaymentId,omitempty"`
	RazorpayPaymentLinkID string          `json:"razorpayPaymentLinkId,omitempty" gorm:"index"`
	PaidAt                *time.Time      `json:"paidAt,omitempty"`
	LinkExpiresAt         *time.Time      `json:"linkExpiresAt,omitempty"`
	CreatedBy             string          `json:"createdBy" gorm:"type:uuid;not null;index"`
	Owner                 *User           `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Version               int64           `json:"-" gorm:"not null;default:0"`
	CreatedAt             time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt             time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

type CreateInvoiceRequest struct {
	CustomerName    string          `json:"customerName" validate:"required"`
	CustomerEmail   string          `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string          `json:"customerPhone,omitempty"`
	CustomerAddress string          `json:"customerAddress,omitempty"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	InvoiceDate     string          `json:"invoiceDate" validate:"required"`
	DueDate         string          `json:"dueDate" validate:"required"`
	Description     string          `json:"description,omitempty"`
}

// UpdateInvoiceRequest is a partial patch: nil fields are left untouched.
type UpdateInvoiceRequest struct {
	CustomerName    *string          `json:"customerName,omitempty"`
	CustomerEmail   *string          `json:"customerEmail,omitempty" validate:"omitempty,email"`
	CustomerPhone   *string          `json:"customerPhone,omitempty"`
	CustomerAddress *string          `json:"customerAddress,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	InvoiceDate     *string          `json:"invoiceDate,omitempty"`
	DueDate         *string          `json:"dueDate,omitempty"`
	Description     *string          `json:"description,omitempty"`
	PaymentStatus   *PaymentStatus   `json:"paymentStatus,omitempty"`
}

type ListInvoicesRequest struct {
	Search string
	Status PaymentStatus
	Page   int
	Limit  int
}

type InvoiceListResponse struct {
	Invoices   []*Invoice `json:"invoices"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int64      `json:"totalPages"`
}

package models

import (
	"github.com/shopspring/decimal"
)

// InvoiceAggregates is the single aggregate row the store computes per owner.
// All grouping and summing happens in SQL; percentages are derived in the
// dashboard service.
type InvoiceAggregates struct {
	TotalInvoices      int64           `gorm:"column:total_invoices"`
	PaidInvoices       int64           `gorm:"column:paid_invoices"`
	PendingInvoices    int64           `gorm:"column:pending_invoices"`
	TotalCustomers     int64           `gorm:"column:total_customers"`
	TotalAmount        decimal.Decimal `gorm:"column:total_amount"`
	PaidAmount         decimal.Decimal `gorm:"column:paid_amount"`
	PendingAmount      decimal.Decimal `gorm:"column:pending_amount"`
	CurrentMonthCount  int64           `gorm:"column:current_month_count"`
	PreviousMonthCount int64           `gorm:"column:previous_month_count"`
}

type DashboardStats struct {
	TotalInvoices   int64           `json:"totalInvoices"`
	PaidInvoices    int64           `json:"paidInvoices"`
	PendingInvoices int64           `json:"pendingInvoices"`
	TotalCustomers  int64           `json:"totalCustomers"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PendingAmount   decimal.Decimal `json:"pendingAmount"`
	PaymentRate     int64           `json:"paymentRate"`
	MonthlyGrowth   int64           `json:"monthlyGrowth"`
}

type DashboardResponse struct {
	Stats DashboardStats `json:"stats"`
}

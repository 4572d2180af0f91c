package services

import (
	"context"
	"math"

	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/utils"
)

type AggregateStore interface {
	AggregateForOwner(ctx context.Context, ownerID string) (*models.InvoiceAggregates, error)
}

type DashboardService struct {
	invoices AggregateStore
	cache    StatsCache
	logger   *utils.Logger
}

func CreateDashboardService(invoices AggregateStore, cache StatsCache) *DashboardService {
	return &DashboardService{
		invoices: invoices,
		cache:    cache,
		logger:   utils.CreateLogger("dashboard"),
	}
}

func (s *DashboardService) GetStats(ctx context.Context, ownerID string) (*models.DashboardStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.GetStats(ctx, ownerID); ok {
			return stats, nil
		}
	}

	agg, err := s.invoices.AggregateForOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.WrapError(err, "failed to aggregate invoices")
	}

	stats := BuildDashboardStats(agg)

	if s.cache != nil {
		s.cache.SetStats(ctx, ownerID, stats)
	}
	return stats, nil
}

// BuildDashboardStats derives the dashboard figures from one aggregate row.
// Amounts round to two decimals half away from zero; rates round to whole
// percent the same way.
func BuildDashboardStats(agg *models.InvoiceAggregates) *models.DashboardStats {
	stats := &models.DashboardStats{
		TotalInvoices:   agg.TotalInvoices,
		PaidInvoices:    agg.PaidInvoices,
		PendingInvoices: agg.PendingInvoices,
		TotalCustomers:  agg.TotalCustomers,
		TotalAmount:     agg.TotalAmount.Round(2),
		PaidAmount:      agg.PaidAmount.Round(2),
		PendingAmount:   agg.PendingAmount.Round(2),
	}

	if agg.TotalInvoices > 0 {
		rate := float64(agg.PaidInvoices) / float64(agg.TotalInvoices) * 100
		stats.PaymentRate = int64(math.Round(rate))
	}

	stats.MonthlyGrowth = monthlyGrowth(agg.CurrentMonthCount, agg.PreviousMonthCount)
	return stats
}

// monthlyGrowth compares month-to-date creations against the full previous
// calendar month. An empty previous month reads as 100% growth when anything
// was created this month.
func monthlyGrowth(current, previous int64) int64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	growth := float64(current-previous) / float64(previous) * 100
	return int64(math.Round(growth))
}

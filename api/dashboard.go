package api

import (
	"context"
	"net/http"

	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/utils"
)

type DashboardService interface {
	GetStats(ctx context.Context, ownerID string) (*models.DashboardStats, error)
}

type DashboardHandler struct {
	dashboardService DashboardService
}

func CreateDashboardHandler(dashboardService DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context(), utils.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DashboardResponse{Stats: *stats})
}

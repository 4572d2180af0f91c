package api

import (
	"context"
	"net/http"

	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/utils"
)

type PaymentService interface {
	GeneratePaymentLink(ctx context.Context, req *models.GeneratePaymentLinkRequest, ownerID string) (*models.PaymentLinkResponse, error)
	HandleCallback(ctx context.Context, cb *models.PaymentCallbackRequest) (string, error)
}

type PaymentHandler struct {
	paymentService PaymentService
}

func CreatePaymentHandler(paymentService PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) HandleGenerateLink(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePaymentLinkRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.paymentService.GeneratePaymentLink(r.Context(), &req, utils.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// HandleCallback is the one unauthenticated state-changing endpoint; the
// gateway signature stands in for auth. It answers plain text, which is what
// the redirect target expects.
func (h *PaymentHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var cb models.PaymentCallbackRequest
	if err := decodeAndValidate(r, &cb); err != nil {
		writeError(w, err)
		return
	}

	confirmation, err := h.paymentService.HandleCallback(r.Context(), &cb)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(confirmation))
}

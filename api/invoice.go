package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kishandholakiya1027/invoice-be/models"
	"github.com/kishandholakiya1027/invoice-be/utils"
)

type InvoiceService interface {
	Create(ctx context.Context, req *models.CreateInvoiceRequest, ownerID string) (*models.Invoice, error)
	List(ctx context.Context, req *models.ListInvoicesRequest, ownerID string) (*models.InvoiceListResponse, error)
	Get(ctx context.Context, id, ownerID string) (*models.Invoice, error)
	Update(ctx context.Context, id string, req *models.UpdateInvoiceRequest, ownerID string) (*models.Invoice, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type InvoiceHandler struct {
	invoiceService InvoiceService
}

func CreateInvoiceHandler(invoiceService InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	invoice, err := h.invoiceService.Create(r.Context(), &req, utils.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	req := &models.ListInvoicesRequest{
		Search: r.URL.Query().Get("search"),
		Status: models.PaymentStatus(r.URL.Query().Get("status")),
	}
	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			req.Page = p
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			req.Limit = l
		}
	}

	resp, err := h.invoiceService.List(r.Context(), req, utils.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *InvoiceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceService.Get(r.Context(), mux.Vars(r)["id"], utils.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateInvoiceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	invoice, err := h.invoiceService.Update(r.Context(), mux.Vars(r)["id"], &req, utils.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.invoiceService.Delete(r.Context(), mux.Vars(r)["id"], utils.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

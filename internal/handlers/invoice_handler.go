package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"council-backend/internal/billing"
	"council-backend/internal/models"
	"council-backend/internal/repositories"
	"council-backend/internal/services"
	"council-backend/pkg/utils"
)

type InvoiceHandler struct {
	Service  *services.WasteInvoiceService
	Payments *services.WastePaymentService
}

func NewInvoiceHandler(s *services.WasteInvoiceService, payments *services.WastePaymentService) *InvoiceHandler {
	return &InvoiceHandler{Service: s, Payments: payments}
}

func (h *InvoiceHandler) GenerateInvoices(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateInvoicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.GenerateForMonth(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	invoice, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.InvoiceFilter{
		Status:      billing.InvoiceStatus(q.Get("status")),
		PeriodMonth: q.Get("period"),
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))
	if customer := q.Get("customer_id"); customer != "" {
		id, err := strconv.Atoi(customer)
		if err != nil {
			http.Error(w, "Invalid customer_id", http.StatusBadRequest)
			return
		}
		filter.CustomerID = &id
	}

	invoices, err := h.Service.ListInvoices(r.Context(), filter)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) MarkOverdue(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.MarkOverdue(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

func (h *InvoiceHandler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	allocations, err := h.Payments.ListInvoiceAllocations(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, allocations)
}

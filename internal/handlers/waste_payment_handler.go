package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"council-backend/internal/models"
	"council-backend/internal/services"
	"council-backend/pkg/utils"
)

type WastePaymentHandler struct {
	Service *services.WastePaymentService
}

func NewWastePaymentHandler(s *services.WastePaymentService) *WastePaymentHandler {
	return &WastePaymentHandler{Service: s}
}

func (h *WastePaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.RecordWastePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.RecordPayment(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, result)
}

func (h *WastePaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	payment, err := h.Service.GetPayment(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, payment)
}

func (h *WastePaymentHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.Service.ListByCustomer(r.Context(), customerID, limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, payments)
}

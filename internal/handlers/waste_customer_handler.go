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

type WasteCustomerHandler struct {
	Service *services.WasteCustomerService
}

func NewWasteCustomerHandler(s *services.WasteCustomerService) *WasteCustomerHandler {
	return &WasteCustomerHandler{Service: s}
}

func (h *WasteCustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWasteCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, customer)
}

func (h *WasteCustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	customer, err := h.Service.GetCustomer(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, customer)
}

func (h *WasteCustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateWasteCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer, err := h.Service.UpdateCustomer(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, customer)
}

func (h *WasteCustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	customers, err := h.Service.ListCustomers(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, customers)
}

func (h *WasteCustomerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	balance, err := h.Service.OutstandingBalance(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"customer_id": id,
		"outstanding": balance,
	})
}

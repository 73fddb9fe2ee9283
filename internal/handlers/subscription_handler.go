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

type SubscriptionHandler struct {
	Service *services.SubscriptionService
}

func NewSubscriptionHandler(s *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Service: s}
}

func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := h.Service.CreateSubscription(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, sub)
}

func (h *SubscriptionHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	sub, err := h.Service.GetSubscription(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["id"])

	subs, err := h.Service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, subs)
}

func (h *SubscriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateSubscriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sub, err := h.Service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, sub)
}

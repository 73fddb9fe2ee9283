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

type LeaseHandler struct {
	Service *services.LeaseService
}

func NewLeaseHandler(s *services.LeaseService) *LeaseHandler {
	return &LeaseHandler{Service: s}
}

func (h *LeaseHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lease, err := h.Service.CreateLease(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, lease)
}

func (h *LeaseHandler) GetLease(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	lease, err := h.Service.GetLease(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) ListLeases(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	leases, err := h.Service.ListLeases(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, leases)
}

func (h *LeaseHandler) ReleaseLease(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.ReleaseLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lease, err := h.Service.ReleaseLease(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, lease)
}

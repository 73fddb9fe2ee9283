package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"council-backend/internal/billing"
	"council-backend/internal/models"
	"council-backend/internal/services"
	"council-backend/internal/storage"
	"council-backend/internal/timeutil"
	"council-backend/pkg/utils"
)

type StatementHandler struct {
	Service *services.StatementService
	Storage *storage.Client
}

func NewStatementHandler(s *services.StatementService, store *storage.Client) *StatementHandler {
	return &StatementHandler{Service: s, Storage: store}
}

func (h *StatementHandler) CreateStatement(w http.ResponseWriter, r *http.Request) {
	leaseID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	stmt, err := h.Service.CreateStatement(r.Context(), leaseID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, stmt)
}

func (h *StatementHandler) PreviewStatement(w http.ResponseWriter, r *http.Request) {
	leaseID, _ := strconv.Atoi(mux.Vars(r)["id"])
	monthKey := r.URL.Query().Get("month")
	capToEndDate := r.URL.Query().Get("cap_to_end_date") == "true"

	result, err := h.Service.PreviewStatement(r.Context(), leaseID, monthKey, capToEndDate)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

func (h *StatementHandler) GetOpenStatement(w http.ResponseWriter, r *http.Request) {
	leaseID, _ := strconv.Atoi(mux.Vars(r)["id"])
	capToEndDate := r.URL.Query().Get("cap_to_end_date") == "true"

	stmt, err := h.Service.GetOpenStatement(r.Context(), leaseID, capToEndDate)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, stmt)
}

func (h *StatementHandler) ListStatements(w http.ResponseWriter, r *http.Request) {
	leaseID, _ := strconv.Atoi(mux.Vars(r)["id"])
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	statements, err := h.Service.ListStatements(r.Context(), leaseID, limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, statements)
}

func (h *StatementHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	stmt, err := h.Service.GetStatement(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, stmt)
}

func (h *StatementHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	leaseID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.RecordLandPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.RecordPayment(r.Context(), leaseID, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, result)
}

func (h *StatementHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	leaseID, _ := strconv.Atoi(mux.Vars(r)["id"])
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.Service.ListLeasePayments(r.Context(), leaseID, limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, payments)
}

// UploadSlip stores a payment slip image and returns the object key to
// attach on the payment request.
func (h *StatementHandler) UploadSlip(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		http.Error(w, "Object storage not configured", http.StatusServiceUnavailable)
		return
	}

	leaseID, _ := strconv.Atoi(mux.Vars(r)["id"])

	paidAt := timeutil.Now()
	if date := r.URL.Query().Get("paid_at"); date != "" {
		parsed, err := time.Parse(billing.DateLayout, date)
		if err != nil {
			http.Error(w, "Invalid paid_at date", http.StatusBadRequest)
			return
		}
		paidAt = parsed
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 10<<20))
	if err != nil || len(body) == 0 {
		http.Error(w, "Empty slip body", http.StatusBadRequest)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := h.Storage.UploadSlip(r.Context(), leaseID, paidAt, body, contentType)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]string{"slip_key": key})
}

func (h *StatementHandler) FetchSlip(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		http.Error(w, "Object storage not configured", http.StatusServiceUnavailable)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key parameter is required", http.StatusBadRequest)
		return
	}

	data, err := h.Storage.FetchSlip(r.Context(), key)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(data)
}

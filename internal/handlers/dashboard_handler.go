package handlers

import (
	"net/http"

	"council-backend/internal/services"
	"council-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.DashboardService
}

func NewDashboardHandler(s *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}

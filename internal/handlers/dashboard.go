package handlers

import (
	"net/http"
	"strconv"

	"studypal-backend/internal/middleware"
	"studypal-backend/internal/models"
	"studypal-backend/internal/services"
)

type DashboardHandler struct {
	dashService *services.DashboardService
}

func NewDashboardHandler(dashService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashService: dashService}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats, err := h.dashService.Stats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	docs, err := h.dashService.Recent(r.Context(), userID, limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}

	writeJSON(w, http.StatusOK, docs)
}

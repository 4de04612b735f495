package handlers

import (
	"net/http"

	"github.com/kozaktomas/face-gallery/internal/gallery"
)

// StatsHandler serves the admin dashboard. The report is recomputed on every
// request so the photo counts never go stale.
type StatsHandler struct {
	service *gallery.Service
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(service *gallery.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// dashboardData is the payload for the dashboard page.
type dashboardData struct {
	Stats *gallery.Stats
}

// Dashboard returns event, photo, and active-guest statistics.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if wantsHTML(r) {
		renderPage(w, http.StatusOK, "admin_dashboard.html", dashboardData{Stats: stats})
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

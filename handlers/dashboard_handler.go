package handlers

import (
	"log"
	"net/http"

	"vinyasaclub/repository"
	"vinyasaclub/utils"
)

type DashboardHandler struct {
	Repo  *repository.DashboardRepository
	Clock Clock
}

// GET /dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := utils.BuildDashboardSummary(r.Context(), h.Repo, h.Clock.now(), h.Clock.loc())
	if err != nil {
		log.Printf("dashboard summary: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

package handlers

import (
	"log"
	"net/http"
	"strings"

	"vinyasaclub/models"
	"vinyasaclub/repository"
	"vinyasaclub/utils"
)

const maxRating = 5

type PerformanceHandler struct {
	Repo       repository.PerformanceRepository
	MemberRepo repository.MemberRepository
	Clock      Clock
}

func (h *PerformanceHandler) ListPerformance(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListPerformance(r.Context())
	if err != nil {
		log.Printf("list performance: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *PerformanceHandler) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePerformanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.MemberID = strings.TrimSpace(req.MemberID)
	req.Category = strings.TrimSpace(req.Category)
	if req.MemberID == "" || req.Category == "" {
		utils.WriteError(w, http.StatusBadRequest, "memberId and category required")
		return
	}

	member, err := h.MemberRepo.GetMember(r.Context(), req.MemberID)
	if err != nil {
		log.Printf("lookup member %s: %v", req.MemberID, err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if member == nil {
		utils.WriteError(w, http.StatusBadRequest, "Unknown member")
		return
	}

	perf := models.Performance{
		MemberID:  req.MemberID,
		Category:  req.Category,
		Score:     req.Score.Or(0),
		Rating:    clampRating(req.Rating.Or(0)),
		CreatedAt: h.Clock.now(),
	}
	if err := h.Repo.CreatePerformance(r.Context(), &perf); err != nil {
		log.Printf("create performance: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, perf)
}

// clampRating rounds to the nearest whole rating in 0..5, 0 meaning unrated.
func clampRating(v float64) int {
	return roundClamp(v, 0, maxRating)
}

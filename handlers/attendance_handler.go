package handlers

import (
	"log"
	"net/http"
	"strings"

	"vinyasaclub/models"
	"vinyasaclub/repository"
	"vinyasaclub/utils"
)

type AttendanceHandler struct {
	Repo  repository.AttendanceRepository
	Clock Clock
}

// GET /attendance?date=YYYY-MM-DD, defaulting to today.
func (h *AttendanceHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = utils.Today(h.Clock.now(), h.Clock.loc())
	}
	if !models.ValidDate(date) {
		// No record can carry a malformed date.
		utils.WriteJSON(w, http.StatusOK, []models.Attendance{})
		return
	}

	list, err := h.Repo.ListAttendanceByDate(r.Context(), date)
	if err != nil {
		log.Printf("list attendance for %s: %v", date, err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// BulkSetAttendance replaces every record on a date with the submitted ones.
func (h *AttendanceHandler) BulkSetAttendance(w http.ResponseWriter, r *http.Request) {
	var req models.BulkAttendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.Date = strings.TrimSpace(req.Date)
	entries, submitted, ok := req.Entries()
	if req.Date == "" || !ok {
		utils.WriteError(w, http.StatusBadRequest, "date and records[] required")
		return
	}
	if !models.ValidDate(req.Date) {
		utils.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	if _, err := h.Repo.ReplaceAttendanceForDate(r.Context(), req.Date, lastEntryPerMember(entries)); err != nil {
		log.Printf("replace attendance for %s: %v", req.Date, err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// count echoes the submission, skipped entries included.
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"count": submitted,
	})
}

// lastEntryPerMember keeps one entry per member: the last one submitted,
// at the position of that member's first entry.
func lastEntryPerMember(entries []models.AttendanceEntry) []models.AttendanceEntry {
	pos := make(map[string]int, len(entries))
	out := make([]models.AttendanceEntry, 0, len(entries))
	for _, e := range entries {
		if i, seen := pos[e.MemberID]; seen {
			out[i] = e
			continue
		}
		pos[e.MemberID] = len(out)
		out = append(out, e)
	}
	return out
}

package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strings"

	"vinyasaclub/models"
	"vinyasaclub/repository"
	"vinyasaclub/utils"
)

const (
	defaultBranch = "CSE"
	defaultYear   = 1
	maxYear       = math.MaxInt32
)

type MemberHandler struct {
	Repo repository.MemberRepository
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListMembers(r.Context())
	if err != nil {
		log.Printf("list members: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		utils.WriteError(w, http.StatusBadRequest, "Name and email required")
		return
	}

	branch := strings.TrimSpace(req.Branch)
	if branch == "" {
		branch = defaultBranch
	}

	member := models.Member{
		Name:   req.Name,
		Email:  req.Email,
		Branch: branch,
		Year:   roundClamp(req.Year.Or(defaultYear), defaultYear, maxYear),
	}
	if err := h.Repo.CreateMember(r.Context(), &member); err != nil {
		log.Printf("create member: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, member)
}

// DeleteMember removes the member and every record that references it.
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Repo.DeleteMember(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		log.Printf("delete member %s: %v", id, err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

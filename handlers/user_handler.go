package handlers

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"vinyasaclub/middleware"
	"vinyasaclub/repository"
	"vinyasaclub/utils"
)

type UserHandler struct {
	Repo     repository.UserRepository
	Sessions *utils.SessionManager
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// dummyPasswordHash is compared against when the email is unknown, so both
// failure paths spend the same bcrypt time.
func dummyPasswordHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// Login handler
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.Repo.GetUserByEmail(r.Context(), strings.TrimSpace(creds.Email))
	if err != nil {
		log.Printf("login lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	hash := dummyPasswordHash()
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(creds.Password)); err != nil || user == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Sessions.Issue(user)
	if err != nil {
		log.Printf("failed to sign session for %s: %v", user.ID, err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me returns the identity carried by the caller's session.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, claims.Identity())
}

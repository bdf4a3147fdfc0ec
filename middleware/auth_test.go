package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinyasaclub/models"
	"vinyasaclub/utils"
)

func issue(t *testing.T, sm *utils.SessionManager, role models.Role) string {
	t.Helper()
	token, err := sm.Issue(&models.AppUser{ID: "u-1", Name: "Ada", Email: "ada@vinyasa.club", Role: role})
	require.NoError(t, err)
	return token
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, claims.Identity())
}

func serve(h http.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", BearerToken(req))

	req.Header.Set("Authorization", "bearer abc")
	assert.Equal(t, "abc", BearerToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "", BearerToken(req))

	req.Header.Set("Authorization", "Bearer")
	assert.Equal(t, "", BearerToken(req))
}

func TestRequireSession(t *testing.T) {
	sm := utils.NewSessionManager("secret", time.Hour)
	h := RequireSession(sm)(okHandler)

	rec := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing token", message(t, rec))

	rec = serve(h, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", message(t, rec))

	other := utils.NewSessionManager("other", time.Hour)
	rec = serve(h, "Bearer "+issue(t, other, models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, "Bearer "+issue(t, sm, models.RoleMember))
	require.Equal(t, http.StatusOK, rec.Code)
	var id models.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &id))
	assert.Equal(t, models.Identity{ID: "u-1", Email: "ada@vinyasa.club", Name: "Ada", Role: models.RoleMember}, id)
}

func TestRequireRole(t *testing.T) {
	sm := utils.NewSessionManager("secret", time.Hour)
	staffOnly := RequireSession(sm)(RequireRole(models.RoleAdmin, models.RoleInstructor)(okHandler))

	tests := []struct {
		role models.Role
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleInstructor, http.StatusOK},
		{models.RoleMember, http.StatusForbidden},
	}
	for _, tt := range tests {
		rec := serve(staffOnly, "Bearer "+issue(t, sm, tt.role))
		assert.Equal(t, tt.want, rec.Code, tt.role)
	}

	rec := serve(staffOnly, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Without a session in context the role check cannot pass.
	rec = serve(RequireRole(models.RoleAdmin)(okHandler), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthorize(t *testing.T) {
	claims := &utils.Claims{ID: "u-1", Role: models.RoleInstructor}
	assert.NoError(t, Authorize(claims, models.RoleAdmin, models.RoleInstructor))
	assert.ErrorIs(t, Authorize(claims, models.RoleAdmin), ErrForbidden)
	assert.ErrorIs(t, Authorize(claims), ErrForbidden)
}

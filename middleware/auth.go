package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"vinyasaclub/models"
	"vinyasaclub/utils"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrForbidden    = errors.New("forbidden")
)

type ctxKey string

const claimsCtxKey ctxKey = "session"

// Verifier checks a bearer token and returns its claims.
type Verifier interface {
	Verify(token string) (*utils.Claims, error)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate returns the session behind r. It fails with ErrMissingToken
// or an error wrapping utils.ErrInvalidToken.
func Authenticate(r *http.Request, v Verifier) (*utils.Claims, error) {
	token := BearerToken(r)
	if token == "" {
		return nil, ErrMissingToken
	}
	return v.Verify(token)
}

// Authorize fails with ErrForbidden unless the session role is allowed.
func Authorize(claims *utils.Claims, allowed ...models.Role) error {
	for _, role := range allowed {
		if claims.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireSession rejects requests without a valid session with 401 and
// stores the claims in the request context otherwise.
func RequireSession(v Verifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, err := Authenticate(r, v)
			if err != nil {
				if errors.Is(err, ErrMissingToken) {
					utils.WriteError(w, http.StatusUnauthorized, "Missing token")
					return
				}
				log.Printf("rejected session for %s %s: %v", r.Method, r.URL.Path, err)
				utils.WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsCtxKey, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireRole must run inside RequireSession. It answers 403 when the
// session role is not in roles.
func RequireRole(roles ...models.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if err := Authorize(claims, roles...); err != nil {
				log.Printf("role %q denied for %s %s", claims.Role, r.Method, r.URL.Path)
				utils.WriteError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next(w, r)
		}
	}
}

func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*utils.Claims)
	return claims, ok && claims != nil
}

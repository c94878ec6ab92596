package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fungi-kb/apiserver/internal/auth"
)

// Middleware carries the per-request gates built on the token manager.
type Middleware struct {
	tokens *auth.TokenManager
}

func NewMiddleware(tokens *auth.TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth authenticates the bearer token and attaches the decoded
// identity to the request context. It never touches the database: identity
// and role come entirely from the token claims, so a role change only takes
// effect once the access token expires and is refreshed.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication invalid")
			return
		}

		identity, err := m.tokens.VerifyAccess(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication invalid")
			return
		}

		ctx := context.WithValue(r.Context(), contextIdentityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route on the role claim attached by RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := identityFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "authentication invalid")
				return
			}
			if !strings.EqualFold(identity.Role, role) {
				writeError(w, http.StatusForbidden, role+" access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}

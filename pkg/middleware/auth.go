// Package middleware provides HTTP middleware for request authentication.
package middleware

import (
	"net/http"
	"strings"

	"github.com/platinummonkey/orgmaster/pkg/auth"
	"github.com/platinummonkey/orgmaster/pkg/contextkeys"
	"github.com/platinummonkey/orgmaster/pkg/httputil"
	"github.com/platinummonkey/orgmaster/pkg/observability"
)

// Verifier validates a bearer token and returns its claims.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid bearer token. On success the
// verified claims are placed in the request context.
type Auth struct {
	verifier Verifier
}

// NewAuth creates an authentication middleware.
func NewAuth(verifier Verifier) *Auth {
	return &Auth{verifier: verifier}
}

// Handler wraps an HTTP handler with bearer token authentication.
func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.WriteUnauthorized(w, "missing authorization header")
			return
		}

		// Format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.WriteUnauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			httputil.WriteUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := contextkeys.WithClaims(r.Context(), claims)
		ctx = observability.WithAdminID(ctx, claims.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaims extracts verified token claims from the request, or nil when
// the request did not pass through the authentication middleware.
func GetClaims(r *http.Request) *auth.Claims {
	v := r.Context().Value(contextkeys.ClaimsKey)
	if v == nil {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

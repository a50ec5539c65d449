package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pawhome/service/internal/identity"
	"github.com/pawhome/service/internal/response"
	"github.com/pawhome/service/internal/user"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// UserIDKey is the context key for the authenticated user's UID.
const UserIDKey contextKey = "userID"

// RequireUser returns middleware that admits only requests carrying a valid
// bearer token belonging to a registered user:
//
//  1. missing or non-Bearer Authorization header → 401
//  2. token rejected by the identity provider → 401
//  3. verified identity with no user record → 403 (accounts and records can
//     diverge when a record is deleted out-of-band; that is an authorization
//     failure, not a server fault)
//
// On success the resolved UID is injected into the request context. This path
// never mutates the identity provider.
func RequireUser(provider identity.Provider, users user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "No authentication token provided", "Unauthorized")
				return
			}

			uid, err := provider.VerifyToken(r.Context(), parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired authentication token", err.Error())
				return
			}

			if _, err := users.GetByUID(r.Context(), uid); err != nil {
				if errors.Is(err, user.ErrNotFound) {
					response.Forbidden(w, "User not found in database", "Unauthorized")
					return
				}
				response.InternalError(w, "Error verifying user", err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

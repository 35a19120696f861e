package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ownerKey is the context key type for the authenticated owner identity.
// Unexported so only this package can create collisions-free keys.
type ownerKey struct{}

// SessionResolver resolves a bearer token to the owner identity it belongs
// to. *service.AuthService satisfies it via CurrentUser.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token uuid.UUID) (uuid.UUID, error)
}

// NewAuthHandler returns a middleware that requires a valid
// "Authorization: Bearer <token>" header, resolves it to an owner identity,
// and stores that identity in the request context for OwnerID to read.
// Requests without a valid live session get 401 and never reach the handler.
func NewAuthHandler(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			ownerID, err := resolver.CurrentUser(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey{}, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerID returns the authenticated owner identity stored by NewAuthHandler.
// The second return is false when the request did not pass through the auth
// middleware — handlers behind the protected subtree can rely on true.
func OwnerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerKey{}).(uuid.UUID)
	return id, ok
}

// bearerToken extracts and parses the bearer token from the Authorization
// header. Session tokens are UUIDs; anything else is rejected here.
func bearerToken(r *http.Request) (uuid.UUID, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return uuid.Nil, false
	}
	token, err := uuid.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return uuid.Nil, false
	}
	return token, true
}

// unauthorized writes the standard 401 body used across the API.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "unauthorized",
			"message": "a valid session token is required",
		},
	})
}

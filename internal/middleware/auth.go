package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserKey   contextKey = "user"
	APIKeyKey contextKey = "api_key"
)

// APIKeyAuth resolves the caller's user ID from the Authorization header.
// validKeys maps user ID -> API key. Requests without a key pass through as
// anonymous guests; a key that matches nothing is rejected.
func APIKeyAuth(validKeys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Support both "Bearer <key>" and "<key>" formats
			apiKey := strings.TrimPrefix(auth, "Bearer ")
			apiKey = strings.TrimSpace(apiKey)

			if apiKey == "" {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			// Constant-time comparison to prevent timing attacks
			valid := false
			var user string
			for u, key := range validKeys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(key)) == 1 {
					valid = true
					user = u
					break
				}
			}

			if !valid {
				http.Error(w, "invalid API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			ctx = context.WithValue(ctx, APIKeyKey, apiKey)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated user ID from context.
// Anonymous guests get "".
func GetUserFromContext(ctx context.Context) string {
	if user, ok := ctx.Value(UserKey).(string); ok {
		return user
	}
	return ""
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/oral0005/backend-posylka/internal/auth"
)

type userIDKey struct{}

// Auth validates the bearer token and stores the caller's user id in the
// request context. Handlers behind it can rely on UserID being set.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == "" || tokenString == header {
				http.Error(w, `{"error": "missing bearer token"}`, http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Parse(tokenString)
			if err != nil {
				http.Error(w, `{"error": "invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated caller's id, or "" outside Auth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/listkeep-io/listkeep/internal/database"
	"github.com/listkeep-io/listkeep/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// SessionAuthMiddleware gates identity-scoped endpoints. The token is read
// from the server-side session only; Authorization headers sent by clients
// are ignored. A missing session is 401, anything wrong with the token or
// its identity is 403.
func SessionAuthMiddleware(tm *TokenManager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := SessionToken(r, cookieName)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				writeMessage(w, http.StatusForbidden, "Forbidden")
				return
			}

			// Re-resolve the embedded identity against storage rather than
			// trusting the decoded claims outright.
			user, err := database.GetUserByID(claims.UserID)
			if err != nil {
				writeMessage(w, http.StatusForbidden, "Forbidden")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext retrieves the authenticated user from the context.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

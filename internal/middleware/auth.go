package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
	"github.com/vasapolrittideah/shoply-api/shared/auth"
)

type contextKey struct{}

var userContextKey = contextKey{}

// RequireAuth gates protected routes behind a bearer session token. A
// missing or malformed header, a bad or expired token, and a vanished
// account all get the same answer so callers cannot tell which check
// failed. On success the account is attached to the request context.
func RequireAuth(
	jwtAuth auth.JWTAuthenticator,
	secret string,
	userRepo repository.UserRepository,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				unauthenticated(w)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				unauthenticated(w)
				return
			}

			claims := &auth.SessionClaims{}
			if _, err := jwtAuth.ValidateTokenWithClaims(parts[1], secret, claims); err != nil {
				unauthenticated(w)
				return
			}

			user, err := userRepo.GetUser(r.Context(), claims.UserID)
			if err != nil {
				unauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated account attached by RequireAuth.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "not authorized",
	})
}

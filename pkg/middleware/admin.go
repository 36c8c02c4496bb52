package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"storefront/pkg/claims"
	"storefront/pkg/response"
	"storefront/pkg/user"
)

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// RequireAdmin lets the request through only when the authenticated user
// currently holds the admin role. It must run after CheckJWT.
func RequireAdmin(users UserFinder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := claims.FromContext(r.Context())
			if !ok {
				response.Error(w, http.StatusUnauthorized, msgTokenRequired)
				return
			}

			u, err := users.GetByID(r.Context(), c.UserID)
			switch {
			case errors.Is(err, user.ErrNotFound):
				response.Error(w, http.StatusUnauthorized, "User not found")
				return
			case err != nil:
				logger.Error("admin check", "error", err, "user", c.UserID)
				response.Error(w, http.StatusInternalServerError, msgAuthFailed)
				return
			}

			if !u.IsAdmin() {
				logger.Warn("admin access denied", "user", c.UserID, "path", r.URL.Path)
				response.Error(w, http.StatusForbidden, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

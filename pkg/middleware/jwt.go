package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"storefront/pkg/auth"
	"storefront/pkg/claims"
	"storefront/pkg/response"
	"storefront/pkg/session"
)

const (
	msgTokenRequired = "Access token is required"
	msgInvalidToken  = "Invalid or expired token"
	msgSessionExpire = "Session expired"
	msgAuthFailed    = "Authentication failed"
)

// Route templates reachable without a token, keyed by template then method.
var publicRoutes = map[string]map[string]bool{
	"/api/auth/register":         {http.MethodPost: true},
	"/api/auth/login":            {http.MethodPost: true},
	"/api/products":              {http.MethodGet: true},
	"/api/products/featured":     {http.MethodGet: true},
	"/api/products/{id}":         {http.MethodGet: true},
	"/api/products/{id}/related": {http.MethodGet: true},
	"/api/categories":            {http.MethodGet: true},
	"/api/categories/{id}":       {http.MethodGet: true},
	"/api/images/{id}":           {http.MethodGet: true},
}

type TokenParser interface {
	Parse(token string) (*claims.Claims, error)
}

func isPublic(r *http.Request) bool {
	route := mux.CurrentRoute(r)
	if route == nil {
		return false
	}
	template, err := route.GetPathTemplate()
	if err != nil {
		return false
	}
	return publicRoutes[template][r.Method]
}

// CheckJWT requires a valid bearer token bound to a live session on every
// route outside publicRoutes.
func CheckJWT(tokens TokenParser, sessions session.Repository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if !ok {
				response.Error(w, http.StatusUnauthorized, msgTokenRequired)
				return
			}

			c, err := tokens.Parse(token)
			if err != nil {
				logger.Debug("token rejected", "error", err, "path", r.URL.Path)
				response.Error(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			valid, err := sessions.IsValid(r.Context(), c.SessionID())
			if err != nil {
				logger.Error("session lookup", "error", err, "user", c.UserID)
				response.Error(w, http.StatusInternalServerError, msgAuthFailed)
				return
			}
			if !valid {
				response.Error(w, http.StatusUnauthorized, msgSessionExpire)
				return
			}

			next.ServeHTTP(w, r.WithContext(claims.NewContext(r.Context(), c)))
		})
	}
}

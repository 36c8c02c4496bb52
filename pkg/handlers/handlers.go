package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"

	"storefront/pkg/claims"
	"storefront/pkg/response"
	"storefront/pkg/validation"
)

const (
	muxVarID = "id"

	msgInternal       = "Internal server error"
	msgBadContentType = "Content-Type must be application/json"
	msgBadJSON        = "Invalid JSON payload"
	msgUnauthorized   = "Unauthorized"
)

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) bool {
	if err := response.Data(w, status, data); err != nil {
		logger.Error("failed to write JSON response", "error", err)
		return false
	}
	return true
}

func writeMessage(w http.ResponseWriter, logger *slog.Logger, msg string) bool {
	if err := response.Message(w, http.StatusOK, msg); err != nil {
		logger.Error("failed to write JSON response", "error", err)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	response.Error(w, status, msg)
}

// writeFailure answers 400 for validation errors and 500 for anything else.
func writeFailure(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}
	logger.Error(op, "error", err)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, msgBadContentType)
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadJSON)
		return false
	}

	return true
}

func currentUser(w http.ResponseWriter, r *http.Request) (*claims.Claims, bool) {
	c, ok := claims.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return nil, false
	}
	return c, true
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// queryInt64 returns 0 when the parameter is absent or malformed.
func queryInt64(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

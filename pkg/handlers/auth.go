package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/metrics"
	"storefront/pkg/user"
)

// LoginRecorder counts login outcomes.
type LoginRecorder interface {
	Login(outcome string)
}

type AuthHandler struct {
	Service user.ServiceInterface
	Logger  *slog.Logger
	Logins  LoginRecorder
}

func NewAuthHandler(service user.ServiceInterface, logins LoginRecorder, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Logger:  logger,
		Logins:  logins,
	}
}

func (h *AuthHandler) record(outcome string) {
	if h.Logins != nil {
		h.Logins.Login(outcome)
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterInput
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	res, err := h.Service.Register(r.Context(), req)
	if errors.Is(err, user.ErrAlreadyExists) {
		writeError(w, http.StatusConflict, "User with this email already exists")
		return
	}
	if err != nil {
		writeFailure(w, h.Logger, "register", err)
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusCreated, res); ok {
		h.Logger.Info("user registered", "user", res.User.ID)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req user.LoginInput
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	res, err := h.Service.Login(r.Context(), req, clientIP(r))
	switch {
	case errors.Is(err, user.ErrTooManyAttempts):
		h.record(metrics.LoginLimited)
		h.Logger.Warn("login throttled", "ip", clientIP(r))
		writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	case errors.Is(err, user.ErrInvalidCredentials):
		h.record(metrics.LoginFailure)
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	case err != nil:
		writeFailure(w, h.Logger, "login", err)
		return
	}

	h.record(metrics.LoginSuccess)
	if ok := writeJSON(w, h.Logger, http.StatusOK, res); ok {
		h.Logger.Info("login", "user", res.User.ID)
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Service.Logout(r.Context(), c.SessionID()); err != nil {
		writeFailure(w, h.Logger, "logout", err)
		return
	}

	if ok := writeMessage(w, h.Logger, "Logged out successfully"); ok {
		h.Logger.Info("logout", "user", c.UserID)
	}
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, ok := currentUser(w, r)
	if !ok {
		return
	}

	u, err := h.Service.GetByID(r.Context(), c.UserID)
	if errors.Is(err, user.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeFailure(w, h.Logger, "me", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, u)
}

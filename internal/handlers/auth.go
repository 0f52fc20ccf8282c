package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"finance-tracker/internal/api"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
	"finance-tracker/internal/session"
)

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResponse struct {
	Subject    string    `json:"subject"`
	ExpiresAt  time.Time `json:"expires_at"`
	RememberMe bool      `json:"remember_me"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token and starts a 12 hour session.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}

	logger := h.loggerFor(r)
	token, err := h.backend.Login(r.Context(), api.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		var apiErr *api.Error
		if api.IsUnauthorized(err) || errors.Is(err, api.ErrMissingToken) ||
			(errors.As(err, &apiErr) && apiErr.StatusCode < 500) {
			logger.Info("Login rejected", log.FieldOperation, log.OpLogin)
			h.writeError(w, http.StatusUnauthorized, i18n.KeyLoginFailed)
			return
		}
		logger.Warn("Login failed", log.NewFields().WithOperation(log.OpLogin).WithError(err).ToSlice()...)
		h.writeError(w, http.StatusBadGateway, i18n.KeyLoadingFailed)
		return
	}

	if old, ok := h.sessions.Read(); ok {
		h.categories.Delete(old)
	}
	if err := h.sessions.Save(token, req.RememberMe); err != nil {
		logger.Error("Failed to save session", log.NewFields().WithOperation(log.OpLogin).WithError(err).ToSlice()...)
		h.writeError(w, http.StatusInternalServerError, i18n.KeyLoadingFailed)
		return
	}

	current, _ := h.sessions.Current()
	writeJSON(w, http.StatusOK, LoginResponse{
		Subject:    session.Subject(token),
		ExpiresAt:  current.ExpiresAt,
		RememberMe: current.RememberMe,
	})
}

// Signup registers a new account. It does not sign the user in.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req api.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}

	if err := h.backend.Signup(r.Context(), req); err != nil {
		h.writeFailed(w, r, log.OpSignup, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: h.localizer.Translate(i18n.KeySignupDone)})
}

// PasswordReset asks the backend to mail a reset link. The answer is the same
// whether or not the address exists.
func (h *Handlers) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.Email) == "" {
		h.writeError(w, http.StatusBadRequest, i18n.KeyInvalidRequest)
		return
	}

	if err := h.backend.ResetPassword(r.Context(), strings.TrimSpace(req.Email)); err != nil {
		var apiErr *api.Error
		if !errors.As(err, &apiErr) || apiErr.StatusCode >= 500 {
			h.loggerFor(r).Warn("Password reset failed",
				log.NewFields().WithOperation(log.OpReset).WithError(err).ToSlice()...)
			h.writeError(w, http.StatusBadGateway, i18n.KeyLoadingFailed)
			return
		}
	}
	writeJSON(w, http.StatusAccepted, MessageResponse{Message: h.localizer.Translate(i18n.KeyPasswordResetSent)})
}

// Logout clears the local session. It succeeds with or without one.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := h.sessions.Read(); ok {
		h.categories.Delete(token)
	}
	if err := h.sessions.Clear(); err != nil {
		h.loggerFor(r).Error("Failed to clear session",
			log.NewFields().WithOperation(log.OpLogout).WithError(err).ToSlice()...)
		h.writeError(w, http.StatusInternalServerError, i18n.KeyLoadingFailed)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: h.localizer.Translate(i18n.KeyLoggedOut)})
}

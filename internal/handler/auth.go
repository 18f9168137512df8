package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/negligencias/site-server/internal/audit"
	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/middleware"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/util"
)

// SessionIssuer checks credentials and signs a session token.
type SessionIssuer interface {
	Issue(ctx context.Context, email, password string) (*model.Session, string, error)
}

type AuthHandler struct {
	sessions SessionIssuer
	limiter  *middleware.LoginRateLimiter
	secure   bool
}

func NewAuthHandler(sessions SessionIssuer, limiter *middleware.LoginRateLimiter, secure bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, limiter: limiter, secure: secure}
}

// Routes are mounted at /api/admin/auth. Only /me requires a session.
func (h *AuthHandler) Routes(guard *middleware.RouteGuard) chi.Router {
	r := chi.NewRouter()
	r.With(h.limiter.Handler).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.With(guard.API).Get("/me", middleware.WithSession(h.Me))
	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool           `json:"success"`
	User    *model.Session `json:"user,omitempty"`
	Message string         `json:"message,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, apperrors.ValidationFields(missingCredentials(req)))
		return
	}

	session, token, err := h.sessions.Issue(r.Context(), req.Email, req.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeInvalidCredentials) {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginFailure, Email: util.MaskEmail(req.Email)})
			writeJSON(w, http.StatusUnauthorized, loginResponse{Message: apperrors.InvalidCredentialsMessage})
			return
		}
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginSuccess, UserID: session.UserID, Email: util.MaskEmail(session.Email)})
	middleware.SetSessionCookie(w, token, h.secure)
	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: session})
}

func missingCredentials(req loginRequest) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if strings.TrimSpace(req.Email) == "" {
		fields = append(fields, apperrors.FieldError{Field: "email", Message: "Email is required"})
	}
	if req.Password == "" {
		fields = append(fields, apperrors.FieldError{Field: "password", Message: "Password is required"})
	}
	return fields
}

// Logout always clears the cookie, whether or not the session was still valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})
	middleware.ClearSessionCookie(w, h.secure)
	writeJSON(w, http.StatusOK, loginResponse{Success: true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, session *model.Session) {
	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: session})
}

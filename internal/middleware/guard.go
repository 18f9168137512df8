package middleware

import (
	"net/http"
	"strings"

	"github.com/negligencias/site-server/internal/audit"
	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/httputil"
	"github.com/negligencias/site-server/internal/model"
)

const (
	AdminPrefix    = "/admin"
	AdminLoginPath = "/admin/login"
)

type Decision int

const (
	// DecisionPass means the path is not guarded.
	DecisionPass Decision = iota
	DecisionAllow
	DecisionRedirect
)

func (d Decision) String() string {
	switch d {
	case DecisionPass:
		return "pass"
	case DecisionAllow:
		return "allow"
	case DecisionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// RouteGuard gates the admin area on a verified session.
type RouteGuard struct {
	verifier SessionVerifier
	secure   bool
}

func NewRouteGuard(verifier SessionVerifier, secure bool) *RouteGuard {
	return &RouteGuard{verifier: verifier, secure: secure}
}

// Decide is pure: it looks only at the path and the already verified session.
func Decide(path string, session *model.Session) Decision {
	if !isAdminPath(path) {
		return DecisionPass
	}
	if path == AdminLoginPath {
		return DecisionPass
	}
	if session != nil {
		return DecisionAllow
	}
	return DecisionRedirect
}

func (g *RouteGuard) Decide(path string, session *model.Session) Decision {
	return Decide(path, session)
}

// isAdminPath matches /admin and anything below it, but not /administration.
func isAdminPath(path string) bool {
	return path == AdminPrefix || strings.HasPrefix(path, AdminPrefix+"/")
}

// Pages guards HTML admin pages. Anonymous visitors are sent to the login page.
func (g *RouteGuard) Pages(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, hadCookie := sessionFromRequest(r, g.verifier)

		switch Decide(r.URL.Path, session) {
		case DecisionPass:
			next.ServeHTTP(w, r)
		case DecisionAllow:
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
		default:
			if hadCookie {
				ClearSessionCookie(w, g.secure)
			}
			http.Redirect(w, r, AdminLoginPath, http.StatusFound)
		}
	})
}

// API guards the admin JSON API. Requests without a valid session get 401 before any handler runs.
func (g *RouteGuard) API(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, hadCookie := sessionFromRequest(r, g.verifier)
		if session == nil {
			if hadCookie {
				ClearSessionCookie(w, g.secure)
				audit.LogFromRequest(r, audit.Event{Type: audit.EventAuthFailure, Details: map[string]any{"path": r.URL.Path}})
			}
			httputil.WriteError(w, apperrors.Unauthorized("Unauthorized"))
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

// SessionHandlerFunc is an admin handler that receives the verified session explicitly.
type SessionHandlerFunc func(w http.ResponseWriter, r *http.Request, session *model.Session)

// WithSession adapts a SessionHandlerFunc to run behind Pages or API.
func WithSession(h SessionHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := GetSession(r.Context())
		if session == nil {
			httputil.WriteError(w, apperrors.Unauthorized("Unauthorized"))
			return
		}
		h(w, r, session)
	}
}

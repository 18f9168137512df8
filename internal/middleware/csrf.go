package middleware

import (
	"net/http"

	"github.com/negligencias/site-server/internal/audit"
	"github.com/negligencias/site-server/internal/config"
	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/util"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRFMiddleware protects state-changing admin API calls with a double-submit cookie.
// The csrf_token cookie is readable by the admin scripts, which echo it in X-CSRF-Token.
type CSRFMiddleware struct {
	secure bool
	exempt map[string]bool
}

func NewCSRFMiddleware(secure bool, exemptPaths ...string) *CSRFMiddleware {
	exempt := make(map[string]bool, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = true
	}
	return &CSRFMiddleware{secure: secure, exempt: exempt}
}

func (m *CSRFMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CSRFCookieName)
		if err != nil || cookie.Value == "" {
			token, err := util.GenerateToken()
			if err != nil {
				writeError(w, apperrors.Internal("Failed to generate security token").WithCause(err))
				return
			}
			m.setCSRFCookie(w, token)
			cookie = &http.Cookie{Value: token}
		}

		if isSafeMethod(r.Method) || m.exempt[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		headerToken := r.Header.Get(CSRFHeaderName)
		if headerToken == "" || !util.ConstantTimeEqual(cookie.Value, headerToken) {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventCSRFFailure, Details: map[string]any{"path": r.URL.Path}})
			msg := "Invalid CSRF token"
			if headerToken == "" {
				msg = "Missing CSRF token"
			}
			writeError(w, apperrors.Forbidden(msg))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *CSRFMiddleware) setCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.SessionLifetime.Seconds()),
		HttpOnly: false,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet ||
		method == http.MethodHead ||
		method == http.MethodOptions
}

package middleware

import (
	"context"
	"net/http"

	"github.com/negligencias/site-server/internal/config"
	"github.com/negligencias/site-server/internal/model"
)

const AdminSessionCookie = "admin_session"

type contextKey string

const SessionContextKey contextKey = "adminSession"

// SessionVerifier turns a cookie value into a session, or nil when it is not acceptable.
type SessionVerifier interface {
	Verify(token string) *model.Session
}

func GetSession(ctx context.Context) *model.Session {
	if session, ok := ctx.Value(SessionContextKey).(*model.Session); ok {
		return session
	}
	return nil
}

func withSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, session)
}

// sessionFromRequest reports the verified session and whether a cookie was sent at all.
func sessionFromRequest(r *http.Request, verifier SessionVerifier) (*model.Session, bool) {
	cookie, err := r.Cookie(AdminSessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	return verifier.Verify(cookie.Value), true
}

func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.SessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

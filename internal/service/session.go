package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/negligencias/site-server/internal/config"
	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
	"github.com/negligencias/site-server/internal/util"
)

// sessionClaims is the signed payload of the admin_session cookie.
// SessionExpiresAt duplicates exp so expiry is checked twice.
type sessionClaims struct {
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Role             model.Role `json:"role"`
	SessionExpiresAt int64      `json:"sessionExpiresAt"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	users    repository.AdminUserRepository
	secret   []byte
	lifetime time.Duration
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewSessionManager(users repository.AdminUserRepository, secret string) *SessionManager {
	return &SessionManager{
		users:    users,
		secret:   []byte(secret),
		lifetime: config.SessionLifetime,
		now:      time.Now,
	}
}

// Issue checks credentials and signs a new session.
// Unknown, inactive and wrong-password accounts fail identically.
func (m *SessionManager) Issue(ctx context.Context, email, password string) (*model.Session, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", apperrors.InvalidCredentials()
	}

	user, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.Internal("Authentication failed").WithCause(err)
	}

	if user == nil {
		// Keep timing comparable to a real hash check.
		_, _ = util.ComparePassword(m.dummy(), password)
		return nil, "", apperrors.InvalidCredentials()
	}

	ok, err := util.ComparePassword(user.PasswordHash, password)
	if err != nil {
		return nil, "", apperrors.Internal("Authentication failed").WithCause(err)
	}
	if !ok || !user.IsActive {
		return nil, "", apperrors.InvalidCredentials()
	}

	session, token, err := m.sign(user)
	if err != nil {
		return nil, "", apperrors.Internal("Authentication failed").WithCause(err)
	}

	if err := m.users.TouchLastLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("userId", user.ID).Msg("failed to record last login")
	}

	return session, token, nil
}

func (m *SessionManager) sign(user *model.AdminUser) (*model.Session, string, error) {
	issuedAt := m.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(m.lifetime)

	claims := sessionClaims{
		Email:            user.Email,
		Name:             user.Name,
		Role:             user.Role,
		SessionExpiresAt: expiresAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, "", err
	}

	return &model.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}, token, nil
}

// Verify returns the session carried by token, or nil when the token is
// malformed, wrongly signed or expired.
func (m *SessionManager) Verify(token string) *model.Session {
	if token == "" {
		return nil
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil
	}

	session := &model.Session{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
		ExpiresAt: time.Unix(claims.SessionExpiresAt, 0),
	}
	if !session.Valid(m.now()) {
		return nil
	}
	return session
}

func (m *SessionManager) dummy() string {
	m.dummyOnce.Do(func() {
		token, err := util.GenerateToken()
		if err != nil {
			token = "unused-password"
		}
		m.dummyHash, _ = util.HashPassword(token)
	})
	return m.dummyHash
}

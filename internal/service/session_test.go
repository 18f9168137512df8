package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/util"
)

const testSecret = "a-test-secret-that-is-long-enough-for-hs256"

func newTestUser(t *testing.T, active bool) *model.AdminUser {
	t.Helper()
	hash, err := util.HashPassword("correct-horse")
	require.NoError(t, err)
	return &model.AdminUser{
		ID:           "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Email:        "staff@example.com",
		PasswordHash: hash,
		Name:         "Staff",
		Role:         model.RoleEditor,
		IsActive:     active,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSessionManagerIssueAndVerify(t *testing.T) {
	users := new(mockAdminUserRepo)
	user := newTestUser(t, true)
	users.On("FindByEmail", mock.Anything, "staff@example.com").Return(user, nil)
	users.On("TouchLastLogin", mock.Anything, user.ID).Return(nil)

	issued := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	m := NewSessionManager(users, testSecret)
	m.now = fixedClock(issued)

	session, token, err := m.Issue(context.Background(), " staff@example.com ", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, issued.Add(7*24*time.Hour), session.ExpiresAt)
	assert.Equal(t, model.RoleEditor, session.Role)

	verified := m.Verify(token)
	require.NotNil(t, verified)
	assert.Equal(t, user.ID, verified.UserID)
	assert.Equal(t, user.Email, verified.Email)
	assert.True(t, verified.ExpiresAt.Equal(session.ExpiresAt))

	m.now = fixedClock(issued.Add(7*24*time.Hour - time.Second))
	assert.NotNil(t, m.Verify(token))

	m.now = fixedClock(issued.Add(7 * 24 * time.Hour))
	assert.Nil(t, m.Verify(token))

	users.AssertExpectations(t)
}

func TestSessionManagerInvalidCredentialsAreIndistinguishable(t *testing.T) {
	active := newTestUser(t, true)
	inactive := newTestUser(t, false)

	tests := []struct {
		name     string
		user     *model.AdminUser
		password string
	}{
		{"unknown email", nil, "correct-horse"},
		{"wrong password", active, "wrong"},
		{"inactive account", inactive, "correct-horse"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := new(mockAdminUserRepo)
			users.On("FindByEmail", mock.Anything, "staff@example.com").Return(tc.user, nil)
			m := NewSessionManager(users, testSecret)

			session, token, err := m.Issue(context.Background(), "staff@example.com", tc.password)
			assert.Nil(t, session)
			assert.Empty(t, token)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeInvalidCredentials, appErr.Code)
			assert.Equal(t, "Invalid email or password", appErr.Message)
			users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything)
		})
	}
}

func TestSessionManagerBlankInput(t *testing.T) {
	users := new(mockAdminUserRepo)
	m := NewSessionManager(users, testSecret)

	_, _, err := m.Issue(context.Background(), "  ", "pw")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidCredentials))
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestSessionManagerRepositoryFailure(t *testing.T) {
	users := new(mockAdminUserRepo)
	users.On("FindByEmail", mock.Anything, "staff@example.com").Return(nil, errors.New("connection refused"))
	m := NewSessionManager(users, testSecret)

	_, _, err := m.Issue(context.Background(), "staff@example.com", "pw")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInternal))
}

func TestSessionManagerLastLoginFailureDoesNotBlockLogin(t *testing.T) {
	users := new(mockAdminUserRepo)
	user := newTestUser(t, true)
	users.On("FindByEmail", mock.Anything, "staff@example.com").Return(user, nil)
	users.On("TouchLastLogin", mock.Anything, user.ID).Return(errors.New("timeout"))
	m := NewSessionManager(users, testSecret)

	session, token, err := m.Issue(context.Background(), "staff@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotNil(t, session)
	assert.NotEmpty(t, token)
}

func TestSessionManagerVerifyRejects(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	m := NewSessionManager(new(mockAdminUserRepo), testSecret)
	m.now = fixedClock(now)

	sign := func(method jwt.SigningMethod, key any, claims sessionClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	claims := func(exp, sessionExp time.Time) sessionClaims {
		return sessionClaims{
			Email:            "staff@example.com",
			SessionExpiresAt: sessionExp.Unix(),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "7c9e6679-7425-40de-944b-e07fc1f90ae7",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(exp),
			},
		}
	}
	later := now.Add(time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("another-secret"), claims(later, later))},
		{"other hmac alg", sign(jwt.SigningMethodHS512, []byte(testSecret), claims(later, later))},
		{"none alg", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claims(later, later))},
		{"jwt expired", sign(jwt.SigningMethodHS256, []byte(testSecret), claims(now.Add(-time.Minute), later))},
		{"session expired", sign(jwt.SigningMethodHS256, []byte(testSecret), claims(later, now))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, m.Verify(tc.token))
		})
	}

	assert.NotNil(t, m.Verify(sign(jwt.SigningMethodHS256, []byte(testSecret), claims(later, later))))
}

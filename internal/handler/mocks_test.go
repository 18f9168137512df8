package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/negligencias/site-server/internal/middleware"
	"github.com/negligencias/site-server/internal/model"
)

const (
	testToken     = "valid-token"
	testContactID = "7d9f6c1e-2b1a-4c55-9a0e-3f2f8f0c1a11"
	testCatID     = "0b5c3a4e-8d2f-4f61-a1c9-6e7d8f9a0b12"
)

var testSession = &model.Session{
	UserID:    "2f7a1d8c-5b3e-4a9f-8c21-0d6e4b7a9c33",
	Email:     "admin@example.test",
	Name:      "Admin",
	Role:      model.RoleAdmin,
	ExpiresAt: time.Now().Add(time.Hour),
}

// stubVerifier accepts testToken only.
type stubVerifier struct{}

func (stubVerifier) Verify(token string) *model.Session {
	if token == testToken {
		return testSession
	}
	return nil
}

func withAdminCookie(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: middleware.AdminSessionCookie, Value: testToken})
	return r
}

func one[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func many[T any](args mock.Arguments) ([]T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

type mockSessionIssuer struct {
	mock.Mock
}

func (m *mockSessionIssuer) Issue(ctx context.Context, email, password string) (*model.Session, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*model.Session), args.String(1), args.Error(2)
}

type mockContactSubmitter struct {
	mock.Mock
}

func (m *mockContactSubmitter) Submit(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	return one[model.Contact](m.Called(ctx, in))
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	return many[model.Category](m.Called(ctx))
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return one[model.Category](m.Called(ctx, id))
}

func (m *mockCategoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return one[model.Category](m.Called(ctx, slug))
}

func (m *mockCategoryRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	return one[model.Category](m.Called(ctx, c))
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *model.Category) (*model.Category, error) {
	return one[model.Category](m.Called(ctx, c))
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockContactRepo struct {
	mock.Mock
}

func (m *mockContactRepo) List(ctx context.Context, filter model.ContactFilter) ([]model.Contact, error) {
	return many[model.Contact](m.Called(ctx, filter))
}

func (m *mockContactRepo) Count(ctx context.Context, filter model.ContactFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockContactRepo) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	return one[model.Contact](m.Called(ctx, id))
}

func (m *mockContactRepo) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	return one[model.Contact](m.Called(ctx, c))
}

func (m *mockContactRepo) Update(ctx context.Context, id string, patch model.ContactPatch) (*model.Contact, error) {
	return one[model.Contact](m.Called(ctx, id, patch))
}

func (m *mockContactRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) Stats(ctx context.Context) (*model.Stats, error) {
	return one[model.Stats](m.Called(ctx))
}

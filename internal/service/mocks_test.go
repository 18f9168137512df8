package service

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
)

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

// mockTransactor runs fn without a transaction; repositories ignore the nil tx.
type mockTransactor struct{}

func (mockTransactor) WithTx(ctx context.Context, fn database.TxFunc) error {
	return fn(nil)
}

type mockAdminUserRepo struct {
	mock.Mock
}

func (m *mockAdminUserRepo) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return one[model.AdminUser](m.Called(ctx, email))
}

func (m *mockAdminUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return one[model.AdminUser](m.Called(ctx, id))
}

func (m *mockAdminUserRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	return one[model.AdminUser](m.Called(ctx, params))
}

func (m *mockAdminUserRepo) SetActive(ctx context.Context, email string, active bool) (bool, error) {
	args := m.Called(ctx, email, active)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdminUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdminUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) List(ctx context.Context, filter model.ListFilter) ([]model.Post, error) {
	return many[model.Post](m.Called(ctx, filter))
}

func (m *mockPostRepo) Count(ctx context.Context, filter model.ListFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	return one[model.Post](m.Called(ctx, id))
}

func (m *mockPostRepo) FindByIDForUpdate(ctx context.Context, id string) (*model.Post, error) {
	return one[model.Post](m.Called(ctx, id))
}

func (m *mockPostRepo) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return one[model.Post](m.Called(ctx, slug))
}

func (m *mockPostRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	return one[model.Post](m.Called(ctx, post))
}

func (m *mockPostRepo) Update(ctx context.Context, post *model.Post) (*model.Post, error) {
	return one[model.Post](m.Called(ctx, post))
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) WithTx(*sqlx.Tx) repository.PostRepository {
	return m
}

type mockNewsRepo struct {
	mock.Mock
}

func (m *mockNewsRepo) List(ctx context.Context, filter model.ListFilter) ([]model.News, error) {
	return many[model.News](m.Called(ctx, filter))
}

func (m *mockNewsRepo) Count(ctx context.Context, filter model.ListFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockNewsRepo) FindByID(ctx context.Context, id string) (*model.News, error) {
	return one[model.News](m.Called(ctx, id))
}

func (m *mockNewsRepo) FindByIDForUpdate(ctx context.Context, id string) (*model.News, error) {
	return one[model.News](m.Called(ctx, id))
}

func (m *mockNewsRepo) FindBySlug(ctx context.Context, slug string) (*model.News, error) {
	return one[model.News](m.Called(ctx, slug))
}

func (m *mockNewsRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNewsRepo) Create(ctx context.Context, item *model.News) (*model.News, error) {
	return one[model.News](m.Called(ctx, item))
}

func (m *mockNewsRepo) Update(ctx context.Context, item *model.News) (*model.News, error) {
	return one[model.News](m.Called(ctx, item))
}

func (m *mockNewsRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockNewsRepo) WithTx(*sqlx.Tx) repository.NewsRepository {
	return m
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

type mockHospitalRepo struct {
	mock.Mock
}

func (m *mockHospitalRepo) List(ctx context.Context, filter repository.HospitalFilter) ([]model.Hospital, error) {
	return many[model.Hospital](m.Called(ctx, filter))
}

func (m *mockHospitalRepo) Count(ctx context.Context, filter repository.HospitalFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockHospitalRepo) FindByID(ctx context.Context, id string) (*model.Hospital, error) {
	return one[model.Hospital](m.Called(ctx, id))
}

func (m *mockHospitalRepo) FindBySlug(ctx context.Context, slug string) (*model.Hospital, error) {
	return one[model.Hospital](m.Called(ctx, slug))
}

func (m *mockHospitalRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockHospitalRepo) Create(ctx context.Context, h *model.Hospital) (*model.Hospital, error) {
	return one[model.Hospital](m.Called(ctx, h))
}

func (m *mockHospitalRepo) Update(ctx context.Context, h *model.Hospital) (*model.Hospital, error) {
	return one[model.Hospital](m.Called(ctx, h))
}

func (m *mockHospitalRepo) Delete(ctx context.Context, id string) (bool, error) {
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

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyStaff(ctx context.Context, c *model.Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockNotifier) ConfirmSubmitter(ctx context.Context, c *model.Contact) error {
	return m.Called(ctx, c).Error(0)
}

type mockTranslator struct {
	mock.Mock
}

func (m *mockTranslator) Translate(ctx context.Context, fields map[string]string) (map[string]string, error) {
	args := m.Called(ctx, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

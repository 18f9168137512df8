package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
)

type HospitalFilter struct {
	City   string
	Search string
	Active *bool
	Limit  int
	Offset int
}

type HospitalRepository interface {
	List(ctx context.Context, filter HospitalFilter) ([]model.Hospital, error)
	Count(ctx context.Context, filter HospitalFilter) (int, error)
	FindByID(ctx context.Context, id string) (*model.Hospital, error)
	FindBySlug(ctx context.Context, slug string) (*model.Hospital, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, h *model.Hospital) (*model.Hospital, error)
	Update(ctx context.Context, h *model.Hospital) (*model.Hospital, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var hospitalColumns = []string{
	"slug", "name", "city", "province", "address", "phone", "website", "latitude", "longitude", "is_active",
}

type hospitalRepo struct {
	db database.DBTX
	t  table[model.Hospital]
}

func NewHospitalRepository(db *sqlx.DB) HospitalRepository {
	return &hospitalRepo{db: db, t: table[model.Hospital]{db: db, name: "hospitals"}}
}

func hospitalWhere(f HospitalFilter) *where {
	w := &where{}
	if f.City != "" {
		w.add("LOWER(city) = LOWER(?)", f.City)
	}
	if f.Active != nil {
		w.add("is_active = ?", *f.Active)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		w.add("name ILIKE ?", "%"+s+"%")
	}
	return w
}

func (r *hospitalRepo) List(ctx context.Context, f HospitalFilter) ([]model.Hospital, error) {
	return r.t.list(ctx, hospitalWhere(f), "name, id", f.Limit, f.Offset)
}

func (r *hospitalRepo) Count(ctx context.Context, f HospitalFilter) (int, error) {
	return r.t.count(ctx, hospitalWhere(f))
}

func (r *hospitalRepo) FindByID(ctx context.Context, id string) (*model.Hospital, error) {
	return r.t.findByID(ctx, id)
}

func (r *hospitalRepo) FindBySlug(ctx context.Context, slug string) (*model.Hospital, error) {
	return r.t.findBySlug(ctx, slug)
}

func (r *hospitalRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.t.slugExists(ctx, slug, excludeID)
}

func hospitalArgs(h *model.Hospital) []any {
	return []any{h.Slug, h.Name, h.City, h.Province, h.Address, h.Phone, h.Website, h.Latitude, h.Longitude, h.IsActive}
}

func (r *hospitalRepo) Create(ctx context.Context, h *model.Hospital) (*model.Hospital, error) {
	var hospital model.Hospital
	if err := r.db.GetContext(ctx, &hospital, insertSQL("hospitals", hospitalColumns), hospitalArgs(h)...); err != nil {
		return nil, slugWriteError(err)
	}
	return &hospital, nil
}

func (r *hospitalRepo) Update(ctx context.Context, h *model.Hospital) (*model.Hospital, error) {
	var hospital model.Hospital
	args := append([]any{h.ID}, hospitalArgs(h)...)
	err := r.db.GetContext(ctx, &hospital, updateSQL("hospitals", hospitalColumns), args...)
	if err != nil {
		return HandleNotFound(&hospital, slugWriteError(err))
	}
	return &hospital, nil
}

func (r *hospitalRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var categoryColumns = []string{"slug", "name", "name_en", "description", "description_en"}

type categoryRepo struct {
	db database.DBTX
	t  table[model.Category]
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepo{db: db, t: table[model.Category]{db: db, name: "categories"}}
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	return r.t.list(ctx, &where{}, "name", maxListLimit, 0)
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return r.t.findByID(ctx, id)
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.t.findBySlug(ctx, slug)
}

func (r *categoryRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.t.slugExists(ctx, slug, excludeID)
}

func categoryArgs(c *model.Category) []any {
	return []any{c.Slug, c.Name, c.NameEn, c.Description, c.DescriptionEn}
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	var category model.Category
	if err := r.db.GetContext(ctx, &category, insertSQL("categories", categoryColumns), categoryArgs(c)...); err != nil {
		return nil, slugWriteError(err)
	}
	return &category, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) (*model.Category, error) {
	var category model.Category
	args := append([]any{c.ID}, categoryArgs(c)...)
	err := r.db.GetContext(ctx, &category, updateSQL("categories", categoryColumns), args...)
	if err != nil {
		return HandleNotFound(&category, slugWriteError(err))
	}
	return &category, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

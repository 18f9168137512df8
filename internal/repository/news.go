package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
)

type NewsRepository interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.News, error)
	Count(ctx context.Context, filter model.ListFilter) (int, error)
	FindByID(ctx context.Context, id string) (*model.News, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.News, error)
	FindBySlug(ctx context.Context, slug string) (*model.News, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *model.News) (*model.News, error)
	Update(ctx context.Context, item *model.News) (*model.News, error)
	Delete(ctx context.Context, id string) (bool, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) NewsRepository
}

var newsColumns = append(append([]string{}, articleColumns...), "source_name", "source_url", "featured_image")

type newsRepo struct {
	db database.DBTX
	t  table[model.News]
}

func NewNewsRepository(db *sqlx.DB) NewsRepository {
	return newNewsRepo(db)
}

func newNewsRepo(db database.DBTX) *newsRepo {
	return &newsRepo{db: db, t: table[model.News]{db: db, name: "news"}}
}

func (r *newsRepo) WithTx(tx *sqlx.Tx) NewsRepository {
	return newNewsRepo(tx)
}

func (r *newsRepo) List(ctx context.Context, f model.ListFilter) ([]model.News, error) {
	return r.t.list(ctx, articleWhere(f), articleOrder, f.Limit, f.Offset)
}

func (r *newsRepo) Count(ctx context.Context, f model.ListFilter) (int, error) {
	return r.t.count(ctx, articleWhere(f))
}

func (r *newsRepo) FindByID(ctx context.Context, id string) (*model.News, error) {
	return r.t.findByID(ctx, id)
}

func (r *newsRepo) FindByIDForUpdate(ctx context.Context, id string) (*model.News, error) {
	return r.t.findByIDForUpdate(ctx, id)
}

func (r *newsRepo) FindBySlug(ctx context.Context, slug string) (*model.News, error) {
	return r.t.findBySlug(ctx, slug)
}

func (r *newsRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.t.slugExists(ctx, slug, excludeID)
}

func newsArgs(p *model.News) []any {
	return append(articleArgs(&p.Article), p.SourceName, p.SourceURL, p.FeaturedImage)
}

func (r *newsRepo) Create(ctx context.Context, p *model.News) (*model.News, error) {
	var item model.News
	if err := r.db.GetContext(ctx, &item, insertSQL("news", newsColumns), newsArgs(p)...); err != nil {
		return nil, slugWriteError(err)
	}
	return &item, nil
}

func (r *newsRepo) Update(ctx context.Context, p *model.News) (*model.News, error) {
	var item model.News
	args := append([]any{p.ID}, newsArgs(p)...)
	err := r.db.GetContext(ctx, &item, updateSQL("news", newsColumns), args...)
	if err != nil {
		return HandleNotFound(&item, slugWriteError(err))
	}
	return &item, nil
}

func (r *newsRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

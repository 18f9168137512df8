package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
)

type PostRepository interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Post, error)
	Count(ctx context.Context, filter model.ListFilter) (int, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) (*model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) PostRepository
}

var postColumns = append(append([]string{}, articleColumns...), "category_id", "author_name", "featured_image")

type postRepo struct {
	db database.DBTX
	t  table[model.Post]
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return newPostRepo(db)
}

func newPostRepo(db database.DBTX) *postRepo {
	return &postRepo{db: db, t: table[model.Post]{db: db, name: "posts"}}
}

func (r *postRepo) WithTx(tx *sqlx.Tx) PostRepository {
	return newPostRepo(tx)
}

func postWhere(f model.ListFilter) *where {
	w := articleWhere(f)
	if f.CategoryID != "" {
		w.add("category_id = ?", f.CategoryID)
	}
	return w
}

func (r *postRepo) List(ctx context.Context, f model.ListFilter) ([]model.Post, error) {
	return r.t.list(ctx, postWhere(f), articleOrder, f.Limit, f.Offset)
}

func (r *postRepo) Count(ctx context.Context, f model.ListFilter) (int, error) {
	return r.t.count(ctx, postWhere(f))
}

func (r *postRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	return r.t.findByID(ctx, id)
}

func (r *postRepo) FindByIDForUpdate(ctx context.Context, id string) (*model.Post, error) {
	return r.t.findByIDForUpdate(ctx, id)
}

func (r *postRepo) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return r.t.findBySlug(ctx, slug)
}

func (r *postRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.t.slugExists(ctx, slug, excludeID)
}

func postArgs(p *model.Post) []any {
	return append(articleArgs(&p.Article), p.CategoryID, p.AuthorName, p.FeaturedImage)
}

func (r *postRepo) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	var post model.Post
	if err := r.db.GetContext(ctx, &post, insertSQL("posts", postColumns), postArgs(p)...); err != nil {
		return nil, slugWriteError(err)
	}
	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	var post model.Post
	args := append([]any{p.ID}, postArgs(p)...)
	err := r.db.GetContext(ctx, &post, updateSQL("posts", postColumns), args...)
	if err != nil {
		return HandleNotFound(&post, slugWriteError(err))
	}
	return &post, nil
}

func (r *postRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

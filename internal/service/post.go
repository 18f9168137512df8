package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
)

type PostService struct {
	tx         Transactor
	repo       repository.PostRepository
	categories repository.CategoryRepository
	now        func() time.Time
}

func NewPostService(tx Transactor, repo repository.PostRepository, categories repository.CategoryRepository) *PostService {
	return &PostService{
		tx:         tx,
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

func (s *PostService) List(ctx context.Context, filter model.ListFilter) (*Page[model.Post], error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	return &Page[model.Post]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if post == nil {
		return nil, apperrors.NotFound("Post")
	}
	return post, nil
}

// GetPublishedBySlug hides drafts from public pages.
func (s *PostService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, dbError(err)
	}
	if post == nil || !post.IsPublished {
		return nil, apperrors.NotFound("Post")
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, in model.PostInput) (*model.Post, error) {
	if err := validateInput(in, i18n.English); err != nil {
		return nil, err
	}
	article, err := newArticle(in.ArticleInput, s.now())
	if err != nil {
		return nil, err
	}
	post := &model.Post{
		Article:       article,
		CategoryID:    optional(in.CategoryID),
		AuthorName:    optional(in.AuthorName),
		FeaturedImage: optional(in.FeaturedImage),
	}
	if err := s.checkCategory(ctx, post.CategoryID); err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.repo.SlugExists, post.Slug, ""); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, dbError(err)
	}
	return created, nil
}

// Update runs under a row lock so concurrent publishes stamp published_at once.
func (s *PostService) Update(ctx context.Context, id string, patch model.PostPatch) (*model.Post, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := validateInput(patch, i18n.English); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, optional(patch.CategoryID)); err != nil {
		return nil, err
	}

	var updated *model.Post
	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		repo := s.repo.WithTx(tx)

		post, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return dbError(err)
		}
		if post == nil {
			return apperrors.NotFound("Post")
		}

		slugChanged, err := applyArticlePatch(&post.Article, patch.ArticlePatch, s.now())
		if err != nil {
			return err
		}
		if slugChanged {
			if err := ensureSlugFree(ctx, repo.SlugExists, post.Slug, post.ID); err != nil {
				return err
			}
		}
		setOptional(&post.CategoryID, patch.CategoryID)
		setOptional(&post.AuthorName, patch.AuthorName)
		setOptional(&post.FeaturedImage, patch.FeaturedImage)

		updated, err = repo.Update(ctx, post)
		if err != nil {
			return dbError(err)
		}
		if updated == nil {
			return apperrors.NotFound("Post")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return apperrors.NotFound("Post")
	}
	return nil
}

func (s *PostService) checkCategory(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	category, err := s.categories.FindByID(ctx, *id)
	if err != nil {
		return dbError(err)
	}
	if category == nil {
		return fieldError("categoryId", "Category not found")
	}
	return nil
}

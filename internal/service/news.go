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

type NewsService struct {
	tx   Transactor
	repo repository.NewsRepository
	now  func() time.Time
}

func NewNewsService(tx Transactor, repo repository.NewsRepository) *NewsService {
	return &NewsService{tx: tx, repo: repo, now: time.Now}
}

func (s *NewsService) List(ctx context.Context, filter model.ListFilter) (*Page[model.News], error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	return &Page[model.News]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *NewsService) Get(ctx context.Context, id string) (*model.News, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("News")
	}
	return item, nil
}

func (s *NewsService) GetPublishedBySlug(ctx context.Context, slug string) (*model.News, error) {
	item, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, dbError(err)
	}
	if item == nil || !item.IsPublished {
		return nil, apperrors.NotFound("News")
	}
	return item, nil
}

func (s *NewsService) Create(ctx context.Context, in model.NewsInput) (*model.News, error) {
	if err := validateInput(in, i18n.English); err != nil {
		return nil, err
	}
	article, err := newArticle(in.ArticleInput, s.now())
	if err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.repo.SlugExists, article.Slug, ""); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.News{
		Article:       article,
		SourceName:    optional(in.SourceName),
		SourceURL:     optional(in.SourceURL),
		FeaturedImage: optional(in.FeaturedImage),
	})
	if err != nil {
		return nil, dbError(err)
	}
	return created, nil
}

func (s *NewsService) Update(ctx context.Context, id string, patch model.NewsPatch) (*model.News, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := validateInput(patch, i18n.English); err != nil {
		return nil, err
	}

	var updated *model.News
	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return dbError(err)
		}
		if item == nil {
			return apperrors.NotFound("News")
		}

		slugChanged, err := applyArticlePatch(&item.Article, patch.ArticlePatch, s.now())
		if err != nil {
			return err
		}
		if slugChanged {
			if err := ensureSlugFree(ctx, repo.SlugExists, item.Slug, item.ID); err != nil {
				return err
			}
		}
		setOptional(&item.SourceName, patch.SourceName)
		setOptional(&item.SourceURL, patch.SourceURL)
		setOptional(&item.FeaturedImage, patch.FeaturedImage)

		updated, err = repo.Update(ctx, item)
		if err != nil {
			return dbError(err)
		}
		if updated == nil {
			return apperrors.NotFound("News")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return apperrors.NotFound("News")
	}
	return nil
}

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

type SuccessCaseService struct {
	tx        Transactor
	repo      repository.SuccessCaseRepository
	hospitals repository.HospitalRepository
	now       func() time.Time
}

func NewSuccessCaseService(tx Transactor, repo repository.SuccessCaseRepository, hospitals repository.HospitalRepository) *SuccessCaseService {
	return &SuccessCaseService{
		tx:        tx,
		repo:      repo,
		hospitals: hospitals,
		now:       time.Now,
	}
}

func (s *SuccessCaseService) List(ctx context.Context, filter model.ListFilter) (*Page[model.SuccessCase], error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	return &Page[model.SuccessCase]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *SuccessCaseService) Get(ctx context.Context, id string) (*model.SuccessCase, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if c == nil {
		return nil, apperrors.NotFound("Success case")
	}
	return c, nil
}

func (s *SuccessCaseService) GetPublishedBySlug(ctx context.Context, slug string) (*model.SuccessCase, error) {
	c, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, dbError(err)
	}
	if c == nil || !c.IsPublished {
		return nil, apperrors.NotFound("Success case")
	}
	return c, nil
}

func (s *SuccessCaseService) Create(ctx context.Context, in model.SuccessCaseInput) (*model.SuccessCase, error) {
	if err := validateInput(in, i18n.English); err != nil {
		return nil, err
	}
	article, err := newArticle(in.ArticleInput, s.now())
	if err != nil {
		return nil, err
	}
	c := &model.SuccessCase{
		Article:      article,
		HospitalID:   optional(in.HospitalID),
		Compensation: optional(in.Compensation),
	}
	if err := s.checkHospital(ctx, c.HospitalID); err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.repo.SlugExists, c.Slug, ""); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, dbError(err)
	}
	return created, nil
}

func (s *SuccessCaseService) Update(ctx context.Context, id string, patch model.SuccessCasePatch) (*model.SuccessCase, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := validateInput(patch, i18n.English); err != nil {
		return nil, err
	}
	if err := s.checkHospital(ctx, optional(patch.HospitalID)); err != nil {
		return nil, err
	}

	var updated *model.SuccessCase
	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		repo := s.repo.WithTx(tx)

		c, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return dbError(err)
		}
		if c == nil {
			return apperrors.NotFound("Success case")
		}

		slugChanged, err := applyArticlePatch(&c.Article, patch.ArticlePatch, s.now())
		if err != nil {
			return err
		}
		if slugChanged {
			if err := ensureSlugFree(ctx, repo.SlugExists, c.Slug, c.ID); err != nil {
				return err
			}
		}
		setOptional(&c.HospitalID, patch.HospitalID)
		setOptional(&c.Compensation, patch.Compensation)

		updated, err = repo.Update(ctx, c)
		if err != nil {
			return dbError(err)
		}
		if updated == nil {
			return apperrors.NotFound("Success case")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SuccessCaseService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return apperrors.NotFound("Success case")
	}
	return nil
}

func (s *SuccessCaseService) checkHospital(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	h, err := s.hospitals.FindByID(ctx, *id)
	if err != nil {
		return dbError(err)
	}
	if h == nil {
		return fieldError("hospitalId", "Hospital not found")
	}
	return nil
}

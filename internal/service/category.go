package service

import (
	"context"
	"strings"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
)

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if category == nil {
		return nil, apperrors.NotFound("Category")
	}
	return category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, dbError(err)
	}
	if category == nil {
		return nil, apperrors.NotFound("Category")
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	if err := validateInput(in, i18n.English); err != nil {
		return nil, err
	}
	if err := blankPatch("name", &in.Name); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	slug, err := resolveSlug(in.Slug, name)
	if err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.repo.SlugExists, slug, ""); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Category{
		Slug:          slug,
		Name:          name,
		NameEn:        optional(in.NameEn),
		Description:   optional(in.Description),
		DescriptionEn: optional(in.DescriptionEn),
	})
	if err != nil {
		return nil, dbError(err)
	}
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(patch, i18n.English); err != nil {
		return nil, err
	}
	if err := blankPatch("name", patch.Name); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Slug != nil {
		slug, err := resolveSlug(*patch.Slug, category.Name)
		if err != nil {
			return nil, err
		}
		if slug != category.Slug {
			if err := ensureSlugFree(ctx, s.repo.SlugExists, slug, category.ID); err != nil {
				return nil, err
			}
		}
		category.Slug = slug
	}
	setOptional(&category.NameEn, patch.NameEn)
	setOptional(&category.Description, patch.Description)
	setOptional(&category.DescriptionEn, patch.DescriptionEn)

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, dbError(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("Category")
	}
	return updated, nil
}

// Delete leaves posts in place; their category_id is cleared by the foreign key.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return apperrors.NotFound("Category")
	}
	return nil
}

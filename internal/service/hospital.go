package service

import (
	"context"
	"strings"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
)

type HospitalService struct {
	repo repository.HospitalRepository
}

func NewHospitalService(repo repository.HospitalRepository) *HospitalService {
	return &HospitalService{repo: repo}
}

func (s *HospitalService) List(ctx context.Context, filter repository.HospitalFilter) (*Page[model.Hospital], error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	return &Page[model.Hospital]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *HospitalService) Get(ctx context.Context, id string) (*model.Hospital, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if h == nil {
		return nil, apperrors.NotFound("Hospital")
	}
	return h, nil
}

func (s *HospitalService) Create(ctx context.Context, in model.HospitalInput) (*model.Hospital, error) {
	if err := validateInput(in, i18n.English); err != nil {
		return nil, err
	}
	if err := blankPatch("name", &in.Name); err != nil {
		return nil, err
	}
	if err := blankPatch("city", &in.City); err != nil {
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

	h := &model.Hospital{
		Slug:      slug,
		Name:      name,
		City:      strings.TrimSpace(in.City),
		Province:  optional(in.Province),
		Address:   optional(in.Address),
		Phone:     optional(in.Phone),
		Website:   optional(in.Website),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		IsActive:  in.IsActive == nil || *in.IsActive,
	}
	created, err := s.repo.Create(ctx, h)
	if err != nil {
		return nil, dbError(err)
	}
	return created, nil
}

func (s *HospitalService) Update(ctx context.Context, id string, patch model.HospitalPatch) (*model.Hospital, error) {
	h, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(patch, i18n.English); err != nil {
		return nil, err
	}
	if err := blankPatch("name", patch.Name); err != nil {
		return nil, err
	}
	if err := blankPatch("city", patch.City); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		h.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.City != nil {
		h.City = strings.TrimSpace(*patch.City)
	}
	if patch.Slug != nil {
		slug, err := resolveSlug(*patch.Slug, h.Name)
		if err != nil {
			return nil, err
		}
		if slug != h.Slug {
			if err := ensureSlugFree(ctx, s.repo.SlugExists, slug, h.ID); err != nil {
				return nil, err
			}
		}
		h.Slug = slug
	}
	setOptional(&h.Province, patch.Province)
	setOptional(&h.Address, patch.Address)
	setOptional(&h.Phone, patch.Phone)
	setOptional(&h.Website, patch.Website)
	if patch.Latitude != nil {
		h.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		h.Longitude = patch.Longitude
	}
	if patch.IsActive != nil {
		h.IsActive = *patch.IsActive
	}

	updated, err := s.repo.Update(ctx, h)
	if err != nil {
		return nil, dbError(err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("Hospital")
	}
	return updated, nil
}

func (s *HospitalService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return apperrors.NotFound("Hospital")
	}
	return nil
}

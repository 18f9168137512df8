package service

import (
	"context"

	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
)

// AdminService backs the dashboard.
type AdminService struct {
	stats repository.StatsRepository
}

func NewAdminService(stats repository.StatsRepository) *AdminService {
	return &AdminService{stats: stats}
}

func (s *AdminService) GetStats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.stats.Stats(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return stats, nil
}

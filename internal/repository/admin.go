package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/negligencias/site-server/internal/model"
)

type StatsRepository interface {
	Stats(ctx context.Context) (*model.Stats, error)
}

type statsRepo struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepo{db: db}
}

// Stats counts every collection in a single round trip.
func (r *statsRepo) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	err := r.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM posts) AS posts,
			(SELECT COUNT(*) FROM posts WHERE is_published) AS published_posts,
			(SELECT COUNT(*) FROM news) AS news,
			(SELECT COUNT(*) FROM success_cases) AS success_cases,
			(SELECT COUNT(*) FROM hospitals) AS hospitals,
			(SELECT COUNT(*) FROM contacts) AS contacts,
			(SELECT COUNT(*) FROM contacts WHERE NOT is_read) AS unread_contacts
	`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
)

type SuccessCaseRepository interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.SuccessCase, error)
	Count(ctx context.Context, filter model.ListFilter) (int, error)
	FindByID(ctx context.Context, id string) (*model.SuccessCase, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.SuccessCase, error)
	FindBySlug(ctx context.Context, slug string) (*model.SuccessCase, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Create(ctx context.Context, item *model.SuccessCase) (*model.SuccessCase, error)
	Update(ctx context.Context, item *model.SuccessCase) (*model.SuccessCase, error)
	Delete(ctx context.Context, id string) (bool, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) SuccessCaseRepository
}

var successCaseColumns = append(append([]string{}, articleColumns...), "hospital_id", "compensation")

type successCaseRepo struct {
	db database.DBTX
	t  table[model.SuccessCase]
}

func NewSuccessCaseRepository(db *sqlx.DB) SuccessCaseRepository {
	return newSuccessCaseRepo(db)
}

func newSuccessCaseRepo(db database.DBTX) *successCaseRepo {
	return &successCaseRepo{db: db, t: table[model.SuccessCase]{db: db, name: "success_cases"}}
}

func (r *successCaseRepo) WithTx(tx *sqlx.Tx) SuccessCaseRepository {
	return newSuccessCaseRepo(tx)
}

func (r *successCaseRepo) List(ctx context.Context, f model.ListFilter) ([]model.SuccessCase, error) {
	return r.t.list(ctx, articleWhere(f), articleOrder, f.Limit, f.Offset)
}

func (r *successCaseRepo) Count(ctx context.Context, f model.ListFilter) (int, error) {
	return r.t.count(ctx, articleWhere(f))
}

func (r *successCaseRepo) FindByID(ctx context.Context, id string) (*model.SuccessCase, error) {
	return r.t.findByID(ctx, id)
}

func (r *successCaseRepo) FindByIDForUpdate(ctx context.Context, id string) (*model.SuccessCase, error) {
	return r.t.findByIDForUpdate(ctx, id)
}

func (r *successCaseRepo) FindBySlug(ctx context.Context, slug string) (*model.SuccessCase, error) {
	return r.t.findBySlug(ctx, slug)
}

func (r *successCaseRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return r.t.slugExists(ctx, slug, excludeID)
}

func successCaseArgs(p *model.SuccessCase) []any {
	return append(articleArgs(&p.Article), p.HospitalID, p.Compensation)
}

func (r *successCaseRepo) Create(ctx context.Context, p *model.SuccessCase) (*model.SuccessCase, error) {
	var item model.SuccessCase
	if err := r.db.GetContext(ctx, &item, insertSQL("success_cases", successCaseColumns), successCaseArgs(p)...); err != nil {
		return nil, slugWriteError(err)
	}
	return &item, nil
}

func (r *successCaseRepo) Update(ctx context.Context, p *model.SuccessCase) (*model.SuccessCase, error) {
	var item model.SuccessCase
	args := append([]any{p.ID}, successCaseArgs(p)...)
	err := r.db.GetContext(ctx, &item, updateSQL("success_cases", successCaseColumns), args...)
	if err != nil {
		return HandleNotFound(&item, slugWriteError(err))
	}
	return &item, nil
}

func (r *successCaseRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}

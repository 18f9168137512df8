package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/negligencias/site-server/internal/database"
	apperrors "github.com/negligencias/site-server/internal/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
	uniqueViolation  = "23505"
)

// HandleNotFound processes a database query result, converting sql.ErrNoRows
// to a nil result without error. This is a common pattern for Find* operations
// where a missing row is not an error condition.
//
// Usage:
//
//	var item model.Item
//	err := r.db.GetContext(ctx, &item, query, args...)
//	return HandleNotFound(&item, err)
func HandleNotFound[T any](result *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// slugWriteError turns a slug unique violation into DuplicateSlug.
func slugWriteError(err error) error {
	if isUniqueViolation(err) {
		return apperrors.DuplicateSlug().WithCause(err)
	}
	return err
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// where accumulates AND-ed conditions with positional arguments.
// Every "?" in a condition binds the same argument.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT and OFFSET placeholders and returns the clause.
func (w *where) page(limit, offset int) string {
	w.args = append(w.args, clampLimit(limit), max(offset, 0))
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

// table implements the queries every slugged collection shares.
type table[T any] struct {
	db   database.DBTX
	name string
}

func (t table[T]) findByID(ctx context.Context, id string) (*T, error) {
	var row T
	err := t.db.GetContext(ctx, &row, `SELECT * FROM `+t.name+` WHERE id = $1`, id)
	return HandleNotFound(&row, err)
}

func (t table[T]) findByIDForUpdate(ctx context.Context, id string) (*T, error) {
	var row T
	err := t.db.GetContext(ctx, &row, `SELECT * FROM `+t.name+` WHERE id = $1 FOR UPDATE`, id)
	return HandleNotFound(&row, err)
}

func (t table[T]) findBySlug(ctx context.Context, slug string) (*T, error) {
	var row T
	err := t.db.GetContext(ctx, &row, `SELECT * FROM `+t.name+` WHERE slug = $1`, slug)
	return HandleNotFound(&row, err)
}

func (t table[T]) slugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = t.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM `+t.name+` WHERE slug = $1)`, slug)
	} else {
		err = t.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM `+t.name+` WHERE slug = $1 AND id <> $2)`, slug, excludeID)
	}
	return exists, err
}

func (t table[T]) delete(ctx context.Context, id string) (bool, error) {
	result, err := t.db.ExecContext(ctx, `DELETE FROM `+t.name+` WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (t table[T]) list(ctx context.Context, w *where, orderBy string, limit, offset int) ([]T, error) {
	query := `SELECT * FROM ` + t.name + w.sql() + ` ORDER BY ` + orderBy
	query += w.page(limit, offset)
	rows := []T{}
	if err := t.db.SelectContext(ctx, &rows, query, w.args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (t table[T]) count(ctx context.Context, w *where) (int, error) {
	var n int
	err := t.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+t.name+w.sql(), w.args...)
	return n, err
}

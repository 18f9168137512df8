package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
)

type AdminUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error)
	SetActive(ctx context.Context, email string, active bool) (bool, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error)
	TouchLastLogin(ctx context.Context, id string) error
}

type adminUserRepo struct {
	db database.DBTX
}

func NewAdminUserRepository(db *sqlx.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

// FindByEmail matches case-insensitively.
func (r *adminUserRepo) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM admin_users WHERE LOWER(email) = LOWER($1)
	`, email)
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `SELECT * FROM admin_users WHERE id = $1`, id)
	return HandleNotFound(&user, err)
}

func (r *adminUserRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO admin_users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.Email, params.PasswordHash, params.Name, params.Role)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *adminUserRepo) SetActive(ctx context.Context, email string, active bool) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admin_users SET is_active = $2, updated_at = NOW()
		WHERE LOWER(email) = LOWER($1)
	`, email, active)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *adminUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE admin_users SET password_hash = $2, updated_at = NOW()
		WHERE LOWER(email) = LOWER($1)
	`, email, passwordHash)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *adminUserRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE admin_users SET last_login_at = NOW() WHERE id = $1
	`, id)
	return err
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/house-price-api/internal/model"
)

type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// GetByEmail fetches an admin by exact email match.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,created_at FROM admins WHERE email=? LIMIT 1",
		strings.TrimSpace(email)).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Admin{}, ErrAdminNotFound
	}
	return a, err
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,created_at FROM admins WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Admin{}, ErrAdminNotFound
	}
	return a, err
}

// CreateIfAbsent inserts an admin unless the email is already present.
// It reports whether a row was created, making provisioning idempotent.
func (r *AdminRepo) CreateIfAbsent(ctx context.Context, email, passwordHash, role string) (bool, error) {
	email = strings.TrimSpace(email)
	if _, err := r.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrAdminNotFound) {
		return false, err
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (email, password_hash, role) VALUES (?,?,?)",
		email, passwordHash, role)
	if err != nil {
		// Lost a race against a concurrent provisioning run: still a no-op.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

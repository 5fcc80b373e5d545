package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAdminNotFound = errors.New("admin not found")

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetAdminByEmail looks an operator up case-insensitively
func (r *AdminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM admin_users
		WHERE LOWER(email) = $1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

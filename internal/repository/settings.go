package repository

import (
	"context"
	"errors"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSiteSettings reads the singleton settings row; a missing row reads as defaults
func (r *SettingsRepository) GetSiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	var s models.SiteSettings
	err := r.db.QueryRow(ctx, `
		SELECT id, indique_ganhe_visible, created_at, updated_at
		FROM site_settings
		WHERE id = $1
	`, models.SiteSettingsID).Scan(&s.ID, &s.ReferralMenuVisible, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.SiteSettings{ID: models.SiteSettingsID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSiteSettings writes the toggles of the singleton row, creating it when missing
func (r *SettingsRepository) UpdateSiteSettings(ctx context.Context, s *models.SiteSettings) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO site_settings (id, indique_ganhe_visible, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET indique_ganhe_visible = EXCLUDED.indique_ganhe_visible, updated_at = NOW()
		RETURNING created_at, updated_at
	`, models.SiteSettingsID, s.ReferralMenuVisible).Scan(&s.CreatedAt, &s.UpdatedAt)
}

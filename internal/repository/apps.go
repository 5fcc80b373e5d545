package repository

import (
	"context"
	"errors"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAppNotFound = errors.New("app not found")

type AppRepository struct {
	db *pgxpool.Pool
}

func NewAppRepository(db *pgxpool.Pool) *AppRepository {
	return &AppRepository{db: db}
}

// ListApps returns all apps ordered by name
func (r *AppRepository) ListApps(ctx context.Context) ([]models.App, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, icon_url, created_at FROM apps ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.App{}
	for rows.Next() {
		var app models.App
		if err := rows.Scan(&app.ID, &app.Name, &app.IconURL, &app.CreatedAt); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

func (r *AppRepository) CreateApp(ctx context.Context, app *models.App) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO apps (id, name, icon_url, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`, app.ID, app.Name, app.IconURL).Scan(&app.CreatedAt)
}

func (r *AppRepository) UpdateApp(ctx context.Context, app *models.App) error {
	err := r.db.QueryRow(ctx, `
		UPDATE apps SET name = $1, icon_url = $2
		WHERE id = $3
		RETURNING created_at
	`, app.Name, app.IconURL, app.ID).Scan(&app.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAppNotFound
	}
	return err
}

func (r *AppRepository) DeleteApp(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM apps WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrAppNotFound
	}

	return nil
}

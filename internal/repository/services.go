package repository

import (
	"context"
	"errors"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrServiceNotFound = errors.New("service not found")

type ServiceRepository struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// ListServices returns services by sort order; activeOnly hides disabled rows
func (r *ServiceRepository) ListServices(ctx context.Context, activeOnly bool) ([]models.AdditionalService, error) {
	query := `
		SELECT id, name, description, price, icon_url, is_active, sort_order, created_at, updated_at
		FROM additional_services
		WHERE ($1 = false OR is_active = true)
		ORDER BY sort_order ASC
	`

	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []models.AdditionalService{}
	for rows.Next() {
		var s models.AdditionalService
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Description,
			&s.Price,
			&s.IconURL,
			&s.IsActive,
			&s.SortOrder,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}

	return services, rows.Err()
}

func (r *ServiceRepository) GetService(ctx context.Context, id uuid.UUID) (*models.AdditionalService, error) {
	var s models.AdditionalService
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price, icon_url, is_active, sort_order, created_at, updated_at
		FROM additional_services
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.IconURL, &s.IsActive,
		&s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *ServiceRepository) CreateService(ctx context.Context, s *models.AdditionalService) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO additional_services (id, name, description, price, icon_url, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`, s.ID, s.Name, s.Description, s.Price, s.IconURL, s.IsActive, s.SortOrder,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *ServiceRepository) UpdateService(ctx context.Context, s *models.AdditionalService) error {
	err := r.db.QueryRow(ctx, `
		UPDATE additional_services
		SET name = $1, description = $2, price = $3, icon_url = $4, is_active = $5,
		    sort_order = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at
	`, s.Name, s.Description, s.Price, s.IconURL, s.IsActive, s.SortOrder, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrServiceNotFound
	}
	return err
}

// SetServiceActive flips only the active flag
func (r *ServiceRepository) SetServiceActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.db.Exec(ctx, `
		UPDATE additional_services SET is_active = $1, updated_at = NOW() WHERE id = $2
	`, active, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func (r *ServiceRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM additional_services WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrServiceNotFound
	}

	return nil
}

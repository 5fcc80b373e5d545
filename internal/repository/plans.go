package repository

import (
	"context"
	"errors"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPlanNotFound = errors.New("plan not found")

type PlanRepository struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// ListPlans returns all plans by sort order
func (r *PlanRepository) ListPlans(ctx context.Context) ([]models.Plan, error) {
	query := `
		SELECT id, name, speed, price, is_consultation, features, is_popular, sort_order,
		       created_at, updated_at
		FROM plans
		ORDER BY sort_order ASC, name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []models.Plan{}
	for rows.Next() {
		var plan models.Plan
		err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Speed,
			&plan.Price,
			&plan.IsConsultation,
			&plan.Features,
			&plan.IsPopular,
			&plan.SortOrder,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// CreatePlan inserts a plan and fills its ID and timestamps
func (r *PlanRepository) CreatePlan(ctx context.Context, plan *models.Plan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}

	query := `
		INSERT INTO plans (id, name, speed, price, is_consultation, features, is_popular, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		plan.ID, plan.Name, plan.Speed, plan.Price, plan.IsConsultation,
		nonNil(plan.Features), plan.IsPopular, plan.SortOrder,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
}

// UpdatePlan overwrites every editable column of a plan
func (r *PlanRepository) UpdatePlan(ctx context.Context, plan *models.Plan) error {
	query := `
		UPDATE plans
		SET name = $1, speed = $2, price = $3, is_consultation = $4, features = $5,
		    is_popular = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		plan.Name, plan.Speed, plan.Price, plan.IsConsultation, nonNil(plan.Features),
		plan.IsPopular, plan.SortOrder, plan.ID,
	).Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPlanNotFound
	}
	return err
}

// DeletePlan removes a plan row
func (r *PlanRepository) DeletePlan(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	return nil
}

// ListPlanApps returns every plan/app link
func (r *PlanRepository) ListPlanApps(ctx context.Context) ([]models.PlanApp, error) {
	rows, err := r.db.Query(ctx, `SELECT id, plan_id, app_id FROM plan_apps`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.PlanApp{}
	for rows.Next() {
		var link models.PlanApp
		if err := rows.Scan(&link.ID, &link.PlanID, &link.AppID); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// DeletePlanApps removes every link of a plan
func (r *PlanRepository) DeletePlanApps(ctx context.Context, planID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM plan_apps WHERE plan_id = $1`, planID)
	return err
}

// InsertPlanApps links a plan to the given apps in one batch
func (r *PlanRepository) InsertPlanApps(ctx context.Context, planID uuid.UUID, appIDs []uuid.UUID) error {
	if len(appIDs) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(appIDs))
	for _, appID := range appIDs {
		rows = append(rows, []interface{}{uuid.New(), planID, appID})
	}

	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"plan_apps"},
		[]string{"id", "plan_id", "app_id"},
		pgx.CopyFromRows(rows),
	)
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

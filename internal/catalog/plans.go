package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlanStore interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	CreatePlan(ctx context.Context, plan *models.Plan) error
	UpdatePlan(ctx context.Context, plan *models.Plan) error
	DeletePlan(ctx context.Context, id uuid.UUID) error
	ListPlanApps(ctx context.Context) ([]models.PlanApp, error)
	DeletePlanApps(ctx context.Context, planID uuid.UUID) error
	InsertPlanApps(ctx context.Context, planID uuid.UUID, appIDs []uuid.UUID) error
}

// PlanCatalog is everything the plan editor shows
type PlanCatalog struct {
	Plans []models.Plan    `json:"plans"`
	Apps  []models.App     `json:"apps"`
	Links []models.PlanApp `json:"plan_apps"`
}

// AppIDs returns the apps linked to planID
func (c *PlanCatalog) AppIDs(planID uuid.UUID) []uuid.UUID {
	ids := []uuid.UUID{}
	for _, l := range c.Links {
		if l.PlanID == planID {
			ids = append(ids, l.AppID)
		}
	}
	return ids
}

type PlanManager struct {
	plans  PlanStore
	apps   *AppManager
	logger *zap.Logger
}

func NewPlanManager(plans PlanStore, apps *AppManager, logger *zap.Logger) *PlanManager {
	return &PlanManager{plans: plans, apps: apps, logger: logger}
}

// Load reads plans by sort order, apps by name and every plan/app link
func (m *PlanManager) Load(ctx context.Context) (*PlanCatalog, error) {
	plans, err := m.plans.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	apps, err := m.apps.Load(ctx)
	if err != nil {
		return nil, err
	}
	links, err := m.plans.ListPlanApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plan apps: %w", err)
	}
	return &PlanCatalog{Plans: plans, Apps: apps, Links: links}, nil
}

// Public returns plans with their bundled apps and resolved icons
func (m *PlanManager) Public(ctx context.Context) ([]models.PlanResponse, error) {
	c, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.AppResponse, len(c.Apps))
	for _, app := range c.Apps {
		byID[app.ID] = m.apps.Response(app)
	}

	out := make([]models.PlanResponse, 0, len(c.Plans))
	for _, p := range c.Plans {
		resp := models.PlanResponse{
			ID:             p.ID,
			Name:           p.Name,
			Speed:          p.Speed,
			Price:          p.EffectivePrice(),
			IsConsultation: p.IsConsultation,
			Features:       p.Features,
			IsPopular:      p.IsPopular,
			SortOrder:      p.SortOrder,
			Apps:           []models.AppResponse{},
		}
		for _, id := range c.AppIDs(p.ID) {
			if app, ok := byID[id]; ok {
				resp.Apps = append(resp.Apps, app)
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func planFromRequest(req models.PlanRequest) (*models.Plan, error) {
	if err := requireText("name", req.Name); err != nil {
		return nil, err
	}
	if err := requireText("speed", req.Speed); err != nil {
		return nil, err
	}

	features := make([]string, 0, len(req.Features))
	for _, f := range req.Features {
		if strings.TrimSpace(f) != "" {
			features = append(features, f)
		}
	}

	price := req.Price
	if req.IsConsultation || (price != nil && *price == 0) {
		price = nil
	}

	return &models.Plan{
		Name:           strings.TrimSpace(req.Name),
		Speed:          strings.TrimSpace(req.Speed),
		Price:          price,
		IsConsultation: req.IsConsultation,
		Features:       features,
		IsPopular:      req.IsPopular,
		SortOrder:      req.SortOrder,
	}, nil
}

// Create writes the plan row, then its app links
func (m *PlanManager) Create(ctx context.Context, req models.PlanRequest) (*models.Plan, error) {
	plan, err := planFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := m.plans.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	if err := m.plans.InsertPlanApps(ctx, plan.ID, req.AppIDs); err != nil {
		m.logger.Error("plan saved without apps", zap.String("plan_id", plan.ID.String()), zap.Error(err))
		return plan, fmt.Errorf("link plan apps: %w", err)
	}
	return plan, nil
}

// Update overwrites the plan row and replaces its app links wholesale.
// The two link steps are not atomic: a failure between them leaves the
// plan with no apps.
func (m *PlanManager) Update(ctx context.Context, id uuid.UUID, req models.PlanRequest) (*models.Plan, error) {
	plan, err := planFromRequest(req)
	if err != nil {
		return nil, err
	}
	plan.ID = id

	if err := m.plans.UpdatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}
	if err := m.plans.DeletePlanApps(ctx, id); err != nil {
		return plan, fmt.Errorf("clear plan apps: %w", err)
	}
	if err := m.plans.InsertPlanApps(ctx, id, req.AppIDs); err != nil {
		m.logger.Error("plan apps cleared but not relinked", zap.String("plan_id", id.String()), zap.Error(err))
		return plan, fmt.Errorf("link plan apps: %w", err)
	}
	return plan, nil
}

// Delete removes the plan's links, then the plan
func (m *PlanManager) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := m.plans.DeletePlanApps(ctx, id); err != nil {
		return fmt.Errorf("clear plan apps: %w", err)
	}
	if err := m.plans.DeletePlan(ctx, id); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

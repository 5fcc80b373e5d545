package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakePlanStore struct {
	plans     []models.Plan
	links     []models.PlanApp
	insertErr error
}

func (f *fakePlanStore) ListPlans(context.Context) ([]models.Plan, error) { return f.plans, nil }

func (f *fakePlanStore) CreatePlan(_ context.Context, p *models.Plan) error {
	p.ID = uuid.New()
	f.plans = append(f.plans, *p)
	return nil
}

func (f *fakePlanStore) UpdatePlan(_ context.Context, p *models.Plan) error {
	for i := range f.plans {
		if f.plans[i].ID == p.ID {
			f.plans[i] = *p
			return nil
		}
	}
	return errors.New("plan not found")
}

func (f *fakePlanStore) DeletePlan(_ context.Context, id uuid.UUID) error {
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.plans = append(f.plans[:i], f.plans[i+1:]...)
			return nil
		}
	}
	return errors.New("plan not found")
}

func (f *fakePlanStore) ListPlanApps(context.Context) ([]models.PlanApp, error) { return f.links, nil }

func (f *fakePlanStore) DeletePlanApps(_ context.Context, planID uuid.UUID) error {
	kept := f.links[:0]
	for _, l := range f.links {
		if l.PlanID != planID {
			kept = append(kept, l)
		}
	}
	f.links = kept
	return nil
}

func (f *fakePlanStore) InsertPlanApps(_ context.Context, planID uuid.UUID, appIDs []uuid.UUID) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, id := range appIDs {
		f.links = append(f.links, models.PlanApp{ID: uuid.New(), PlanID: planID, AppID: id})
	}
	return nil
}

type fakeAppStore struct {
	apps []models.App
}

func (f *fakeAppStore) ListApps(context.Context) ([]models.App, error) { return f.apps, nil }

func (f *fakeAppStore) CreateApp(_ context.Context, a *models.App) error {
	a.ID = uuid.New()
	f.apps = append(f.apps, *a)
	return nil
}

func (f *fakeAppStore) UpdateApp(context.Context, *models.App) error { return nil }

func (f *fakeAppStore) DeleteApp(context.Context, uuid.UUID) error { return nil }

func newPlanManager(apps ...models.App) (*PlanManager, *fakePlanStore) {
	store := &fakePlanStore{}
	appManager := NewAppManager(&fakeAppStore{apps: apps}, nil, zap.NewNop())
	return NewPlanManager(store, appManager, zap.NewNop()), store
}

func price(v float64) *float64 { return &v }

func TestPlanManager_CreateFiltersFeatures(t *testing.T) {
	m, _ := newPlanManager()

	plan, err := m.Create(context.Background(), models.PlanRequest{
		Name:     "Essencial",
		Speed:    "400",
		Price:    price(99.9),
		Features: []string{"Wi-Fi 6", "  ", "", "Instalação grátis"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(plan.Features) != 2 {
		t.Fatalf("features = %q", plan.Features)
	}
	if plan.Price == nil || *plan.Price != 99.9 {
		t.Fatalf("price = %v", plan.Price)
	}
}

func TestPlanManager_ConsultationStoresNullPrice(t *testing.T) {
	m, _ := newPlanManager()

	plan, err := m.Create(context.Background(), models.PlanRequest{
		Name: "Dedicado", Speed: "1 GB", Price: price(500), IsConsultation: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if plan.Price != nil {
		t.Fatalf("price = %v; want nil", *plan.Price)
	}
}

func TestPlanManager_RequiresNameAndSpeed(t *testing.T) {
	m, store := newPlanManager()

	_, err := m.Create(context.Background(), models.PlanRequest{Name: "Essencial"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "speed" {
		t.Fatalf("err = %v; want speed validation error", err)
	}
	if len(store.plans) != 0 {
		t.Fatal("invalid plan was stored")
	}
}

func TestPlanManager_UpdateReplacesLinks(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	m, store := newPlanManager()
	ctx := context.Background()

	plan, err := m.Create(ctx, models.PlanRequest{Name: "Turbo", Speed: "600", AppIDs: []uuid.UUID{a, b}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Update(ctx, plan.ID, models.PlanRequest{Name: "Turbo", Speed: "700", AppIDs: []uuid.UUID{b, c}}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := map[uuid.UUID]bool{}
	for _, l := range store.links {
		if l.PlanID != plan.ID {
			t.Fatalf("unexpected link %+v", l)
		}
		got[l.AppID] = true
	}
	if len(store.links) != 2 || !got[b] || !got[c] {
		t.Fatalf("links = %+v; want exactly b and c", store.links)
	}
}

func TestPlanManager_UpdateInsertFailureLeavesNoApps(t *testing.T) {
	m, store := newPlanManager()
	ctx := context.Background()

	plan, _ := m.Create(ctx, models.PlanRequest{Name: "Turbo", Speed: "600", AppIDs: []uuid.UUID{uuid.New()}})
	store.insertErr = errors.New("copy failed")

	if _, err := m.Update(ctx, plan.ID, models.PlanRequest{Name: "Turbo", Speed: "600", AppIDs: []uuid.UUID{uuid.New()}}); err == nil {
		t.Fatal("expected error")
	}
	if len(store.links) != 0 {
		t.Fatalf("links = %+v; want none after a failed relink", store.links)
	}
}

func TestPlanManager_DeleteRemovesLinks(t *testing.T) {
	m, store := newPlanManager()
	ctx := context.Background()

	plan, _ := m.Create(ctx, models.PlanRequest{Name: "Turbo", Speed: "600", AppIDs: []uuid.UUID{uuid.New(), uuid.New()}})
	other, _ := m.Create(ctx, models.PlanRequest{Name: "Ultra", Speed: "1 GB", AppIDs: []uuid.UUID{uuid.New()}})

	if err := m.Delete(ctx, plan.ID, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("err = %v; want ErrConfirmationRequired", err)
	}
	if err := m.Delete(ctx, plan.ID, true); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, l := range store.links {
		if l.PlanID == plan.ID {
			t.Fatalf("link %+v survived plan deletion", l)
		}
	}
	if len(store.links) != 1 || store.links[0].PlanID != other.ID {
		t.Fatalf("links = %+v", store.links)
	}
}

func TestPlanManager_Public(t *testing.T) {
	deezer := models.App{ID: uuid.New(), Name: "Deezer", IconURL: strp("deezer.webp")}
	m, _ := newPlanManager(deezer)
	ctx := context.Background()

	if _, err := m.Create(ctx, models.PlanRequest{Name: "Turbo", Speed: "600", Price: price(119.9), AppIDs: []uuid.UUID{deezer.ID}}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	plans, err := m.Public(ctx)
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	if len(plans) != 1 || len(plans[0].Apps) != 1 {
		t.Fatalf("plans = %+v", plans)
	}
	if plans[0].Apps[0].IconURL != "/assets/apps/deezer.webp" {
		t.Fatalf("icon = %q", plans[0].Apps[0].IconURL)
	}
}

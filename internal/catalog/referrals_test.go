package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeReferralStore struct {
	refs []models.Referral
}

func (f *fakeReferralStore) InsertReferral(_ context.Context, r *models.Referral) error {
	r.ID = uuid.New()
	f.refs = append(f.refs, *r)
	return nil
}

func (f *fakeReferralStore) ListReferrals(context.Context) ([]models.Referral, error) {
	return f.refs, nil
}

func (f *fakeReferralStore) UpdateReferralStatus(_ context.Context, id uuid.UUID, status string) error {
	for i := range f.refs {
		if f.refs[i].ID == id {
			f.refs[i].Status = status
			return nil
		}
	}
	return errors.New("referral not found")
}

func (f *fakeReferralStore) DeleteReferral(context.Context, uuid.UUID) error { return nil }

func validReferral() models.ReferralRequest {
	return models.ReferralRequest{
		HolderName:    "Ana",
		HolderSurname: "Souza",
		HolderPhone:   "(73) 99999-8888",
		FriendName:    "João",
		FriendSurname: "Lima",
		FriendPhone:   "73 98888-7777",
	}
}

func TestReferralValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ReferralRequest)
		field  string
	}{
		{"valid", func(*models.ReferralRequest) {}, ""},
		{"short holder name", func(r *models.ReferralRequest) { r.HolderName = "A" }, "titular_nome"},
		{"blank friend surname", func(r *models.ReferralRequest) { r.FriendSurname = "  " }, "amigo_sobrenome"},
		{"short holder phone", func(r *models.ReferralRequest) { r.HolderPhone = "9999-888" }, "titular_celular"},
		{"friend phone letters", func(r *models.ReferralRequest) { r.FriendPhone = "abc" }, "amigo_celular"},
		{"two-letter accented name", func(r *models.ReferralRequest) { r.FriendName = "Zé" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validReferral()
			tt.mutate(&req)
			err := validateReferral(req)

			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("err = %v; want field %s", err, tt.field)
			}
		})
	}
}

func TestReferralManager_Flow(t *testing.T) {
	store := &fakeReferralStore{}
	m := NewReferralManager(store, zap.NewNop())
	ctx := context.Background()

	first, err := m.Submit(ctx, validReferral())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if first.Status != models.ReferralStatusPending {
		t.Fatalf("status = %q", first.Status)
	}
	if _, err := m.Submit(ctx, validReferral()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := m.UpdateStatus(ctx, first.ID, models.ReferralStatusConverted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := m.UpdateStatus(ctx, first.ID, "aprovado"); err == nil {
		t.Fatal("expected error for unknown status")
	}

	converted, err := m.Load(ctx, models.ReferralStatusConverted)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(converted) != 1 || converted[0].ID != first.ID {
		t.Fatalf("filtered = %+v", converted)
	}

	stats, err := m.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := models.ReferralStats{Total: 2, Pending: 1, Converted: 1}
	if stats != want {
		t.Fatalf("stats = %+v; want %+v", stats, want)
	}

	if err := m.Delete(ctx, first.ID, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("err = %v; want ErrConfirmationRequired", err)
	}
}

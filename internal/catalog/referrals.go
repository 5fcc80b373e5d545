package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minNameLength  = 2
	minPhoneDigits = 10
)

type ReferralStore interface {
	InsertReferral(ctx context.Context, ref *models.Referral) error
	ListReferrals(ctx context.Context) ([]models.Referral, error)
	UpdateReferralStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteReferral(ctx context.Context, id uuid.UUID) error
}

type ReferralManager struct {
	referrals ReferralStore
	logger    *zap.Logger
}

func NewReferralManager(referrals ReferralStore, logger *zap.Logger) *ReferralManager {
	return &ReferralManager{referrals: referrals, logger: logger}
}

func validateReferral(req models.ReferralRequest) error {
	names := []struct{ field, value string }{
		{"titular_nome", req.HolderName},
		{"titular_sobrenome", req.HolderSurname},
		{"amigo_nome", req.FriendName},
		{"amigo_sobrenome", req.FriendSurname},
	}
	for _, n := range names {
		if len([]rune(strings.TrimSpace(n.value))) < minNameLength {
			return &ValidationError{Field: n.field, Reason: "must have at least 2 characters"}
		}
	}

	phones := []struct{ field, value string }{
		{"titular_celular", req.HolderPhone},
		{"amigo_celular", req.FriendPhone},
	}
	for _, p := range phones {
		if digitCount(p.value) < minPhoneDigits {
			return &ValidationError{Field: p.field, Reason: "must have at least 10 digits"}
		}
	}
	return nil
}

// Submit records a referral from the public form with status "pendente"
func (m *ReferralManager) Submit(ctx context.Context, req models.ReferralRequest) (*models.Referral, error) {
	if err := validateReferral(req); err != nil {
		return nil, err
	}

	ref := &models.Referral{
		HolderName:    strings.TrimSpace(req.HolderName),
		HolderSurname: strings.TrimSpace(req.HolderSurname),
		HolderTaxID:   trimmedOrNil(req.HolderTaxID),
		HolderPhone:   strings.TrimSpace(req.HolderPhone),
		FriendName:    strings.TrimSpace(req.FriendName),
		FriendSurname: strings.TrimSpace(req.FriendSurname),
		FriendPhone:   strings.TrimSpace(req.FriendPhone),
		Status:        models.ReferralStatusPending,
	}
	if err := m.referrals.InsertReferral(ctx, ref); err != nil {
		m.logger.Error("referral insert failed", zap.Error(err))
		return nil, fmt.Errorf("insert referral: %w", err)
	}
	return ref, nil
}

// Load lists referrals newest first, optionally only those with status
func (m *ReferralManager) Load(ctx context.Context, status string) ([]models.Referral, error) {
	all, err := m.referrals.ListReferrals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	if status == "" {
		return all, nil
	}
	if !isReferralStatus(status) {
		return nil, &ValidationError{Field: "status", Reason: "is not a referral status"}
	}

	filtered := []models.Referral{}
	for _, r := range all {
		if r.Status == status {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Stats counts referrals per status
func (m *ReferralManager) Stats(ctx context.Context) (models.ReferralStats, error) {
	all, err := m.referrals.ListReferrals(ctx)
	if err != nil {
		return models.ReferralStats{}, fmt.Errorf("list referrals: %w", err)
	}
	return CountReferrals(all), nil
}

func CountReferrals(refs []models.Referral) models.ReferralStats {
	stats := models.ReferralStats{Total: len(refs)}
	for _, r := range refs {
		switch r.Status {
		case models.ReferralStatusPending:
			stats.Pending++
		case models.ReferralStatusContacted:
			stats.Contacted++
		case models.ReferralStatusConverted:
			stats.Converted++
		case models.ReferralStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

func isReferralStatus(s string) bool {
	for _, st := range models.ReferralStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (m *ReferralManager) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !isReferralStatus(status) {
		return &ValidationError{Field: "status", Reason: "is not a referral status"}
	}
	if err := m.referrals.UpdateReferralStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update referral status: %w", err)
	}
	return nil
}

func (m *ReferralManager) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := m.referrals.DeleteReferral(ctx, id); err != nil {
		return fmt.Errorf("delete referral: %w", err)
	}
	return nil
}

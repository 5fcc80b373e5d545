package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/drhenri-ux/octorlink/internal/models"
	"go.uber.org/zap"
)

const (
	ComboPlanLabel   = "Combo Personalizado"
	UnknownPlanLabel = "Não informado"
)

// LeadInserter persists a single lead
type LeadInserter interface {
	InsertLead(ctx context.Context, lead *models.Lead) error
}

// Submitter turns a completed wizard into one stored lead
type Submitter struct {
	leads  LeadInserter
	logger *zap.Logger
}

func NewSubmitter(leads LeadInserter, logger *zap.Logger) *Submitter {
	return &Submitter{leads: leads, logger: logger}
}

// PlanLabel is the plan text recorded on the lead
func (w *Wizard) PlanLabel() string {
	if w.Combo {
		return ComboPlanLabel
	}
	if strings.TrimSpace(w.PlanName) != "" {
		return w.PlanName
	}
	return UnknownPlanLabel
}

// ToLead maps the form onto a new lead with status "interessado"
func (w *Wizard) ToLead() *models.Lead {
	f := &w.Fields
	services := make([]string, len(f.Services))
	copy(services, f.Services)
	plan := w.PlanLabel()

	return &models.Lead{
		Status:       models.LeadStatusInterested,
		FullName:     strings.TrimSpace(f.FullName),
		Phone:        strings.TrimSpace(f.Phone),
		PostalCode:   optional(f.PostalCode),
		Street:       optional(f.Street),
		Number:       optional(f.Number),
		Complement:   optional(f.Complement),
		Neighborhood: optional(f.Neighborhood),
		City:         optional(f.City),
		State:        optional(f.State),
		PlanName:     &plan,
		Services:     services,
		TaxID:        optional(f.TaxID),
		NationalID:   optional(f.NationalID),
		BirthDate:    optional(f.BirthDate),
		MotherName:   optional(f.MotherName),
		Email:        optional(f.Email),
		BillingDay:   optional(f.BillingDay),
	}
}

// Submit performs exactly one insert. On failure the wizard is left as it
// was so the visitor can retry. There is no idempotency key: calling it
// twice stores two leads.
func (s *Submitter) Submit(ctx context.Context, w *Wizard) (*models.Lead, error) {
	if w.Step != LastStep {
		return nil, ErrNotOnFinalStep
	}
	if err := w.ValidateStep(LastStep); err != nil {
		return nil, err
	}

	lead := w.ToLead()
	if err := s.leads.InsertLead(ctx, lead); err != nil {
		s.logger.Error("lead insert failed", zap.String("wizard_id", w.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("insert lead: %w", err)
	}

	w.Submitted = true
	s.logger.Info("lead captured",
		zap.String("lead_id", lead.ID.String()),
		zap.String("plan", w.PlanLabel()),
		zap.Int("services", len(lead.Services)),
	)
	return lead, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

package wizard

import (
	"context"
	"errors"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service loads a wizard from the store, applies one operation and saves it back
type Service struct {
	store     Store
	lookup    PostalLookup
	submitter *Submitter
	logger    *zap.Logger
}

func NewService(store Store, lookup PostalLookup, submitter *Submitter, logger *zap.Logger) *Service {
	return &Service{store: store, lookup: lookup, submitter: submitter, logger: logger}
}

// Open always starts a fresh session on step 1
func (s *Service) Open(ctx context.Context, planName string, combo bool) (*Wizard, error) {
	w := New(planName, combo)
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Wizard, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) SetFields(ctx context.Context, id uuid.UUID, patch FieldPatch) (*Wizard, error) {
	return s.update(ctx, id, func(w *Wizard) error {
		w.SetFields(patch)
		return nil
	})
}

// Advance saves pending field values even when validation fails, so the
// visitor's input survives the rejected step change.
func (s *Service) Advance(ctx context.Context, id uuid.UUID, patch *FieldPatch) (*Wizard, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch != nil {
		w.SetFields(*patch)
	}

	advanceErr := w.Advance()
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, advanceErr
}

func (s *Service) Retreat(ctx context.Context, id uuid.UUID) (*Wizard, error) {
	return s.update(ctx, id, func(w *Wizard) error {
		w.Retreat()
		return nil
	})
}

func (s *Service) ToggleService(ctx context.Context, id uuid.UUID, name string) (*Wizard, error) {
	return s.update(ctx, id, func(w *Wizard) error {
		w.ToggleService(name)
		return nil
	})
}

// LookupAddress stores the postal code and tries to autofill the address.
// Lookup failures are logged and swallowed.
func (s *Service) LookupAddress(ctx context.Context, id uuid.UUID, code string) (*Wizard, bool, error) {
	found := false
	w, err := s.update(ctx, id, func(w *Wizard) error {
		w.Fields.PostalCode = code
		ok, err := w.LookupAddress(ctx, s.lookup)
		if err != nil {
			s.logger.Warn("postal lookup failed",
				zap.String("wizard_id", w.ID.String()),
				zap.String("cep", code),
				zap.Error(err),
			)
		}
		found = ok
		return nil
	})
	return w, found, err
}

// Submit stores the lead. The session is kept until Close so a failed
// submission can be retried with the values intact.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, patch *FieldPatch) (*Wizard, *models.Lead, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if patch != nil {
		w.SetFields(*patch)
		if err := s.store.Save(ctx, w); err != nil {
			return nil, nil, err
		}
	}

	lead, err := s.submitter.Submit(ctx, w)
	if err != nil {
		return w, nil, err
	}
	if err := s.store.Save(ctx, w); err != nil {
		s.logger.Error("saving submitted wizard", zap.String("wizard_id", id.String()), zap.Error(err))
	}
	return w, lead, nil
}

// Close discards the session
func (s *Service) Close(ctx context.Context, id uuid.UUID) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	return err
}

func (s *Service) update(ctx context.Context, id uuid.UUID, fn func(*Wizard) error) (*Wizard, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

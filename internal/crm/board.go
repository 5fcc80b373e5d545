// Package crm is the lead pipeline board: leads grouped into status
// columns, moved by drag and drop and removed with confirmation.
package crm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnknownStatus        = errors.New("unknown lead status")
	ErrSameStatus           = errors.New("lead already has this status")
	ErrNoDrag               = errors.New("no lead is being dragged")
	ErrLeadNotLoaded        = errors.New("lead not on board")
)

// Column is one pipeline stage
type Column struct {
	Status string `json:"status"`
	Label  string `json:"label"`
}

// Columns are the board stages in display order
var Columns = []Column{
	{Status: models.LeadStatusInterested, Label: "Interessado"},
	{Status: models.LeadStatusProposalSent, Label: "Proposta Enviada"},
	{Status: models.LeadStatusCustomer, Label: "Cliente"},
}

func isColumn(status string) bool {
	for _, c := range Columns {
		if c.Status == status {
			return true
		}
	}
	return false
}

// Transition returns lead moved to newStatus
func Transition(lead models.Lead, newStatus string) (models.Lead, error) {
	if !isColumn(newStatus) {
		return lead, fmt.Errorf("%w: %q", ErrUnknownStatus, newStatus)
	}
	if lead.Status == newStatus {
		return lead, ErrSameStatus
	}
	lead.Status = newStatus
	return lead, nil
}

// LeadStore is the persistence the board needs
type LeadStore interface {
	ListLeads(ctx context.Context) ([]models.Lead, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteLead(ctx context.Context, id uuid.UUID) error
}

// ColumnView is a column with its leads
type ColumnView struct {
	Column
	Count int           `json:"count"`
	Leads []models.Lead `json:"leads"`
}

// Board holds the last loaded lead list. The list only changes through
// Load, after the store has acknowledged a write.
type Board struct {
	mu       sync.Mutex
	store    LeadStore
	logger   *zap.Logger
	leads    []models.Lead
	dragged  *uuid.UUID
	selected *uuid.UUID
}

func NewBoard(store LeadStore, logger *zap.Logger) *Board {
	return &Board{store: store, logger: logger}
}

// Load replaces the in-memory list with the store's, newest first
func (b *Board) Load(ctx context.Context) error {
	leads, err := b.store.ListLeads(ctx)
	if err != nil {
		b.logger.Error("loading leads", zap.Error(err))
		return fmt.Errorf("load leads: %w", err)
	}

	b.mu.Lock()
	b.leads = leads
	b.mu.Unlock()
	return nil
}

// Columns groups the loaded leads. Leads with a status outside the
// board are not shown.
func (b *Board) Columns() []ColumnView {
	b.mu.Lock()
	defer b.mu.Unlock()

	views := make([]ColumnView, len(Columns))
	for i, c := range Columns {
		views[i] = ColumnView{Column: c, Leads: []models.Lead{}}
	}
	for _, lead := range b.leads {
		for i := range views {
			if views[i].Status == lead.Status {
				views[i].Leads = append(views[i].Leads, lead)
				views[i].Count++
				break
			}
		}
	}
	return views
}

// Total is the number of loaded leads, including hidden ones
func (b *Board) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.leads)
}

func (b *Board) find(id uuid.UUID) (models.Lead, bool) {
	for _, lead := range b.leads {
		if lead.ID == id {
			return lead, true
		}
	}
	return models.Lead{}, false
}

// Lead returns a loaded lead by id
func (b *Board) Lead(id uuid.UUID) (models.Lead, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.find(id)
}

// BeginDrag records the lead being moved
func (b *Board) BeginDrag(id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.find(id); !ok {
		return ErrLeadNotLoaded
	}
	b.dragged = &id
	return nil
}

// DropOnColumn moves the dragged lead to status. Dropping on the lead's
// own column is a no-op that never reaches the store.
func (b *Board) DropOnColumn(ctx context.Context, status string) (bool, error) {
	b.mu.Lock()
	if b.dragged == nil {
		b.mu.Unlock()
		return false, ErrNoDrag
	}
	id := *b.dragged
	b.dragged = nil
	lead, ok := b.find(id)
	b.mu.Unlock()

	if !ok {
		return false, ErrLeadNotLoaded
	}
	return b.move(ctx, lead, status)
}

func (b *Board) move(ctx context.Context, lead models.Lead, status string) (bool, error) {
	moved, err := Transition(lead, status)
	if errors.Is(err, ErrSameStatus) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := b.store.UpdateLeadStatus(ctx, lead.ID, moved.Status); err != nil {
		b.logger.Error("moving lead",
			zap.String("lead_id", lead.ID.String()),
			zap.String("status", moved.Status),
			zap.Error(err),
		)
		return false, fmt.Errorf("update lead status: %w", err)
	}

	b.logger.Info("lead moved",
		zap.String("lead_id", lead.ID.String()),
		zap.String("from", lead.Status),
		zap.String("to", moved.Status),
	)
	return true, b.Load(ctx)
}

// Remove deletes a lead once the operator has confirmed
func (b *Board) Remove(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := b.store.DeleteLead(ctx, id); err != nil {
		b.logger.Error("deleting lead", zap.String("lead_id", id.String()), zap.Error(err))
		return fmt.Errorf("delete lead: %w", err)
	}

	b.mu.Lock()
	if b.selected != nil && *b.selected == id {
		b.selected = nil
	}
	b.mu.Unlock()

	return b.Load(ctx)
}

// Select opens the detail view of a lead
func (b *Board) Select(id uuid.UUID) (models.Lead, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lead, ok := b.find(id)
	if !ok {
		return models.Lead{}, ErrLeadNotLoaded
	}
	b.selected = &id
	return lead, nil
}

// Selected returns the lead in the detail view, if any
func (b *Board) Selected() (models.Lead, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.selected == nil {
		return models.Lead{}, false
	}
	return b.find(*b.selected)
}

// Move is a drag and a drop in one call. It leaves any pending drag alone.
func (b *Board) Move(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	lead, ok := b.Lead(id)
	if !ok {
		return false, ErrLeadNotLoaded
	}
	return b.move(ctx, lead, status)
}

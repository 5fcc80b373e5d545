package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
)

type ServiceStore interface {
	ListServices(ctx context.Context, activeOnly bool) ([]models.AdditionalService, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.AdditionalService, error)
	CreateService(ctx context.Context, s *models.AdditionalService) error
	UpdateService(ctx context.Context, s *models.AdditionalService) error
	SetServiceActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type ServiceManager struct {
	services ServiceStore
}

func NewServiceManager(services ServiceStore) *ServiceManager {
	return &ServiceManager{services: services}
}

// Load returns every service for the admin list
func (m *ServiceManager) Load(ctx context.Context) ([]models.AdditionalService, error) {
	return m.services.ListServices(ctx, false)
}

// LoadActive returns the services shown on the public site
func (m *ServiceManager) LoadActive(ctx context.Context) ([]models.AdditionalService, error) {
	return m.services.ListServices(ctx, true)
}

func serviceFromRequest(req models.ServiceRequest) (*models.AdditionalService, error) {
	if err := requireText("name", req.Name); err != nil {
		return nil, err
	}
	return &models.AdditionalService{
		Name:        strings.TrimSpace(req.Name),
		Description: trimmedOrNil(req.Description),
		Price:       req.Price,
		IconURL:     trimmedOrNil(req.IconURL),
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}, nil
}

func (m *ServiceManager) Create(ctx context.Context, req models.ServiceRequest) (*models.AdditionalService, error) {
	s, err := serviceFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := m.services.CreateService(ctx, s); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return s, nil
}

func (m *ServiceManager) Update(ctx context.Context, id uuid.UUID, req models.ServiceRequest) (*models.AdditionalService, error) {
	s, err := serviceFromRequest(req)
	if err != nil {
		return nil, err
	}
	s.ID = id
	if err := m.services.UpdateService(ctx, s); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return s, nil
}

// ToggleActive flips the active flag and returns the new value
func (m *ServiceManager) ToggleActive(ctx context.Context, id uuid.UUID) (bool, error) {
	s, err := m.services.GetService(ctx, id)
	if err != nil {
		return false, err
	}
	if err := m.services.SetServiceActive(ctx, id, !s.IsActive); err != nil {
		return false, fmt.Errorf("toggle service: %w", err)
	}
	return !s.IsActive, nil
}

func (m *ServiceManager) Delete(ctx context.Context, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := m.services.DeleteService(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

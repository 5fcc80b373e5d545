package models

import (
	"time"

	"github.com/google/uuid"
)

// AdditionalService is an independently managed catalog entry
type AdditionalService struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       *float64  `json:"price" db:"price"` // nil means "on request"
	IconURL     *string   `json:"icon_url,omitempty" db:"icon_url"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ServiceRequest is the request body for POST/PUT /admin/api/services
type ServiceRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price"`
	IconURL     *string  `json:"icon_url,omitempty"`
	IsActive    bool     `json:"is_active"`
	SortOrder   int      `json:"sort_order"`
}

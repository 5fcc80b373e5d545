package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a sellable internet-service tier
type Plan struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Speed          string    `json:"speed" db:"speed"`
	Price          *float64  `json:"price" db:"price"` // nil means "consultation required"
	IsConsultation bool      `json:"is_consultation" db:"is_consultation"`
	Features       []string  `json:"features" db:"features"`
	IsPopular      bool      `json:"is_popular" db:"is_popular"`
	SortOrder      int       `json:"sort_order" db:"sort_order"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// EffectivePrice hides any stored price on consultation plans
func (p *Plan) EffectivePrice() *float64 {
	if p.IsConsultation {
		return nil
	}
	return p.Price
}

// PlanApp links a plan to an app; unique per pair
type PlanApp struct {
	ID     uuid.UUID `json:"id" db:"id"`
	PlanID uuid.UUID `json:"plan_id" db:"plan_id"`
	AppID  uuid.UUID `json:"app_id" db:"app_id"`
}

// PlanRequest is the request body for POST/PUT /admin/api/plans
type PlanRequest struct {
	Name           string      `json:"name"`
	Speed          string      `json:"speed"`
	Price          *float64    `json:"price"`
	IsConsultation bool        `json:"is_consultation"`
	Features       []string    `json:"features"`
	IsPopular      bool        `json:"is_popular"`
	SortOrder      int         `json:"sort_order"`
	AppIDs         []uuid.UUID `json:"app_ids"`
}

// PlanResponse is the public shape of a plan with its bundled apps
type PlanResponse struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Speed          string        `json:"speed"`
	Price          *float64      `json:"price"`
	IsConsultation bool          `json:"is_consultation"`
	Features       []string      `json:"features"`
	IsPopular      bool          `json:"is_popular"`
	SortOrder      int           `json:"sort_order"`
	Apps           []AppResponse `json:"apps"`
}

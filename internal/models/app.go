package models

import (
	"time"

	"github.com/google/uuid"
)

// App is a streaming or value-added service bundled with plans
type App struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	IconURL   *string   `json:"icon_url,omitempty" db:"icon_url"` // absolute URL or bundled asset key
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AppRequest is the request body for POST/PUT /admin/api/apps
type AppRequest struct {
	Name    string  `json:"name"`
	IconURL *string `json:"icon_url,omitempty"`
}

// AppResponse carries the resolved icon location
type AppResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	IconURL string    `json:"icon_url"`
}

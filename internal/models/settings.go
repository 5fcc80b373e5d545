package models

import "time"

// SiteSettingsID is the fixed id of the singleton settings row
const SiteSettingsID = "main"

// SiteSettings holds feature-visibility toggles read on every page load
type SiteSettings struct {
	ID                  string    `json:"id" db:"id"`
	ReferralMenuVisible bool      `json:"indique_ganhe_visible" db:"indique_ganhe_visible"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// SiteSettingsUpdateRequest is the request body for PATCH /admin/api/site-settings
type SiteSettingsUpdateRequest struct {
	ReferralMenuVisible *bool `json:"indique_ganhe_visible,omitempty"`
}

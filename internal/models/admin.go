package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is an operator allowed into the back-office
type AdminUser struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LoginRequest is the request body for POST /admin/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token   string    `json:"token"`
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
}

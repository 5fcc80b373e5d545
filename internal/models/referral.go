package models

import (
	"time"

	"github.com/google/uuid"
)

// Referral statuses
const (
	ReferralStatusPending   = "pendente"
	ReferralStatusContacted = "contatado"
	ReferralStatusConverted = "convertido"
	ReferralStatusCancelled = "cancelado"
)

// ReferralStatuses lists the statuses in display order
var ReferralStatuses = []string{
	ReferralStatusPending,
	ReferralStatusContacted,
	ReferralStatusConverted,
	ReferralStatusCancelled,
}

// Referral is a friend-referral submission from the public form
type Referral struct {
	ID            uuid.UUID `json:"id" db:"id"`
	HolderName    string    `json:"titular_nome" db:"titular_nome"`
	HolderSurname string    `json:"titular_sobrenome" db:"titular_sobrenome"`
	HolderTaxID   *string   `json:"titular_cpf,omitempty" db:"titular_cpf"`
	HolderPhone   string    `json:"titular_celular" db:"titular_celular"`
	FriendName    string    `json:"amigo_nome" db:"amigo_nome"`
	FriendSurname string    `json:"amigo_sobrenome" db:"amigo_sobrenome"`
	FriendPhone   string    `json:"amigo_celular" db:"amigo_celular"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ReferralRequest is the request body for POST /api/referrals
type ReferralRequest struct {
	HolderName    string  `json:"titular_nome"`
	HolderSurname string  `json:"titular_sobrenome"`
	HolderTaxID   *string `json:"titular_cpf,omitempty"`
	HolderPhone   string  `json:"titular_celular"`
	FriendName    string  `json:"amigo_nome"`
	FriendSurname string  `json:"amigo_sobrenome"`
	FriendPhone   string  `json:"amigo_celular"`
}

// ReferralStatusRequest is the request body for PATCH /admin/api/referrals/:id/status
type ReferralStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReferralStats counts referrals per status
type ReferralStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pendente"`
	Contacted int `json:"contatado"`
	Converted int `json:"convertido"`
	Cancelled int `json:"cancelado"`
}

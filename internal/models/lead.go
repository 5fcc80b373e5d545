package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead statuses as stored in the leads table
const (
	LeadStatusInterested   = "interessado"
	LeadStatusProposalSent = "proposta_enviada"
	LeadStatusCustomer     = "cliente"
)

// LeadTypeBusiness marks leads coming from the business inquiry page
const LeadTypeBusiness = "empresarial"

// Lead is a prospective customer's intake record
type Lead struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Status       string    `json:"status" db:"status"`
	FullName     string    `json:"nome_completo" db:"nome_completo"`
	Phone        string    `json:"telefone" db:"telefone"`
	Email        *string   `json:"email,omitempty" db:"email"`
	PostalCode   *string   `json:"cep,omitempty" db:"cep"`
	Street       *string   `json:"endereco,omitempty" db:"endereco"`
	Number       *string   `json:"numero,omitempty" db:"numero"`
	Complement   *string   `json:"complemento,omitempty" db:"complemento"`
	Neighborhood *string   `json:"bairro,omitempty" db:"bairro"`
	City         *string   `json:"cidade,omitempty" db:"cidade"`
	State        *string   `json:"estado,omitempty" db:"estado"`
	PlanName     *string   `json:"plano_selecionado,omitempty" db:"plano_selecionado"`
	Services     []string  `json:"servicos_adicionais" db:"servicos_adicionais"` // loose list of app names, not referential
	TaxID        *string   `json:"cpf_cnpj,omitempty" db:"cpf_cnpj"`
	NationalID   *string   `json:"rg,omitempty" db:"rg"`
	BirthDate    *string   `json:"data_nascimento,omitempty" db:"data_nascimento"`
	MotherName   *string   `json:"nome_mae,omitempty" db:"nome_mae"`
	BillingDay   *string   `json:"dia_vencimento,omitempty" db:"dia_vencimento"`

	// Business inquiry fields
	CompanyName *string `json:"empresa_nome,omitempty" db:"empresa_nome"`
	DeviceCount *string `json:"qtd_dispositivos,omitempty" db:"qtd_dispositivos"`
	LeadType    *string `json:"tipo_lead,omitempty" db:"tipo_lead"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BusinessLeadRequest is the request body for POST /api/business-leads
type BusinessLeadRequest struct {
	FullName    string  `json:"nome_completo" binding:"required"`
	Phone       string  `json:"telefone" binding:"required"`
	Email       *string `json:"email,omitempty"`
	CompanyName *string `json:"empresa_nome,omitempty"`
	DeviceCount *string `json:"qtd_dispositivos,omitempty"`
}

// LeadStatusRequest is the request body for POST /admin/api/leads/:id/move
type LeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

package repository

import (
	"context"
	"errors"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrLeadNotFound = errors.New("lead not found")

const leadColumns = `
	id, status, nome_completo, telefone, email, cep, endereco, numero, complemento,
	bairro, cidade, estado, plano_selecionado, servicos_adicionais, cpf_cnpj, rg,
	data_nascimento, nome_mae, dia_vencimento, empresa_nome, qtd_dispositivos,
	tipo_lead, created_at, updated_at
`

type LeadRepository struct {
	db *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{db: db}
}

// InsertLead stores a new lead in a single statement
func (r *LeadRepository) InsertLead(ctx context.Context, lead *models.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusInterested
	}

	query := `
		INSERT INTO leads (
			id, status, nome_completo, telefone, email, cep, endereco, numero, complemento,
			bairro, cidade, estado, plano_selecionado, servicos_adicionais, cpf_cnpj, rg,
			data_nascimento, nome_mae, dia_vencimento, empresa_nome, qtd_dispositivos,
			tipo_lead, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		lead.ID, lead.Status, lead.FullName, lead.Phone, lead.Email, lead.PostalCode,
		lead.Street, lead.Number, lead.Complement, lead.Neighborhood, lead.City,
		lead.State, lead.PlanName, lead.Services, lead.TaxID, lead.NationalID,
		lead.BirthDate, lead.MotherName, lead.BillingDay, lead.CompanyName,
		lead.DeviceCount, lead.LeadType,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)
}

// ListLeads returns every lead, newest first
func (r *LeadRepository) ListLeads(ctx context.Context) ([]models.Lead, error) {
	rows, err := r.db.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}

	return leads, rows.Err()
}

// GetLead retrieves a lead by ID
func (r *LeadRepository) GetLead(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	lead, err := scanLead(r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

// UpdateLeadStatus changes only the status column
func (r *LeadRepository) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE leads
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrLeadNotFound
	}

	return nil
}

// DeleteLead removes a lead permanently
func (r *LeadRepository) DeleteLead(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrLeadNotFound
	}

	return nil
}

func scanLead(row pgx.Row) (*models.Lead, error) {
	var lead models.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Status,
		&lead.FullName,
		&lead.Phone,
		&lead.Email,
		&lead.PostalCode,
		&lead.Street,
		&lead.Number,
		&lead.Complement,
		&lead.Neighborhood,
		&lead.City,
		&lead.State,
		&lead.PlanName,
		&lead.Services,
		&lead.TaxID,
		&lead.NationalID,
		&lead.BirthDate,
		&lead.MotherName,
		&lead.BillingDay,
		&lead.CompanyName,
		&lead.DeviceCount,
		&lead.LeadType,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

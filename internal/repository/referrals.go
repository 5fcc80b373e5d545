package repository

import (
	"context"
	"errors"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrReferralNotFound = errors.New("referral not found")

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) InsertReferral(ctx context.Context, ref *models.Referral) error {
	if ref.ID == uuid.Nil {
		ref.ID = uuid.New()
	}
	if ref.Status == "" {
		ref.Status = models.ReferralStatusPending
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO referrals (
			id, titular_nome, titular_sobrenome, titular_cpf, titular_celular,
			amigo_nome, amigo_sobrenome, amigo_celular, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`, ref.ID, ref.HolderName, ref.HolderSurname, ref.HolderTaxID, ref.HolderPhone,
		ref.FriendName, ref.FriendSurname, ref.FriendPhone, ref.Status,
	).Scan(&ref.CreatedAt, &ref.UpdatedAt)
}

// ListReferrals returns referrals newest first
func (r *ReferralRepository) ListReferrals(ctx context.Context) ([]models.Referral, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, titular_nome, titular_sobrenome, titular_cpf, titular_celular,
		       amigo_nome, amigo_sobrenome, amigo_celular, status, created_at, updated_at
		FROM referrals
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	referrals := []models.Referral{}
	for rows.Next() {
		var ref models.Referral
		err := rows.Scan(
			&ref.ID,
			&ref.HolderName,
			&ref.HolderSurname,
			&ref.HolderTaxID,
			&ref.HolderPhone,
			&ref.FriendName,
			&ref.FriendSurname,
			&ref.FriendPhone,
			&ref.Status,
			&ref.CreatedAt,
			&ref.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		referrals = append(referrals, ref)
	}

	return referrals, rows.Err()
}

func (r *ReferralRepository) UpdateReferralStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE referrals SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrReferralNotFound
	}

	return nil
}

func (r *ReferralRepository) DeleteReferral(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM referrals WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrReferralNotFound
	}

	return nil
}

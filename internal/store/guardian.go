package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/types"
)

const (
	guardianEmailConstraint    = "guardians_email_key"
	guardianScrollIDConstraint = "guardians_scroll_id_key"
)

// GuardianRepository handles persistence for guardians.
type GuardianRepository struct {
	db *sql.DB
}

func NewGuardianRepository(db *sql.DB) *GuardianRepository {
	return &GuardianRepository{db: db}
}

func (r *GuardianRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(1) FROM guardians`
	var count int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GuardianRepository) Create(ctx context.Context, guardian types.Guardian) (types.Guardian, error) {
	guardian.ID = uuid.NewString()
	guardian.RegisteredAt = time.Now().UTC()

	const query = `
		INSERT INTO guardians (id, email, scroll_id, password_hash, registered_at, is_certified)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		guardian.ID,
		guardian.Email,
		guardian.ScrollID,
		guardian.PasswordHash,
		guardian.RegisteredAt,
		guardian.IsCertified,
	); err != nil {
		if constraint, ok := violatedConstraint(err); ok {
			switch constraint {
			case guardianScrollIDConstraint:
				return types.Guardian{}, ErrDuplicateScrollID
			case guardianEmailConstraint:
				return types.Guardian{}, ErrDuplicateEmail
			}
		}
		return types.Guardian{}, err
	}
	return guardian, nil
}

func (r *GuardianRepository) GetByEmail(ctx context.Context, email string) (types.Guardian, error) {
	const query = `
		SELECT id, email, scroll_id, password_hash, registered_at, is_certified
		FROM guardians
		WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *GuardianRepository) GetByScrollID(ctx context.Context, scrollID string) (types.Guardian, error) {
	const query = `
		SELECT id, email, scroll_id, password_hash, registered_at, is_certified
		FROM guardians
		WHERE scroll_id = $1`
	return r.getOne(ctx, query, scrollID)
}

// List returns guardians in registration order.
func (r *GuardianRepository) List(ctx context.Context, limit int) ([]types.Guardian, error) {
	const query = `
		SELECT id, email, scroll_id, password_hash, registered_at, is_certified
		FROM guardians
		ORDER BY registered_at, id
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guardians := make([]types.Guardian, 0)
	for rows.Next() {
		var guardian types.Guardian
		if err := rows.Scan(
			&guardian.ID,
			&guardian.Email,
			&guardian.ScrollID,
			&guardian.PasswordHash,
			&guardian.RegisteredAt,
			&guardian.IsCertified,
		); err != nil {
			return nil, err
		}
		guardians = append(guardians, guardian)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return guardians, nil
}

func (r *GuardianRepository) getOne(ctx context.Context, query string, arg any) (types.Guardian, error) {
	var guardian types.Guardian
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&guardian.ID,
		&guardian.Email,
		&guardian.ScrollID,
		&guardian.PasswordHash,
		&guardian.RegisteredAt,
		&guardian.IsCertified,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Guardian{}, ErrNotFound
		}
		return types.Guardian{}, err
	}
	return guardian, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/types"
)

// TransmissionRepository handles persistence for transmissions.
type TransmissionRepository struct {
	db *sql.DB
}

func NewTransmissionRepository(db *sql.DB) *TransmissionRepository {
	return &TransmissionRepository{db: db}
}

func (r *TransmissionRepository) Create(ctx context.Context, transmission types.Transmission) (types.Transmission, error) {
	transmission.ID = uuid.NewString()
	transmission.CreatedAt = time.Now().UTC()

	const query = `
		INSERT INTO transmissions (id, title, description, video_url, day_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		transmission.ID,
		transmission.Title,
		transmission.Description,
		transmission.VideoURL,
		transmission.DayNumber,
		transmission.CreatedAt,
	); err != nil {
		return types.Transmission{}, err
	}
	return transmission, nil
}

func (r *TransmissionRepository) Get(ctx context.Context, id string) (types.Transmission, error) {
	const query = `
		SELECT id, title, description, video_url, day_number, created_at
		FROM transmissions
		WHERE id = $1`
	var transmission types.Transmission
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&transmission.ID,
		&transmission.Title,
		&transmission.Description,
		&transmission.VideoURL,
		&transmission.DayNumber,
		&transmission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Transmission{}, ErrNotFound
		}
		return types.Transmission{}, err
	}
	return transmission, nil
}

func (r *TransmissionRepository) List(ctx context.Context, limit int) ([]types.Transmission, error) {
	const query = `
		SELECT id, title, description, video_url, day_number, created_at
		FROM transmissions
		ORDER BY day_number DESC, created_at DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transmissions := make([]types.Transmission, 0)
	for rows.Next() {
		var transmission types.Transmission
		if err := rows.Scan(
			&transmission.ID,
			&transmission.Title,
			&transmission.Description,
			&transmission.VideoURL,
			&transmission.DayNumber,
			&transmission.CreatedAt,
		); err != nil {
			return nil, err
		}
		transmissions = append(transmissions, transmission)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transmissions, nil
}

func (r *TransmissionRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, `DELETE FROM transmissions WHERE id = $1`, id)
}

// deleteByID runs a single-row delete and reports ErrNotFound when nothing matched.
func deleteByID(ctx context.Context, db *sql.DB, query, id string) error {
	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

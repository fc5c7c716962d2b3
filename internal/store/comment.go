package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/thesyncbridge/apiserver/types"
)

const commentColumns = `id, transmission_id, scroll_id, content, parent_id, is_admin, is_deleted, created_at`

// CommentRepository handles persistence for comments.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.ID = uuid.NewString()
	comment.IsDeleted = false
	comment.CreatedAt = time.Now().UTC()

	const query = `
		INSERT INTO comments (` + commentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		comment.ID,
		comment.TransmissionID,
		comment.ScrollID,
		comment.Content,
		comment.ParentID,
		comment.IsAdmin,
		comment.IsDeleted,
		comment.CreatedAt,
	); err != nil {
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) Get(ctx context.Context, id string) (types.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Comment{}, ErrNotFound
		}
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) ListForTransmission(ctx context.Context, transmissionID string) ([]types.Comment, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE transmission_id = $1 AND NOT is_deleted
		ORDER BY created_at, id`
	return r.list(ctx, query, transmissionID)
}

func (r *CommentRepository) ListAll(ctx context.Context, limit int) ([]types.Comment, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM comments
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *CommentRepository) SoftDelete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, `UPDATE comments SET is_deleted = TRUE WHERE id = $1`, id)
}

func (r *CommentRepository) list(ctx context.Context, query string, arg any) ([]types.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]types.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (types.Comment, error) {
	var comment types.Comment
	err := row.Scan(
		&comment.ID,
		&comment.TransmissionID,
		&comment.ScrollID,
		&comment.Content,
		&comment.ParentID,
		&comment.IsAdmin,
		&comment.IsDeleted,
		&comment.CreatedAt,
	)
	return comment, err
}

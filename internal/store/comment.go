package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/photoshare/apiserver/types"
)

// CommentRepository handles persistence for comments.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) ListByPhoto(ctx context.Context, photoID string) ([]types.Comment, error) {
	const query = `
		SELECT id, photo_id, user_id, username, text, created_at
		FROM comments
		WHERE photo_id = $1
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, photoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]types.Comment, 0)
	for rows.Next() {
		var comment types.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.PhotoID,
			&comment.UserID,
			&comment.Username,
			&comment.Text,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO comments (id, photo_id, user_id, username, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		comment.ID,
		comment.PhotoID,
		comment.UserID,
		comment.Username,
		comment.Text,
		comment.CreatedAt,
	); err != nil {
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) DeleteByPhoto(ctx context.Context, photoID string) error {
	const query = `DELETE FROM comments WHERE photo_id = $1`
	_, err := r.db.ExecContext(ctx, query, photoID)
	return err
}

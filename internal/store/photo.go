package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/photoshare/apiserver/types"
)

// PhotoRepository handles persistence for photos.
type PhotoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

const photoColumns = `id, title, description, image_url, user_id, username, likes, views, tags, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (types.Photo, error) {
	var photo types.Photo
	var tagsJSON []byte
	if err := row.Scan(
		&photo.ID,
		&photo.Title,
		&photo.Description,
		&photo.ImageURL,
		&photo.UserID,
		&photo.Username,
		&photo.Likes,
		&photo.Views,
		&tagsJSON,
		&photo.CreatedAt,
	); err != nil {
		return types.Photo{}, err
	}
	_ = json.Unmarshal(tagsJSON, &photo.Tags)
	if photo.Tags == nil {
		photo.Tags = []string{}
	}
	return photo, nil
}

func (r *PhotoRepository) List(ctx context.Context) ([]types.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]types.Photo, 0)
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepository) Get(ctx context.Context, id string) (types.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`
	photo, err := scanPhoto(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Photo{}, ErrNotFound
		}
		return types.Photo{}, err
	}
	return photo, nil
}

func (r *PhotoRepository) Create(ctx context.Context, photo types.Photo) (types.Photo, error) {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now().UTC()
	}
	if photo.Tags == nil {
		photo.Tags = []string{}
	}

	tagsJSON, err := json.Marshal(photo.Tags)
	if err != nil {
		return types.Photo{}, err
	}

	const query = `
		INSERT INTO photos (id, title, description, image_url, user_id, username, likes, views, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		photo.ID,
		photo.Title,
		photo.Description,
		photo.ImageURL,
		photo.UserID,
		photo.Username,
		photo.Likes,
		photo.Views,
		tagsJSON,
		photo.CreatedAt,
	); err != nil {
		return types.Photo{}, err
	}
	return photo, nil
}

func (r *PhotoRepository) Update(ctx context.Context, id string, patch types.PhotoPatch) (types.Photo, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return types.Photo{}, err
	}
	applyPhotoPatch(&current, patch)

	tagsJSON, err := json.Marshal(current.Tags)
	if err != nil {
		return types.Photo{}, err
	}

	const query = `
		UPDATE photos
		SET title = $1,
			description = $2,
			tags = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, current.Title, current.Description, tagsJSON, id)
	if err != nil {
		return types.Photo{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Photo{}, err
	}
	if affected == 0 {
		return types.Photo{}, ErrNotFound
	}
	return current, nil
}

func (r *PhotoRepository) IncrementLikes(ctx context.Context, id string) (types.Photo, error) {
	query := `UPDATE photos SET likes = likes + 1 WHERE id = $1 RETURNING ` + photoColumns
	return r.increment(ctx, query, id)
}

func (r *PhotoRepository) increment(ctx context.Context, query, id string) (types.Photo, error) {
	photo, err := scanPhoto(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Photo{}, ErrNotFound
		}
		return types.Photo{}, err
	}
	return photo, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM photos WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
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

func applyPhotoPatch(photo *types.Photo, patch types.PhotoPatch) {
	if patch.Title != nil {
		photo.Title = *patch.Title
	}
	if patch.Description != nil {
		photo.Description = *patch.Description
	}
	if patch.Tags != nil {
		photo.Tags = patch.Tags
	}
}

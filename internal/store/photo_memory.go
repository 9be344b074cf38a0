package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/photoshare/apiserver/types"
)

// MemoryPhotoRepository keeps photos in process memory.
type MemoryPhotoRepository struct {
	mu     sync.RWMutex
	photos map[string]types.Photo
}

func NewMemoryPhotoRepository() *MemoryPhotoRepository {
	return &MemoryPhotoRepository{photos: make(map[string]types.Photo)}
}

func (r *MemoryPhotoRepository) List(ctx context.Context) ([]types.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	photos := make([]types.Photo, 0, len(r.photos))
	for _, photo := range r.photos {
		photos = append(photos, clonePhoto(photo))
	}
	sort.Slice(photos, func(i, j int) bool {
		if photos[i].CreatedAt.Equal(photos[j].CreatedAt) {
			return photos[i].ID < photos[j].ID
		}
		return photos[i].CreatedAt.After(photos[j].CreatedAt)
	})
	return photos, nil
}

func (r *MemoryPhotoRepository) Get(ctx context.Context, id string) (types.Photo, error) {
	if err := ctx.Err(); err != nil {
		return types.Photo{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	photo, ok := r.photos[id]
	if !ok {
		return types.Photo{}, ErrNotFound
	}
	return clonePhoto(photo), nil
}

func (r *MemoryPhotoRepository) Create(ctx context.Context, photo types.Photo) (types.Photo, error) {
	if err := ctx.Err(); err != nil {
		return types.Photo{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if photo.ID == "" {
		photo.ID = uuid.NewString()
	} else if _, exists := r.photos[photo.ID]; exists {
		return types.Photo{}, ErrDuplicate
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now().UTC()
	}
	if photo.Tags == nil {
		photo.Tags = []string{}
	}
	r.photos[photo.ID] = clonePhoto(photo)
	return photo, nil
}

func (r *MemoryPhotoRepository) Update(ctx context.Context, id string, patch types.PhotoPatch) (types.Photo, error) {
	return r.mutate(ctx, id, func(photo *types.Photo) {
		applyPhotoPatch(photo, patch)
	})
}

func (r *MemoryPhotoRepository) IncrementLikes(ctx context.Context, id string) (types.Photo, error) {
	return r.mutate(ctx, id, func(photo *types.Photo) { photo.Likes++ })
}

func (r *MemoryPhotoRepository) mutate(ctx context.Context, id string, fn func(*types.Photo)) (types.Photo, error) {
	if err := ctx.Err(); err != nil {
		return types.Photo{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	photo, ok := r.photos[id]
	if !ok {
		return types.Photo{}, ErrNotFound
	}
	photo = clonePhoto(photo)
	fn(&photo)
	r.photos[id] = photo
	return clonePhoto(photo), nil
}

func (r *MemoryPhotoRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.photos[id]; !ok {
		return ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

func clonePhoto(photo types.Photo) types.Photo {
	photo.Tags = append([]string{}, photo.Tags...)
	return photo
}

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/photoshare/apiserver/types"
)

// MemoryCommentRepository keeps comments in process memory.
type MemoryCommentRepository struct {
	mu       sync.RWMutex
	comments []types.Comment
}

func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{}
}

func (r *MemoryCommentRepository) ListByPhoto(ctx context.Context, photoID string) ([]types.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]types.Comment, 0)
	for _, comment := range r.comments {
		if comment.PhotoID == photoID {
			comments = append(comments, comment)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *MemoryCommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	if err := ctx.Err(); err != nil {
		return types.Comment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	r.comments = append(r.comments, comment)
	return comment, nil
}

func (r *MemoryCommentRepository) DeleteByPhoto(ctx context.Context, photoID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.comments[:0]
	for _, comment := range r.comments {
		if comment.PhotoID != photoID {
			kept = append(kept, comment)
		}
	}
	r.comments = kept
	return nil
}

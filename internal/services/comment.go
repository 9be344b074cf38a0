package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/photoshare/apiserver/internal/access"
	"github.com/photoshare/apiserver/internal/store"
	"github.com/photoshare/apiserver/types"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	ListByPhoto(ctx context.Context, photoID string) ([]types.Comment, error)
	Create(ctx context.Context, comment types.Comment) (types.Comment, error)
	DeleteByPhoto(ctx context.Context, photoID string) error
}

// CommentInput is the payload accepted when commenting.
type CommentInput struct {
	PhotoID string `json:"photoId" validate:"required"`
	Text    string `json:"text" validate:"required,max=2000"`
}

// CommentService encapsulates comment use-cases.
type CommentService struct {
	repo     CommentRepository
	photos   PhotoRepository
	users    *UserService
	validate *validator.Validate
}

func NewCommentService(repo CommentRepository, photos PhotoRepository, users *UserService) *CommentService {
	return &CommentService{
		repo:     repo,
		photos:   photos,
		users:    users,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *CommentService) ListByPhoto(ctx context.Context, photoID string) ([]types.Comment, error) {
	return s.repo.ListByPhoto(ctx, photoID)
}

// Create adds a comment by actor to an existing photo.
func (s *CommentService) Create(ctx context.Context, actor access.Principal, in CommentInput) (types.Comment, error) {
	in.PhotoID = strings.TrimSpace(in.PhotoID)
	in.Text = strings.TrimSpace(in.Text)
	if err := validationError(s.validate.Struct(in)); err != nil {
		return types.Comment{}, err
	}

	if _, err := s.photos.Get(ctx, in.PhotoID); err != nil {
		return types.Comment{}, err
	}

	username := "unknown"
	if author, err := s.users.FindByID(ctx, actor.ID); err == nil {
		username = author.Username
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.Comment{}, fmt.Errorf("load author: %w", err)
	}

	return s.repo.Create(ctx, types.Comment{
		PhotoID:  in.PhotoID,
		UserID:   actor.ID,
		Username: username,
		Text:     in.Text,
	})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/photoshare/apiserver/internal/access"
	"github.com/photoshare/apiserver/internal/store"
	"github.com/photoshare/apiserver/types"
	"github.com/sirupsen/logrus"
)

// PhotoRepository defines persistence operations for photos.
type PhotoRepository interface {
	List(ctx context.Context) ([]types.Photo, error)
	Get(ctx context.Context, id string) (types.Photo, error)
	Create(ctx context.Context, photo types.Photo) (types.Photo, error)
	Update(ctx context.Context, id string, patch types.PhotoPatch) (types.Photo, error)
	IncrementLikes(ctx context.Context, id string) (types.Photo, error)
	Delete(ctx context.Context, id string) error
}

// PhotoInput is the payload accepted when publishing a photo.
type PhotoInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl" validate:"required"`
	Tags        []string `json:"tags"`
}

// PhotoService encapsulates photo use-cases.
type PhotoService struct {
	repo     PhotoRepository
	comments CommentRepository
	users    *UserService
	events   *Events
	log      logrus.FieldLogger
	validate *validator.Validate
}

func NewPhotoService(repo PhotoRepository, comments CommentRepository, users *UserService, events *Events, log logrus.FieldLogger) *PhotoService {
	return &PhotoService{
		repo:     repo,
		comments: comments,
		users:    users,
		events:   events,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *PhotoService) List(ctx context.Context) ([]types.Photo, error) {
	return s.repo.List(ctx)
}

func (s *PhotoService) Get(ctx context.Context, id string) (types.Photo, error) {
	return s.repo.Get(ctx, id)
}

// Create publishes a photo owned by actor.
func (s *PhotoService) Create(ctx context.Context, actor access.Principal, in PhotoInput) (types.Photo, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := validationError(s.validate.Struct(in)); err != nil {
		return types.Photo{}, err
	}
	if !isImageURL(in.ImageURL) {
		return types.Photo{}, fmt.Errorf("%w: imageUrl is invalid", ErrValidation)
	}

	username := "unknown"
	if owner, err := s.users.FindByID(ctx, actor.ID); err == nil {
		username = owner.Username
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.Photo{}, fmt.Errorf("load owner: %w", err)
	}

	photo, err := s.repo.Create(ctx, types.Photo{
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    in.ImageURL,
		UserID:      actor.ID,
		Username:    username,
		Tags:        normalizeTags(in.Tags),
	})
	if err != nil {
		return types.Photo{}, err
	}

	s.log.WithFields(logrus.Fields{"photo_id": photo.ID, "user_id": actor.ID}).Info("photo created")
	s.events.Emit(ctx, EventPhotoCreated, map[string]string{"photoId": photo.ID, "userId": actor.ID})
	return photo, nil
}

// Update changes a photo's metadata. Only the owner may update it.
func (s *PhotoService) Update(ctx context.Context, actor access.Principal, id string, patch types.PhotoPatch) (types.Photo, error) {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return types.Photo{}, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			patch.Title = nil
		} else {
			patch.Title = &title
		}
	}
	if patch.Tags != nil {
		patch.Tags = normalizeTags(patch.Tags)
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a photo and its comments. Only the owner may delete it.
func (s *PhotoService) Delete(ctx context.Context, actor access.Principal, id string) error {
	if err := s.authorizeOwner(ctx, actor, id); err != nil {
		return err
	}
	if err := s.comments.DeleteByPhoto(ctx, id); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"photo_id": id, "user_id": actor.ID}).Info("photo deleted")
	s.events.Emit(ctx, EventPhotoDeleted, map[string]string{"photoId": id, "userId": actor.ID})
	return nil
}

func (s *PhotoService) Like(ctx context.Context, id string) (types.Photo, error) {
	return s.repo.IncrementLikes(ctx, id)
}

func (s *PhotoService) authorizeOwner(ctx context.Context, actor access.Principal, id string) error {
	photo, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !access.IsOwnerOrRole(&actor, photo.UserID, "") {
		return &access.Error{Kind: access.Forbidden, Reason: access.ReasonOwnershipMismatch}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func isImageURL(raw string) bool {
	if strings.HasPrefix(raw, "/") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

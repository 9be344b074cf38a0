package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/photoshare/apiserver/internal/store"
	"github.com/photoshare/apiserver/types"
)

// DemoPassword is the password of every seeded demo account.
const DemoPassword = "password123"

// Seeder loads a small demo dataset for local development.
type Seeder struct {
	Users    UserRepository
	Photos   PhotoRepository
	Comments CommentRepository
	Hasher   PasswordHasher
}

// Run inserts the demo users, photos and comments. Existing demo users are
// left untouched, so running it twice is harmless.
func (s Seeder) Run(ctx context.Context) error {
	if _, err := s.Users.GetByEmail(ctx, "admin@example.com"); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := s.Hasher.Hash(DemoPassword)
	if err != nil {
		return err
	}

	users := []types.User{
		{ID: "1", Username: "admin", Email: "admin@example.com", Role: types.RoleCreator, PasswordHash: hashed, CreatedAt: day(2023, 1, 1)},
		{ID: "2", Username: "user", Email: "user@example.com", Role: types.RoleConsumer, PasswordHash: hashed, CreatedAt: day(2023, 1, 2)},
	}
	for _, user := range users {
		if _, err := s.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", user.Username, err)
		}
	}

	photos := []types.Photo{
		{
			ID: "1", Title: "Beautiful Sunset", Description: "A stunning sunset over the mountains",
			ImageURL: "https://images.pexels.com/photos/1166209/pexels-photo-1166209.jpeg",
			UserID:   "1", Username: "admin", Likes: 24, Views: 128,
			Tags: []string{"sunset", "mountains", "nature"}, CreatedAt: day(2023, 1, 15),
		},
		{
			ID: "2", Title: "City Skyline", Description: "Night view of a vibrant city skyline",
			ImageURL: "https://images.pexels.com/photos/3052361/pexels-photo-3052361.jpeg",
			UserID:   "1", Username: "admin", Likes: 18, Views: 95,
			Tags: []string{"city", "night", "urban"}, CreatedAt: day(2023, 1, 20),
		},
		{
			ID: "3", Title: "Mountain Lake", Description: "Serene mountain lake at sunrise",
			ImageURL: "https://images.pexels.com/photos/147411/pexels-photo-147411.jpeg",
			UserID:   "1", Username: "admin", Likes: 32, Views: 156,
			Tags: []string{"lake", "mountains", "sunrise"}, CreatedAt: day(2023, 2, 5),
		},
	}
	for _, photo := range photos {
		if _, err := s.Photos.Create(ctx, photo); err != nil {
			return fmt.Errorf("seed photo %s: %w", photo.ID, err)
		}
	}

	comments := []types.Comment{
		{ID: "1", PhotoID: "1", UserID: "2", Username: "user", Text: "This is absolutely breathtaking!", CreatedAt: day(2023, 1, 16)},
		{ID: "2", PhotoID: "1", UserID: "1", Username: "admin", Text: "Thank you! It was an amazing moment to capture.", CreatedAt: day(2023, 1, 16).Add(12 * time.Hour)},
		{ID: "3", PhotoID: "2", UserID: "2", Username: "user", Text: "Love the city lights!", CreatedAt: day(2023, 1, 21)},
	}
	for _, comment := range comments {
		if _, err := s.Comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("seed comment %s: %w", comment.ID, err)
		}
	}
	return nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

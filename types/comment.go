package types

import "time"

// Comment is a short text left by a user on a photo.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PhotoID   string    `json:"photoId" db:"photo_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

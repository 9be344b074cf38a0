package types

import "time"

// Photo is a published image and its engagement counters.
type Photo struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	UserID      string    `json:"userId" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	Likes       int       `json:"likes" db:"likes"`
	Views       int       `json:"views" db:"views"`
	Tags        []string  `json:"tags" db:"tags"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// PhotoPatch holds the mutable fields of a photo. Nil fields are left unchanged.
type PhotoPatch struct {
	Title       *string
	Description *string
	Tags        []string
}

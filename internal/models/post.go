package models

import "time"

// Post is a blog entry owned by a user. Deleting the owner cascades to their
// posts.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	Published bool      `json:"published" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	Owner     *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// PostWithVotes pairs a post with its current vote count, as produced by the
// votes join in the post repository.
type PostWithVotes struct {
	Post  Post  `json:"post" gorm:"embedded"`
	Votes int64 `json:"votes"`
}

// CreatePostRequest defines the request body for creating a post.
// Published defaults to true when omitted.
type CreatePostRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Published *bool  `json:"published,omitempty"`
}

// UpdatePostRequest defines the request body for replacing a post's fields.
type UpdatePostRequest struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Published *bool  `json:"published,omitempty"`
}

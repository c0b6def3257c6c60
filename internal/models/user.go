package models

import "time"

// User is a registered account. Password holds a bcrypt hash and is excluded
// from every JSON projection.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"` // Ensure email is unique across all users
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// UserOut is the public projection of a User.
type UserOut struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Out returns the public projection of the user.
func (u *User) Out() UserOut {
	return UserOut{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// CreateUserRequest defines the request body for registering a user
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest carries the password-grant form fields. Username holds the
// account email.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Token is the response body of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

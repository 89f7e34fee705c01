package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"uniqueIndex;size:50"` // Ensure username is unique across all users
	Name            string    `json:"name,omitempty"`
	Title           string    `json:"title,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	Password        string    `json:"-"` // Store hashed password, ignore for JSON serialization
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"-"`
}

// DisplayName prefers the profile name and falls back to the username.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Username
}

// UserCompact is the public view of a user embedded in other responses
type UserCompact struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name,omitempty"`
	Title           string `json:"title,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// ToCompact strips a user down to its public fields
func (u User) ToCompact() UserCompact {
	return UserCompact{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		Title:           u.Title,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// SignupRequest defines the request body for account registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Title    string `json:"title" validate:"omitempty,max=100"`
}

// SigninRequest defines the request body for authentication
type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Name            string `json:"name,omitempty" validate:"omitempty,max=100"`
	Title           string `json:"title,omitempty" validate:"omitempty,max=100"`
	ProfileImageURL string `json:"profileImageUrl,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

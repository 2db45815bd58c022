package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Username  string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email     string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"-"` // Store hashed password, ignore for JSON serialization
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns "First Last", falling back to the username when both
// name fields are empty.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type SignupRequest struct {
	Username string `form:"username" validate:"required,min=3,max=150"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `form:"first_name" validate:"omitempty,max=150"`
	LastName  string `form:"last_name" validate:"omitempty,max=150"`
	Email     string `form:"email" validate:"omitempty,email"`
}

// AuthClaims are custom claims extending standard jwt.RegisteredClaims
type AuthClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

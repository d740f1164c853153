package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrTokenInvalid = errors.New("invalid token")
var ErrTooManyAttempts = errors.New("too many login attempts")

// User is the stored account record. PasswordHash is the only password
// material ever persisted; the plaintext secret never leaves the hasher.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the projection of a User that is safe to return to clients.
// Every client-facing operation returns this, never the stored record.
type PublicUser struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public returns the client-safe view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
	}
}

// Principal is the verified identity attached to a request once the auth
// middleware has validated its bearer token. Request-scoped, never persisted.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

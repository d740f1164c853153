package handler

import "github.com/idently/auth-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// registerRequest deliberately has no role field: any role value in the
// incoming JSON is dropped at bind time and the stored role is always "user".
type registerRequest struct {
	Username    string `json:"username"     validate:"required,min=3"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response-only types owned by the transport layer. Account payloads are
// always the public projection, never the stored record.

type registerResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type profileResponse struct {
	User domain.PublicUser `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type deleteUserResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

package ports

import "github.com/idently/auth-api/internal/core/domain"

// TokenService mints and verifies signed bearer tokens. Verification is pure
// and stateless; every failure cause surfaces as domain.ErrTokenInvalid so
// clients cannot distinguish a forged token from an expired one.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(raw string) (*domain.Principal, error)
}

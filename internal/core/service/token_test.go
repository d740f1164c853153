package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/idently/auth-api/internal/core/domain"
)

func newTestTokenService(secret string, ttl time.Duration) *TokenService {
	return NewTokenService(secret, ttl, zerolog.Nop())
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	user := &domain.User{ID: "65f1c0ffee0000000000aa01", Email: "alice@example.com", Role: domain.RoleAdmin}
	raw, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	principal, err := svc.Verify(raw)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if principal.UserID != user.ID {
		t.Fatalf("expected subject %s, got %s", user.ID, principal.UserID)
	}
	if principal.Email != user.Email {
		t.Fatalf("expected email %s, got %s", user.Email, principal.Email)
	}
	if principal.Role != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %s", domain.RoleAdmin, principal.Role)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	// Mint an already-expired token with the same secret.
	claims := Claims{
		Role: domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	other := newTestTokenService("other-secret", time.Hour)
	raw, err := other.Issue(&domain.User{ID: "user-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong key, got %v", err)
	}
}

func TestTokenService_AlgorithmConfusion(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	// Same secret, different HMAC algorithm: must be rejected, only the
	// configured algorithm is ever accepted.
	claims := Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for foreign algorithm, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", raw, err)
		}
	}
}

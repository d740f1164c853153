package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/idently/auth-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// Claims is the JWT payload minted for every session. Subject holds the
// account id; email and role ride alongside the registered claims.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed bearer tokens. Only HS256 is
// ever accepted on verification; a token signed with any other algorithm is
// rejected outright.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

// NewTokenService builds a TokenService around the process-wide signing
// secret. The secret comes from configuration, never a source literal.
func NewTokenService(secret string, ttl time.Duration, log zerolog.Logger) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, log: log}
}

func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a raw token. Malformed, expired, and
// badly-signed tokens are logged with their actual cause but all collapse to
// domain.ErrTokenInvalid so the response leaks nothing to the caller.
func (s *TokenService) Verify(raw string) (*domain.Principal, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		s.log.Debug().Str("reason", verifyFailureReason(err)).Msg("token rejected")
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// verifyFailureReason classifies a parse error for server-side logs only;
// it never reaches a client.
func verifyFailureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}

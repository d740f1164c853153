package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idently/auth-api/internal/core/domain"
	"github.com/idently/auth-api/internal/core/ports"
)

// AccountService orchestrates registration, login, and account management on
// top of the user repository, password hasher, and token service.
type AccountService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenService
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

// NewAccountService wires the service. limiter may be nil, which disables
// login throttling (used in tests; production wiring always provides one).
func NewAccountService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	limiter ports.LoginLimiter,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a new account. The stored role is always "user": role is
// never a registration-time input, so the transport layer cannot elevate a
// caller no matter what the payload contained.
func (s *AccountService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.PublicUser, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.Username == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		PhoneNumber:  input.PhoneNumber,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("account registered")

	view := created.Public()
	return token, &view, nil
}

// Login authenticates by identity and secret. An unknown identity and a
// wrong password produce the same ErrInvalidCredentials, so responses cannot
// be used to enumerate accounts.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooMany(ctx, email)
		if err != nil {
			// A limiter outage must not lock everyone out; log and continue.
			s.log.Warn().Err(err).Msg("login limiter unavailable")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

// Profile returns the caller's own account, looked up by the verified
// subject id from the principal, never by a caller-supplied parameter.
func (s *AccountService) Profile(ctx context.Context, principal domain.Principal) (*domain.PublicUser, error) {
	user, err := s.repo.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	view := user.Public()
	return &view, nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		views = append(views, users[i].Public())
	}
	return views, nil
}

func (s *AccountService) DeleteUser(ctx context.Context, targetID string) (*domain.PublicUser, error) {
	deleted, err := s.repo.Delete(ctx, targetID)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", targetID).Msg("account deleted")
	view := deleted.Public()
	return &view, nil
}

func (s *AccountService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("login limiter record failed")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

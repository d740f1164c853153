package ports

import (
	"context"

	"github.com/idently/auth-api/internal/core/domain"
)

// RegisterInput carries untrusted registration fields. It deliberately has no
// role field: the stored role is always forced to "user" by the service,
// whatever the transport layer received.
type RegisterInput struct {
	Username    string
	PhoneNumber string
	Email       string
	Password    string
}

type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.PublicUser, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, principal domain.Principal) (*domain.PublicUser, error)
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
	DeleteUser(ctx context.Context, targetID string) (*domain.PublicUser, error)
}

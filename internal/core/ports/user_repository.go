package ports

import (
	"context"

	"github.com/idently/auth-api/internal/core/domain"
)

// UserRepository defines the persistence interface for account records.
// Each method maps to a single atomic store operation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}

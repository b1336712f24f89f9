package repository

import (
	"context"

	"github.com/google/uuid"

	"fin-ledger/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// Lookups return domain.ErrUserNotFound when no row matches; Create returns
// domain.ErrEmailInUse when the email is already taken.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

package user

import (
	"context"

	"budgetthreads/internal/domain"
)

// Repository persists and fetches storefront accounts.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	SetToken(ctx context.Context, id, token string) error
}

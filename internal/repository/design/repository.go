package design

import (
	"context"

	"budgetthreads/internal/domain"
)

// Repository stores saved designs. Designs are immutable once created.
type Repository interface {
	Create(ctx context.Context, d domain.Design) (*domain.Design, error)
	GetByID(ctx context.Context, id string) (*domain.Design, error)
	List(ctx context.Context) ([]domain.Design, error)
}

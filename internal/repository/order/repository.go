package order

import (
	"context"

	"budgetthreads/internal/domain"
)

// Repository persists immutable order records. There is no update or delete.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

package review

import (
	"context"

	"budgetthreads/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, r domain.Review) error
	// List returns reviews newest first; an empty productID lists all of them.
	List(ctx context.Context, productID string) ([]domain.Review, error)
}

package order

import (
	"context"

	"budgetthreads/internal/domain"
	"budgetthreads/internal/resilience"
)

type resilientRepo struct {
	primary  Repository
	fallback Repository
	policy   *resilience.Policy
}

func NewResilient(primary, fallback Repository, policy *resilience.Policy) Repository {
	return &resilientRepo{primary: primary, fallback: fallback, policy: policy}
}

func (r *resilientRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	return resilience.Run(ctx, r.policy, "create",
		func(ctx context.Context) (*domain.Order, error) { return r.primary.Create(ctx, o) },
		func(ctx context.Context) (*domain.Order, error) { return r.fallback.Create(ctx, o) },
	)
}

func (r *resilientRepo) List(ctx context.Context) ([]domain.Order, error) {
	return resilience.Run(ctx, r.policy, "list",
		func(ctx context.Context) ([]domain.Order, error) { return r.primary.List(ctx) },
		func(ctx context.Context) ([]domain.Order, error) { return r.fallback.List(ctx) },
	)
}

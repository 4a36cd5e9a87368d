package product

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

func (r *resilientRepo) List(ctx context.Context) ([]domain.Product, error) {
	return resilience.Run(ctx, r.policy, "list",
		func(ctx context.Context) ([]domain.Product, error) { return r.primary.List(ctx) },
		func(ctx context.Context) ([]domain.Product, error) { return r.fallback.List(ctx) },
	)
}

func (r *resilientRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return resilience.Run(ctx, r.policy, "get",
		func(ctx context.Context) (*domain.Product, error) { return r.primary.GetByID(ctx, id) },
		func(ctx context.Context) (*domain.Product, error) { return r.fallback.GetByID(ctx, id) },
	)
}

func (r *resilientRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	return resilience.Run(ctx, r.policy, "upsert",
		func(ctx context.Context) (*domain.Product, error) { return r.primary.Upsert(ctx, p) },
		func(ctx context.Context) (*domain.Product, error) { return r.fallback.Upsert(ctx, p) },
	)
}

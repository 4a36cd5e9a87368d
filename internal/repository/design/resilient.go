package design

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

func (r *resilientRepo) Create(ctx context.Context, d domain.Design) (*domain.Design, error) {
	return resilience.Run(ctx, r.policy, "create",
		func(ctx context.Context) (*domain.Design, error) { return r.primary.Create(ctx, d) },
		func(ctx context.Context) (*domain.Design, error) { return r.fallback.Create(ctx, d) },
	)
}

func (r *resilientRepo) GetByID(ctx context.Context, id string) (*domain.Design, error) {
	return resilience.Run(ctx, r.policy, "get",
		func(ctx context.Context) (*domain.Design, error) { return r.primary.GetByID(ctx, id) },
		func(ctx context.Context) (*domain.Design, error) { return r.fallback.GetByID(ctx, id) },
	)
}

func (r *resilientRepo) List(ctx context.Context) ([]domain.Design, error) {
	return resilience.Run(ctx, r.policy, "list",
		func(ctx context.Context) ([]domain.Design, error) { return r.primary.List(ctx) },
		func(ctx context.Context) ([]domain.Design, error) { return r.fallback.List(ctx) },
	)
}

package review

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

func (r *resilientRepo) Create(ctx context.Context, rev domain.Review) error {
	return resilience.Exec(ctx, r.policy, "create",
		func(ctx context.Context) error { return r.primary.Create(ctx, rev) },
		func(ctx context.Context) error { return r.fallback.Create(ctx, rev) },
	)
}

func (r *resilientRepo) List(ctx context.Context, productID string) ([]domain.Review, error) {
	return resilience.Run(ctx, r.policy, "list",
		func(ctx context.Context) ([]domain.Review, error) { return r.primary.List(ctx, productID) },
		func(ctx context.Context) ([]domain.Review, error) { return r.fallback.List(ctx, productID) },
	)
}

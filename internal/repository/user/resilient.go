package user

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

// NewResilient serves users from fallback only when the policy has no durable
// store. With a durable store configured, failures are reported instead of
// answered from a store that cannot see existing accounts.
func NewResilient(primary, fallback Repository, policy *resilience.Policy) Repository {
	return &resilientRepo{primary: primary, fallback: fallback, policy: policy}
}

func (r *resilientRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	return resilience.Strict(ctx, r.policy, "create",
		func(ctx context.Context) (*domain.User, error) { return r.primary.Create(ctx, u) },
		func(ctx context.Context) (*domain.User, error) { return r.fallback.Create(ctx, u) },
	)
}

func (r *resilientRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return resilience.Strict(ctx, r.policy, "get_by_email",
		func(ctx context.Context) (*domain.User, error) { return r.primary.GetByEmail(ctx, email) },
		func(ctx context.Context) (*domain.User, error) { return r.fallback.GetByEmail(ctx, email) },
	)
}

func (r *resilientRepo) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	return resilience.Strict(ctx, r.policy, "get_by_token",
		func(ctx context.Context) (*domain.User, error) { return r.primary.GetByToken(ctx, token) },
		func(ctx context.Context) (*domain.User, error) { return r.fallback.GetByToken(ctx, token) },
	)
}

func (r *resilientRepo) SetToken(ctx context.Context, id, token string) error {
	return resilience.StrictExec(ctx, r.policy, "set_token",
		func(ctx context.Context) error { return r.primary.SetToken(ctx, id, token) },
		func(ctx context.Context) error { return r.fallback.SetToken(ctx, id, token) },
	)
}

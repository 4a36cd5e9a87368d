package cart

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

// NewResilient serves calls from primary and degrades to fallback on
// infrastructure failures. A nil primary means no durable store is configured.
func NewResilient(primary, fallback Repository, policy *resilience.Policy) Repository {
	return &resilientRepo{primary: primary, fallback: fallback, policy: policy}
}

func (r *resilientRepo) Items(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	return resilience.Run(ctx, r.policy, "items",
		func(ctx context.Context) ([]domain.LineItem, error) { return r.primary.Items(ctx, sessionID) },
		func(ctx context.Context) ([]domain.LineItem, error) { return r.fallback.Items(ctx, sessionID) },
	)
}

func (r *resilientRepo) Append(ctx context.Context, sessionID string, item domain.LineItem) error {
	return resilience.Exec(ctx, r.policy, "append",
		func(ctx context.Context) error { return r.primary.Append(ctx, sessionID, item) },
		func(ctx context.Context) error { return r.fallback.Append(ctx, sessionID, item) },
	)
}

func (r *resilientRepo) Remove(ctx context.Context, sessionID, itemID string) error {
	return resilience.Exec(ctx, r.policy, "remove",
		func(ctx context.Context) error { return r.primary.Remove(ctx, sessionID, itemID) },
		func(ctx context.Context) error { return r.fallback.Remove(ctx, sessionID, itemID) },
	)
}

func (r *resilientRepo) Clear(ctx context.Context, sessionID string) error {
	return resilience.Exec(ctx, r.policy, "clear",
		func(ctx context.Context) error { return r.primary.Clear(ctx, sessionID) },
		func(ctx context.Context) error { return r.fallback.Clear(ctx, sessionID) },
	)
}

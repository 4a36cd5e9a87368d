package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budgetthreads/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var fallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_store_fallback_total",
	Help: "Store operations served by the in-process fallback store.",
}, []string{"store", "op"})

// Settings tunes the circuit breaker guarding the durable store.
type Settings struct {
	// Failures is the number of consecutive infrastructure failures that
	// open the breaker.
	Failures uint32
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
}

// Policy routes one store's calls to the durable implementation first and to
// the fallback implementation on infrastructure failure.
type Policy struct {
	store   string
	durable bool
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewPolicy builds a Policy for the named store. When durable is false every
// call goes straight to the fallback.
func NewPolicy(store string, durable bool, s Settings, logger *zap.Logger) *Policy {
	if logger == nil {
		logger = zap.NewNop()
	}
	if s.Failures == 0 {
		s.Failures = 5
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	logger = logger.With(zap.String("store", store))
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    store,
		Timeout: s.Timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= s.Failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || domain.IsClientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("durable store breaker state change", zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
	return &Policy{store: store, durable: durable, breaker: breaker, logger: logger}
}

// Run executes primary and, unless it succeeds or fails with a client error,
// runs fallback instead and marks the request context as degraded.
func Run[T any](ctx context.Context, p *Policy, op string, primary, fallback func(context.Context) (T, error)) (T, error) {
	if !p.durable {
		p.degrade(ctx, op, nil)
		return fallback(ctx)
	}

	res, err := p.breaker.Execute(func() (interface{}, error) {
		return primary(ctx)
	})
	if err == nil {
		return res.(T), nil
	}
	if domain.IsClientError(err) {
		var zero T
		return zero, err
	}
	p.degrade(ctx, op, err)
	return fallback(ctx)
}

// Strict runs primary through the breaker and never falls back while the
// durable store is configured; infrastructure failures surface wrapped in
// domain.ErrUnavailable. Without a durable store it behaves like Run.
func Strict[T any](ctx context.Context, p *Policy, op string, primary, fallback func(context.Context) (T, error)) (T, error) {
	if !p.durable {
		p.degrade(ctx, op, nil)
		return fallback(ctx)
	}

	res, err := p.breaker.Execute(func() (interface{}, error) {
		return primary(ctx)
	})
	if err == nil {
		return res.(T), nil
	}
	var zero T
	if domain.IsClientError(err) {
		return zero, err
	}
	p.logger.Warn("durable store failed, no fallback allowed", zap.String("op", op), zap.Error(err))
	return zero, fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, p.store, op, err)
}

// StrictExec is Strict for operations without a result.
func StrictExec(ctx context.Context, p *Policy, op string, primary, fallback func(context.Context) error) error {
	_, err := Strict(ctx, p, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, primary(ctx) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, fallback(ctx) },
	)
	return err
}

// Exec is Run for operations without a result.
func Exec(ctx context.Context, p *Policy, op string, primary, fallback func(context.Context) error) error {
	_, err := Run(ctx, p, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, primary(ctx) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, fallback(ctx) },
	)
	return err
}

func (p *Policy) degrade(ctx context.Context, op string, cause error) {
	fallbackTotal.WithLabelValues(p.store, op).Inc()
	MarkerFrom(ctx).mark()
	switch {
	case cause == nil:
	case errors.Is(cause, gobreaker.ErrOpenState), errors.Is(cause, gobreaker.ErrTooManyRequests):
		p.logger.Debug("breaker open, serving from fallback", zap.String("op", op))
	default:
		p.logger.Warn("durable store failed, serving from fallback", zap.String("op", op), zap.Error(cause))
	}
}

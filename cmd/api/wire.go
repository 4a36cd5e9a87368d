package main

import (
	"context"
	"fmt"

	"budgetthreads/internal/config"
	"budgetthreads/internal/events"
	"budgetthreads/internal/httpserver"
	"budgetthreads/internal/payment/razorpay"
	cartrepo "budgetthreads/internal/repository/cart"
	designrepo "budgetthreads/internal/repository/design"
	"budgetthreads/internal/repository/memory"
	orderrepo "budgetthreads/internal/repository/order"
	productrepo "budgetthreads/internal/repository/product"
	reviewrepo "budgetthreads/internal/repository/review"
	userrepo "budgetthreads/internal/repository/user"
	"budgetthreads/internal/resilience"
	"budgetthreads/internal/seed"
	accountsvc "budgetthreads/internal/service/account"
	cartsvc "budgetthreads/internal/service/cart"
	catalogsvc "budgetthreads/internal/service/catalog"
	checkoutsvc "budgetthreads/internal/service/checkout"
	designsvc "budgetthreads/internal/service/design"
	ordersvc "budgetthreads/internal/service/order"
	reviewsvc "budgetthreads/internal/service/review"
	"budgetthreads/internal/service/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// wire builds every repository and service. Each store gets its own breaker;
// with a nil pool the primaries are left unset and every call is served by
// the in-memory store.
func wire(ctx context.Context, cfg config.Config, pool *pgxpool.Pool, publisher events.Publisher, logger *zap.Logger) (httpserver.Deps, error) {
	store := memory.New()
	if err := seed.Apply(ctx, store.Products()); err != nil {
		return httpserver.Deps{}, fmt.Errorf("seed fallback catalog: %w", err)
	}

	durable := pool != nil
	settings := resilience.Settings{Failures: uint32(cfg.BreakerFailures), Timeout: cfg.BreakerTimeout}
	policy := func(name string) *resilience.Policy {
		return resilience.NewPolicy(name, durable, settings, logger)
	}

	var (
		carts    cartrepo.Repository
		orders   orderrepo.Repository
		designs  designrepo.Repository
		reviews  reviewrepo.Repository
		products productrepo.Repository
		users    userrepo.Repository
	)
	if durable {
		carts = cartrepo.NewPostgres(pool, logger)
		orders = orderrepo.NewPostgres(pool, logger)
		designs = designrepo.NewPostgres(pool)
		reviews = reviewrepo.NewPostgres(pool)
		products = productrepo.NewPostgres(pool, logger)
		users = userrepo.NewPostgres(pool, logger)
	}

	cartService := cartsvc.New(cartrepo.NewResilient(carts, store.Carts(), policy("carts")), logger)
	orderService := ordersvc.New(orderrepo.NewResilient(orders, store.Orders(), policy("orders")), logger)
	provider := razorpay.New(razorpay.Config{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		BaseURL:   cfg.RazorpayBaseURL,
		Timeout:   cfg.RazorpayTimeout,
	})
	if !provider.Configured() {
		logger.Warn("razorpay keys missing, payment orders will fail")
	}

	return httpserver.Deps{
		Sessions:    session.New(),
		Session:     httpserver.SessionConfig{CookieName: cfg.SessionCookie, MaxAge: cfg.SessionMaxAge},
		CORSOrigins: cfg.CORSOrigins,
		CartSvc:     cartService,
		CheckoutSvc: checkoutsvc.New(cartService, orderService, provider, publisher, logger),
		OrderSvc:    orderService,
		DesignSvc:   designsvc.New(designrepo.NewResilient(designs, store.Designs(), policy("designs"))),
		ReviewSvc:   reviewsvc.New(reviewrepo.NewResilient(reviews, store.Reviews(), policy("reviews"))),
		CatalogSvc:  catalogsvc.New(productrepo.NewResilient(products, store.Products(), policy("products"))),
		AccountSvc:  accountsvc.New(userrepo.NewResilient(users, store.Users(), policy("users")), accountsvc.AdminEmail(cfg.AdminEmail)),
	}, nil
}
